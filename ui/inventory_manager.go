package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"asistente/storage"
)

// Stages of the add-item form, walked one field at a time.
const (
	inventoryStageName = iota
	inventoryStageCategory
	inventoryStagePrice
	inventoryStageDescription
)

var inventoryPrompts = map[int]string{
	inventoryStageName:        "Nombre: ",
	inventoryStageCategory:    "Categoría (p=producto, s=servicio): ",
	inventoryStagePrice:       "Precio: $",
	inventoryStageDescription: "Descripción: ",
}

func (a AppView) handleInventoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if a.inventoryAddMode {
		switch msg.String() {
		case "esc":
			a.inventoryAddMode = false
			return a, nil
		case "enter":
			return a.advanceInventoryForm()
		}
		a.inventoryAddInput, cmd = a.inventoryAddInput.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "esc", "q", "ctrl+p":
		a.showInventory = false
		return a, nil
	case "j", "down":
		if a.selectedInventoryIdx < len(a.inventoryList)-1 {
			a.selectedInventoryIdx++
		}
		return a, nil
	case "k", "up":
		if a.selectedInventoryIdx > 0 {
			a.selectedInventoryIdx--
		}
		return a, nil
	case "n":
		a.inventoryAddMode = true
		a.inventoryAddStage = inventoryStageName
		a.inventoryDraft = storage.InventoryItem{}
		a.inventoryError = ""
		a.inventoryAddInput.Prompt = inventoryPrompts[inventoryStageName]
		a.inventoryAddInput.SetValue("")
		a.inventoryAddInput.Focus()
		return a, nil
	case "d":
		if a.selectedInventoryIdx < len(a.inventoryList) {
			item := a.inventoryList[a.selectedInventoryIdx]
			return a, a.deleteInventoryItem(item.ID)
		}
		return a, nil
	}
	return a, nil
}

// advanceInventoryForm consumes the current field and moves to the
// next, saving the item after the last one.
func (a AppView) advanceInventoryForm() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(a.inventoryAddInput.Value())

	switch a.inventoryAddStage {
	case inventoryStageName:
		if value == "" {
			a.inventoryError = "el nombre es obligatorio"
			return a, nil
		}
		a.inventoryDraft.Name = value
	case inventoryStageCategory:
		switch strings.ToLower(value) {
		case "p", "producto":
			a.inventoryDraft.Category = storage.CategoryProducto
		case "s", "servicio", "":
			a.inventoryDraft.Category = storage.CategoryServicio
		default:
			a.inventoryError = "categoría inválida: " + value
			return a, nil
		}
	case inventoryStagePrice:
		price, err := strconv.ParseFloat(value, 64)
		if err != nil || price < 0 {
			a.inventoryError = "precio inválido: " + value
			return a, nil
		}
		a.inventoryDraft.Price = price
	case inventoryStageDescription:
		a.inventoryDraft.Description = value
		a.inventoryAddMode = false
		a.inventoryError = ""
		draft := a.inventoryDraft
		store := a.dataModel.Inventory
		return a, tea.Batch(
			func() tea.Msg {
				if _, err := store.Add(draft); err != nil {
					return inventoryListMsg{Err: err}
				}
				items, err := store.List()
				return inventoryListMsg{Items: items, Err: err}
			},
		)
	}

	a.inventoryError = ""
	a.inventoryAddStage++
	a.inventoryAddInput.Prompt = inventoryPrompts[a.inventoryAddStage]
	a.inventoryAddInput.SetValue("")
	return a, nil
}

func (a AppView) deleteInventoryItem(id string) tea.Cmd {
	store := a.dataModel.Inventory
	return func() tea.Msg {
		if err := store.Delete(id); err != nil {
			return inventoryListMsg{Err: err}
		}
		items, err := store.List()
		return inventoryListMsg{Items: items, Err: err}
	}
}

func (a AppView) renderInventoryBrowser() string {
	var rows []string
	rows = append(rows, TitleStyle.Render("Productos y servicios"))
	rows = append(rows, "")

	if a.inventoryAddMode {
		rows = append(rows, a.inventoryAddInput.View())
		rows = append(rows, "")
	}
	if a.inventoryError != "" {
		rows = append(rows, ErrorStyle.Render("⚠ "+a.inventoryError))
		rows = append(rows, "")
	}

	if len(a.inventoryList) == 0 {
		rows = append(rows, DimStyle.Render("El catálogo está vacío."))
	}

	for i, item := range a.inventoryList {
		line := fmt.Sprintf("%s %s %s  %s",
			padRight(runewidth.Truncate(item.Name, 26, "..."), 27),
			DimStyle.Render(padRight(string(item.Category), 9)),
			padRight(fmt.Sprintf("$%.2f", item.Price), 10),
			DimStyle.Render(runewidth.Truncate(item.Description, 40, "...")),
		)
		if i == a.selectedInventoryIdx {
			line = SelectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}

	rows = append(rows, "")
	rows = append(rows, FormatFooter(
		"j/k", "Navegar", "n", "Agregar", "d", "Borrar", "Esc", "Cerrar",
	))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		strings.Join(rows, "\n"))
}
