package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"asistente/storage"
)

func (a AppView) visibleRequests() []storage.ServiceRequest {
	if a.historyFilterInput.Value() != "" {
		return a.filteredHistoryList
	}
	return a.historyList
}

func (a *AppView) applyHistoryFilter() {
	query := a.historyFilterInput.Value()
	if query == "" {
		a.filteredHistoryList = nil
		if a.selectedHistoryIdx >= len(a.historyList) {
			a.selectedHistoryIdx = max(len(a.historyList)-1, 0)
		}
		return
	}
	targets := make([]string, len(a.historyList))
	for i, r := range a.historyList {
		targets[i] = r.Name + " " + r.Details + " " + r.Address
	}
	matches := fuzzy.Find(query, targets)
	filtered := make([]storage.ServiceRequest, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, a.historyList[m.Index])
	}
	a.filteredHistoryList = filtered
	if a.selectedHistoryIdx >= len(filtered) {
		a.selectedHistoryIdx = max(len(filtered)-1, 0)
	}
}

func (a AppView) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if a.historyPriceMode {
		switch msg.String() {
		case "esc":
			a.historyPriceMode = false
			return a, nil
		case "enter":
			a.historyPriceMode = false
			requests := a.visibleRequests()
			if a.selectedHistoryIdx >= len(requests) {
				return a, nil
			}
			raw := strings.TrimSpace(a.historyPriceInput.Value())
			var price *float64
			if raw != "" {
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					a.historyError = "precio inválido: " + raw
					return a, nil
				}
				price = &v
			}
			return a, a.dataModel.AdvanceRequest(requests[a.selectedHistoryIdx].ID, price)
		}
		a.historyPriceInput, cmd = a.historyPriceInput.Update(msg)
		return a, cmd
	}

	if a.historyFilterMode {
		switch msg.String() {
		case "esc":
			a.historyFilterMode = false
			a.historyFilterInput.SetValue("")
			a.applyHistoryFilter()
			return a, nil
		case "enter":
			a.historyFilterMode = false
			return a, nil
		}
		a.historyFilterInput, cmd = a.historyFilterInput.Update(msg)
		a.applyHistoryFilter()
		return a, cmd
	}

	requests := a.visibleRequests()
	switch msg.String() {
	case "esc", "q", "ctrl+h":
		a.showHistory = false
		return a, nil
	case "j", "down":
		if a.selectedHistoryIdx < len(requests)-1 {
			a.selectedHistoryIdx++
		}
		return a, nil
	case "k", "up":
		if a.selectedHistoryIdx > 0 {
			a.selectedHistoryIdx--
		}
		return a, nil
	case "/":
		a.historyFilterMode = true
		a.historyFilterInput.Focus()
		return a, nil
	case "a", "enter":
		// Advance one step. The final step asks for a price first.
		if a.selectedHistoryIdx >= len(requests) {
			return a, nil
		}
		req := requests[a.selectedHistoryIdx]
		next, ok := req.Status.Next()
		if !ok {
			a.historyError = "la solicitud ya está terminada"
			return a, nil
		}
		if next == storage.StatusTerminado {
			a.historyPriceMode = true
			a.historyPriceInput.SetValue("")
			a.historyPriceInput.Focus()
			return a, nil
		}
		return a, a.dataModel.AdvanceRequest(req.ID, nil)
	case "d":
		if a.selectedHistoryIdx < len(requests) {
			return a, a.dataModel.DeleteRequest(requests[a.selectedHistoryIdx].ID)
		}
		return a, nil
	}
	return a, nil
}

func statusStyle(s storage.Status) lipgloss.Style {
	switch s {
	case storage.StatusPendiente:
		return lipgloss.NewStyle().Foreground(warningColor)
	case storage.StatusAprobado:
		return lipgloss.NewStyle().Foreground(accentColor)
	case storage.StatusEnProceso:
		return lipgloss.NewStyle().Foreground(highlightColor)
	case storage.StatusTerminado:
		return lipgloss.NewStyle().Foreground(successColor)
	default:
		return DimStyle
	}
}

func (a AppView) renderHistoryBrowser() string {
	requests := a.visibleRequests()

	var rows []string
	rows = append(rows, TitleStyle.Render("Historial de servicios"))
	rows = append(rows, "")

	if a.historyFilterMode || a.historyFilterInput.Value() != "" {
		rows = append(rows, a.historyFilterInput.View())
		rows = append(rows, "")
	}
	if a.historyPriceMode {
		rows = append(rows, a.historyPriceInput.View())
		rows = append(rows, "")
	}
	if a.historyError != "" {
		rows = append(rows, ErrorStyle.Render("⚠ "+a.historyError))
		rows = append(rows, "")
	}

	if len(requests) == 0 {
		rows = append(rows, DimStyle.Render("No hay solicitudes registradas."))
	}

	for i, req := range requests {
		price := ""
		if req.Price != nil {
			price = fmt.Sprintf("$%.2f", *req.Price)
		}
		line := fmt.Sprintf("%s %s %s %s %s",
			padRight(runewidth.Truncate(req.Name, 18, "..."), 19),
			padRight(req.Phone, 12),
			padRight(runewidth.Truncate(req.Details, 24, "..."), 25),
			statusStyle(req.Status).Render(padRight(string(req.Status), 11)),
			price,
		)
		if i == a.selectedHistoryIdx {
			line = SelectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}

	rows = append(rows, "")
	rows = append(rows, FormatFooter(
		"j/k", "Navegar", "a", "Avanzar estado", "/", "Filtrar",
		"d", "Borrar", "Esc", "Cerrar",
	))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		strings.Join(rows, "\n"))
}
