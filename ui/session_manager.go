package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"asistente/storage"
)

func (a AppView) visibleSessions() []storage.SessionMetadata {
	if a.sessionFilterInput.Value() != "" {
		return a.filteredSessionList
	}
	return a.sessionList
}

func (a *AppView) applySessionFilter() {
	query := a.sessionFilterInput.Value()
	if query == "" {
		a.filteredSessionList = nil
		return
	}
	targets := make([]string, len(a.sessionList))
	for i, s := range a.sessionList {
		targets[i] = s.Name
	}
	matches := fuzzy.Find(query, targets)
	filtered := make([]storage.SessionMetadata, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, a.sessionList[m.Index])
	}
	a.filteredSessionList = filtered
	if a.selectedSessionIdx >= len(filtered) {
		a.selectedSessionIdx = max(len(filtered)-1, 0)
	}
}

func (a AppView) handleSessionManagerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if a.sessionRenameMode {
		switch msg.String() {
		case "esc":
			a.sessionRenameMode = false
			return a, nil
		case "enter":
			a.sessionRenameMode = false
			sessions := a.visibleSessions()
			name := strings.TrimSpace(a.sessionRenameInput.Value())
			if name == "" || a.selectedSessionIdx >= len(sessions) {
				return a, nil
			}
			return a, a.dataModel.RenameSessionCmd(sessions[a.selectedSessionIdx].ID, name)
		}
		a.sessionRenameInput, cmd = a.sessionRenameInput.Update(msg)
		return a, cmd
	}

	if a.sessionFilterMode {
		switch msg.String() {
		case "esc":
			a.sessionFilterMode = false
			a.sessionFilterInput.SetValue("")
			a.filteredSessionList = nil
			return a, nil
		case "enter":
			a.sessionFilterMode = false
			return a, nil
		}
		a.sessionFilterInput, cmd = a.sessionFilterInput.Update(msg)
		a.applySessionFilter()
		return a, cmd
	}

	sessions := a.visibleSessions()
	switch msg.String() {
	case "esc", "q", "ctrl+s":
		a.showSessionManager = false
		return a, nil
	case "j", "down":
		if a.selectedSessionIdx < len(sessions)-1 {
			a.selectedSessionIdx++
		}
		return a, nil
	case "k", "up":
		if a.selectedSessionIdx > 0 {
			a.selectedSessionIdx--
		}
		return a, nil
	case "/":
		a.sessionFilterMode = true
		a.sessionFilterInput.Focus()
		return a, nil
	case "r":
		if a.selectedSessionIdx < len(sessions) {
			a.sessionRenameMode = true
			a.sessionRenameInput.SetValue(sessions[a.selectedSessionIdx].Name)
			a.sessionRenameInput.Focus()
		}
		return a, nil
	case "d":
		if a.selectedSessionIdx < len(sessions) {
			return a, a.dataModel.DeleteSession(sessions[a.selectedSessionIdx].ID)
		}
		return a, nil
	case "enter":
		if a.dataModel.State.Busy() {
			return a, nil
		}
		if a.selectedSessionIdx < len(sessions) {
			return a, a.dataModel.LoadSession(sessions[a.selectedSessionIdx].ID)
		}
		return a, nil
	}
	return a, nil
}

func (a AppView) renderSessionManager() string {
	sessions := a.visibleSessions()

	var rows []string
	rows = append(rows, TitleStyle.Render("Sesiones"))
	rows = append(rows, "")

	if a.sessionFilterMode || a.sessionFilterInput.Value() != "" {
		rows = append(rows, a.sessionFilterInput.View())
		rows = append(rows, "")
	}
	if a.sessionRenameMode {
		rows = append(rows, a.sessionRenameInput.View())
		rows = append(rows, "")
	}

	if len(sessions) == 0 {
		rows = append(rows, DimStyle.Render("No hay sesiones guardadas."))
	}

	for i, s := range sessions {
		name := runewidth.Truncate(s.Name, 40, "...")
		line := fmt.Sprintf("%s  %s  %s",
			padRight(name, 42),
			padRight(fmt.Sprintf("%d mensajes", s.MessageCount), 14),
			DimStyle.Render(s.UpdatedAt.Format("2006-01-02 15:04")),
		)
		if i == a.selectedSessionIdx {
			line = SelectedStyle.Render("> ") + SelectedStyle.Render(line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}

	rows = append(rows, "")
	rows = append(rows, FormatFooter(
		"j/k", "Navegar", "Enter", "Abrir", "/", "Filtrar",
		"r", "Renombrar", "d", "Borrar", "Esc", "Cerrar",
	))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		strings.Join(rows, "\n"))
}

func padRight(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

func (a AppView) handleGlobalSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "esc":
		a.showGlobalSearch = false
		return a, nil
	case "down", "ctrl+j":
		if a.selectedSearchIdx < len(a.globalSearchResults)-1 {
			a.selectedSearchIdx++
		}
		return a, nil
	case "up", "ctrl+k":
		if a.selectedSearchIdx > 0 {
			a.selectedSearchIdx--
		}
		return a, nil
	case "enter":
		if a.dataModel.State.Busy() {
			return a, nil
		}
		if a.selectedSearchIdx < len(a.globalSearchResults) {
			match := a.globalSearchResults[a.selectedSearchIdx]
			return a, a.dataModel.LoadSession(match.SessionID)
		}
		return a, nil
	}

	a.globalSearchInput, cmd = a.globalSearchInput.Update(msg)
	if a.dataModel.Search != nil {
		results, err := a.dataModel.Search.SearchAllSessions(a.globalSearchInput.Value())
		if err == nil {
			a.globalSearchResults = results
			if a.selectedSearchIdx >= len(results) {
				a.selectedSearchIdx = max(len(results)-1, 0)
			}
		}
	}
	return a, cmd
}

func (a AppView) renderGlobalSearch() string {
	var rows []string
	rows = append(rows, TitleStyle.Render("Buscar en todas las sesiones"))
	rows = append(rows, "")
	rows = append(rows, a.globalSearchInput.View())
	rows = append(rows, "")

	if a.globalSearchInput.Value() != "" && len(a.globalSearchResults) == 0 {
		rows = append(rows, DimStyle.Render("Sin resultados."))
	}

	limit := min(len(a.globalSearchResults), a.height-10)
	for i := 0; i < limit; i++ {
		match := a.globalSearchResults[i]
		preview := runewidth.Truncate(match.Preview, a.width-30, "...")
		line := fmt.Sprintf("%s  %s", padRight(match.SessionName, 24), preview)
		if i == a.selectedSearchIdx {
			line = SelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}

	rows = append(rows, "")
	rows = append(rows, FormatFooter("↑/↓", "Navegar", "Enter", "Abrir sesión", "Esc", "Cerrar"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		strings.Join(rows, "\n"))
}
