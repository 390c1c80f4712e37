package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrorModal is a standalone program for fatal startup errors. It runs
// instead of the main UI when wiring fails (missing API key, unreadable
// data directory) and exits on Enter.
type ErrorModal struct {
	title   string
	message string
	width   int
	height  int
}

func NewErrorModal(title, message string) ErrorModal {
	return ErrorModal{title: title, message: message}
}

func (m ErrorModal) Init() tea.Cmd {
	return nil
}

func (m ErrorModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ErrorModal) View() string {
	if m.width < 20 || m.height < 8 {
		return "Terminal demasiado pequeña"
	}

	boxWidth := min(60, m.width-6)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(dangerColor).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(m.title)

	body := lipgloss.NewStyle().
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(m.message)

	footer := DimStyle.
		Width(boxWidth).
		Align(lipgloss.Center).
		Render("Presiona Enter para salir")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dangerColor).
		Padding(1, 2).
		Render(strings.Join([]string{title, "", body, "", footer}, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
