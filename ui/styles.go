package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI palette colors so everything follows the user's terminal theme.
// Styles never set a background, keeping the terminal's own transparent.
var (
	dimColor       = lipgloss.Color("7")
	accentColor    = lipgloss.Color("12")
	successColor   = lipgloss.Color("10")
	warningColor   = lipgloss.Color("11")
	dangerColor    = lipgloss.Color("9")
	highlightColor = lipgloss.Color("13")
)

var (
	UserStyle      = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	AssistantStyle = lipgloss.NewStyle().Foreground(accentColor)
	DimStyle       = lipgloss.NewStyle().Foreground(dimColor)
	ErrorStyle     = lipgloss.NewStyle().Foreground(dangerColor)
	TitleStyle     = lipgloss.NewStyle().Bold(true)
	StatusStyle    = lipgloss.NewStyle().Foreground(dimColor)
	SelectedStyle  = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	HelpStyle      = lipgloss.NewStyle().Foreground(dimColor)

	// ThoughtStyle renders streamed reasoning while the model thinks.
	ThoughtStyle = lipgloss.NewStyle().Foreground(dimColor).Italic(true)

	// MapPanelStyle frames the side map panel.
	MapPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor).
			Padding(0, 1)
)

// FormatFooter joins key/description pairs into a footer line, with the
// descriptions in bold accent color.
//
//	FormatFooter("j/k", "Navegar", "Enter", "Elegir", "Esc", "Cerrar")
func FormatFooter(parts ...string) string {
	descStyle := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	var out []string
	for i := 0; i+1 < len(parts); i += 2 {
		out = append(out, parts[i]+" "+descStyle.Render(parts[i+1]))
	}
	return strings.Join(out, "  ")
}
