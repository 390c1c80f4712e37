package ui

import (
	"github.com/charmbracelet/lipgloss"
)

func (a AppView) renderHelpModal(width, height int) string {
	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("Asistente - Atajos de teclado")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Acciones globales"),
		"• Ctrl+N        Nueva sesión",
		"• Ctrl+S        Sesiones guardadas",
		"• Ctrl+F        Buscar en todo",
		"• Ctrl+H        Historial de servicios",
		"• Ctrl+P        Productos y servicios",
		"• Ctrl+T        Mostrar/ocultar mapa",
		"• Ctrl+B        Esta ayuda",
		"• Ctrl+C        Salir",
	)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Conversación"),
		"• Enter         Enviar mensaje",
		"• Alt+Enter     Nueva línea",
		"• Ctrl+L        Indicar ubicación",
		"• Ctrl+Y        Copiar última respuesta",
		"• PgUp/PgDn     Desplazar historial",
	)

	tips := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Notas"),
		"• El bloque de confirmación nunca se muestra",
		"• El mapa sigue las consultas del asistente",
	)

	column1 := lipgloss.JoinVertical(lipgloss.Left, globalActions, "", tips)
	column2 := lipgloss.JoinVertical(lipgloss.Left, chatActions)

	columnStyle := lipgloss.NewStyle().Width(48).PaddingLeft(2)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(column1),
		"    ",
		columnStyle.Render(column2),
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render("Presiona Ctrl+B o Esc para cerrar")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}
