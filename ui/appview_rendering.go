package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/mattn/go-runewidth"

	"asistente/config"
	appmodel "asistente/model"
)

var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
)

const mapPanelMinChat = 50

func (a AppView) chatWidth() int {
	if a.showMap {
		if w := a.mapPanelWidth(); w > 0 {
			return a.width - w
		}
	}
	return a.width
}

// mapPanelWidth is zero when the terminal is too narrow to split.
func (a AppView) mapPanelWidth() int {
	if a.width < mapPanelMinChat+34 {
		return 0
	}
	return 32
}

func (a *AppView) updateViewportContent(gotoBottom bool) {
	if len(a.dataModel.Messages) == 0 && a.reasoning == "" {
		a.viewport.SetContent("Sin mensajes todavía. ¡Escribe para empezar!")
		return
	}

	var content strings.Builder

	for _, msg := range a.dataModel.Messages {
		timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))

		var roleStyle = DimStyle
		var roleName string
		switch msg.Role {
		case appmodel.RoleUser:
			roleStyle = UserStyle
			roleName = "Tú"
		case appmodel.RoleAssistant:
			roleStyle = AssistantStyle
			roleName = "Asistente"
		case appmodel.RoleError:
			roleStyle = ErrorStyle
			roleName = "Error"
		default:
			roleStyle = DimStyle
			roleName = "Sistema"
		}

		role := roleStyle.Render(roleName)

		rendered := msg.Rendered
		if rendered == "" {
			rendered = msg.Content
		}

		if msg.Role == appmodel.RoleUser {
			content.WriteString(formatUserMessage(timestamp, role, rendered))
			continue
		}

		content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, role, rendered))
	}

	// Reasoning for the in-flight turn, dimmed under the transcript
	if a.reasoning != "" && a.dataModel.State.Busy() {
		content.WriteString(ThoughtStyle.Render(wrapPlain(a.reasoning, a.chatWidth()-4)))
		content.WriteString("\n")
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func formatUserMessage(timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))
	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}
	result.WriteString("\n")
	return result.String()
}

func wrapPlain(s string, width int) string {
	if width < 10 {
		return s
	}
	var out strings.Builder
	line := 0
	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		if line > 0 && line+w+1 > width {
			out.WriteString("\n")
			line = 0
		} else if line > 0 {
			out.WriteString(" ")
			line++
		}
		out.WriteString(word)
		line += w
	}
	return out.String()
}

// renderMapPanel draws the side panel from the controller state.
func (a AppView) renderMapPanel() string {
	width := a.mapPanelWidth()
	if width <= 0 || a.dataModel.Map == nil {
		return ""
	}
	inner := width - 4

	var lines []string
	lines = append(lines, TitleStyle.Render("Mapa"))

	state := a.dataModel.Map.State()
	if state.Label == "" {
		lines = append(lines, DimStyle.Render("Sin ubicación"))
	} else {
		lines = append(lines, wrapPlain(state.Label, inner))
		lines = append(lines, DimStyle.Render(fmt.Sprintf("%.5f, %.5f · z%d", state.Lat, state.Lng, state.Zoom)))
	}

	if r := state.Route; r != nil {
		lines = append(lines, "")
		lines = append(lines, TitleStyle.Render("Ruta"))
		lines = append(lines, wrapPlain(r.Origin+" → "+r.Destination, inner))
		detail := r.Distance
		if r.Duration != "" {
			detail += " · " + r.Duration
		}
		lines = append(lines, DimStyle.Render(detail))
		if r.Via != "" {
			lines = append(lines, DimStyle.Render("vía "+r.Via))
		}
	}

	if !state.UpdatedAt.IsZero() {
		lines = append(lines, "")
		lines = append(lines, DimStyle.Render(state.UpdatedAt.Format("15:04:05")))
	}

	panel := MapPanelStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
	return panel
}

func postProcessMarkdown(rendered string) string {
	rendered = fixInlineCode(rendered)
	rendered = fixMarkdownLinks(rendered)
	return rendered
}

func preprocessLinks(content string) string {
	// Strip markdown link syntax so links show as plain URLs and the
	// terminal emulator handles clickability
	return mdLinkRegex.ReplaceAllString(content, "$2")
}

func fixInlineCode(s string) string {
	// Blue background inline code reads badly on transparent terminals
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func fixMarkdownLinks(s string) string {
	redColor := "\x1b[31m"
	reset := "\x1b[0m"

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		// Skip code blocks (they carry the ┃ prefix from the renderer)
		if !strings.Contains(line, "┃") {
			lines[i] = urlRegex.ReplaceAllString(line, redColor+"$1"+reset)
		}
	}
	return strings.Join(lines, "\n")
}

func (a AppView) renderMarkdownAsync(messageIndex int, content string) tea.Cmd {
	width := a.chatWidth()
	return func() tea.Msg {
		startTime := time.Now()

		content = preprocessLinks(content)

		// Autolink stays disabled so URLs remain plain text
		defaultExt := markdown.Extensions()
		customExt := defaultExt &^ parser.Autolink
		p := parser.NewWithExtensions(customExt)
		r := markdown.NewRenderer(width-4, 0)
		doc := p.Parse([]byte(content))
		rendered := gomarkdown.Render(doc, r)

		processed := postProcessMarkdown(string(rendered))

		if config.DebugLog != nil {
			config.DebugLog.Printf("markdown rendered for message %d in %v", messageIndex, time.Since(startTime))
		}

		return markdownRenderedMsg{
			Index:    messageIndex,
			Rendered: processed,
		}
	}
}
