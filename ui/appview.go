package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appmodel "asistente/model"
	"asistente/storage"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	// Streaming UI state. reasoning holds the dimmed thought text for
	// the in-flight turn only; it is discarded when the turn closes.
	reasoning      string
	streamingReply bool
	loadingSpinner spinner.Model

	showHelp    bool
	showMap     bool
	statusFlash string

	// Location capture after the assistant asks for one
	locationInputMode bool
	locationInput     textinput.Model

	// Session manager
	showSessionManager  bool
	sessionList         []storage.SessionMetadata
	selectedSessionIdx  int
	sessionFilterMode   bool
	sessionFilterInput  textinput.Model
	filteredSessionList []storage.SessionMetadata
	sessionRenameMode   bool
	sessionRenameInput  textinput.Model

	// Search across all sessions
	showGlobalSearch    bool
	globalSearchInput   textinput.Model
	globalSearchResults []storage.SessionMessageMatch
	selectedSearchIdx   int

	// Service history browser
	showHistory         bool
	historyList         []storage.ServiceRequest
	selectedHistoryIdx  int
	historyFilterMode   bool
	historyFilterInput  textinput.Model
	filteredHistoryList []storage.ServiceRequest
	historyPriceMode    bool
	historyPriceInput   textinput.Model
	historyError        string

	// Inventory browser
	showInventory        bool
	inventoryList        []storage.InventoryItem
	selectedInventoryIdx int
	inventoryAddMode     bool
	inventoryAddStage    int
	inventoryAddInput    textinput.Model
	inventoryDraft       storage.InventoryItem
	inventoryError       string
}

func NewAppView(dataModel *appmodel.Model) AppView {
	ta := textarea.New()
	ta.Placeholder = "Escribe tu mensaje..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Alt+Enter inserts a newline; Enter alone sends (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	sessionFilterInput := textinput.New()
	sessionFilterInput.Prompt = "Filtrar: "
	sessionFilterInput.CharLimit = 64

	sessionRenameInput := textinput.New()
	sessionRenameInput.Prompt = "Nombre: "
	sessionRenameInput.CharLimit = 64

	globalSearchInput := textinput.New()
	globalSearchInput.Prompt = "Buscar en todo: "
	globalSearchInput.CharLimit = 100

	historyFilterInput := textinput.New()
	historyFilterInput.Prompt = "Filtrar: "
	historyFilterInput.CharLimit = 64

	historyPriceInput := textinput.New()
	historyPriceInput.Prompt = "Precio final: $"
	historyPriceInput.CharLimit = 12

	locationInput := textinput.New()
	locationInput.Prompt = "Ubicación: "
	locationInput.CharLimit = 120

	inventoryAddInput := textinput.New()
	inventoryAddInput.CharLimit = 120

	return AppView{
		dataModel:          dataModel,
		textarea:           ta,
		viewport:           vp,
		loadingSpinner:     sp,
		showMap:            true,
		sessionFilterInput: sessionFilterInput,
		sessionRenameInput: sessionRenameInput,
		globalSearchInput:  globalSearchInput,
		historyFilterInput: historyFilterInput,
		historyPriceInput:  historyPriceInput,
		locationInput:      locationInput,
		inventoryAddInput:  inventoryAddInput,
	}
}

func (a AppView) Init() tea.Cmd {
	return textarea.Blink
}

func (a AppView) View() string {
	if !a.ready {
		return "Cargando asistente..."
	}

	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}
	if a.showSessionManager {
		return a.renderSessionManager()
	}
	if a.showGlobalSearch {
		return a.renderGlobalSearch()
	}
	if a.showHistory {
		return a.renderHistoryBrowser()
	}
	if a.showInventory {
		return a.renderInventoryBrowser()
	}

	title := TitleStyle.Render("Asistente") + DimStyle.Render("  "+a.sessionTitle())

	chat := a.viewport.View()
	if a.showMap && a.mapPanelWidth() > 0 {
		chat = lipgloss.JoinHorizontal(lipgloss.Top, chat, a.renderMapPanel())
	}

	input := a.textarea.View()
	if a.locationInputMode {
		input = a.locationInput.View()
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(a.width, 1)))
	b.WriteString("\n")
	b.WriteString(chat)
	b.WriteString("\n")
	b.WriteString(input)
	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())
	return b.String()
}

func (a AppView) sessionTitle() string {
	if a.dataModel.CurrentSession != nil && a.dataModel.CurrentSession.Name != "" {
		return a.dataModel.CurrentSession.Name
	}
	return "Nueva sesión"
}

func (a AppView) renderStatusBar() string {
	if a.statusFlash != "" {
		return StatusStyle.Render(a.statusFlash)
	}
	if a.dataModel.State.Busy() {
		return StatusStyle.Render(a.loadingSpinner.View() + " " + a.dataModel.State.StatusLabel())
	}
	hint := "Enter Enviar  Ctrl+N Nueva  Ctrl+S Sesiones  Ctrl+H Servicios  Ctrl+B Ayuda"
	if a.dataModel.LocationSelectArmed {
		hint = "Ctrl+L Indicar ubicación  " + hint
	}
	return HelpStyle.Render(hint)
}
