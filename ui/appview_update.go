package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	appmodel "asistente/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Spinner ticks first so the status bar stays animated while busy
	if a.dataModel.State.Busy() {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Title, separator, textarea and status bar surround the viewport
		a.viewport.Width = a.chatWidth()
		a.viewport.Height = a.height - 6
		a.textarea.SetWidth(a.width)
		a.ready = true

		// Re-render the transcript at the new width
		for i, m := range a.dataModel.Messages {
			if m.Role == appmodel.RoleAssistant && m.Content != "" {
				cmds = append(cmds, a.renderMarkdownAsync(i, m.Content))
			}
		}
		a.updateViewportContent(true)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		return a.handleKey(msg, cmds)

	case appmodel.StreamThoughtMsg, appmodel.StreamTextMsg, appmodel.ToolCallMsg,
		appmodel.MapUpdatedMsg, appmodel.TurnDoneMsg, appmodel.TurnErrorMsg:
		return a.handleTurnMsg(msg, cmds)

	case markdownRenderedMsg:
		if msg.Index >= 0 && msg.Index < len(a.dataModel.Messages) {
			a.dataModel.Messages[msg.Index].Rendered = msg.Rendered
			a.updateViewportContent(true)
		}
		return a, tea.Batch(cmds...)

	case sessionsListMsg:
		if msg.Err == nil {
			a.sessionList = msg.Sessions
			if a.selectedSessionIdx >= len(a.sessionList) {
				a.selectedSessionIdx = max(len(a.sessionList)-1, 0)
			}
		}
		return a, tea.Batch(cmds...)

	case sessionLoadedMsg:
		if msg.Err == nil && msg.Session != nil {
			a.dataModel.ApplySession(msg.Session)
			a.showSessionManager = false
			a.showGlobalSearch = false
			for i, m := range a.dataModel.Messages {
				if m.Role == appmodel.RoleAssistant && m.Rendered == "" {
					cmds = append(cmds, a.renderMarkdownAsync(i, m.Content))
				} else if a.dataModel.Messages[i].Rendered == "" {
					a.dataModel.Messages[i].Rendered = m.Content
				}
			}
			a.updateViewportContent(true)
		}
		return a, tea.Batch(cmds...)

	case sessionSavedMsg:
		if msg.Err == nil {
			a.dataModel.SessionDirty = false
		}
		return a, tea.Batch(cmds...)

	case sessionDeletedMsg:
		return a, tea.Batch(cmds...)

	case historyListMsg:
		if msg.Err != nil {
			a.historyError = msg.Err.Error()
		} else {
			a.historyList = msg.Requests
			a.applyHistoryFilter()
		}
		return a, tea.Batch(cmds...)

	case historyUpdatedMsg:
		if msg.Err != nil {
			a.historyError = msg.Err.Error()
			return a, tea.Batch(cmds...)
		}
		a.historyError = ""
		cmds = append(cmds, a.dataModel.FetchHistory())
		return a, tea.Batch(cmds...)

	case inventoryListMsg:
		if msg.Err == nil {
			a.inventoryList = msg.Items
			if a.selectedInventoryIdx >= len(a.inventoryList) {
				a.selectedInventoryIdx = max(len(a.inventoryList)-1, 0)
			}
		}
		return a, tea.Batch(cmds...)
	}

	// Everything else flows to the focused component
	a.textarea, cmd = a.textarea.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a AppView) handleKey(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Modal screens swallow keys first
	switch {
	case a.showHelp:
		if msg.String() == "esc" || msg.String() == "ctrl+b" {
			a.showHelp = false
		}
		return a, nil
	case a.showSessionManager:
		return a.handleSessionManagerKey(msg)
	case a.showGlobalSearch:
		return a.handleGlobalSearchKey(msg)
	case a.showHistory:
		return a.handleHistoryKey(msg)
	case a.showInventory:
		return a.handleInventoryKey(msg)
	case a.locationInputMode:
		return a.handleLocationInputKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "ctrl+b":
		a.showHelp = true
		return a, nil

	case "ctrl+n":
		if a.dataModel.State.Busy() {
			return a, nil
		}
		a.dataModel.NewSession()
		a.reasoning = ""
		a.updateViewportContent(true)
		return a, nil

	case "ctrl+s":
		a.showSessionManager = true
		a.sessionFilterMode = false
		a.sessionRenameMode = false
		a.sessionFilterInput.SetValue("")
		a.filteredSessionList = nil
		return a, a.dataModel.FetchSessionList()

	case "ctrl+f":
		a.showGlobalSearch = true
		a.globalSearchInput.SetValue("")
		a.globalSearchInput.Focus()
		a.globalSearchResults = nil
		a.selectedSearchIdx = 0
		return a, nil

	case "ctrl+h":
		a.showHistory = true
		a.historyFilterMode = false
		a.historyPriceMode = false
		a.historyFilterInput.SetValue("")
		a.historyError = ""
		return a, a.dataModel.FetchHistory()

	case "ctrl+p":
		a.showInventory = true
		a.inventoryAddMode = false
		a.inventoryError = ""
		return a, a.dataModel.FetchInventory()

	case "ctrl+t":
		a.showMap = !a.showMap
		a.viewport.Width = a.chatWidth()
		a.updateViewportContent(false)
		return a, nil

	case "ctrl+l":
		a.locationInputMode = true
		a.locationInput.SetValue("")
		a.locationInput.Focus()
		a.textarea.Blur()
		return a, nil

	case "ctrl+y":
		if text := a.lastAssistantReply(); text != "" {
			if err := clipboard.WriteAll(text); err == nil {
				a.statusFlash = "Respuesta copiada al portapapeles"
			}
		}
		return a, nil

	case "enter":
		return a.handleSend(cmds)
	}

	a.statusFlash = ""
	a.textarea, cmd = a.textarea.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// handleSend starts a turn. Sends while a turn is in flight are
// dropped without appending anything.
func (a AppView) handleSend(cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if !a.dataModel.State.CanSend() {
		return a, tea.Batch(cmds...)
	}
	input := strings.TrimSpace(a.textarea.Value())
	if input == "" {
		return a, tea.Batch(cmds...)
	}

	a.textarea.Reset()
	a.statusFlash = ""
	a.reasoning = ""

	userMsg := appmodel.NewMessage(appmodel.RoleUser, input)
	userMsg.Rendered = input
	a.dataModel.AppendMessage(userMsg)
	a.dataModel.SetState(appmodel.StateGenerating)
	a.updateViewportContent(true)

	cmds = append(cmds, a.dataModel.StartTurn(), a.loadingSpinner.Tick)
	return a, tea.Batch(cmds...)
}

func (a AppView) handleLocationInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.locationInputMode = false
		a.locationInput.Blur()
		a.textarea.Focus()
		return a, nil
	case "enter":
		location := strings.TrimSpace(a.locationInput.Value())
		a.locationInputMode = false
		a.locationInput.Blur()
		a.textarea.Focus()
		if location == "" || !a.dataModel.State.CanSend() {
			return a, nil
		}
		a.dataModel.LocationSelectArmed = false
		a.textarea.SetValue("Mi ubicación es: " + location)
		return a.handleSend(nil)
	}
	var cmd tea.Cmd
	a.locationInput, cmd = a.locationInput.Update(msg)
	return a, cmd
}

func (a AppView) lastAssistantReply() string {
	for i := len(a.dataModel.Messages) - 1; i >= 0; i-- {
		if a.dataModel.Messages[i].Role == appmodel.RoleAssistant {
			return a.dataModel.Messages[i].Content
		}
	}
	return ""
}
