package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"asistente/confirm"
	appmodel "asistente/model"
)

// handleTurnMsg reacts to messages from the turn goroutine. Every
// non-terminal message re-arms AwaitTurn so the stream keeps flowing.
func (a AppView) handleTurnMsg(msg tea.Msg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case streamThoughtMsg:
		a.dataModel.SetState(appmodel.StateThinking)
		a.reasoning = msg.Total
		a.updateViewportContent(true)
		cmds = append(cmds, a.dataModel.AwaitTurn())

	case streamTextMsg:
		a.dataModel.SetState(appmodel.StateExecuting)
		a.setComposingReply(msg.Total)
		a.updateViewportContent(true)
		cmds = append(cmds, a.dataModel.AwaitTurn())

	case toolCallMsg:
		a.dataModel.SetState(appmodel.StateExecuting)
		note := appmodel.NewMessage(appmodel.RoleSystem, msg.Explanation)
		note.Rendered = DimStyle.Render(msg.Explanation)
		a.insertBeforeComposing(note)
		a.updateViewportContent(true)
		cmds = append(cmds, a.dataModel.AwaitTurn())

	case mapUpdatedMsg:
		// Map panel reads the controller state directly on render
		cmds = append(cmds, a.dataModel.AwaitTurn())

	case turnDoneMsg:
		a.finishTurn(msg, &cmds)

	case turnErrorMsg:
		a.dropComposingReply()
		a.reasoning = ""
		errMsg := appmodel.NewMessage(appmodel.RoleError, msg.Err.Error())
		errMsg.Rendered = ErrorStyle.Render("⚠ " + msg.Err.Error())
		a.dataModel.AppendMessage(errMsg)
		a.dataModel.SetState(appmodel.StateIdle)
		a.updateViewportContent(true)
	}

	return a, tea.Batch(cmds...)
}

func (a *AppView) finishTurn(msg turnDoneMsg, cmds *[]tea.Cmd) {
	a.reasoning = ""

	final := msg.FinalText
	if final == "" {
		a.dropComposingReply()
		if !msg.ToolCallsMade {
			// The model produced nothing visible; leave a marker so the
			// turn does not vanish silently.
			note := appmodel.NewMessage(appmodel.RoleSystem, "✅ Listo.")
			note.Rendered = DimStyle.Render("✅ Listo.")
			a.dataModel.AppendMessage(note)
		}
	} else {
		idx := a.setComposingReply(final)
		*cmds = append(*cmds, a.renderMarkdownAsync(idx, final))
	}

	if msg.Committed != nil {
		summary := "📋 Servicio registrado: " + msg.Committed.Name + " · " + msg.Committed.Details
		note := appmodel.NewMessage(appmodel.RoleSystem, summary)
		note.Rendered = DimStyle.Render(summary)
		a.dataModel.AppendMessage(note)
	}

	a.streamingReply = false
	a.dataModel.LocationSelectArmed = msg.ArmLocationSelect
	a.dataModel.SetState(appmodel.StateIdle)
	a.updateViewportContent(true)

	if saveCmd := a.dataModel.AutoSaveSession(); saveCmd != nil {
		*cmds = append(*cmds, saveCmd)
	}
}

// setComposingReply updates the in-flight assistant message, creating
// it on the first text fragment, and returns its index. Closed
// confirmation blocks are stripped before anything hits the screen;
// an open block is still visible until its closing tag arrives.
func (a *AppView) setComposingReply(total string) int {
	display := confirm.Redact(total)

	msgs := a.dataModel.Messages
	if len(msgs) > 0 && msgs[len(msgs)-1].Role == appmodel.RoleAssistant && a.streamingReply {
		idx := len(msgs) - 1
		a.dataModel.Messages[idx].Content = total
		a.dataModel.Messages[idx].Rendered = display
		return idx
	}

	reply := appmodel.NewMessage(appmodel.RoleAssistant, total)
	reply.Rendered = display
	a.dataModel.AppendMessage(reply)
	a.streamingReply = true
	return len(a.dataModel.Messages) - 1
}

// insertBeforeComposing places a message before the reply being
// streamed so tool notes read in execution order.
func (a *AppView) insertBeforeComposing(msg appmodel.Message) {
	msgs := a.dataModel.Messages
	if a.streamingReply && len(msgs) > 0 && msgs[len(msgs)-1].Role == appmodel.RoleAssistant {
		composing := msgs[len(msgs)-1]
		a.dataModel.Messages = append(msgs[:len(msgs)-1], msg, composing)
		a.dataModel.SessionDirty = true
		return
	}
	a.dataModel.AppendMessage(msg)
}

func (a *AppView) dropComposingReply() {
	if !a.streamingReply {
		return
	}
	msgs := a.dataModel.Messages
	if len(msgs) > 0 && msgs[len(msgs)-1].Role == appmodel.RoleAssistant {
		a.dataModel.Messages = msgs[:len(msgs)-1]
	}
	a.streamingReply = false
}
