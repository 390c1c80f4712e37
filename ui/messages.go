package ui

import (
	"asistente/model"
)

// Message type aliases for backward compatibility
type Message = model.Message

// Message type aliases - these are defined in the model package
type streamThoughtMsg = model.StreamThoughtMsg
type streamTextMsg = model.StreamTextMsg
type toolCallMsg = model.ToolCallMsg
type mapUpdatedMsg = model.MapUpdatedMsg
type turnDoneMsg = model.TurnDoneMsg
type turnErrorMsg = model.TurnErrorMsg
type markdownRenderedMsg = model.MarkdownRenderedMsg
type sessionsListMsg = model.SessionsListMsg
type sessionLoadedMsg = model.SessionLoadedMsg
type sessionSavedMsg = model.SessionSavedMsg
type sessionDeletedMsg = model.SessionDeletedMsg
type historyListMsg = model.HistoryListMsg
type historyUpdatedMsg = model.HistoryUpdatedMsg
type inventoryListMsg = model.InventoryListMsg
