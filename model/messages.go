package model

import (
	"asistente/storage"
)

// Messages emitted by the turn goroutine and consumed by the UI's
// update loop. Fragment messages carry the whole buffer so far, so the
// UI can re-render without tracking offsets.

// StreamThoughtMsg updates the reasoning panel.
type StreamThoughtMsg struct {
	Total string
}

// StreamTextMsg updates the in-progress assistant reply.
type StreamTextMsg struct {
	Total string
}

// ToolCallMsg announces a tool invocation about to be forwarded.
// Explanation is ready-to-append transcript text.
type ToolCallMsg struct {
	Call        ToolCall
	Explanation string
}

// MapUpdatedMsg signals that the map panel state may have changed.
type MapUpdatedMsg struct{}

// TurnDoneMsg closes out a turn. FinalText has confirmation blocks
// already removed.
type TurnDoneMsg struct {
	FinalText         string
	ToolCallsMade     bool
	Committed         *storage.ServiceRequest
	ArmLocationSelect bool
}

// TurnErrorMsg closes out a turn that failed.
type TurnErrorMsg struct {
	Err error
}

// MarkdownRenderedMsg delivers an async markdown render for the
// message at Index.
type MarkdownRenderedMsg struct {
	Index    int
	Rendered string
}

// SessionSavedMsg and friends report session storage outcomes.
type SessionSavedMsg struct {
	Err error
}

type SessionLoadedMsg struct {
	Session *storage.Session
	Err     error
}

type SessionsListMsg struct {
	Sessions []storage.SessionMetadata
	Err      error
}

type SessionDeletedMsg struct {
	ID  string
	Err error
}

// HistoryListMsg delivers the persisted service requests.
type HistoryListMsg struct {
	Requests []storage.ServiceRequest
	Err      error
}

// HistoryUpdatedMsg reports a status advance or delete.
type HistoryUpdatedMsg struct {
	Err error
}

// InventoryListMsg delivers the product and service catalog.
type InventoryListMsg struct {
	Items []storage.InventoryItem
	Err   error
}
