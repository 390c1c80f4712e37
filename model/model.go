package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"asistente/config"
	"asistente/mapview"
	"asistente/storage"
)

// Speaker voices the assistant's redacted reply. Implementations must
// be safe to call from the turn goroutine.
type Speaker interface {
	Speak(text string)
}

// Transport forwards tool calls to the map service and exposes its
// declared tools. Satisfied by *mcp.Bridge; tests substitute a
// recorder.
type Transport interface {
	Tools() []mcptypes.Tool
	Call(ctx context.Context, name string, args map[string]any) (text string, isError bool, err error)
}

// Model holds the application state shared between the UI and the turn
// orchestration goroutine. The goroutine communicates exclusively over
// turnCh; everything else is touched only from the update loop.
type Model struct {
	Config   *config.Config
	Provider Provider
	Bridge   Transport
	Map      mapview.Controller
	Speaker  Speaker

	Sessions  *storage.SessionStorage
	History   *storage.HistoryStorage
	Inventory *storage.InventoryStorage
	Search    *storage.SearchIndex

	Messages       []Message
	CurrentSession *storage.Session
	SessionDirty   bool

	State               ChatState
	LocationSelectArmed bool

	// MaxToolRounds bounds the invoke-and-continue loop per turn.
	MaxToolRounds int

	turnCh chan tea.Msg
}

const defaultMaxToolRounds = 8

func NewModel(cfg *config.Config) *Model {
	return &Model{
		Config:        cfg,
		State:         StateIdle,
		MaxToolRounds: defaultMaxToolRounds,
	}
}

// AppendMessage adds a transcript entry and marks the session dirty.
func (m *Model) AppendMessage(msg Message) {
	m.Messages = append(m.Messages, msg)
	m.SessionDirty = true
}

// SetState records a chat state transition.
func (m *Model) SetState(s ChatState) {
	if s == m.State {
		return
	}
	if config.DebugLog != nil {
		config.DebugLog.Printf("chat state: %s -> %s", m.State, s)
	}
	m.State = s
}

// AwaitTurn returns a command that blocks on the next message from the
// turn goroutine. The UI re-issues it after every turn message until
// TurnDoneMsg or TurnErrorMsg arrives.
func (m *Model) AwaitTurn() tea.Cmd {
	ch := m.turnCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
