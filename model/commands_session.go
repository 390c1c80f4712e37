package model

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"asistente/storage"
)

// FetchSessionList retrieves the list of saved sessions
func (m *Model) FetchSessionList() tea.Cmd {
	if m.Sessions == nil {
		return nil
	}
	store := m.Sessions
	return func() tea.Msg {
		sessions, err := store.List()
		return SessionsListMsg{Sessions: sessions, Err: err}
	}
}

// LoadSession loads a session by ID
func (m *Model) LoadSession(sessionID string) tea.Cmd {
	if m.Sessions == nil {
		return nil
	}

	if m.CurrentSession != nil && m.CurrentSession.ID == sessionID {
		// Already loaded, just close the session manager.
		session := m.CurrentSession
		return func() tea.Msg {
			return SessionLoadedMsg{Session: session}
		}
	}

	store := m.Sessions
	return func() tea.Msg {
		session, err := store.Load(sessionID)
		return SessionLoadedMsg{Session: session, Err: err}
	}
}

// ApplySession replaces the transcript with a loaded session's
// messages. Must be called from the update loop while idle.
func (m *Model) ApplySession(session *storage.Session) {
	m.CurrentSession = session
	m.Messages = make([]Message, 0, len(session.Messages))
	for _, msg := range session.Messages {
		m.Messages = append(m.Messages, Message{
			Role:      msg.Role,
			Content:   msg.Content,
			Rendered:  msg.Rendered,
			Timestamp: msg.Timestamp,
		})
	}
	m.SessionDirty = false
	m.LocationSelectArmed = false
}

// NewSession starts a fresh conversation without touching storage.
func (m *Model) NewSession() {
	m.CurrentSession = &storage.Session{
		Name:      "Nueva sesión",
		Model:     m.modelName(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.Messages = nil
	m.SessionDirty = false
	m.LocationSelectArmed = false
}

// SaveCurrentSession saves the current session to storage
func (m *Model) SaveCurrentSession() tea.Cmd {
	if m.Sessions == nil || m.CurrentSession == nil {
		return nil
	}

	// Only the durable transcript goes to disk. Error and tool
	// explanation entries are ephemeral display state.
	var sessionMessages []storage.Message
	for _, msg := range m.Messages {
		if msg.Role == RoleUser || msg.Role == RoleAssistant {
			sessionMessages = append(sessionMessages, storage.Message{
				Role:      msg.Role,
				Content:   msg.Content,
				Rendered:  msg.Rendered,
				Timestamp: msg.Timestamp,
			})
		}
	}

	m.CurrentSession.Messages = sessionMessages
	m.CurrentSession.UpdatedAt = time.Now()
	m.CurrentSession.Model = m.modelName()

	session := m.CurrentSession
	store := m.Sessions

	return func() tea.Msg {
		err := store.Save(session)
		if err == nil {
			store.SaveCurrentSessionID(session.ID)
		}
		return SessionSavedMsg{Err: err}
	}
}

// AutoSaveSession saves the session, naming it from the first user
// message when it is still unnamed.
func (m *Model) AutoSaveSession() tea.Cmd {
	if m.Sessions == nil {
		return nil
	}

	if m.CurrentSession == nil {
		m.NewSession()
	}
	if m.CurrentSession.Name == "Nueva sesión" && len(m.Messages) > 0 {
		for _, msg := range m.Messages {
			if msg.Role == RoleUser {
				m.CurrentSession.Name = storage.GenerateSessionName(msg.Content)
				break
			}
		}
	}

	return m.SaveCurrentSession()
}

// DeleteSession removes a session and refreshes the list.
func (m *Model) DeleteSession(sessionID string) tea.Cmd {
	if m.Sessions == nil {
		return nil
	}
	store := m.Sessions
	return func() tea.Msg {
		if err := store.Delete(sessionID); err != nil {
			return SessionDeletedMsg{ID: sessionID, Err: err}
		}
		sessions, err := store.List()
		return SessionsListMsg{Sessions: sessions, Err: err}
	}
}

// RenameSessionCmd renames a session and refreshes the session list
func (m *Model) RenameSessionCmd(sessionID, newName string) tea.Cmd {
	if m.Sessions == nil {
		return nil
	}
	store := m.Sessions
	return func() tea.Msg {
		if err := store.RenameSession(sessionID, newName); err != nil {
			return SessionsListMsg{Err: err}
		}
		sessions, err := store.List()
		return SessionsListMsg{Sessions: sessions, Err: err}
	}
}

func (m *Model) modelName() string {
	if m.Provider != nil {
		return m.Provider.GetModel()
	}
	if m.Config != nil {
		return m.Config.Model
	}
	return ""
}
