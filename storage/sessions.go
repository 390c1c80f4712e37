package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is one transcript entry as persisted. Role matches the transcript
// roles used in the UI (user, assistant, system, error); Rendered caches the
// markdown rendering so reloaded sessions don't re-render on open.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Rendered  string    `json:"rendered,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a full intake conversation.
type Session struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Messages     []Message `json:"messages"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
}

// SessionMetadata carries what the session browser needs without the
// message bodies.
type SessionMetadata struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
}

// SessionStorage persists sessions as one JSON file each under
// <dataDir>/sessions.
type SessionStorage struct {
	sessionsDir string
}

func NewSessionStorage(dataDir string) (*SessionStorage, error) {
	dir := filepath.Join(dataDir, "sessions")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create sessions directory: %w", err)
	}
	return &SessionStorage{sessionsDir: dir}, nil
}

func (s *SessionStorage) sessionPath(id string) string {
	return filepath.Join(s.sessionsDir, id+".json")
}

// currentIDPath lives next to the sessions directory, not inside it, so the
// List scan never mistakes it for a session.
func (s *SessionStorage) currentIDPath() string {
	return filepath.Join(filepath.Dir(s.sessionsDir), "current_session.id")
}

// Save writes the session to disk, assigning an ID on first save and
// stamping UpdatedAt. Session files hold customer conversations, so they
// are written 0600.
func (s *SessionStorage) Save(session *Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	if err := os.WriteFile(s.sessionPath(session.ID), data, 0600); err != nil {
		return fmt.Errorf("write session %s: %w", session.ID, err)
	}
	return nil
}

func (s *SessionStorage) Load(id string) (*Session, error) {
	data, err := os.ReadFile(s.sessionPath(id))
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", id, err)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

// List returns metadata for every stored session, newest first. Files that
// fail to decode are skipped rather than failing the whole listing.
func (s *SessionStorage) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("read sessions directory: %w", err)
	}

	var metas []SessionMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.sessionsDir, entry.Name()))
		if err != nil {
			continue
		}
		var session Session
		if err := json.Unmarshal(data, &session); err != nil {
			continue
		}
		metas = append(metas, SessionMetadata{
			ID:           session.ID,
			Name:         session.Name,
			Model:        session.Model,
			CreatedAt:    session.CreatedAt,
			UpdatedAt:    session.UpdatedAt,
			MessageCount: len(session.Messages),
			SystemPrompt: session.SystemPrompt,
		})
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].UpdatedAt.After(metas[j].UpdatedAt)
	})
	return metas, nil
}

func (s *SessionStorage) Delete(id string) error {
	if err := os.Remove(s.sessionPath(id)); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// RenameSession loads, renames and re-saves a session.
func (s *SessionStorage) RenameSession(id, newName string) error {
	session, err := s.Load(id)
	if err != nil {
		return err
	}
	session.Name = newName
	return s.Save(session)
}

// SaveCurrentSessionID records which session to resume next launch.
func (s *SessionStorage) SaveCurrentSessionID(id string) error {
	return os.WriteFile(s.currentIDPath(), []byte(id), 0600)
}

// LoadCurrentSessionID returns the last active session's ID, or an error if
// none was recorded.
func (s *SessionStorage) LoadCurrentSessionID() (string, error) {
	data, err := os.ReadFile(s.currentIDPath())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// GenerateSessionName derives a session name from the first user message,
// falling back to a timestamp when the message carries no usable text.
func GenerateSessionName(firstMessage string) string {
	name := strings.TrimSpace(firstMessage)
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")

	// Cut by runes so accented text never splits mid-character.
	if runes := []rune(name); len(runes) > 30 {
		name = string(runes[:30]) + "..."
	}
	name = strings.TrimSpace(name)

	if name == "" {
		return "Sesión " + time.Now().Format("2006-01-02 15:04")
	}
	return name
}
