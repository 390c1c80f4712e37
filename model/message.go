package model

import "time"

// Message roles as they appear in the transcript. Error messages are
// display-only and never reach the provider.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleError     = "error"
)

// Message is a single transcript entry. Rendered holds the markdown
// output so the viewport does not re-render history on every frame.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Rendered  string    `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessage(role, content string) Message {
	return Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}
