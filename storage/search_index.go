package storage

import (
	"sort"
	"strings"
	"time"
)

// SessionMessageMatch is one hit from a cross-session transcript search.
type SessionMessageMatch struct {
	SessionID   string
	SessionName string
	Role        string
	Preview     string
	Timestamp   time.Time
}

// SearchIndex scans stored sessions on demand. Session files are small and
// local, so a query re-reads them rather than maintaining a real index.
type SearchIndex struct {
	storage *SessionStorage
}

func NewSearchIndex(storage *SessionStorage) *SearchIndex {
	return &SearchIndex{storage: storage}
}

// SearchAllSessions returns every customer-facing message whose content
// contains query, case-insensitively, newest first. System notes and error
// messages never match.
func (si *SearchIndex) SearchAllSessions(query string) ([]SessionMessageMatch, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	metas, err := si.storage.List()
	if err != nil {
		return nil, err
	}

	var matches []SessionMessageMatch
	for _, meta := range metas {
		session, err := si.storage.Load(meta.ID)
		if err != nil {
			continue
		}
		for _, msg := range session.Messages {
			if msg.Role != "user" && msg.Role != "assistant" {
				continue
			}
			idx := strings.Index(strings.ToLower(msg.Content), query)
			if idx < 0 {
				continue
			}
			matches = append(matches, SessionMessageMatch{
				SessionID:   session.ID,
				SessionName: session.Name,
				Role:        msg.Role,
				Preview:     snippetAround(msg.Content, idx),
				Timestamp:   msg.Timestamp,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Timestamp.After(matches[j].Timestamp)
	})
	return matches, nil
}

// snippetAround cuts a short, rune-safe window of content that includes the
// byte offset where the query matched.
func snippetAround(content string, offset int) string {
	const window = 100

	runes := []rune(content)
	if len(runes) <= window {
		return content
	}

	at := len([]rune(content[:offset]))
	start := max(0, at-window/4)
	end := min(len(runes), start+window)

	out := string(runes[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out += "..."
	}
	return out
}
