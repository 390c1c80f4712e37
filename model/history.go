package model

// BuildTurns projects the transcript into provider turns. Error
// entries never reach the model. User messages keep the user role;
// everything else, including tool explanations, is attributed to the
// model so the conversation alternates sensibly after replays.
func BuildTurns(messages []Message) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == RoleError {
			continue
		}
		role := "model"
		if msg.Role == RoleUser {
			role = "user"
		}
		turns = append(turns, Turn{Role: role, Text: msg.Content})
	}
	return turns
}

// projectTurns builds the turns for the in-flight turn. While a reply
// is being composed the trailing assistant message is the one under
// construction and is excluded.
func (m *Model) projectTurns() []Turn {
	msgs := m.Messages
	if m.State.Busy() && len(msgs) > 0 && msgs[len(msgs)-1].Role == RoleAssistant {
		msgs = msgs[:len(msgs)-1]
	}
	return BuildTurns(msgs)
}
