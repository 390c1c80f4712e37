package testutil

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"asistente/model"
)

// MockProvider implements model.Provider for testing
type MockProvider struct {
	// Configurable responses
	StreamTurnFunc func(ctx context.Context, turns []model.Turn, tools []mcptypes.Tool, systemPrompt string, callback model.StreamCallback) error
	PingFunc       func(ctx context.Context) error

	// Recorded calls, one entry per StreamTurn invocation
	Turns [][]model.Turn

	currentModel string
}

// NewMockProvider creates a mock provider with default implementations
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{currentModel: modelName}
	mock.StreamTurnFunc = mock.defaultStreamTurn
	mock.PingFunc = func(ctx context.Context) error { return nil }
	return mock
}

// ScriptRounds makes the provider emit one scripted fragment sequence
// per StreamTurn call, in order. Calls past the last script replay the
// final one.
func (m *MockProvider) ScriptRounds(rounds ...[]model.Fragment) {
	call := 0
	m.StreamTurnFunc = func(ctx context.Context, turns []model.Turn, tools []mcptypes.Tool, systemPrompt string, callback model.StreamCallback) error {
		round := rounds[min(call, len(rounds)-1)]
		call++
		for _, frag := range round {
			if err := callback(frag); err != nil {
				return err
			}
		}
		return nil
	}
}

func (m *MockProvider) defaultStreamTurn(ctx context.Context, turns []model.Turn, tools []mcptypes.Tool, systemPrompt string, callback model.StreamCallback) error {
	return callback(model.Fragment{Text: "Respuesta de prueba"})
}

func (m *MockProvider) StreamTurn(ctx context.Context, turns []model.Turn, tools []mcptypes.Tool, systemPrompt string, callback model.StreamCallback) error {
	m.Turns = append(m.Turns, turns)
	return m.StreamTurnFunc(ctx, turns, tools, systemPrompt, callback)
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

func (m *MockProvider) SetModel(modelName string) {
	m.currentModel = modelName
}

// MockSpeaker records spoken text for assertions.
type MockSpeaker struct {
	Spoken []string
}

func (s *MockSpeaker) Speak(text string) {
	s.Spoken = append(s.Spoken, text)
}
