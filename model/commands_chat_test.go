package model_test

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"asistente/model"
	"asistente/provider/testutil"
	"asistente/storage"
)

type recordedCall struct {
	Name string
	Args map[string]any
}

// recordingTransport stands in for the tool bridge.
type recordingTransport struct {
	calls   []recordedCall
	text    string
	isError bool
	err     error
}

func (r *recordingTransport) Tools() []mcptypes.Tool {
	return []mcptypes.Tool{
		mcptypes.NewTool("view-location-google-maps", mcptypes.WithDescription("Muestra una ubicación.")),
	}
}

func (r *recordingTransport) Call(ctx context.Context, name string, args map[string]any) (string, bool, error) {
	r.calls = append(r.calls, recordedCall{Name: name, Args: args})
	return r.text, r.isError, r.err
}

// drainTurn runs a turn to completion and returns every message the
// turn goroutine emitted.
func drainTurn(t *testing.T, m *model.Model) []tea.Msg {
	t.Helper()

	cmd := m.StartTurn()
	if cmd == nil {
		t.Fatal("StartTurn returned nil command")
	}

	var msgs []tea.Msg
	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("turn did not finish; got %d messages", len(msgs))
		default:
		}

		msg := cmd()
		if msg == nil {
			t.Fatalf("turn channel closed without a terminal message; got %d messages", len(msgs))
		}
		msgs = append(msgs, msg)
		switch msg.(type) {
		case model.TurnDoneMsg, model.TurnErrorMsg:
			return msgs
		}
		cmd = m.AwaitTurn()
	}
}

func lastDone(t *testing.T, msgs []tea.Msg) model.TurnDoneMsg {
	t.Helper()
	done, ok := msgs[len(msgs)-1].(model.TurnDoneMsg)
	if !ok {
		t.Fatalf("expected TurnDoneMsg last, got %T", msgs[len(msgs)-1])
	}
	return done
}

func newTurnModel(p model.Provider, bridge model.Transport) *model.Model {
	m := model.NewModel(nil)
	m.Provider = p
	m.Bridge = bridge
	m.AppendMessage(model.NewMessage(model.RoleUser, "hola"))
	m.SetState(model.StateGenerating)
	return m
}

func TestTurnStreamsThoughtAndText(t *testing.T) {
	mock := testutil.NewMockProvider("gemini-2.5-flash")
	mock.ScriptRounds([]model.Fragment{
		{Thought: "El cliente saluda. "},
		{Thought: "Responderé brevemente."},
		{Text: "¡Hola! "},
		{Text: "¿En qué puedo ayudarte?"},
	})
	speaker := &testutil.MockSpeaker{}

	m := newTurnModel(mock, nil)
	m.Speaker = speaker
	msgs := drainTurn(t, m)

	var thoughts, texts int
	var lastThought, lastText string
	for _, msg := range msgs {
		switch v := msg.(type) {
		case model.StreamThoughtMsg:
			thoughts++
			lastThought = v.Total
		case model.StreamTextMsg:
			texts++
			lastText = v.Total
		}
	}
	if thoughts != 2 || texts != 2 {
		t.Errorf("expected 2 thought and 2 text messages, got %d and %d", thoughts, texts)
	}
	if lastThought != "El cliente saluda. Responderé brevemente." {
		t.Errorf("reasoning buffer not accumulated: %q", lastThought)
	}
	if lastText != "¡Hola! ¿En qué puedo ayudarte?" {
		t.Errorf("reply buffer not accumulated: %q", lastText)
	}

	done := lastDone(t, msgs)
	if done.FinalText != "¡Hola! ¿En qué puedo ayudarte?" {
		t.Errorf("unexpected final text %q", done.FinalText)
	}
	if done.ToolCallsMade {
		t.Error("no tool calls were made")
	}
	if len(speaker.Spoken) != 1 || speaker.Spoken[0] != done.FinalText {
		t.Errorf("expected final text spoken once, got %v", speaker.Spoken)
	}
}

func TestTurnToolLoop(t *testing.T) {
	mock := testutil.NewMockProvider("gemini-2.5-flash")
	mock.ScriptRounds(
		[]model.Fragment{
			{Text: "Déjame mostrarlo. "},
			{Call: &model.ToolCall{
				Name:      "viewLocationGoogleMaps",
				Arguments: map[string]any{"query": "Mazamitla, Jalisco"},
			}},
		},
		[]model.Fragment{
			{Text: "Ya puedes verlo en el mapa."},
		},
	)
	bridge := &recordingTransport{text: "mostrando Mazamitla, Jalisco"}

	m := newTurnModel(mock, bridge)
	msgs := drainTurn(t, m)

	// The call is forwarded under the name the model used; renaming is
	// the bridge's concern.
	if len(bridge.calls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(bridge.calls))
	}
	if bridge.calls[0].Name != "viewLocationGoogleMaps" {
		t.Errorf("unexpected forwarded name %q", bridge.calls[0].Name)
	}
	if bridge.calls[0].Args["query"] != "Mazamitla, Jalisco" {
		t.Errorf("unexpected args %v", bridge.calls[0].Args)
	}

	var sawExplanation, sawMapUpdate bool
	for _, msg := range msgs {
		switch v := msg.(type) {
		case model.ToolCallMsg:
			sawExplanation = true
			if !strings.Contains(v.Explanation, "view-location-google-maps") {
				t.Errorf("explanation should show the wire name: %q", v.Explanation)
			}
			if !strings.Contains(v.Explanation, "Mazamitla") {
				t.Errorf("explanation should show the arguments: %q", v.Explanation)
			}
		case model.MapUpdatedMsg:
			sawMapUpdate = true
		}
	}
	if !sawExplanation || !sawMapUpdate {
		t.Errorf("expected tool call and map update messages, got explanation=%v map=%v", sawExplanation, sawMapUpdate)
	}

	done := lastDone(t, msgs)
	if !done.ToolCallsMade {
		t.Error("expected ToolCallsMade")
	}
	if done.FinalText != "Déjame mostrarlo. Ya puedes verlo en el mapa." {
		t.Errorf("unexpected final text %q", done.FinalText)
	}

	// The second round must carry the call and its result back.
	if len(mock.Turns) != 2 {
		t.Fatalf("expected 2 provider rounds, got %d", len(mock.Turns))
	}
	second := mock.Turns[1]
	if len(second) < 3 {
		t.Fatalf("expected continuation turns, got %d", len(second))
	}
	modelTurn := second[len(second)-2]
	toolTurn := second[len(second)-1]
	if modelTurn.Role != "model" || len(modelTurn.Calls) != 1 {
		t.Errorf("expected model turn with call, got %+v", modelTurn)
	}
	if toolTurn.Role != "tool" || len(toolTurn.Results) != 1 {
		t.Fatalf("expected tool turn with result, got %+v", toolTurn)
	}
	if toolTurn.Results[0].Text != "mostrando Mazamitla, Jalisco" {
		t.Errorf("unexpected result text %q", toolTurn.Results[0].Text)
	}
}

func TestTurnCommitsConfirmation(t *testing.T) {
	history, err := storage.NewHistoryStorage(t.TempDir())
	if err != nil {
		t.Fatalf("creating history storage: %v", err)
	}
	defer history.Close()

	reply := "Perfecto, queda registrado.\n<service_confirmation>\nName: Juan\nPhone: 3334854080\nDetails: llanta ponchada\nAddress: Calle 5, Mazamitla\n</service_confirmation>\nEn breve te contactamos."

	mock := testutil.NewMockProvider("gemini-2.5-flash")
	mock.ScriptRounds([]model.Fragment{{Text: reply}})
	speaker := &testutil.MockSpeaker{}

	m := newTurnModel(mock, nil)
	m.History = history
	m.Speaker = speaker
	msgs := drainTurn(t, m)

	done := lastDone(t, msgs)
	if done.Committed == nil {
		t.Fatal("expected a committed service request")
	}
	if done.Committed.Name != "Juan" || done.Committed.Phone != "3334854080" {
		t.Errorf("unexpected committed request %+v", done.Committed)
	}
	if done.Committed.Status != storage.StatusPendiente {
		t.Errorf("new request should be pending, got %q", done.Committed.Status)
	}

	if strings.Contains(done.FinalText, "service_confirmation") {
		t.Errorf("confirmation block must not be displayed: %q", done.FinalText)
	}
	if !strings.Contains(done.FinalText, "Perfecto, queda registrado.") ||
		!strings.Contains(done.FinalText, "En breve te contactamos.") {
		t.Errorf("surrounding prose must survive redaction: %q", done.FinalText)
	}
	if len(speaker.Spoken) != 1 || strings.Contains(speaker.Spoken[0], "Juan") {
		t.Errorf("spoken text must be the redacted reply, got %v", speaker.Spoken)
	}

	requests, err := history.List()
	if err != nil {
		t.Fatalf("listing requests: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("expected 1 persisted request, got %d", len(requests))
	}
}

func TestTurnArmsLocationSelect(t *testing.T) {
	mock := testutil.NewMockProvider("gemini-2.5-flash")
	mock.ScriptRounds([]model.Fragment{
		{Text: "Por favor haz clic en el mapa para indicar tu ubicación."},
	})

	m := newTurnModel(mock, nil)
	done := lastDone(t, drainTurn(t, m))
	if !done.ArmLocationSelect {
		t.Error("expected location select to be armed")
	}
}

func TestTurnErrorIsReported(t *testing.T) {
	mock := testutil.NewMockProvider("gemini-2.5-flash")
	mock.StreamTurnFunc = func(ctx context.Context, turns []model.Turn, tools []mcptypes.Tool, systemPrompt string, callback model.StreamCallback) error {
		return context.DeadlineExceeded
	}

	m := newTurnModel(mock, nil)
	msgs := drainTurn(t, m)
	errMsg, ok := msgs[len(msgs)-1].(model.TurnErrorMsg)
	if !ok {
		t.Fatalf("expected TurnErrorMsg, got %T", msgs[len(msgs)-1])
	}
	if !strings.Contains(errMsg.Err.Error(), "chat request failed") {
		t.Errorf("unexpected error %v", errMsg.Err)
	}
}

func TestTurnRespectsToolRoundLimit(t *testing.T) {
	mock := testutil.NewMockProvider("gemini-2.5-flash")
	// Every round asks for another tool call; the limit must cut it off.
	mock.StreamTurnFunc = func(ctx context.Context, turns []model.Turn, tools []mcptypes.Tool, systemPrompt string, callback model.StreamCallback) error {
		return callback(model.Fragment{Call: &model.ToolCall{
			Name:      "viewLocationGoogleMaps",
			Arguments: map[string]any{"query": "Mazamitla"},
		}})
	}
	bridge := &recordingTransport{text: "ok"}

	m := newTurnModel(mock, bridge)
	m.MaxToolRounds = 2
	done := lastDone(t, drainTurn(t, m))
	if !done.ToolCallsMade {
		t.Error("expected tool calls")
	}
	if len(bridge.calls) != 2 {
		t.Errorf("expected 2 tool calls under the limit, got %d", len(bridge.calls))
	}
}
