package model

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"asistente/config"
	"asistente/confirm"
	"asistente/mcp"
)

const turnTimeout = 3 * time.Minute

// turnChannelBuffer keeps the goroutine from stalling on bursts of
// small fragments while the UI renders.
const turnChannelBuffer = 64

// StartTurn snapshots the conversation and launches the turn
// goroutine. Call only after the user message has been appended and
// the state set to generating; the returned command must be paired
// with AwaitTurn re-issues until the turn closes.
func (m *Model) StartTurn() tea.Cmd {
	turns := m.projectTurns()
	systemPrompt := m.BuildSystemPrompt()

	var tools []mcptypes.Tool
	if m.Bridge != nil {
		tools = m.Bridge.Tools()
	}

	ch := make(chan tea.Msg, turnChannelBuffer)
	m.turnCh = ch

	go m.runTurn(ch, turns, tools, systemPrompt)
	return m.AwaitTurn()
}

// runTurn drives one full turn: stream, invoke tools, continue, then
// redact, persist and close. It owns ch and closes it when done.
func (m *Model) runTurn(ch chan<- tea.Msg, turns []Turn, tools []mcptypes.Tool, systemPrompt string) {
	defer close(ch)

	ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
	defer cancel()

	var reasoning, output strings.Builder
	toolCallsMade := false

	for round := 0; ; round++ {
		var calls []ToolCall
		roundStart := output.Len()

		err := m.Provider.StreamTurn(ctx, turns, tools, systemPrompt, func(f Fragment) error {
			switch {
			case f.Thought != "":
				reasoning.WriteString(f.Thought)
				ch <- StreamThoughtMsg{Total: reasoning.String()}
			case f.Call != nil:
				calls = append(calls, *f.Call)
			case f.Text != "":
				output.WriteString(f.Text)
				ch <- StreamTextMsg{Total: output.String()}
			}
			return nil
		})
		if err != nil {
			ch <- TurnErrorMsg{Err: fmt.Errorf("chat request failed: %w", err)}
			return
		}

		if len(calls) == 0 {
			break
		}
		if round >= m.MaxToolRounds {
			if config.DebugLog != nil {
				config.DebugLog.Printf("tool round limit reached (%d), finishing turn", m.MaxToolRounds)
			}
			break
		}

		results := make([]ToolResult, 0, len(calls))
		for _, call := range calls {
			toolCallsMade = true
			ch <- ToolCallMsg{Call: call, Explanation: FormatToolCall(call)}

			var (
				text    string
				isError bool
				err     error
			)
			if m.Bridge != nil {
				text, isError, err = m.Bridge.Call(ctx, call.Name, call.Arguments)
			} else {
				err = fmt.Errorf("no tool transport configured")
			}
			if err != nil {
				text = fmt.Sprintf("tool call failed: %v", err)
				isError = true
			}
			if config.DebugLog != nil {
				config.DebugLog.Printf("tool %s -> error=%v %s", call.Name, isError, text)
			}
			results = append(results, ToolResult{Call: call, Text: text, IsError: isError})
			ch <- MapUpdatedMsg{}
		}

		// Feed this round back so the model can continue the reply.
		turns = append(turns,
			Turn{Role: "model", Text: output.String()[roundStart:], Calls: calls},
			Turn{Role: "tool", Results: results},
		)
	}

	full := output.String()
	done := TurnDoneMsg{
		FinalText:         confirm.Redact(full),
		ToolCallsMade:     toolCallsMade,
		ArmLocationSelect: confirm.ArmsLocationSelect(full),
	}

	if rec, ok := confirm.Extract(full); ok {
		if m.History != nil {
			req, err := m.History.Add(rec.Name, rec.Phone, rec.Details, rec.Address)
			if err != nil {
				if config.DebugLog != nil {
					config.DebugLog.Printf("service confirmation not saved: %v", err)
				}
			} else {
				done.Committed = req
			}
		}
	}

	if m.Speaker != nil && strings.TrimSpace(done.FinalText) != "" {
		m.Speaker.Speak(done.FinalText)
	}

	ch <- done
}

// FormatToolCall renders a transcript explanation for a pending tool
// call, using the name as forwarded on the wire.
func FormatToolCall(call ToolCall) string {
	name := mcp.DashName(call.Name)
	if len(call.Arguments) == 0 {
		return fmt.Sprintf("🔧 Ejecutando `%s`", name)
	}
	args, err := json.MarshalIndent(call.Arguments, "", "  ")
	if err != nil {
		return fmt.Sprintf("🔧 Ejecutando `%s`", name)
	}
	return fmt.Sprintf("🔧 Ejecutando `%s`\n```json\n%s\n```", name, args)
}
