package model

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Fragment is one classified piece of streamed model output. Exactly
// one field is set per fragment.
type Fragment struct {
	// Thought is reasoning text, shown dimmed and never persisted.
	Thought string
	// Text is reply prose, accumulated into the assistant message.
	Text string
	// Call is a tool invocation request.
	Call *ToolCall
}

// ToolCall is a tool invocation emitted by the model, still carrying
// the model-side name (renaming happens at the transport).
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// ToolResult pairs a call with the text the tool returned.
type ToolResult struct {
	Call    ToolCall
	Text    string
	IsError bool
}

// Turn is one item of the conversation as sent to the provider.
// Role "tool" carries Results back to the model after an invocation
// round; role "model" carries the text and calls produced so far.
type Turn struct {
	Role    string
	Text    string
	Calls   []ToolCall
	Results []ToolResult
}

// StreamCallback receives fragments in arrival order. Returning an
// error aborts the stream.
type StreamCallback func(Fragment) error

// Provider abstracts the chat backend. Implementations stream a single
// model response; the caller drives the tool-invocation loop by
// appending tool turns and calling StreamTurn again.
type Provider interface {
	// StreamTurn sends the conversation and streams back classified
	// fragments. Tool declarations are passed in wire form and
	// converted by the implementation.
	StreamTurn(ctx context.Context, turns []Turn, tools []mcptypes.Tool, systemPrompt string, callback StreamCallback) error

	GetModel() string
	SetModel(model string)

	// Ping checks reachability with current credentials.
	Ping(ctx context.Context) error
}
