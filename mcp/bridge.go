package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"asistente/config"
)

// Bridge is the model-integration side of the transport. It holds the single
// in-process client bound to the map tool server and implements the
// rename-and-forward contract: model-issued tool names arrive in mixed case
// and leave dash-separated.
type Bridge struct {
	client *client.Client
	tools  []mcptypes.Tool
}

// NewBridge creates the in-process client, initializes the protocol session
// and caches the declared tool surface. Called once at startup; the pair
// lives for the whole session.
func NewBridge(ctx context.Context, srv *server.MCPServer) (*Bridge, error) {
	cli, err := client.NewInProcessClient(srv)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-process client: %w", err)
	}

	if err := cli.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start transport: %w", err)
	}

	initReq := mcptypes.InitializeRequest{
		Params: mcptypes.InitializeParams{
			ProtocolVersion: "2025-06-18",
			Capabilities:    mcptypes.ClientCapabilities{},
			ClientInfo: mcptypes.Implementation{
				Name:    "asistente",
				Version: "1.0.0",
			},
		},
	}
	if _, err := cli.Initialize(ctx, initReq); err != nil {
		return nil, fmt.Errorf("failed to initialize transport: %w", err)
	}

	toolsResult, err := cli.ListTools(ctx, mcptypes.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	return &Bridge{
		client: cli,
		tools:  toolsResult.Tools,
	}, nil
}

// Tools returns the tool surface declared by the server, for conversion into
// the model's function declarations.
func (b *Bridge) Tools() []mcptypes.Tool {
	return b.tools
}

// Call forwards a model-issued tool call across the transport. The returned
// text is the tool result to hand back to the model; isError marks a
// handler-reported failure (e.g. an unresolvable geocoding query), which is
// relayed, never swallowed.
func (b *Bridge) Call(ctx context.Context, name string, args map[string]any) (text string, isError bool, err error) {
	renamed := DashName(name)
	if config.DebugLog != nil {
		config.DebugLog.Printf("[Bridge] forwarding tool call %s → %s", name, renamed)
	}

	result, err := b.client.CallTool(ctx, mcptypes.CallToolRequest{
		Params: mcptypes.CallToolParams{
			Name:      renamed,
			Arguments: args,
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("tool call %s failed: %w", renamed, err)
	}

	return flattenContent(result.Content), result.IsError, nil
}

// Close tears down the transport pair at session end.
func (b *Bridge) Close() error {
	return b.client.Close()
}

func flattenContent(content []mcptypes.Content) string {
	var parts []string
	for _, c := range content {
		if tc, ok := c.(mcptypes.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
