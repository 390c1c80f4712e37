package mcp

import (
	"context"
	"strings"
	"testing"

	"asistente/mapview"
)

func newTestBridge(t *testing.T, ctrl mapview.Controller) *Bridge {
	t.Helper()
	bridge, err := NewBridge(context.Background(), NewMapServer(ctrl).Server())
	if err != nil {
		t.Fatalf("NewBridge() error = %v", err)
	}
	t.Cleanup(func() { bridge.Close() })
	return bridge
}

func TestBridgeForwardsRenamedCall(t *testing.T) {
	ctrl := mapview.NewStatic()
	bridge := newTestBridge(t, ctrl)

	// Model-issued mixed-case name with the "query" argument shape.
	text, isErr, err := bridge.Call(context.Background(), "viewLocationGoogleMaps",
		map[string]any{"query": "Mazamitla, Jalisco"})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if isErr {
		t.Fatalf("Call() reported tool error: %s", text)
	}
	if state := ctrl.State(); state.Label != "Mazamitla, Jalisco" {
		t.Errorf("controller label = %q, want forwarded query", state.Label)
	}
	if !strings.Contains(text, "Mazamitla, Jalisco") {
		t.Errorf("result text %q does not mention the location", text)
	}
}

func TestBridgeDirections(t *testing.T) {
	ctrl := mapview.NewStatic()
	bridge := newTestBridge(t, ctrl)

	_, isErr, err := bridge.Call(context.Background(), "directionsOnGoogleMaps",
		map[string]any{"origin": "Mazamitla", "destination": "Guadalajara"})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if isErr {
		t.Fatal("unexpected tool error")
	}
	state := ctrl.State()
	if state.Route == nil || state.Route.Destination != "Guadalajara" {
		t.Errorf("route state = %+v, want destination Guadalajara", state.Route)
	}
}

func TestBridgeRelaysResolutionFailure(t *testing.T) {
	ctrl := &recordingController{err: &mapview.QueryError{Query: "ningún lugar", Status: "ZERO_RESULTS"}}
	bridge := newTestBridge(t, ctrl)

	text, isErr, err := bridge.Call(context.Background(), "viewLocationGoogleMaps",
		map[string]any{"location": "ningún lugar"})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if !isErr {
		t.Fatal("expected a tool error for unresolvable query")
	}
	if !strings.Contains(text, "ZERO_RESULTS") {
		t.Errorf("tool error %q does not carry the upstream status", text)
	}
}

func TestBridgeEmptyArgsAreNoOp(t *testing.T) {
	rec := &recordingController{}
	bridge := newTestBridge(t, rec)

	_, isErr, err := bridge.Call(context.Background(), "viewLocationGoogleMaps", map[string]any{})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if isErr {
		t.Fatal("no-op payload must not be a tool error")
	}
	if len(rec.viewed) != 0 || len(rec.routes) != 0 {
		t.Errorf("expected no map operation, got viewed=%v routes=%v", rec.viewed, rec.routes)
	}
}

func TestBridgeDeclaresToolSurface(t *testing.T) {
	bridge := newTestBridge(t, mapview.NewStatic())

	names := map[string]bool{}
	for _, tool := range bridge.Tools() {
		names[tool.Name] = true
	}
	if !names[ToolViewLocation] || !names[ToolDirections] {
		t.Errorf("declared tools = %v, want %s and %s", names, ToolViewLocation, ToolDirections)
	}
}
