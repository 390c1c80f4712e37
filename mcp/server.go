// Package mcp holds both ends of the in-process tool transport: the map tool
// server bound to the mapview controller, and the bridge the orchestration
// loop uses to forward model-issued tool calls across it.
//
// The pairing is 1:1 and session-scoped — one server, one client, created
// once at startup and held for the lifetime of the session.
package mcp

import (
	"context"
	"errors"
	"fmt"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"asistente/config"
	"asistente/mapview"
)

const (
	// ToolViewLocation and ToolDirections are the dash-separated names the
	// transport expects; the model emits them in mixed case (see DashName).
	ToolViewLocation = "view-location-google-maps"
	ToolDirections   = "directions-on-google-maps"
)

// MapServer exposes the map-query operations as MCP tools.
type MapServer struct {
	router *Router
	ctrl   mapview.Controller
	srv    *server.MCPServer
}

// NewMapServer builds the tool server around a map controller.
func NewMapServer(ctrl mapview.Controller) *MapServer {
	ms := &MapServer{
		router: NewRouter(ctrl),
		ctrl:   ctrl,
	}

	srv := server.NewMCPServer("asistente-maps", "1.0.0",
		server.WithToolCapabilities(false))

	srv.AddTool(mcptypes.NewTool(ToolViewLocation,
		mcptypes.WithDescription("Muestra un lugar en el mapa. Úsala cuando el cliente mencione una ubicación, colonia o punto de referencia."),
		mcptypes.WithString("location", mcptypes.Description("Lugar, dirección o punto de referencia a mostrar (también se acepta 'query')")),
		mcptypes.WithString("destination", mcptypes.Description("Destino a mostrar cuando no hay 'location'")),
	), ms.handleMapQuery)

	srv.AddTool(mcptypes.NewTool(ToolDirections,
		mcptypes.WithDescription("Traza una ruta en el mapa entre dos puntos."),
		mcptypes.WithString("origin", mcptypes.Description("Punto de partida")),
		mcptypes.WithString("destination", mcptypes.Description("Punto de llegada")),
	), ms.handleMapQuery)

	ms.srv = srv
	return ms
}

// Server returns the underlying MCP server for binding the in-process client.
func (ms *MapServer) Server() *server.MCPServer {
	return ms.srv
}

// handleMapQuery serves both tools: the router, not the tool name, decides
// which map operation runs. Map-resolution failures come back as tool errors
// so the model can ask the user for a more specific query; a payload that
// matches no dispatch case is a silent no-op.
func (ms *MapServer) handleMapQuery(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
	args, _ := req.Params.Arguments.(map[string]any)
	params := ParamsFromArgs(args)

	if config.DebugLog != nil {
		config.DebugLog.Printf("[MapServer] %s location=%q origin=%q destination=%q",
			req.Params.Name, params.Location, params.Origin, params.Destination)
	}

	if err := ms.router.Route(ctx, params); err != nil {
		var qerr *mapview.QueryError
		if errors.As(err, &qerr) {
			return mcptypes.NewToolResultError(qerr.Error()), nil
		}
		return nil, fmt.Errorf("map query failed: %w", err)
	}

	state := ms.ctrl.State()
	switch {
	case state.Route != nil:
		return mcptypes.NewToolResultText(fmt.Sprintf(
			"Ruta mostrada en el mapa: %s → %s (%s, %s)",
			state.Route.Origin, state.Route.Destination,
			state.Route.Distance, state.Route.Duration)), nil
	case state.Label != "":
		return mcptypes.NewToolResultText(fmt.Sprintf(
			"Ubicación mostrada en el mapa: %s", state.Label)), nil
	default:
		return mcptypes.NewToolResultText("No se realizó ninguna operación en el mapa."), nil
	}
}
