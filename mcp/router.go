package mcp

import (
	"context"
	"strings"

	"asistente/mapview"
)

// QueryParams is the normalized payload of a map tool call. In practice it is
// a tagged union: location alone, origin+destination, or destination alone
// (treated as a location fallback). Any other combination performs nothing.
type QueryParams struct {
	Location    string
	Origin      string
	Destination string
}

// Router dispatches normalized tool payloads to the map controller.
type Router struct {
	ctrl mapview.Controller
}

// NewRouter wires the router to its map controller.
func NewRouter(ctrl mapview.Controller) *Router {
	return &Router{ctrl: ctrl}
}

// Route applies the dispatch policy, first match wins:
//
//  1. location present            → view the location
//  2. origin + destination        → compute a route
//  3. destination alone           → view it as a location fallback
//  4. anything else               → silent no-op
//
// The policy is deliberately permissive: the argument set originates from a
// probabilistic model, so partial or ambiguous payloads are expected noise,
// not faults.
func (r *Router) Route(ctx context.Context, p QueryParams) error {
	switch {
	case p.Location != "":
		return r.ctrl.ViewLocation(ctx, p.Location)
	case p.Origin != "" && p.Destination != "":
		return r.ctrl.ComputeRoute(ctx, p.Origin, p.Destination)
	case p.Destination != "":
		return r.ctrl.ViewLocation(ctx, p.Destination)
	default:
		return nil
	}
}

// ParamsFromArgs normalizes raw tool-call arguments into QueryParams.
// "query" is accepted as an alias for "location" because models routinely
// emit it that way; non-string and blank values are ignored.
func ParamsFromArgs(args map[string]any) QueryParams {
	str := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := args[k].(string); ok {
				if v = strings.TrimSpace(v); v != "" {
					return v
				}
			}
		}
		return ""
	}
	return QueryParams{
		Location:    str("location", "query"),
		Origin:      str("origin"),
		Destination: str("destination"),
	}
}
