// Package mapview defines the narrow capability set the assistant uses to
// drive the map surface, plus the view state the UI renders.
//
// The conversation core never talks to a geocoder directly: tool calls are
// routed (see the mcp package) to a Controller, and the UI reads the
// resulting State snapshot. Swapping the Google-backed adapter for the
// offline Static one changes nothing above this seam.
package mapview

import (
	"context"
	"fmt"
	"time"
)

// Controller is the single seam the map-query router dispatches into.
type Controller interface {
	// ViewLocation resolves query and centers the map on it.
	ViewLocation(ctx context.Context, query string) error

	// ComputeRoute resolves a driving route between origin and destination
	// and shows it on the map.
	ComputeRoute(ctx context.Context, origin, destination string) error

	// State returns a snapshot of the current view for rendering.
	State() State
}

// State is what the map panel shows. A zero State means nothing has been
// viewed yet this session.
type State struct {
	Label     string // formatted address of the current center
	Lat       float64
	Lng       float64
	Zoom      int
	Route     *RouteSummary // non-nil while a route is displayed
	UpdatedAt time.Time
}

// RouteSummary describes the currently displayed route.
type RouteSummary struct {
	Origin      string
	Destination string
	Distance    string
	Duration    string
	Via         string // route summary, e.g. the main road used
}

// QueryError reports a map query the upstream service could not resolve.
// It is surfaced to the user as a rendered error naming the failed query and
// the upstream status; the conversation itself continues.
type QueryError struct {
	Query  string
	Status string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("map query %q failed: %s", e.Query, e.Status)
}
