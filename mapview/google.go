package mapview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"googlemaps.github.io/maps"
)

const (
	locationZoom = 16
	routeZoom    = 12
)

// GoogleMaps implements Controller on top of the Google Maps web services
// (geocoding and directions). State access is synchronized because tool
// handlers run on the transport goroutine while the UI reads snapshots.
type GoogleMaps struct {
	client *maps.Client

	mu    sync.Mutex
	state State
}

// NewGoogleMaps creates the adapter. The key is a Google Maps Platform API
// key with the Geocoding and Directions APIs enabled.
func NewGoogleMaps(apiKey string) (*GoogleMaps, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Google Maps API key is required")
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleMaps{client: client}, nil
}

// ViewLocation implements Controller.ViewLocation.
func (g *GoogleMaps) ViewLocation(ctx context.Context, query string) error {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return &QueryError{Query: query, Status: err.Error()}
	}
	if len(results) == 0 {
		return &QueryError{Query: query, Status: "ZERO_RESULTS"}
	}

	best := results[0]
	g.mu.Lock()
	g.state = State{
		Label:     best.FormattedAddress,
		Lat:       best.Geometry.Location.Lat,
		Lng:       best.Geometry.Location.Lng,
		Zoom:      locationZoom,
		UpdatedAt: time.Now(),
	}
	g.mu.Unlock()
	return nil
}

// ComputeRoute implements Controller.ComputeRoute.
func (g *GoogleMaps) ComputeRoute(ctx context.Context, origin, destination string) error {
	routes, _, err := g.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
	})
	query := fmt.Sprintf("%s → %s", origin, destination)
	if err != nil {
		return &QueryError{Query: query, Status: err.Error()}
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return &QueryError{Query: query, Status: "ZERO_RESULTS"}
	}

	route := routes[0]
	leg := route.Legs[0]

	g.mu.Lock()
	g.state = State{
		Label: leg.StartAddress,
		Lat:   leg.StartLocation.Lat,
		Lng:   leg.StartLocation.Lng,
		Zoom:  routeZoom,
		Route: &RouteSummary{
			Origin:      leg.StartAddress,
			Destination: leg.EndAddress,
			Distance:    leg.Distance.HumanReadable,
			Duration:    leg.Duration.Round(time.Minute).String(),
			Via:         route.Summary,
		},
		UpdatedAt: time.Now(),
	}
	g.mu.Unlock()
	return nil
}

// State implements Controller.State.
func (g *GoogleMaps) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
