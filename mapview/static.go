package mapview

import (
	"context"
	"sync"
	"time"
)

// Static is an offline Controller: it accepts every query verbatim without
// geocoding. Used when no Maps API key is configured, and by tests.
type Static struct {
	mu    sync.Mutex
	state State
}

// NewStatic returns an empty offline controller.
func NewStatic() *Static {
	return &Static{}
}

func (s *Static) ViewLocation(_ context.Context, query string) error {
	s.mu.Lock()
	s.state = State{
		Label:     query,
		Zoom:      locationZoom,
		UpdatedAt: time.Now(),
	}
	s.mu.Unlock()
	return nil
}

func (s *Static) ComputeRoute(_ context.Context, origin, destination string) error {
	s.mu.Lock()
	s.state = State{
		Label: origin,
		Zoom:  routeZoom,
		Route: &RouteSummary{
			Origin:      origin,
			Destination: destination,
		},
		UpdatedAt: time.Now(),
	}
	s.mu.Unlock()
	return nil
}

func (s *Static) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
