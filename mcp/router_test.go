package mcp

import (
	"context"
	"testing"

	"asistente/mapview"
)

// recordingController records which map operation was dispatched.
type recordingController struct {
	viewed []string
	routes [][2]string
	err    error
}

func (r *recordingController) ViewLocation(_ context.Context, query string) error {
	r.viewed = append(r.viewed, query)
	return r.err
}

func (r *recordingController) ComputeRoute(_ context.Context, origin, destination string) error {
	r.routes = append(r.routes, [2]string{origin, destination})
	return r.err
}

func (r *recordingController) State() mapview.State {
	return mapview.State{}
}

func TestRouterDispatch(t *testing.T) {
	tests := []struct {
		name     string
		params   QueryParams
		validate func(t *testing.T, rec *recordingController)
	}{
		{
			name:   "location routes to view",
			params: QueryParams{Location: "X"},
			validate: func(t *testing.T, rec *recordingController) {
				if len(rec.viewed) != 1 || rec.viewed[0] != "X" {
					t.Errorf("viewed = %v, want [X]", rec.viewed)
				}
				if len(rec.routes) != 0 {
					t.Errorf("unexpected route dispatch: %v", rec.routes)
				}
			},
		},
		{
			name:   "origin and destination route to directions",
			params: QueryParams{Origin: "A", Destination: "B"},
			validate: func(t *testing.T, rec *recordingController) {
				if len(rec.routes) != 1 || rec.routes[0] != [2]string{"A", "B"} {
					t.Errorf("routes = %v, want [[A B]]", rec.routes)
				}
			},
		},
		{
			name:   "destination alone is a location fallback",
			params: QueryParams{Destination: "B"},
			validate: func(t *testing.T, rec *recordingController) {
				if len(rec.viewed) != 1 || rec.viewed[0] != "B" {
					t.Errorf("viewed = %v, want [B]", rec.viewed)
				}
			},
		},
		{
			name:   "location wins over origin and destination",
			params: QueryParams{Location: "X", Origin: "A", Destination: "B"},
			validate: func(t *testing.T, rec *recordingController) {
				if len(rec.viewed) != 1 || len(rec.routes) != 0 {
					t.Errorf("viewed = %v routes = %v, want view only", rec.viewed, rec.routes)
				}
			},
		},
		{
			name:   "empty params are a silent no-op",
			params: QueryParams{},
			validate: func(t *testing.T, rec *recordingController) {
				if len(rec.viewed) != 0 || len(rec.routes) != 0 {
					t.Errorf("expected no dispatch, got viewed=%v routes=%v", rec.viewed, rec.routes)
				}
			},
		},
		{
			name:   "origin alone is a silent no-op",
			params: QueryParams{Origin: "A"},
			validate: func(t *testing.T, rec *recordingController) {
				if len(rec.viewed) != 0 || len(rec.routes) != 0 {
					t.Errorf("expected no dispatch, got viewed=%v routes=%v", rec.viewed, rec.routes)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingController{}
			router := NewRouter(rec)
			if err := router.Route(context.Background(), tt.params); err != nil {
				t.Fatalf("Route() error = %v", err)
			}
			tt.validate(t, rec)
		})
	}
}

func TestParamsFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want QueryParams
	}{
		{
			name: "location key",
			args: map[string]any{"location": "Mazamitla"},
			want: QueryParams{Location: "Mazamitla"},
		},
		{
			name: "query alias",
			args: map[string]any{"query": "Mazamitla, Jalisco"},
			want: QueryParams{Location: "Mazamitla, Jalisco"},
		},
		{
			name: "origin and destination",
			args: map[string]any{"origin": "A", "destination": "B"},
			want: QueryParams{Origin: "A", Destination: "B"},
		},
		{
			name: "blank and non-string values ignored",
			args: map[string]any{"location": "   ", "origin": 42, "destination": "B"},
			want: QueryParams{Destination: "B"},
		},
		{
			name: "nil args",
			args: nil,
			want: QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParamsFromArgs(tt.args); got != tt.want {
				t.Errorf("ParamsFromArgs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
