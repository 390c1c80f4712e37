package storage

import (
	"errors"
	"testing"
)

func newTestHistory(t *testing.T) *HistoryStorage {
	t.Helper()
	hs, err := NewHistoryStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewHistoryStorage() error = %v", err)
	}
	t.Cleanup(func() { hs.Close() })
	return hs
}

func TestHistoryAdd(t *testing.T) {
	hs := newTestHistory(t)

	req, err := hs.Add("Juan", "3334854080", "llanta ponchada", "Calle 5, Mazamitla")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if req.Status != StatusPendiente {
		t.Errorf("new request status = %q, want %q", req.Status, StatusPendiente)
	}
	if req.Price != nil {
		t.Errorf("new request price = %v, want nil", *req.Price)
	}
	if req.ID == "" {
		t.Error("new request has no id")
	}

	loaded, err := hs.Get(req.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if loaded.Name != "Juan" || loaded.Address != "Calle 5, Mazamitla" {
		t.Errorf("loaded request = %+v", loaded)
	}
}

func TestHistoryAdvanceForwardOnly(t *testing.T) {
	hs := newTestHistory(t)
	req, err := hs.Add("Ana", "333", "fuga de agua", "Av. Juárez 10")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	want := []Status{StatusAprobado, StatusEnProceso, StatusTerminado}
	for _, expected := range want {
		var price *float64
		if expected == StatusTerminado {
			p := 350.0
			price = &p
		}
		req, err = hs.Advance(req.ID, price)
		if err != nil {
			t.Fatalf("Advance() to %s error = %v", expected, err)
		}
		if req.Status != expected {
			t.Fatalf("status = %q, want %q", req.Status, expected)
		}
	}

	if req.Price == nil || *req.Price != 350.0 {
		t.Errorf("terminal price = %v, want 350", req.Price)
	}

	// Terminal status cannot advance further.
	if _, err := hs.Advance(req.ID, nil); !errors.Is(err, ErrTerminalStatus) {
		t.Errorf("Advance() past terminal error = %v, want ErrTerminalStatus", err)
	}
}

func TestHistoryPriceOnlyOnTerminalTransition(t *testing.T) {
	hs := newTestHistory(t)
	req, err := hs.Add("Ana", "333", "x", "y")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	p := 100.0
	if _, err := hs.Advance(req.ID, &p); !errors.Is(err, ErrPriceNotAllowed) {
		t.Errorf("Advance(Pendiente→Aprobado, price) error = %v, want ErrPriceNotAllowed", err)
	}

	// Price stays optional on the terminal transition.
	req, _ = hs.Advance(req.ID, nil)
	req, _ = hs.Advance(req.ID, nil)
	req, err = hs.Advance(req.ID, nil)
	if err != nil {
		t.Fatalf("Advance() to terminal without price error = %v", err)
	}
	if req.Status != StatusTerminado || req.Price != nil {
		t.Errorf("got status %q price %v, want Terminado with nil price", req.Status, req.Price)
	}
}

func TestHistoryListNewestFirst(t *testing.T) {
	hs := newTestHistory(t)
	if _, err := hs.Add("Primero", "1", "a", "b"); err != nil {
		t.Fatal(err)
	}
	if _, err := hs.Add("Segundo", "2", "a", "b"); err != nil {
		t.Fatal(err)
	}

	list, err := hs.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() returned %d requests, want 2", len(list))
	}
}

func TestStatusNext(t *testing.T) {
	tests := []struct {
		in     Status
		want   Status
		wantOK bool
	}{
		{StatusPendiente, StatusAprobado, true},
		{StatusAprobado, StatusEnProceso, true},
		{StatusEnProceso, StatusTerminado, true},
		{StatusTerminado, StatusTerminado, false},
		{Status("desconocido"), Status("desconocido"), false},
	}
	for _, tt := range tests {
		got, ok := tt.in.Next()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Next(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
