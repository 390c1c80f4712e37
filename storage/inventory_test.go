package storage

import (
	"strings"
	"testing"
)

func newTestInventory(t *testing.T) *InventoryStorage {
	t.Helper()
	is, err := NewInventoryStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewInventoryStorage() error = %v", err)
	}
	t.Cleanup(func() { is.Close() })
	return is
}

func TestPromptListing(t *testing.T) {
	items := []InventoryItem{
		{Name: "Cambio de llanta", Category: CategoryServicio, Price: 250, Description: "A domicilio."},
		{Name: "Envío de gasolina", Category: CategoryProducto, Price: 400, Description: "Bidón de 10 litros."},
	}

	got := PromptListing(items)
	want := "- Cambio de llanta (Servicio): $250.00. A domicilio.\n" +
		"- Envío de gasolina (Producto): $400.00. Bidón de 10 litros."
	if got != want {
		t.Errorf("PromptListing() =\n%s\nwant\n%s", got, want)
	}
}

func TestPromptListingEmpty(t *testing.T) {
	if got := PromptListing(nil); got != EmptyInventoryNotice {
		t.Errorf("PromptListing(nil) = %q, want fallback sentence", got)
	}
}

func TestInventoryRoundTrip(t *testing.T) {
	is := newTestInventory(t)

	added, err := is.Add(InventoryItem{
		Name:        "Cerrajería vehicular",
		Category:    CategoryServicio,
		Price:       350,
		Description: "Apertura sin daños.",
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if added.ID == "" {
		t.Error("added item has no id")
	}

	items, err := is.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 1 || items[0].Name != "Cerrajería vehicular" {
		t.Errorf("List() = %+v", items)
	}
}

func TestInventorySeedDefaults(t *testing.T) {
	is := newTestInventory(t)

	if err := is.SeedDefaults(); err != nil {
		t.Fatalf("SeedDefaults() error = %v", err)
	}
	n, err := is.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatal("seed inserted nothing")
	}

	// Second seed must not duplicate.
	if err := is.SeedDefaults(); err != nil {
		t.Fatalf("second SeedDefaults() error = %v", err)
	}
	n2, _ := is.Count()
	if n2 != n {
		t.Errorf("second seed changed count: %d → %d", n, n2)
	}

	items, _ := is.List()
	listing := PromptListing(items)
	if !strings.Contains(listing, "(Servicio):") {
		t.Errorf("seeded listing missing category tag:\n%s", listing)
	}
}
