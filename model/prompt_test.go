package model

import (
	"strings"
	"testing"

	"asistente/storage"
)

func TestBuildSystemPrompt(t *testing.T) {
	inventory, err := storage.NewInventoryStorage(t.TempDir())
	if err != nil {
		t.Fatalf("creating inventory storage: %v", err)
	}
	defer inventory.Close()
	if _, err := inventory.Add(storage.InventoryItem{
		Name:        "Cambio de llanta",
		Category:    storage.CategoryServicio,
		Price:       250,
		Description: "Incluye traslado dentro de la zona.",
	}); err != nil {
		t.Fatalf("seeding inventory: %v", err)
	}

	m := NewModel(nil)
	m.Inventory = inventory

	prompt := m.BuildSystemPrompt()
	if !strings.Contains(prompt, "<service_confirmation>") {
		t.Error("prompt must describe the confirmation block format")
	}
	if !strings.Contains(prompt, "Cambio de llanta") {
		t.Error("prompt must list the inventory")
	}
}

func TestBuildSystemPromptEmptyInventory(t *testing.T) {
	m := NewModel(nil)
	prompt := m.BuildSystemPrompt()
	if !strings.Contains(prompt, storage.EmptyInventoryNotice) {
		t.Error("prompt must fall back to the empty inventory notice")
	}
}
