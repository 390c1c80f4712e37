package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Category distinguishes goods from services in the inventory.
type Category string

const (
	CategoryProducto Category = "Producto"
	CategoryServicio Category = "Servicio"
)

// InventoryItem is a product or service the business offers. Items are read
// by the assistant as grounding context on every turn; the conversation core
// never mutates them.
type InventoryItem struct {
	ID          string
	Name        string
	Category    Category
	Price       float64
	Description string
}

// EmptyInventoryNotice is rendered into the instruction text when no items exist.
const EmptyInventoryNotice = "No hay productos o servicios registrados actualmente."

// InventoryStorage persists the inventory in sqlite.
type InventoryStorage struct {
	db *sql.DB
}

// NewInventoryStorage opens (and initializes if needed) the inventory
// database under dataDir.
func NewInventoryStorage(dataDir string) (*InventoryStorage, error) {
	dbPath := filepath.Join(dataDir, "inventory.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	storage := &InventoryStorage{db: db}

	if err := storage.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return storage, nil
}

func (is *InventoryStorage) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS inventory (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		price REAL NOT NULL,
		description TEXT NOT NULL
	);
	`
	if _, err := is.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Add inserts an item.
func (is *InventoryStorage) Add(item InventoryItem) (*InventoryItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	_, err := is.db.Exec(
		`INSERT INTO inventory (id, name, category, price, description) VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.Name, string(item.Category), item.Price, item.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return &item, nil
}

// List returns all items in insertion order.
func (is *InventoryStorage) List() ([]InventoryItem, error) {
	rows, err := is.db.Query(`SELECT id, name, category, price, description FROM inventory ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var items []InventoryItem
	for rows.Next() {
		var item InventoryItem
		var category string
		if err := rows.Scan(&item.ID, &item.Name, &category, &item.Price, &item.Description); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		item.Category = Category(category)
		items = append(items, item)
	}
	return items, rows.Err()
}

// Delete removes an item.
func (is *InventoryStorage) Delete(id string) error {
	_, err := is.db.Exec(`DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

// Count returns the number of items.
func (is *InventoryStorage) Count() (int, error) {
	var n int
	if err := is.db.QueryRow(`SELECT COUNT(*) FROM inventory`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count inventory: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (is *InventoryStorage) Close() error {
	return is.db.Close()
}

// PromptListing renders items as the newline-separated listing the per-turn
// instruction text embeds, one "- name (type): price. description" line per
// item, or the fixed fallback sentence when the inventory is empty.
func PromptListing(items []InventoryItem) string {
	if len(items) == 0 {
		return EmptyInventoryNotice
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s (%s): $%.2f. %s",
			item.Name, item.Category, item.Price, item.Description))
	}
	return strings.Join(lines, "\n")
}

// SeedDefaults inserts a starter inventory on first run so the assistant has
// something to offer out of the box. No-op when items already exist.
func (is *InventoryStorage) SeedDefaults() error {
	n, err := is.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	defaults := []InventoryItem{
		{Name: "Cambio de llanta", Category: CategoryServicio, Price: 250, Description: "Cambio o reparación de llanta a domicilio."},
		{Name: "Paso de corriente", Category: CategoryServicio, Price: 150, Description: "Arranque de batería descargada."},
		{Name: "Envío de gasolina", Category: CategoryProducto, Price: 400, Description: "Bidón de 10 litros entregado en tu ubicación."},
		{Name: "Cerrajería vehicular", Category: CategoryServicio, Price: 350, Description: "Apertura de vehículo sin daños."},
	}
	for _, item := range defaults {
		if _, err := is.Add(item); err != nil {
			return err
		}
	}
	return nil
}
