package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Status is the lifecycle state of a service request. It only moves forward,
// one step at a time; there is no skip and no reverse transition.
type Status string

const (
	StatusPendiente Status = "Pendiente"
	StatusAprobado  Status = "Aprobado"
	StatusEnProceso Status = "En Proceso"
	StatusTerminado Status = "Terminado"
)

var statusOrder = []Status{StatusPendiente, StatusAprobado, StatusEnProceso, StatusTerminado}

// Next returns the following status. ok is false when s is terminal or unknown.
func (s Status) Next() (Status, bool) {
	for i, st := range statusOrder {
		if st == s && i+1 < len(statusOrder) {
			return statusOrder[i+1], true
		}
	}
	return s, false
}

// ErrTerminalStatus is returned when advancing a request already in Terminado.
var ErrTerminalStatus = errors.New("service request is already in a terminal status")

// ErrPriceNotAllowed is returned when a price is supplied on a non-terminal transition.
var ErrPriceNotAllowed = errors.New("price can only be set when completing a request")

// ServiceRequest is a committed service confirmation plus its lifecycle state.
type ServiceRequest struct {
	ID        string
	Name      string
	Phone     string
	Details   string
	Address   string
	Status    Status
	Price     *float64 // set only on the transition to Terminado
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HistoryStorage persists service requests in sqlite.
type HistoryStorage struct {
	db *sql.DB
}

// NewHistoryStorage opens (and initializes if needed) the history database
// under dataDir.
func NewHistoryStorage(dataDir string) (*HistoryStorage, error) {
	dbPath := filepath.Join(dataDir, "history.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	storage := &HistoryStorage{db: db}

	if err := storage.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return storage, nil
}

func (hs *HistoryStorage) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS service_requests (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		details TEXT NOT NULL,
		address TEXT NOT NULL,
		status TEXT NOT NULL,
		price REAL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_service_requests_created_at
		ON service_requests(created_at);
	`
	if _, err := hs.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Add commits a new request with status Pendiente and no price. The caller
// has already validated the confirmation fields (see the confirm package).
func (hs *HistoryStorage) Add(name, phone, details, address string) (*ServiceRequest, error) {
	now := time.Now()
	req := &ServiceRequest{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Details:   details,
		Address:   address,
		Status:    StatusPendiente,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := hs.db.Exec(
		`INSERT INTO service_requests (id, name, phone, details, address, status, price, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULL, ?, ?)`,
		req.ID, req.Name, req.Phone, req.Details, req.Address, string(req.Status),
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert service request: %w", err)
	}

	return req, nil
}

// Get loads one request by id.
func (hs *HistoryStorage) Get(id string) (*ServiceRequest, error) {
	row := hs.db.QueryRow(
		`SELECT id, name, phone, details, address, status, price, created_at, updated_at
		 FROM service_requests WHERE id = ?`, id)
	return scanRequest(row)
}

// List returns all requests, newest first.
func (hs *HistoryStorage) List() ([]ServiceRequest, error) {
	rows, err := hs.db.Query(
		`SELECT id, name, phone, details, address, status, price, created_at, updated_at
		 FROM service_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query service requests: %w", err)
	}
	defer rows.Close()

	var requests []ServiceRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// Advance moves a request one step forward. A price may only accompany the
// transition into Terminado; it is optional even there.
func (hs *HistoryStorage) Advance(id string, price *float64) (*ServiceRequest, error) {
	req, err := hs.Get(id)
	if err != nil {
		return nil, err
	}

	next, ok := req.Status.Next()
	if !ok {
		return nil, ErrTerminalStatus
	}
	if price != nil && next != StatusTerminado {
		return nil, ErrPriceNotAllowed
	}

	req.Status = next
	req.UpdatedAt = time.Now()
	if next == StatusTerminado {
		req.Price = price
	}

	var priceVal any
	if req.Price != nil {
		priceVal = *req.Price
	}
	_, err = hs.db.Exec(
		`UPDATE service_requests SET status = ?, price = ?, updated_at = ? WHERE id = ?`,
		string(req.Status), priceVal, req.UpdatedAt, req.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update service request: %w", err)
	}

	return req, nil
}

// Delete removes a request.
func (hs *HistoryStorage) Delete(id string) error {
	_, err := hs.db.Exec(`DELETE FROM service_requests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service request: %w", err)
	}
	return nil
}

// Close closes the database.
func (hs *HistoryStorage) Close() error {
	return hs.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*ServiceRequest, error) {
	var req ServiceRequest
	var status string
	var price sql.NullFloat64

	err := row.Scan(&req.ID, &req.Name, &req.Phone, &req.Details, &req.Address,
		&status, &price, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan service request: %w", err)
	}

	req.Status = Status(status)
	if price.Valid {
		req.Price = &price.Float64
	}
	return &req, nil
}
