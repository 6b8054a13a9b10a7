package inquiry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// createdLayout is fixed-width so created_at sorts lexically.
const createdLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store keeps inquiries in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path and ensures the
// schema exists.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("inquiry: configure sqlite: %w", err)
	}
	db.SetMaxOpenConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS inquiries (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    service_type TEXT NOT NULL,
    details TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_inquiries_created_at ON inquiries(created_at);
`)
	return err
}

// Save assigns an id and timestamp to in and stores it.
func (s *Store) Save(ctx context.Context, in Inquiry) (Inquiry, error) {
	in.ID = uuid.NewString()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO inquiries (id, name, email, phone, service_type, details, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Email, in.Phone, in.ServiceType, in.Details, in.CreatedAt.UTC().Format(createdLayout))
	if err != nil {
		return Inquiry{}, fmt.Errorf("inquiry: save: %w", err)
	}
	return in, nil
}

// List returns every inquiry, newest first.
func (s *Store) List(ctx context.Context) ([]Inquiry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, phone, service_type, details, created_at FROM inquiries ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Inquiry
	for rows.Next() {
		var in Inquiry
		var created string
		if err := rows.Scan(&in.ID, &in.Name, &in.Email, &in.Phone, &in.ServiceType, &in.Details, &created); err != nil {
			return nil, err
		}
		in.CreatedAt, _ = time.Parse(createdLayout, created)
		out = append(out, in)
	}
	return out, rows.Err()
}

// Delete removes an inquiry by id. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM inquiries WHERE id = ?`, id)
	return err
}
