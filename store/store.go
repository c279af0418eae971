// Package store provides SQLite-backed persistence for normalized
// fragments. The normalizer core itself never persists anything; the store
// is a downstream consumer of the fragment aggregate.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/stencil-xyz/go-stencil/graph"
)

// ErrNotFound is returned when a fragment id does not exist in the store.
var ErrNotFound = errors.New("fragment not found")

// Store handles SQLite database operations for fragment documents.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Record describes one stored fragment without its payload.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CID       string    `json:"cid"`
	CreatedAt time.Time `json:"created_at"`
}

// Open opens (creating if necessary) the fragment database at the given
// path and applies schema migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, log: slog.Default()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS fragments (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		cid TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_fragments_name ON fragments(name);
	CREATE INDEX IF NOT EXISTS idx_fragments_cid ON fragments(cid);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save stores a fragment under a fresh uuid and returns the id. The CID is
// recorded alongside the payload for cheap change detection.
func (s *Store) Save(ctx context.Context, name string, f *graph.Fragment) (string, error) {
	payload, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("encode fragment: %w", err)
	}

	id := uuid.New().String()
	cid := f.CID()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO fragments (id, name, cid, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, cid, string(payload), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert fragment: %w", err)
	}

	s.log.Debug("fragment saved", "id", id, "name", name, "cid", cid)
	return id, nil
}

// Load retrieves a fragment by id.
func (s *Store) Load(ctx context.Context, id string) (*graph.Fragment, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM fragments WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query fragment: %w", err)
	}

	var f graph.Fragment
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		return nil, fmt.Errorf("decode fragment %s: %w", id, err)
	}
	return &f, nil
}

// List returns the records of all stored fragments, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, cid, created_at FROM fragments ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list fragments: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.CID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Delete removes a stored fragment by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM fragments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete fragment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
