// Package history persists resolve-run records to SQLite, giving builds an
// inspectable trail of what was resolved, from which inputs, and how long it
// took.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/navbuilder/internal/manifest"
)

// Store is a SQLite-backed resolve-run history.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens a history store. Use ":memory:" for an in-memory
// store (tests), or a file path for persistence.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS resolve_runs (
		id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		config_hash TEXT NOT NULL,
		manifest_hash TEXT NOT NULL,
		status TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		record BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON resolve_runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_status ON resolve_runs(status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores a completed resolve record.
func (s *Store) Append(ctx context.Context, rec *manifest.ResolveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO resolve_runs (id, timestamp, config_hash, manifest_hash, status, duration_ms, record)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Timestamp.UnixMilli(), rec.ConfigHash, rec.ManifestHash, rec.Status, rec.DurationMS, payload)
	if err != nil {
		return fmt.Errorf("insert resolve run: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*manifest.ResolveRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM resolve_runs ORDER BY timestamp DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query resolve runs: %w", err)
	}
	defer rows.Close()

	var records []*manifest.ResolveRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan resolve run: %w", err)
		}
		rec, err := manifest.RecordFromJSON(payload)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Prune deletes all but the newest keep records. keep <= 0 is a no-op.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM resolve_runs WHERE id NOT IN (
			SELECT id FROM resolve_runs ORDER BY timestamp DESC, id LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune resolve runs: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }
