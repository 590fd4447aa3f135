// Package history persists one record per language build attempt to a
// local SQLite database, backing the status command. Recording is best
// effort: a store failure never fails a build.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Outcome classifies how a build attempt ended.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// Record is one language build attempt.
type Record struct {
	ID       string
	Language string
	Started  time.Time
	Duration time.Duration
	Outcome  Outcome
	ExitCode int
}

// Store is a SQLite-backed build history.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the history database. Use ":memory:"
// for an in-memory database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// One connection: every pooled connection to ":memory:" would get its
	// own empty database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		language TEXT NOT NULL,
		started INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		exit_code INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started);
	CREATE INDEX IF NOT EXISTS idx_builds_language ON builds(language);
	`
	_, err := s.db.Exec(schema)
	return err
}

// NewRecord starts a record for a language build; the caller fills in the
// outcome fields when the attempt finishes.
func NewRecord(language string) Record {
	return Record{
		ID:       uuid.NewString(),
		Language: language,
		Started:  time.Now(),
	}
}

// Append stores a finished build record.
func (s *Store) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (id, language, started, duration_ms, outcome, exit_code) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID, rec.Language, rec.Started.UnixMilli(), rec.Duration.Milliseconds(), string(rec.Outcome), rec.ExitCode,
	)
	if err != nil {
		return fmt.Errorf("insert build record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, language, started, duration_ms, outcome, exit_code FROM builds ORDER BY started DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query build records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var rec Record
		var started, durationMs int64
		var outcome string
		if err := rows.Scan(&rec.ID, &rec.Language, &started, &durationMs, &outcome, &rec.ExitCode); err != nil {
			return nil, fmt.Errorf("scan build record: %w", err)
		}
		rec.Started = time.UnixMilli(started)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		rec.Outcome = Outcome(outcome)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
