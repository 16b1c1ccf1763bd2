// Package sqlite keeps a local history of simulation runs in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/tracetm/pkg/domain"
	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    machine TEXT NOT NULL,
    input TEXT NOT NULL,
    max_steps INTEGER NOT NULL,

    -- Denormalized verdict fields for querying; the full verdict is in verdict_json.
    outcome TEXT,
    steps INTEGER,
    nondeterminism REAL,
    verdict_json TEXT,

    error TEXT,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_machine_outcome ON runs(machine, outcome);
`

// timeLayout is fixed-width so that created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements ports.RunStore on SQLite.
type Store struct {
	db *sql.DB
}

// Open creates (or reuses) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with single writer
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Save inserts or replaces the run.
func (s *Store) Save(ctx context.Context, record *domain.RunRecord) error {
	var (
		outcome, verdictJSON sql.NullString
		steps                sql.NullInt64
		nondeterminism       sql.NullFloat64
	)
	if v := record.Verdict; v != nil {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal verdict: %w", err)
		}
		outcome = sql.NullString{String: string(v.Kind), Valid: true}
		steps = sql.NullInt64{Int64: int64(v.Steps), Valid: true}
		nondeterminism = sql.NullFloat64{Float64: v.Nondeterminism, Valid: true}
		verdictJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
			(id, machine, input, max_steps, outcome, steps, nondeterminism, verdict_json, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Machine, record.Input, record.MaxSteps,
		outcome, steps, nondeterminism, verdictJSON,
		nullString(record.Error), record.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// Load retrieves a run by ID.
func (s *Store) Load(ctx context.Context, id string) (*domain.RunRecord, error) {
	var (
		record      domain.RunRecord
		verdictJSON sql.NullString
		runErr      sql.NullString
		createdAt   string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, machine, input, max_steps, verdict_json, error, created_at
		FROM runs WHERE id = ?`, id,
	).Scan(&record.ID, &record.Machine, &record.Input, &record.MaxSteps, &verdictJSON, &runErr, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	if verdictJSON.Valid {
		var v domain.Verdict
		if err := json.Unmarshal([]byte(verdictJSON.String), &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal verdict: %w", err)
		}
		record.Verdict = &v
	}
	record.Error = runErr.String

	record.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	return &record, nil
}

// Delete removes a run.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

// List returns run IDs, oldest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// OutcomeCount is one row of Stats.
type OutcomeCount struct {
	Machine string
	Outcome string
	Runs    int
}

// Stats aggregates stored runs per machine and outcome. Failed runs report outcome "error".
func (s *Store) Stats(ctx context.Context) ([]OutcomeCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT machine, COALESCE(outcome, 'error'), COUNT(*)
		FROM runs GROUP BY machine, COALESCE(outcome, 'error')
		ORDER BY machine, 2`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate runs: %w", err)
	}
	defer rows.Close()

	var out []OutcomeCount
	for rows.Next() {
		var c OutcomeCount
		if err := rows.Scan(&c.Machine, &c.Outcome, &c.Runs); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
