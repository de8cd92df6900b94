// Package provenance records every resolved bank configuration in a SQLite
// database so that a bank can be traced back to the exact options used.
package provenance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS bank_runs (
	run_id       TEXT PRIMARY KEY,
	tool         TEXT NOT NULL,
	argv_json    TEXT NOT NULL,
	params_json  TEXT,
	outcome      TEXT NOT NULL,
	error_text   TEXT,
	created_at   TEXT NOT NULL
);
`

// Outcome classifies how a configuration run ended.
type Outcome string

const (
	OutcomeOK         Outcome = "ok"
	OutcomeInvalid    Outcome = "invalid"
	OutcomeInfeasible Outcome = "infeasible"
)

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("provenance: run not found")

// Run is one recorded configuration attempt. Params holds the JSON report
// for successful runs.
type Run struct {
	ID        string
	Tool      string
	Argv      []string
	Params    json.RawMessage
	Outcome   Outcome
	Error     string
	CreatedAt time.Time
}

// Store manages bank runs in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000", schema} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores r, assigning an id and timestamp when they are empty, and
// returns the stored run.
func (s *Store) Record(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.Argv == nil {
		r.Argv = []string{}
	}
	argv, err := json.Marshal(r.Argv)
	if err != nil {
		return Run{}, fmt.Errorf("marshal argv: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO bank_runs (run_id, tool, argv_json, params_json, outcome, error_text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Tool, string(argv), nullIfEmpty(string(r.Params)), string(r.Outcome),
		nullIfEmpty(r.Error), r.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return r, nil
}

const selectRun = `SELECT run_id, tool, argv_json, params_json, outcome, error_text, created_at FROM bank_runs`

// Get returns the run with the given id.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, selectRun+` WHERE run_id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

// Recent returns up to n runs, most recently recorded first.
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, selectRun+` ORDER BY rowid DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r               Run
		argv, created   string
		params, errText sql.NullString
		outcome         string
	)
	if err := sc.Scan(&r.ID, &r.Tool, &argv, &params, &outcome, &errText, &created); err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(argv), &r.Argv); err != nil {
		return Run{}, fmt.Errorf("decode argv of %s: %w", r.ID, err)
	}
	if params.Valid {
		r.Params = json.RawMessage(params.String)
	}
	r.Outcome = Outcome(outcome)
	r.Error = errText.String
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Run{}, fmt.Errorf("decode created_at of %s: %w", r.ID, err)
	}
	r.CreatedAt = t
	return r, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
