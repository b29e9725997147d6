// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive records harvest runs and the works each run accepted in a
// SQLite database, so coverage can be audited and compared across runs.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/venue-harvester/pkg/types"
)

// ErrNoRuns is returned when the archive holds no finished run.
var ErrNoRuns = errors.New("archive has no finished runs")

// Store manages the archive database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			min_year INTEGER,
			max_year INTEGER,
			config TEXT,
			works INTEGER DEFAULT 0,
			institutions INTEGER DEFAULT 0,
			authors INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS works (
			run_id TEXT NOT NULL REFERENCES runs(id),
			work_id TEXT NOT NULL,
			venue TEXT NOT NULL,
			year INTEGER,
			title TEXT,
			PRIMARY KEY (run_id, work_id, venue)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_works_venue ON works(run_id, venue)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run is one archived harvest.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	MinYear      int
	MaxYear      int
	Works        int
	Institutions int
	Authors      int
}

// RunTotals are written when a run finishes.
type RunTotals struct {
	Institutions int
	Authors      int
}

// VenueCount is the number of works a run accepted from one venue.
type VenueCount struct {
	Venue string
	Works int
}

// BeginRun records the start of a run and returns its id.
func (s *Store) BeginRun(ctx context.Context, cfg types.HarvestConfig) (string, error) {
	id := uuid.NewString()
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding run config: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, min_year, max_year, config) VALUES (?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339Nano), cfg.MinYear, cfg.MaxYear, string(cfgJSON),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	return id, nil
}

// RecordWork stores one accepted work. Recording the same work twice for a
// venue within a run is a no-op.
func (s *Store) RecordWork(ctx context.Context, runID, venue string, w types.Work) error {
	var year any
	if w.Year != nil {
		year = *w.Year
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO works (run_id, work_id, venue, year, title) VALUES (?, ?, ?, ?, ?)`,
		runID, w.ID, venue, year, w.Title,
	)
	if err != nil {
		return fmt.Errorf("recording work %s: %w", w.ID, err)
	}
	return nil
}

// FinishRun stamps the run's end time and totals.
func (s *Store) FinishRun(ctx context.Context, runID string, totals RunTotals) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, institutions = ?, authors = ?,
			works = (SELECT count(*) FROM works WHERE run_id = ?)
		 WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), totals.Institutions, totals.Authors, runID, runID,
	)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finishing run %s: no such run", runID)
	}
	return nil
}

// LastRun returns the most recently started finished run.
func (s *Store) LastRun(ctx context.Context) (Run, error) {
	runs, err := s.Runs(ctx, 1)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, ErrNoRuns
	}
	return runs[0], nil
}

// Runs lists finished runs, newest first. A limit of zero lists all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, finished_at, min_year, max_year, works, institutions, authors
		FROM runs WHERE finished_at IS NOT NULL ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.MinYear, &r.MaxYear, &r.Works, &r.Institutions, &r.Authors); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// VenueCounts returns per-venue accepted work counts for a run, ordered by
// count descending then venue.
func (s *Store) VenueCounts(ctx context.Context, runID string) ([]VenueCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT venue, count(*) AS n FROM works WHERE run_id = ?
		 GROUP BY venue ORDER BY n DESC, venue ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying venue counts: %w", err)
	}
	defer rows.Close()

	var out []VenueCount
	for rows.Next() {
		var vc VenueCount
		if err := rows.Scan(&vc.Venue, &vc.Works); err != nil {
			return nil, fmt.Errorf("scanning venue count: %w", err)
		}
		out = append(out, vc)
	}
	return out, rows.Err()
}
