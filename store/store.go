// ═══════════════════════════════════════════════════════════════════════════════════════════════
// RESULT HISTORY
// ═══════════════════════════════════════════════════════════════════════════════════════════════
// Project: Dual-Lane Benchmark Dispatcher
// Component: SQLite Archive Of Completed Reports
//
// Description:
//   Every finished invocation is archived as one reports row plus one runs row per measured
//   StartParallel/StopParallel pair, written in a single transaction. The archive is cold-path
//   only: it is opened after the measurement loop and never touched while lanes are running.
// ═══════════════════════════════════════════════════════════════════════════════════════════════

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dualmark/debug"
	"dualmark/report"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by Load for an unknown report id.
var ErrNotFound = errors.New("store: report not found")

// Store is an open result archive.
type Store struct {
	db *sql.DB
}

// Summary is one archived report without its per-run rows.
type Summary struct {
	ID                int64
	StartedAt         time.Time
	Backend           string
	IterationsPerLane int
	Runs              int
	TotalTicks        uint32
	MeanIterPerSec    float64
	Validated         bool
	DurationValid     bool
}

// Open opens (creating if needed) the archive at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" archives coherent.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connect %s: %w", path, err)
	}
	if err := configure(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	debug.DropMessage("STORE", "archive ready", "path", path)
	return &Store{db: db}, nil
}

func configure(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("store: %s: %w", p, err)
		}
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at          INTEGER NOT NULL,
		backend             TEXT    NOT NULL,
		lanes               INTEGER NOT NULL,
		seed                INTEGER NOT NULL,
		iterations_per_lane INTEGER NOT NULL,
		calibrated          INTEGER NOT NULL,
		go_version          TEXT    NOT NULL,
		platform            TEXT    NOT NULL,
		total_ticks         INTEGER NOT NULL,
		mean_iter_per_sec   REAL    NOT NULL,
		stddev_iter_per_sec REAL    NOT NULL,
		min_iter_per_sec    REAL    NOT NULL,
		max_iter_per_sec    REAL    NOT NULL,
		validated           INTEGER NOT NULL,
		duration_valid      INTEGER NOT NULL,
		payload             BLOB    NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		report_id    INTEGER NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
		run_index    INTEGER NOT NULL,
		ticks        INTEGER NOT NULL,
		iterations   INTEGER NOT NULL,
		iter_per_sec REAL    NOT NULL,
		crc_primary  INTEGER NOT NULL,
		crc_second   INTEGER NOT NULL,
		PRIMARY KEY (report_id, run_index)
	);

	CREATE INDEX IF NOT EXISTS reports_started ON reports(started_at);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// Close releases the archive.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save archives r and its runs atomically and returns the new report id.
func (s *Store) Save(ctx context.Context, r *report.Report) (id int64, err error) {
	payload, err := report.Encode(r)
	if err != nil {
		return 0, fmt.Errorf("store: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO reports (
			started_at, backend, lanes, seed, iterations_per_lane, calibrated,
			go_version, platform, total_ticks, mean_iter_per_sec, stddev_iter_per_sec,
			min_iter_per_sec, max_iter_per_sec, validated, duration_valid, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.StartedAt.UnixNano(), r.Backend, r.Lanes, int64(r.Seed), r.IterationsPerLane, r.Calibrated,
		r.GoVersion, r.Platform, r.TotalTicks, r.MeanIterPerSec, r.StdDevIterPerSec,
		r.MinIterPerSec, r.MaxIterPerSec, r.Validated, r.DurationValid, payload,
	)
	if err != nil {
		return 0, fmt.Errorf("store: insert report: %w", err)
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, fmt.Errorf("store: report id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO runs (report_id, run_index, ticks, iterations, iter_per_sec, crc_primary, crc_second)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("store: prepare runs: %w", err)
	}
	defer stmt.Close()

	for _, run := range r.Runs {
		if _, err = stmt.ExecContext(ctx, id, run.Index, run.Ticks, run.Iterations,
			run.IterPerSec, run.Checksums[0], run.Checksums[1]); err != nil {
			return 0, fmt.Errorf("store: insert run %d: %w", run.Index, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	return id, nil
}

// Recent returns up to limit archived reports, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.started_at, r.backend, r.iterations_per_lane,
		       (SELECT COUNT(*) FROM runs WHERE report_id = r.id),
		       r.total_ticks, r.mean_iter_per_sec, r.validated, r.duration_valid
		FROM reports r
		ORDER BY r.started_at DESC, r.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: recent: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			s       Summary
			started int64
		)
		if err := rows.Scan(&s.ID, &started, &s.Backend, &s.IterationsPerLane, &s.Runs,
			&s.TotalTicks, &s.MeanIterPerSec, &s.Validated, &s.DurationValid); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		s.StartedAt = time.Unix(0, started).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// Runs returns the archived runs of one report in run order.
func (s *Store) Runs(ctx context.Context, reportID int64) ([]report.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_index, ticks, iterations, iter_per_sec, crc_primary, crc_second
		FROM runs WHERE report_id = ? ORDER BY run_index`, reportID)
	if err != nil {
		return nil, fmt.Errorf("store: runs: %w", err)
	}
	defer rows.Close()

	var out []report.Run
	for rows.Next() {
		var run report.Run
		if err := rows.Scan(&run.Index, &run.Ticks, &run.Iterations, &run.IterPerSec,
			&run.Checksums[0], &run.Checksums[1]); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		run.Agree = run.Checksums[0] == run.Checksums[1]
		out = append(out, run)
	}
	return out, rows.Err()
}

// Load returns the full archived report with the given id.
func (s *Store) Load(ctx context.Context, id int64) (*report.Report, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM reports WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %d: %w", id, err)
	}
	r, err := report.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("store: load %d: %w", id, err)
	}
	return r, nil
}
