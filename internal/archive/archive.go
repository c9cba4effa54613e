// Package archive is the optional load-test result archive spec §1 names
// as an external storage collaborator: the Load-Test Engine (and the TUI
// above it) call this package's methods and never touch SQL directly, so
// its storage is opaque to the rest of the core.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/restcli-core/internal/loadtest/metrics"
	"github.com/studiowebux/restcli-core/internal/model"
)

// Store wraps a SQLite database holding completed run summaries.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	endpoint_id   TEXT NOT NULL,
	endpoint_name TEXT NOT NULL,
	concurrency   INTEGER NOT NULL,
	duration_sec  INTEGER NOT NULL,
	ramp_up_sec   INTEGER NOT NULL,
	started_at    DATETIME NOT NULL,
	completed_at  DATETIME,
	total         INTEGER NOT NULL,
	success       INTEGER NOT NULL,
	failure       INTEGER NOT NULL,
	min_ms        INTEGER NOT NULL,
	p50_ms        INTEGER NOT NULL,
	p90_ms        INTEGER NOT NULL,
	p95_ms        INTEGER NOT NULL,
	p99_ms        INTEGER NOT NULL,
	max_ms        INTEGER NOT NULL
);
`

// Open opens (and migrates) the archive database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &model.SerializationError{Path: path, Underlying: err}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &model.SerializationError{Path: path, Underlying: err}
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// RunSummary is the opaque record persisted for one completed load test.
type RunSummary struct {
	EndpointID   string
	EndpointName string
	Config       model.LoadTestConfig
	StartedAt    time.Time
	CompletedAt  time.Time
	Snapshot     metrics.Snapshot
}

// RecordRun persists a completed run summary.
func (s *Store) RecordRun(r RunSummary) error {
	p := r.Snapshot.Percentiles
	_, err := s.db.Exec(`
		INSERT INTO runs
		(endpoint_id, endpoint_name, concurrency, duration_sec, ramp_up_sec,
		 started_at, completed_at, total, success, failure,
		 min_ms, p50_ms, p90_ms, p95_ms, p99_ms, max_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.EndpointID, r.EndpointName, r.Config.Concurrency, r.Config.DurationSec, r.Config.RampUpSec,
		r.StartedAt, r.CompletedAt, r.Snapshot.Total, r.Snapshot.Success, r.Snapshot.Failure,
		p.Min.Milliseconds(), p.P50.Milliseconds(), p.P90.Milliseconds(), p.P95.Milliseconds(), p.P99.Milliseconds(), p.Max.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs for an endpoint, newest first.
func (s *Store) ListRuns(endpointID string, limit int) ([]RunSummary, error) {
	rows, err := s.db.Query(`
		SELECT endpoint_id, endpoint_name, concurrency, duration_sec, ramp_up_sec,
		       started_at, completed_at, total, success, failure,
		       min_ms, p50_ms, p90_ms, p95_ms, p99_ms, max_ms
		FROM runs WHERE endpoint_id = ? ORDER BY started_at DESC LIMIT ?
	`, endpointID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var minMs, p50, p90, p95, p99, maxMs int64
		if err := rows.Scan(&r.EndpointID, &r.EndpointName, &r.Config.Concurrency, &r.Config.DurationSec, &r.Config.RampUpSec,
			&r.StartedAt, &r.CompletedAt, &r.Snapshot.Total, &r.Snapshot.Success, &r.Snapshot.Failure,
			&minMs, &p50, &p90, &p95, &p99, &maxMs); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Snapshot.Percentiles = metrics.Percentiles{
			Min: time.Duration(minMs) * time.Millisecond,
			P50: time.Duration(p50) * time.Millisecond,
			P90: time.Duration(p90) * time.Millisecond,
			P95: time.Duration(p95) * time.Millisecond,
			P99: time.Duration(p99) * time.Millisecond,
			Max: time.Duration(maxMs) * time.Millisecond,
		}
		out = append(out, r)
	}
	return out, nil
}
