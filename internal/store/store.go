// Package store keeps the run ledger in SQLite.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/primefactorize/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MemoryPath opens a private in-memory database that lives as long as the Store.
const MemoryPath = ":memory:"

// Store wraps SQLite access for run data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database and applies migrations.
func Open(path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// OpenMemory opens a ledger that is discarded when closed.
func OpenMemory() (*Store, error) {
	return Open(MemoryPath)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			divisions INTEGER NOT NULL,
			primes INTEGER NOT NULL,
			cause TEXT NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun stores a finished game.
func (s *Store) RecordRun(ctx context.Context, run model.RunStats) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, ended_at, score, level, divisions, primes, cause, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.Score,
		run.Level,
		run.Divisions,
		run.Primes,
		run.Cause,
		run.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns runs oldest first. last > 0 keeps only the most recent ones.
func (s *Store) ListRuns(ctx context.Context, last int) ([]model.RunAggregate, error) {
	query := `SELECT id, ended_at, score, level, divisions, cause, duration_ms FROM (
		SELECT * FROM runs ORDER BY id DESC LIMIT ?
	) ORDER BY id ASC`
	limit := last
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunAggregate
	for rows.Next() {
		var agg model.RunAggregate
		var endedAt string
		if err := rows.Scan(&agg.RunID, &endedAt, &agg.Score, &agg.Level, &agg.Divisions, &agg.Cause, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		runs = append(runs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Summary aggregates every stored run.
func (s *Store) Summary(ctx context.Context) (model.SessionSummary, error) {
	var sum model.SessionSummary
	row := s.db.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(MAX(score), 0),
		COALESCE(MAX(level), 0),
		COALESCE(AVG(score), 0),
		COALESCE(SUM(CASE WHEN cause = 'timeout' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN cause = 'wrong' THEN 1 ELSE 0 END), 0)
		FROM runs`)
	if err := row.Scan(&sum.Runs, &sum.BestScore, &sum.BestLevel, &sum.AvgScore, &sum.Timeouts, &sum.Wrong); err != nil {
		return model.SessionSummary{}, err
	}
	return sum, nil
}
