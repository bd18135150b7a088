// Package storage keeps a SQLite history of generated maps and the waves
// simulated on them. Uses the pure-Go modernc.org/sqlite driver.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages the SQLite connection.
type Store struct {
	db *sql.DB
}

// RunRecord is one map generation.
type RunRecord struct {
	ID        int64
	Seed      int64
	Radius    int
	HubSize   int
	Requested int
	Placed    int
	Attempts  int
	Valid     bool
	Failure   string // empty when the map passed validation
	CreatedAt time.Time
}

// WaveRecord is one simulated wave on a run's map.
type WaveRecord struct {
	RunID   int64
	Number  int
	Budget  float64
	Focus   string
	Pool    []string
	Planned int
}

// Open creates or opens the database at dbPath, creating parent directories
// and running migrations. A leading ~ expands to the home directory.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			radius INTEGER NOT NULL,
			hub_size INTEGER NOT NULL,
			lanes_requested INTEGER NOT NULL,
			lanes_placed INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			valid INTEGER NOT NULL,
			failure TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);

		CREATE TABLE IF NOT EXISTS waves (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			number INTEGER NOT NULL,
			budget REAL NOT NULL,
			focus TEXT NOT NULL,
			pool TEXT NOT NULL,
			planned INTEGER NOT NULL,
			PRIMARY KEY (run_id, number)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores a generation and returns its ID.
func (s *Store) RecordRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (seed, radius, hub_size, lanes_requested, lanes_placed, attempts, valid, failure)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Seed, r.Radius, r.HubSize, r.Requested, r.Placed, r.Attempts, r.Valid, r.Failure,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecordWave stores one wave of a run. Recording the same wave twice
// replaces the earlier row.
func (s *Store) RecordWave(w WaveRecord) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO waves (run_id, number, budget, focus, pool, planned)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		w.RunID, w.Number, w.Budget, w.Focus, strings.Join(w.Pool, ","), w.Planned,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record wave %d: %w", w.Number, err)
	}
	return nil
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, seed, radius, hub_size, lanes_requested, lanes_placed, attempts, valid, failure, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.Radius, &r.HubSize, &r.Requested, &r.Placed,
			&r.Attempts, &r.Valid, &r.Failure, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Waves returns the recorded waves of a run in wave order.
func (s *Store) Waves(runID int64) ([]WaveRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, number, budget, focus, pool, planned
		 FROM waves
		 WHERE run_id = ?
		 ORDER BY number`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query waves: %w", err)
	}
	defer rows.Close()

	var waves []WaveRecord
	for rows.Next() {
		var w WaveRecord
		var pool string
		if err := rows.Scan(&w.RunID, &w.Number, &w.Budget, &w.Focus, &pool, &w.Planned); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if pool != "" {
			w.Pool = strings.Split(pool, ",")
		}
		waves = append(waves, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return waves, nil
}

// FailureRate returns the share of recorded runs that kept an invalid map.
func (s *Store) FailureRate() (float64, error) {
	var total, failed sql.NullInt64
	err := s.db.QueryRow(`SELECT COUNT(*), SUM(CASE WHEN valid = 0 THEN 1 ELSE 0 END) FROM runs`).Scan(&total, &failed)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query failure rate: %w", err)
	}
	if !total.Valid || total.Int64 == 0 {
		return 0, nil
	}
	return float64(failed.Int64) / float64(total.Int64), nil
}

// parseTime handles both time.Time and string values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
