package telemetry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// History stores bench results in a SQLite database.
// A nil *History is valid and records nothing.
type History struct {
	db *sql.DB
}

// BenchResult is one completed bench run.
type BenchResult struct {
	ID          int64
	Seed        uint64
	Frames      int
	FinalBodies int
	PeakBodies  int
	AvgTickUS   int64
	P99TickUS   int64
	TicksPerSec float64
	Workers     int
	Host        HostInfo
	CreatedAt   time.Time
}

// OpenHistory creates or opens a history database at path.
// It creates the parent directories if needed and runs migrations.
// An empty path disables history and returns nil.
func OpenHistory(path string) (*History, error) {
	if path == "" {
		return nil, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("history: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("history: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: cannot connect to database: %w", err)
	}

	h := &History{db: db}
	if err := h.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: migration failed: %w", err)
	}
	return h, nil
}

func (h *History) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS bench_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed TEXT NOT NULL,
			frames INTEGER NOT NULL,
			final_bodies INTEGER NOT NULL,
			peak_bodies INTEGER NOT NULL,
			avg_tick_us INTEGER NOT NULL,
			p99_tick_us INTEGER NOT NULL,
			ticks_per_sec REAL NOT NULL,
			workers INTEGER NOT NULL,
			cpu_model TEXT NOT NULL DEFAULT '',
			logical_cpus INTEGER NOT NULL DEFAULT 0,
			total_mem_mb INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_bench_runs_created ON bench_runs(created_at DESC);
	`
	_, err := h.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (h *History) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Save records a bench result and returns its ID.
func (h *History) Save(r BenchResult) (int64, error) {
	if h == nil {
		return 0, nil
	}
	// Seeds use the full uint64 range, which SQLite integers cannot hold.
	result, err := h.db.Exec(
		`INSERT INTO bench_runs (seed, frames, final_bodies, peak_bodies, avg_tick_us, p99_tick_us,
			ticks_per_sec, workers, cpu_model, logical_cpus, total_mem_mb)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strconv.FormatUint(r.Seed, 10), r.Frames, r.FinalBodies, r.PeakBodies, r.AvgTickUS, r.P99TickUS,
		r.TicksPerSec, r.Workers, r.Host.CPUModel, r.Host.LogicalCPUs, r.Host.TotalMemMB,
	)
	if err != nil {
		return 0, fmt.Errorf("history: cannot save bench result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: cannot get last insert ID: %w", err)
	}
	return id, nil
}

// Recent returns up to limit bench results, newest first.
func (h *History) Recent(limit int) ([]BenchResult, error) {
	if h == nil {
		return nil, nil
	}
	rows, err := h.db.Query(
		`SELECT id, seed, frames, final_bodies, peak_bodies, avg_tick_us, p99_tick_us,
			ticks_per_sec, workers, cpu_model, logical_cpus, total_mem_mb, created_at
		FROM bench_runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: cannot query bench results: %w", err)
	}
	defer rows.Close()

	var results []BenchResult
	for rows.Next() {
		var r BenchResult
		var seed string
		var createdAt any
		if err := rows.Scan(
			&r.ID, &seed, &r.Frames, &r.FinalBodies, &r.PeakBodies, &r.AvgTickUS, &r.P99TickUS,
			&r.TicksPerSec, &r.Workers, &r.Host.CPUModel, &r.Host.LogicalCPUs, &r.Host.TotalMemMB,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("history: cannot scan bench result: %w", err)
		}

		// The driver may return DATETIME as time.Time or as text.
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse(time.DateTime, v); err == nil {
				r.CreatedAt = parsed
			}
		}
		if r.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("history: bad seed %q: %w", seed, err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: error iterating results: %w", err)
	}
	return results, nil
}
