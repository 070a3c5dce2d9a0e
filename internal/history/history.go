// Package history records run outcomes in a local SQLite database so flaky
// steps can be spotted across runs. With a master key the database is
// encrypted via SQLCipher; the file may hold credentials' side effects
// (page URLs, error text), so encryption at rest is cheap to keep on.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mutecomm/go-sqlcipher/v4"

	"github.com/quorumhq/quorum-e2e/internal/artifacts"
	"github.com/quorumhq/quorum-e2e/internal/obs"
)

var log = obs.Pkg("history")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    started_at INTEGER NOT NULL,
    finished_at INTEGER NOT NULL,
    passed INTEGER NOT NULL,
    failed INTEGER NOT NULL,
    skipped INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS steps (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES runs(run_id),
    name TEXT NOT NULL,
    status TEXT NOT NULL,
    duration_ms INTEGER NOT NULL,
    error TEXT,
    screenshot TEXT
);
CREATE INDEX IF NOT EXISTS idx_steps_run_id ON steps(run_id);
CREATE INDEX IF NOT EXISTS idx_steps_name ON steps(name);
`

// DB is the run-history store.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path. A non-empty
// masterKeyHex turns on SQLCipher encryption.
func Open(path, masterKeyHex string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	dsn := path + "?_busy_timeout=5000&_journal_mode=WAL"
	if masterKeyHex != "" {
		dsn += "&_pragma_key=" + url.QueryEscape(fmt.Sprintf("x'%s'", masterKeyHex))
	}

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// SQLite is single-writer; keep the pool tiny.
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetMaxIdleConns(1)

	if _, err := sqlDB.Exec(schema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	log.Debug("history db open", "path", path, "encrypted", masterKeyHex != "")
	return &DB{db: sqlDB}, nil
}

// Close releases the underlying connection pool.
func (h *DB) Close() error {
	return h.db.Close()
}

// RecordRun stores a finished run and its steps atomically.
func (h *DB) RecordRun(ctx context.Context, rep *artifacts.Report) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, finished_at, passed, failed, skipped)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rep.RunID, rep.StartedAt.Unix(), rep.FinishedAt.Unix(),
		rep.Passed, rep.Failed, rep.Skipped)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", rep.RunID, err)
	}

	for _, s := range rep.Steps {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO steps (run_id, name, status, duration_ms, error, screenshot)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rep.RunID, s.Name, s.Status, s.Duration.Milliseconds(), s.Error, s.Screenshot)
		if err != nil {
			return fmt.Errorf("insert step %q: %w", s.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history transaction: %w", err)
	}
	return nil
}

// FlakyStep is a step that both passed and failed across recorded runs.
type FlakyStep struct {
	Name     string
	Passes   int
	Failures int
}

// FlakySteps returns steps with mixed outcomes, worst offenders first.
func (h *DB) FlakySteps(ctx context.Context, limit int) ([]FlakyStep, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT name,
		        SUM(status = 'passed') AS passes,
		        SUM(status = 'failed') AS failures
		 FROM steps
		 GROUP BY name
		 HAVING passes > 0 AND failures > 0
		 ORDER BY failures DESC, name
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query flaky steps: %w", err)
	}
	defer rows.Close()

	var out []FlakyStep
	for rows.Next() {
		var fs FlakyStep
		if err := rows.Scan(&fs.Name, &fs.Passes, &fs.Failures); err != nil {
			return nil, fmt.Errorf("scan flaky step: %w", err)
		}
		out = append(out, fs)
	}
	return out, rows.Err()
}

// RunCount returns the number of recorded runs.
func (h *DB) RunCount(ctx context.Context) (int, error) {
	var n int
	err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n)
	return n, err
}
