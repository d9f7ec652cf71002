package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			outcome        TEXT NOT NULL,
			percent_move   REAL,
			price          REAL,
			vix            REAL,
			deployed_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS deployments (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			tranche_idx    INTEGER NOT NULL,
			amount         INTEGER NOT NULL,
			vix            REAL,
			allocation     TEXT,
			deployed_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_deployments_ts ON deployments(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs
		(timestamp, outcome, percent_move, price, vix, deployed_count)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Outcome, rec.PercentMove, rec.Price, rec.VIX, rec.DeployedCount,
	)
	return err
}

func (r *SQLiteRecorder) RecordDeployment(rec *DeploymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	allocJSON := "{}"
	amounts := make(map[string]int64, len(rec.Allocation))
	for _, e := range rec.Allocation {
		amounts[e.Fund] = e.Amount
	}
	if data, err := json.Marshal(amounts); err == nil {
		allocJSON = string(data)
	}

	_, err := r.db.Exec(`INSERT INTO deployments
		(timestamp, tranche_idx, amount, vix, allocation, deployed_count)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), rec.TrancheIndex, rec.Amount, rec.VIX, allocJSON, rec.DeployedCount,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
