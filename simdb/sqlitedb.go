package simdb

import (
	"database/sql"
	"fmt"

	"hydrosim.watervault.org/internal/appconf"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// createDB creates a new SQLite database with the simulation tables
func createDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("test environment must use an in-memory database, got %s", config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// An in-memory database exists per connection, so the pool must be
	// pinned to a single connection to see one coherent database.
	if config.DBPath == ":memory:" {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	if _, err = db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("error enabling foreign keys: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	if err := createTables(tx); err != nil {
		tx.Rollback() // nolint:errcheck
		return nil, err
	}

	_, err = tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_run_weeks_run_id ON run_weeks(run_id);
		CREATE INDEX IF NOT EXISTS idx_run_weeks_reservoir_id ON run_weeks(reservoir_id);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return nil, fmt.Errorf("error creating indexes: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return db, nil
}

func createTables(tx *sql.Tx) error {
	stmts := map[string]string{
		"reservoirs": `
			CREATE TABLE IF NOT EXISTS reservoirs (
				reservoir_id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				capacity REAL NOT NULL,
				horizon_weeks INTEGER NOT NULL
			);`,
		"runs": `
			CREATE TABLE IF NOT EXISTS runs (
				run_id TEXT PRIMARY KEY,
				dataset TEXT NOT NULL,
				weeks INTEGER NOT NULL,
				outlet_release REAL NOT NULL,
				unfulfilled_demand REAL NOT NULL,
				created_at INTEGER NOT NULL
			);`,
		"run_weeks": `
			CREATE TABLE IF NOT EXISTS run_weeks (
				run_id TEXT NOT NULL,
				reservoir_id TEXT NOT NULL,
				week INTEGER NOT NULL,
				stored_volume REAL NOT NULL,
				release REAL NOT NULL,
				unfulfilled_demand REAL NOT NULL,
				PRIMARY KEY (run_id, reservoir_id, week)
			);`,
	}

	for name, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("error creating table %s: %w", name, err)
		}
	}
	return nil
}
