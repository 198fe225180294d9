package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 4

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial cutoff schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS cutoff_records (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					year TEXT NOT NULL DEFAULT '',
					round TEXT NOT NULL DEFAULT '',
					institute_code TEXT NOT NULL DEFAULT '',
					course_code TEXT NOT NULL DEFAULT '',
					category TEXT NOT NULL DEFAULT '',
					branch_name TEXT NOT NULL DEFAULT '',
					college_name TEXT NOT NULL DEFAULT '',
					cutoff_rank INTEGER,
					total_seats INTEGER,
					available_seats INTEGER
				)`,
				`CREATE INDEX idx_cutoff_records_option ON cutoff_records(institute_code, course_code)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Add simulation history",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS simulations (
					id TEXT PRIMARY KEY,
					student_rank INTEGER NOT NULL,
					category TEXT NOT NULL,
					year TEXT NOT NULL,
					round TEXT NOT NULL,
					preferences TEXT NOT NULL,
					result TEXT NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_simulations_created_at ON simulations(created_at)`,
			)
		},
	},
	{
		Version:     3,
		Description: "Add rank prediction history",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS rank_predictions (
					id TEXT PRIMARY KEY,
					exam_score REAL NOT NULL,
					board_pct REAL NOT NULL,
					composite REAL NOT NULL,
					rank_low INTEGER NOT NULL,
					rank_medium INTEGER NOT NULL,
					rank_high INTEGER NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_rank_predictions_created_at ON rank_predictions(created_at)`,
			)
		},
	},
	{
		Version:     4,
		Description: "Index simulation outcomes",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`ALTER TABLE simulations ADD COLUMN best_option TEXT NOT NULL DEFAULT ''`,
				`ALTER TABLE simulations ADD COLUMN best_chance TEXT NOT NULL DEFAULT ''`,
				`CREATE INDEX idx_simulations_best_option ON simulations(best_option)`,
			)
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
