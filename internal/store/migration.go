package store

import (
	"database/sql"
	"fmt"
)

const currentSchemaVersion = 2

// RunMigrations creates the schema on a fresh database and applies any
// pending migrations to an existing one.
func (s *SQLiteStore) RunMigrations() error {
	version, err := s.getSchemaVersion()
	if err != nil {
		return err
	}

	if version < 1 {
		if err := s.createSchema(); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if version < 2 {
		if err := s.migrateToV2(); err != nil {
			return fmt.Errorf("migration to v2 failed: %w", err)
		}
	}

	return nil
}

// getSchemaVersion returns the current schema version, 0 for an empty database
func (s *SQLiteStore) getSchemaVersion() (int, error) {
	var tableName string
	err := s.db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='travel_schema_version'
	`).Scan(&tableName)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var version int
	err = s.db.QueryRow("SELECT COALESCE(MAX(version), 1) FROM travel_schema_version").Scan(&version)
	if err != nil {
		return 0, err
	}

	return version, nil
}

// createSchema creates the v1 tables.
func (s *SQLiteStore) createSchema() error {
	schema := `
	-- Schema version tracking
	CREATE TABLE IF NOT EXISTS travel_schema_version (
		version INTEGER PRIMARY KEY
	);

	-- Projects and their current branch marker
	CREATE TABLE IF NOT EXISTS projects (
		name TEXT PRIMARY KEY,
		current_branch TEXT
	);

	-- Branch logs (commits are newline-delimited, newest first)
	CREATE TABLE IF NOT EXISTS branch_logs (
		project TEXT NOT NULL,
		branch TEXT NOT NULL,
		commits TEXT NOT NULL,
		head TEXT NOT NULL,
		PRIMARY KEY (project, branch)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	_, err := s.db.Exec("INSERT OR REPLACE INTO travel_schema_version (version) VALUES (?)", 1)
	return err
}

// columnExists checks if a column exists in a table
func (s *SQLiteStore) columnExists(table, column string) bool {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info(?)
		WHERE name = ?
	`, table, column).Scan(&count)
	return err == nil && count > 0
}

// migrateToV2 adds the updated_at column to branch_logs
func (s *SQLiteStore) migrateToV2() error {
	if !s.columnExists("branch_logs", "updated_at") {
		if _, err := s.db.Exec(`ALTER TABLE branch_logs ADD COLUMN updated_at DATETIME`); err != nil {
			return err
		}
	}

	_, err := s.db.Exec("INSERT OR REPLACE INTO travel_schema_version (version) VALUES (?)", currentSchemaVersion)
	return err
}
