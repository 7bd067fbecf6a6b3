package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kilupskalvis/git-travel/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the SQLite implementation of Backend.
type SQLiteStore struct {
	db *sql.DB
}

var _ Backend = (*SQLiteStore)(nil)

// OpenSQLite opens or creates a SQLite database and brings its schema up to date.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(1000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps transactions serialized inside the process.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// View runs fn in a transaction that is always rolled back.
func (s *SQLiteStore) View(fn func(tx Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	return fn(&sqliteTx{tx: tx})
}

// Update runs fn in a transaction committed when fn succeeds.
func (s *SQLiteStore) Update(fn func(tx Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&sqliteTx{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) CurrentBranch(project string) (string, error) {
	var branch sql.NullString
	err := t.tx.QueryRow("SELECT current_branch FROM projects WHERE name = ?", project).Scan(&branch)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read current branch: %w", err)
	}
	return branch.String, nil
}

func (t *sqliteTx) SetCurrentBranch(project, branch string) error {
	_, err := t.tx.Exec(
		"INSERT INTO projects (name, current_branch) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET current_branch = ?",
		project, branch, branch,
	)
	if err != nil {
		return fmt.Errorf("write current branch: %w", err)
	}
	return nil
}

func (t *sqliteTx) BranchLog(project, branch string) (*models.BranchLog, error) {
	var commits, head string
	err := t.tx.QueryRow(
		"SELECT commits, head FROM branch_logs WHERE project = ? AND branch = ?",
		project, branch,
	).Scan(&commits, &head)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read branch log: %w", err)
	}

	return &models.BranchLog{
		Project: project,
		Branch:  branch,
		Commits: splitLines(commits),
		Head:    head,
	}, nil
}

func (t *sqliteTx) PutBranchLog(log *models.BranchLog) error {
	commits := joinLines(log.Commits)
	_, err := t.tx.Exec(`
		INSERT INTO branch_logs (project, branch, commits, head, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(project, branch) DO UPDATE SET
			commits = excluded.commits,
			head = excluded.head,
			updated_at = CURRENT_TIMESTAMP
	`, log.Project, log.Branch, commits, log.Head)
	if err != nil {
		return fmt.Errorf("write branch log: %w", err)
	}
	return nil
}

func (t *sqliteTx) Branches(project string) ([]string, error) {
	rows, err := t.tx.Query("SELECT branch FROM branch_logs WHERE project = ?", project)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}
