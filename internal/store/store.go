// Package store persists travel logs: per project, per branch, the captured
// commit sequence and the last visited commit, plus the project's current
// branch marker. Records live in a single embedded database under the user's
// data directory; bbolt is the default driver and sqlite is available as an
// alternative.
package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/kilupskalvis/git-travel/internal/models"
)

// Supported storage drivers.
const (
	DriverBolt   = "bbolt"
	DriverSQLite = "sqlite"
)

// Database file names inside the data directory.
const (
	BoltFile   = "git-travel.db"
	SQLiteFile = "git-travel.sqlite"
)

// Error kinds returned by the log store. Callers match them with errors.Is.
var (
	ErrNotInitialized  = errors.New("branch is not initialized")
	ErrNoCurrentBranch = errors.New("no branches are initialized")
	ErrEmptyCommits    = errors.New("commits cannot be empty")
	ErrInvalidCommit   = errors.New("commit doesn't exist in branch log")
	ErrInvalidCount    = errors.New("travel count should be bigger than 0")
	ErrInvalidName     = errors.New("name cannot be blank")
	ErrUnknownDriver   = errors.New("unknown store driver")
)

// Tx is a view of the stored records inside one transaction.
// Lookups of missing records return zero values, not errors.
type Tx interface {
	// CurrentBranch returns the project's branch marker, or "" if unset.
	CurrentBranch(project string) (string, error)
	SetCurrentBranch(project, branch string) error

	// BranchLog returns the log of a branch, or nil if none was written.
	BranchLog(project, branch string) (*models.BranchLog, error)
	PutBranchLog(log *models.BranchLog) error

	// Branches returns the names of all branches with a log, sorted.
	Branches(project string) ([]string, error)
}

// Backend is a transactional record store. Update runs fn in a read-write
// transaction that is committed only if fn returns nil.
type Backend interface {
	View(fn func(tx Tx) error) error
	Update(fn func(tx Tx) error) error
	Close() error
}

// Open opens the backend for driver inside dataDir, creating it if needed.
func Open(driver, dataDir string) (Backend, error) {
	switch driver {
	case DriverBolt, "":
		return OpenBolt(filepath.Join(dataDir, BoltFile))
	case DriverSQLite:
		return OpenSQLite(filepath.Join(dataDir, SQLiteFile))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
