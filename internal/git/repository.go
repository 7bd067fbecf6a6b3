// Package git gives the travel commands access to the repository they run
// in: its root, HEAD, history, branches and checkout.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kilupskalvis/git-travel/internal/models"
)

// DotGit is the name of the repository metadata entry searched by FindRoot.
const DotGit = ".git"

var (
	ErrNotRepository  = errors.New("project is not a git directory")
	ErrHeadNotFound   = errors.New("HEAD not found")
	ErrBranchNotFound = errors.New("no branch found")
)

// Repository defines the git operations used by the travel commands.
// This interface enables mocking for testing the core package.
type Repository interface {
	// Root returns the working tree root directory.
	Root() string

	// CurrentHead returns the commit checked out, or ErrHeadNotFound.
	CurrentHead(ctx context.Context) (string, error)

	// AllCommits returns the commits reachable from any ref, newest first.
	AllCommits(ctx context.Context) ([]models.Commit, error)
	// BranchCommits returns the commits reachable from a local branch, newest first.
	BranchCommits(ctx context.Context, branch string) ([]models.Commit, error)

	// Branches returns the short names of local branches.
	Branches(ctx context.Context) ([]string, error)

	// Checkout switches the working tree to a branch or commit.
	Checkout(ctx context.Context, target string) error
}

// FindRoot walks up from dir until a directory containing .git is found.
// A .git file (worktrees, submodules) counts as well.
func FindRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, DotGit)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w (or any parent up to root)", ErrNotRepository)
		}
		dir = parent
	}
}

// ProjectName returns the name logs are stored under for a repository root.
func ProjectName(root string) string {
	return filepath.Base(filepath.Clean(root))
}
