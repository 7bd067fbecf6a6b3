package store

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kilupskalvis/git-travel/internal/history"
	"github.com/kilupskalvis/git-travel/internal/models"
)

// Logs is the travel log of one project.
//
// An initialized branch always has a non-empty commit list and a head that is
// one of those commits. Every mutation runs in a single backend transaction,
// so a failed call leaves the previous state in place.
type Logs struct {
	backend Backend
	project string
}

// NewLogs returns the travel log of project stored in backend.
func NewLogs(backend Backend, project string) (*Logs, error) {
	if strings.TrimSpace(project) == "" {
		return nil, fmt.Errorf("project %w", ErrInvalidName)
	}
	return &Logs{backend: backend, project: project}, nil
}

// Project returns the project name.
func (l *Logs) Project() string {
	return l.project
}

// IsInitialized reports whether commits were ever written for branch.
func (l *Logs) IsInitialized(branch string) (bool, error) {
	if err := checkBranch(branch); err != nil {
		return false, err
	}

	var initialized bool
	err := l.backend.View(func(tx Tx) error {
		log, err := tx.BranchLog(l.project, branch)
		initialized = log != nil
		return err
	})
	return initialized, err
}

// ExistsCurrentBranch reports whether the project has a current branch marker.
func (l *Logs) ExistsCurrentBranch() (bool, error) {
	var exists bool
	err := l.backend.View(func(tx Tx) error {
		branch, err := tx.CurrentBranch(l.project)
		exists = branch != ""
		return err
	})
	return exists, err
}

// IsValidCommit reports whether commit is part of the log of branch.
func (l *Logs) IsValidCommit(branch, commit string) (bool, error) {
	var valid bool
	err := l.backend.View(func(tx Tx) error {
		log, err := l.branchLog(tx, branch)
		if err != nil {
			return err
		}
		valid = slices.Contains(log.Commits, commit)
		return nil
	})
	return valid, err
}

// WriteCommits records commits (newest first) as the log of branch.
//
// For a new branch the head starts at the newest commit, and the branch
// becomes the current one if the project has none yet. For an existing
// branch the head is kept unless it is no longer part of commits, in which
// case it resets to the newest commit.
func (l *Logs) WriteCommits(branch string, commits []string) error {
	if err := checkBranch(branch); err != nil {
		return err
	}
	if len(commits) == 0 {
		return ErrEmptyCommits
	}
	for _, c := range commits {
		if strings.TrimSpace(c) == "" || strings.ContainsAny(c, "\r\n") {
			return fmt.Errorf("%w: %q", ErrInvalidCommit, c)
		}
	}

	return l.backend.Update(func(tx Tx) error {
		log, err := tx.BranchLog(l.project, branch)
		if err != nil {
			return err
		}

		if log == nil {
			current, err := tx.CurrentBranch(l.project)
			if err != nil {
				return err
			}
			if current == "" {
				if err := tx.SetCurrentBranch(l.project, branch); err != nil {
					return err
				}
			}
			log = &models.BranchLog{Project: l.project, Branch: branch}
		}

		log.Commits = slices.Clone(commits)
		if !slices.Contains(log.Commits, log.Head) {
			log.Head = log.Newest()
		}
		return tx.PutBranchLog(log)
	})
}

// ReadCommits returns the commits of branch, newest first.
func (l *Logs) ReadCommits(branch string) ([]string, error) {
	var commits []string
	err := l.backend.View(func(tx Tx) error {
		log, err := l.branchLog(tx, branch)
		if err != nil {
			return err
		}
		commits = log.Commits
		return nil
	})
	return commits, err
}

// ReadHead returns the tracked head of branch.
func (l *Logs) ReadHead(branch string) (string, error) {
	var head string
	err := l.backend.View(func(tx Tx) error {
		log, err := l.branchLog(tx, branch)
		if err != nil {
			return err
		}
		head = log.Head
		return nil
	})
	return head, err
}

// ReadBranchLog returns the full log of branch.
func (l *Logs) ReadBranchLog(branch string) (*models.BranchLog, error) {
	var log *models.BranchLog
	err := l.backend.View(func(tx Tx) error {
		var err error
		log, err = l.branchLog(tx, branch)
		return err
	})
	return log, err
}

// ReadCurrentBranch returns the branch that head movements apply to.
func (l *Logs) ReadCurrentBranch() (string, error) {
	var branch string
	err := l.backend.View(func(tx Tx) error {
		var err error
		branch, err = l.currentBranch(tx)
		return err
	})
	return branch, err
}

// SwitchCurrentBranch makes an initialized branch the current one.
func (l *Logs) SwitchCurrentBranch(branch string) error {
	return l.backend.Update(func(tx Tx) error {
		if _, err := l.branchLog(tx, branch); err != nil {
			return err
		}
		return tx.SetCurrentBranch(l.project, branch)
	})
}

// Branches returns the initialized branches of the project, sorted by name.
func (l *Logs) Branches() ([]string, error) {
	var branches []string
	err := l.backend.View(func(tx Tx) error {
		var err error
		branches, err = tx.Branches(l.project)
		return err
	})
	return branches, err
}

// WriteHeadToStart moves the head of the current branch to its oldest commit.
func (l *Logs) WriteHeadToStart() error {
	return l.moveHead(func(log *models.BranchLog) (string, error) {
		return log.Oldest(), nil
	})
}

// WriteHeadToEnd moves the head of the current branch to its newest commit.
func (l *Logs) WriteHeadToEnd() error {
	return l.moveHead(func(log *models.BranchLog) (string, error) {
		return log.Newest(), nil
	})
}

// WriteHeadToCommit moves the head of the current branch to commit.
func (l *Logs) WriteHeadToCommit(commit string) error {
	return l.moveHead(func(log *models.BranchLog) (string, error) {
		if !slices.Contains(log.Commits, commit) {
			return "", fmt.Errorf("%w: %s", ErrInvalidCommit, commit)
		}
		return commit, nil
	})
}

// WriteHeadToCount moves the head of the current branch count commits toward
// the newest one, stopping there.
func (l *Logs) WriteHeadToCount(count int) error {
	return l.stepHead(-count, count)
}

// WriteHeadBackToCount moves the head of the current branch count commits
// toward the oldest one, stopping there.
func (l *Logs) WriteHeadBackToCount(count int) error {
	return l.stepHead(count, count)
}

func (l *Logs) stepHead(step, count int) error {
	if count <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	return l.moveHead(func(log *models.BranchLog) (string, error) {
		index := history.IndexOf(log.Head, log.Commits)
		if index == history.NotFound {
			return "", fmt.Errorf("%w: %s", ErrInvalidCommit, log.Head)
		}
		target := history.ClampedOffset(0, len(log.Commits)-1, index, step)
		return log.Commits[target], nil
	})
}

// moveHead reads the current branch log, lets next pick a new head and
// writes it back in the same transaction.
func (l *Logs) moveHead(next func(log *models.BranchLog) (string, error)) error {
	return l.backend.Update(func(tx Tx) error {
		branch, err := l.currentBranch(tx)
		if err != nil {
			return err
		}
		log, err := l.branchLog(tx, branch)
		if err != nil {
			return err
		}

		head, err := next(log)
		if err != nil {
			return err
		}
		log.Head = head
		return tx.PutBranchLog(log)
	})
}

func (l *Logs) currentBranch(tx Tx) (string, error) {
	branch, err := tx.CurrentBranch(l.project)
	if err != nil {
		return "", err
	}
	if branch == "" {
		return "", fmt.Errorf("%w for project %s", ErrNoCurrentBranch, l.project)
	}
	return branch, nil
}

// branchLog reads the log of branch, failing if it was never written.
func (l *Logs) branchLog(tx Tx, branch string) (*models.BranchLog, error) {
	if err := checkBranch(branch); err != nil {
		return nil, err
	}
	log, err := tx.BranchLog(l.project, branch)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotInitialized, branch)
	}
	return log, nil
}

func checkBranch(branch string) error {
	if strings.TrimSpace(branch) == "" {
		return fmt.Errorf("branch %w", ErrInvalidName)
	}
	return nil
}
