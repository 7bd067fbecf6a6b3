package core

import (
	"context"
	"fmt"
	"slices"

	"github.com/kilupskalvis/git-travel/internal/git"
	"github.com/kilupskalvis/git-travel/internal/models"
	"github.com/kilupskalvis/git-travel/internal/store"
)

// Default branch names tried, in order, when init is given no branch.
var defaultBranches = []string{"main", "master"}

// InitResult contains the result of initializing a branch log
type InitResult struct {
	Branch        string
	CommitCount   int
	Head          string // Tracked head after the write
	CurrentBranch string // Branch marker after the write
	Refreshed     bool   // True if the branch already had a log
}

// ResolveBranch picks the branch to initialize among the local branches.
// An empty name selects main, or master when there is no main.
func ResolveBranch(branches []string, name string) (string, error) {
	if name == "" {
		for _, candidate := range defaultBranches {
			if slices.Contains(branches, candidate) {
				return candidate, nil
			}
		}
		return "", fmt.Errorf("%w named: main or master", git.ErrBranchNotFound)
	}

	if !slices.Contains(branches, name) {
		return "", fmt.Errorf("%w named: %s", git.ErrBranchNotFound, name)
	}
	return name, nil
}

// InitBranch captures the full history of a branch into the travel log.
// Running it again refreshes the commits and keeps the tracked head when it
// is still part of the history.
func InitBranch(ctx context.Context, repo git.Repository, logs *store.Logs, name string) (*InitResult, error) {
	branches, err := repo.Branches(ctx)
	if err != nil {
		return nil, err
	}

	branch, err := ResolveBranch(branches, name)
	if err != nil {
		return nil, err
	}

	commits, err := repo.BranchCommits(ctx, branch)
	if err != nil {
		return nil, err
	}

	refreshed, err := logs.IsInitialized(branch)
	if err != nil {
		return nil, err
	}

	if err := logs.WriteCommits(branch, models.CommitIDs(commits)); err != nil {
		return nil, fmt.Errorf("failed to write travel log: %w", err)
	}

	head, err := logs.ReadHead(branch)
	if err != nil {
		return nil, err
	}
	current, err := logs.ReadCurrentBranch()
	if err != nil {
		return nil, err
	}

	return &InitResult{
		Branch:        branch,
		CommitCount:   len(commits),
		Head:          head,
		CurrentBranch: current,
		Refreshed:     refreshed,
	}, nil
}
