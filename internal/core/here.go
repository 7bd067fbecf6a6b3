package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/kilupskalvis/git-travel/internal/git"
	"github.com/kilupskalvis/git-travel/internal/history"
	"github.com/kilupskalvis/git-travel/internal/models"
	"github.com/kilupskalvis/git-travel/internal/store"
)

// Here returns the window of the history of all refs centered on HEAD.
func Here(ctx context.Context, repo git.Repository) ([]models.WindowEntry, error) {
	head, err := repo.CurrentHead(ctx)
	if err != nil {
		return nil, err
	}
	commits, err := repo.AllCommits(ctx)
	if err != nil {
		return nil, err
	}

	index := history.IndexOf(head, models.CommitIDs(commits))
	if index == history.NotFound {
		return nil, fmt.Errorf("%w: %s", ErrHeadNotInHistory, head)
	}
	return history.Window(commits, index), nil
}

// Status reports the current branch marker and tracked head of the project
// next to the repository HEAD. Missing pieces are left empty.
func Status(ctx context.Context, repo git.Repository, logs *store.Logs) (*models.HeadState, error) {
	state := &models.HeadState{Project: logs.Project()}

	head, err := repo.CurrentHead(ctx)
	switch {
	case err == nil:
		state.RealHead = head
	case !errors.Is(err, git.ErrHeadNotFound):
		return nil, err
	}

	branch, err := logs.ReadCurrentBranch()
	if err != nil {
		if errors.Is(err, store.ErrNoCurrentBranch) {
			return state, nil
		}
		return nil, err
	}
	state.CurrentBranch = branch

	tracked, err := logs.ReadHead(branch)
	if err != nil {
		return nil, err
	}
	state.TrackedHead = tracked

	return state, nil
}
