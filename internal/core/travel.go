package core

import (
	"context"
	"fmt"

	"github.com/kilupskalvis/git-travel/internal/git"
	"github.com/kilupskalvis/git-travel/internal/history"
	"github.com/kilupskalvis/git-travel/internal/models"
	"github.com/kilupskalvis/git-travel/internal/store"
)

// Move destinations naming the ends of the history.
const (
	DestinationStart = "start"
	DestinationBegin = "begin"
	DestinationEnd   = "end"
	DestinationLast  = "last"
)

// TravelResult contains the result of a travel or move
type TravelResult struct {
	Previous string        // HEAD before the checkout, empty if unknown
	Target   models.Commit // Commit checked out
	Warnings []string      // Non-fatal problems, e.g. the tracked head could not follow
}

// Travel checks out the commit Count steps away from HEAD in the history of
// all refs. Steps past either end stop at that end.
func Travel(ctx context.Context, repo git.Repository, logs *store.Logs, cmd TravelCommand) (*TravelResult, error) {
	if cmd.Count <= 0 {
		return nil, fmt.Errorf("%w: %d", store.ErrInvalidCount, cmd.Count)
	}

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

	step := -cmd.Count
	if cmd.Back {
		step = cmd.Count
	}
	target := commits[history.ClampedOffset(0, len(commits)-1, index, step)]

	if err := repo.Checkout(ctx, target.ID); err != nil {
		return nil, err
	}

	result := &TravelResult{Previous: head, Target: target}
	if cmd.Track {
		track := logs.WriteHeadToCount
		if cmd.Back {
			track = logs.WriteHeadBackToCount
		}
		if err := track(cmd.Count); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("tracked head not updated: %v", err))
		}
	}

	return result, nil
}

// Move checks out one end of the history of all refs, or destination itself
// when it names neither end. Destination is passed to git unvalidated.
func Move(ctx context.Context, repo git.Repository, logs *store.Logs, cmd MoveCommand) (*TravelResult, error) {
	result := &TravelResult{}
	if head, err := repo.CurrentHead(ctx); err == nil {
		result.Previous = head
	}

	var track func() error
	switch cmd.Destination {
	case DestinationStart, DestinationBegin, DestinationEnd, DestinationLast:
		commits, err := repo.AllCommits(ctx)
		if err != nil {
			return nil, err
		}
		if len(commits) == 0 {
			return nil, git.ErrHeadNotFound
		}
		result.Target = commits[0]
		track = logs.WriteHeadToEnd
		if cmd.Destination == DestinationStart || cmd.Destination == DestinationBegin {
			result.Target = commits[len(commits)-1]
			track = logs.WriteHeadToStart
		}
		if err := repo.Checkout(ctx, result.Target.ID); err != nil {
			return nil, err
		}

	default:
		if err := repo.Checkout(ctx, cmd.Destination); err != nil {
			return nil, err
		}
		head, err := repo.CurrentHead(ctx)
		if err != nil {
			return nil, err
		}
		result.Target = lookupCommit(ctx, repo, head)
		track = func() error { return logs.WriteHeadToCommit(head) }
	}

	if cmd.Track {
		if err := track(); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("tracked head not updated: %v", err))
		}
	}

	return result, nil
}

// lookupCommit finds id in the history of all refs for its subject. A
// history that cannot be read yields a commit with only the ID set.
func lookupCommit(ctx context.Context, repo git.Repository, id string) models.Commit {
	commits, err := repo.AllCommits(ctx)
	if err != nil {
		return models.Commit{ID: id}
	}
	if i := history.IndexOf(id, models.CommitIDs(commits)); i != history.NotFound {
		return commits[i]
	}
	return models.Commit{ID: id}
}
