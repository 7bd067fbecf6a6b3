package git

import (
	"context"
	"errors"
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/kilupskalvis/git-travel/internal/models"
)

// GoGitRepository implements Repository in-process with go-git.
type GoGitRepository struct {
	root string
	repo *gogit.Repository
}

// Verify that *GoGitRepository implements Repository at compile time
var _ Repository = (*GoGitRepository)(nil)

// Open opens the repository whose working tree is rooted at root.
func Open(root string) (*GoGitRepository, error) {
	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{EnableDotGitCommonDir: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, root)
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return &GoGitRepository{root: root, repo: repo}, nil
}

// Root returns the working tree root directory.
func (r *GoGitRepository) Root() string {
	return r.root
}

// CurrentHead returns the hash HEAD resolves to.
func (r *GoGitRepository) CurrentHead(ctx context.Context) (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", ErrHeadNotFound
		}
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// AllCommits returns the history of all refs, newest committer time first.
func (r *GoGitRepository) AllCommits(ctx context.Context) ([]models.Commit, error) {
	return r.log(ctx, &gogit.LogOptions{All: true, Order: gogit.LogOrderCommitterTime})
}

// BranchCommits returns the history of a local branch ordered by committer time.
func (r *GoGitRepository) BranchCommits(ctx context.Context, branch string) ([]models.Commit, error) {
	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fmt.Errorf("%w named: %s", ErrBranchNotFound, branch)
		}
		return nil, fmt.Errorf("resolve branch %s: %w", branch, err)
	}
	return r.log(ctx, &gogit.LogOptions{From: ref.Hash(), Order: gogit.LogOrderCommitterTime})
}

func (r *GoGitRepository) log(ctx context.Context, opts *gogit.LogOptions) ([]models.Commit, error) {
	iter, err := r.repo.Log(opts)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrHeadNotFound
		}
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer iter.Close()

	var commits []models.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, models.Commit{
			ID:        c.Hash.String(),
			Message:   c.Message,
			Author:    c.Author.Name,
			Timestamp: c.Committer.When,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	// The all-refs walk only orders commits within each ref.
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Timestamp.After(commits[j].Timestamp)
	})
	return commits, nil
}

// Branches returns the short names of local branches, sorted.
func (r *GoGitRepository) Branches(ctx context.Context) ([]string, error) {
	iter, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	sort.Strings(names)
	return names, nil
}

// Checkout switches to a local branch when target names one, otherwise to
// the commit target resolves to (detached HEAD). Local changes that would be
// overwritten make the checkout fail.
func (r *GoGitRepository) Checkout(ctx context.Context, target string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}

	opts := &gogit.CheckoutOptions{}
	branch := plumbing.NewBranchReferenceName(target)
	if _, err := r.repo.Reference(branch, false); err == nil {
		opts.Branch = branch
	} else {
		hash, err := r.repo.ResolveRevision(plumbing.Revision(target))
		if err != nil {
			return fmt.Errorf("resolve %s: %w", target, err)
		}
		opts.Hash = *hash
	}

	if err := wt.Checkout(opts); err != nil {
		return fmt.Errorf("checkout %s: %w", target, err)
	}
	return nil
}
