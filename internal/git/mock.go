package git

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kilupskalvis/git-travel/internal/models"
)

// MockRepository is a mock implementation of Repository for testing.
type MockRepository struct {
	// RootDir is returned by Root
	RootDir string
	// Head is the checked out commit ID; empty means no HEAD
	Head string
	// Commits is the history of all refs, newest first
	Commits []models.Commit
	// BranchLogs maps local branch names to their history, newest first
	BranchLogs map[string][]models.Commit
	// Err can be set to make every method return an error
	Err error
	// LogErr can be set to make AllCommits and BranchCommits fail
	LogErr error
	// CheckoutErr can be set to make Checkout fail
	CheckoutErr error
	// CheckedOut records Checkout targets in call order
	CheckedOut []string
}

var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a MockRepository with HEAD at the newest commit.
func NewMockRepository(commits []models.Commit) *MockRepository {
	m := &MockRepository{
		RootDir:    "/work/project",
		Commits:    commits,
		BranchLogs: make(map[string][]models.Commit),
	}
	if len(commits) > 0 {
		m.Head = commits[0].ID
	}
	return m
}

// Root returns RootDir.
func (m *MockRepository) Root() string {
	return m.RootDir
}

// CurrentHead returns Head.
func (m *MockRepository) CurrentHead(ctx context.Context) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Head == "" {
		return "", ErrHeadNotFound
	}
	return m.Head, nil
}

// AllCommits returns Commits.
func (m *MockRepository) AllCommits(ctx context.Context) ([]models.Commit, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.LogErr != nil {
		return nil, m.LogErr
	}
	return slices.Clone(m.Commits), nil
}

// BranchCommits returns the history registered for branch.
func (m *MockRepository) BranchCommits(ctx context.Context, branch string) ([]models.Commit, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.LogErr != nil {
		return nil, m.LogErr
	}
	commits, ok := m.BranchLogs[branch]
	if !ok {
		return nil, fmt.Errorf("%w named: %s", ErrBranchNotFound, branch)
	}
	return slices.Clone(commits), nil
}

// Branches returns the sorted keys of BranchLogs.
func (m *MockRepository) Branches(ctx context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	names := make([]string, 0, len(m.BranchLogs))
	for name := range m.BranchLogs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Checkout moves Head to a branch tip or to a commit of Commits matched by
// full or abbreviated ID.
func (m *MockRepository) Checkout(ctx context.Context, target string) error {
	if m.Err != nil {
		return m.Err
	}
	if m.CheckoutErr != nil {
		return m.CheckoutErr
	}

	if commits, ok := m.BranchLogs[target]; ok && len(commits) > 0 {
		m.CheckedOut = append(m.CheckedOut, target)
		m.Head = commits[0].ID
		return nil
	}
	for _, c := range m.Commits {
		if target != "" && strings.HasPrefix(c.ID, target) {
			m.CheckedOut = append(m.CheckedOut, target)
			m.Head = c.ID
			return nil
		}
	}
	return fmt.Errorf("reference not found: %s", target)
}
