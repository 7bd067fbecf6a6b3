package core

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/kilupskalvis/git-travel/internal/git"
	"github.com/kilupskalvis/git-travel/internal/models"
	"github.com/kilupskalvis/git-travel/internal/store"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// testHistory is a newest-first history of five commits.
var testHistory = []models.Commit{
	{ID: "a1a1a1a1a1", Message: "Add search"},
	{ID: "b2b2b2b2b2", Message: "Fix typo"},
	{ID: "c3c3c3c3c3", Message: "Refactor store\n\nDetails."},
	{ID: "d4d4d4d4d4", Message: "Add store"},
	{ID: "e5e5e5e5e5", Message: "Initial commit"},
}

// setupTestEnv creates an Env over a mock repository whose main branch holds
// testHistory, with HEAD at the newest commit, and a bbolt travel log.
func setupTestEnv(t *testing.T) (*Env, *git.MockRepository, *bytes.Buffer) {
	t.Helper()

	repo := git.NewMockRepository(testHistory)
	repo.BranchLogs["main"] = testHistory

	backend, err := store.OpenBolt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	logs, err := store.NewLogs(backend, "project")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &Env{Repo: repo, Logs: logs, Out: out}, repo, out
}
