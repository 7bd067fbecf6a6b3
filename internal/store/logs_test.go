package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBackend opens a store of the given driver in a temp directory.
func newTestBackend(t *testing.T, driver string) Backend {
	t.Helper()
	backend, err := Open(driver, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return backend
}

// newTestLogs returns the travel log of "project" on a fresh store.
func newTestLogs(t *testing.T, driver string) *Logs {
	t.Helper()
	logs, err := NewLogs(newTestBackend(t, driver), "project")
	require.NoError(t, err)
	return logs
}

// forEachDriver runs fn once per storage driver.
func forEachDriver(t *testing.T, fn func(t *testing.T, logs *Logs)) {
	for _, driver := range []string{DriverBolt, DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			fn(t, newTestLogs(t, driver))
		})
	}
}

var fiveCommits = []string{"commitA", "commitB", "commitC", "commitD", "commitE"}

// ==================== Initialization Tests ====================

func TestLogs_InitializeBranch(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		initialized, err := logs.IsInitialized("branch-A")
		require.NoError(t, err)
		assert.False(t, initialized)

		require.NoError(t, logs.WriteCommits("branch-A", []string{"commitA", "commitB", "commitC"}))

		initialized, err = logs.IsInitialized("branch-A")
		require.NoError(t, err)
		assert.True(t, initialized)

		commits, err := logs.ReadCommits("branch-A")
		require.NoError(t, err)
		assert.Equal(t, []string{"commitA", "commitB", "commitC"}, commits)

		head, err := logs.ReadHead("branch-A")
		require.NoError(t, err)
		assert.Equal(t, "commitA", head)

		current, err := logs.ReadCurrentBranch()
		require.NoError(t, err)
		assert.Equal(t, "branch-A", current)
	})
}

func TestLogs_WriteCommits_Empty(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		err := logs.WriteCommits("branch-A", nil)
		assert.ErrorIs(t, err, ErrEmptyCommits)

		err = logs.WriteCommits("branch-A", []string{})
		assert.ErrorIs(t, err, ErrEmptyCommits)

		initialized, err := logs.IsInitialized("branch-A")
		require.NoError(t, err)
		assert.False(t, initialized)

		exists, err := logs.ExistsCurrentBranch()
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestLogs_WriteCommits_BlankCommit(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		err := logs.WriteCommits("branch-A", []string{"commitA", " "})
		assert.ErrorIs(t, err, ErrInvalidCommit)

		err = logs.WriteCommits("branch-A", []string{"commit\nA"})
		assert.ErrorIs(t, err, ErrInvalidCommit)
	})
}

func TestLogs_BlankNames(t *testing.T) {
	_, err := NewLogs(newTestBackend(t, DriverBolt), "  ")
	assert.ErrorIs(t, err, ErrInvalidName)

	logs := newTestLogs(t, DriverBolt)
	_, err = logs.IsInitialized("")
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.ErrorIs(t, logs.WriteCommits("", fiveCommits), ErrInvalidName)
}

func TestLogs_UninitializedBranch(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		_, err := logs.ReadCommits("missing")
		assert.ErrorIs(t, err, ErrNotInitialized)

		_, err = logs.ReadHead("missing")
		assert.ErrorIs(t, err, ErrNotInitialized)

		_, err = logs.IsValidCommit("missing", "commitA")
		assert.ErrorIs(t, err, ErrNotInitialized)

		assert.ErrorIs(t, logs.SwitchCurrentBranch("missing"), ErrNotInitialized)
	})
}

func TestLogs_NoCurrentBranch(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		_, err := logs.ReadCurrentBranch()
		assert.ErrorIs(t, err, ErrNoCurrentBranch)

		assert.ErrorIs(t, logs.WriteHeadToStart(), ErrNoCurrentBranch)
		assert.ErrorIs(t, logs.WriteHeadToEnd(), ErrNoCurrentBranch)
		assert.ErrorIs(t, logs.WriteHeadToCommit("commitA"), ErrNoCurrentBranch)
		assert.ErrorIs(t, logs.WriteHeadToCount(1), ErrNoCurrentBranch)
		assert.ErrorIs(t, logs.WriteHeadBackToCount(1), ErrNoCurrentBranch)
	})
}

// ==================== Head Movement Tests ====================

func TestLogs_WriteReadCommits(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		require.NoError(t, logs.WriteCommits("branch-A", fiveCommits))

		readCommits, err := logs.ReadCommits("branch-A")
		require.NoError(t, err)
		assert.Equal(t, fiveCommits, readCommits)

		assertHead := func(want string) {
			t.Helper()
			head, err := logs.ReadHead("branch-A")
			require.NoError(t, err)
			assert.Equal(t, want, head)
		}

		assertHead("commitA")

		require.NoError(t, logs.WriteHeadToStart())
		assertHead("commitE")

		require.NoError(t, logs.WriteHeadToEnd())
		assertHead("commitA")

		require.NoError(t, logs.WriteHeadToCommit("commitB"))
		assertHead("commitB")

		require.NoError(t, logs.WriteHeadToCommit("commitC"))
		require.NoError(t, logs.WriteHeadToCount(2))
		assertHead("commitA")

		require.NoError(t, logs.WriteHeadToCommit("commitC"))
		require.NoError(t, logs.WriteHeadBackToCount(2))
		assertHead("commitE")

		// Over-count travel saturates at the ends.
		require.NoError(t, logs.WriteHeadToCommit("commitC"))
		require.NoError(t, logs.WriteHeadToCount(31))
		assertHead("commitA")

		require.NoError(t, logs.WriteHeadToCommit("commitC"))
		require.NoError(t, logs.WriteHeadBackToCount(31))
		assertHead("commitE")
	})
}

func TestLogs_WriteHeadCount_Clamp(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		require.NoError(t, logs.WriteCommits("branch-A", fiveCommits))
		last := len(fiveCommits) - 1

		for start := 0; start <= last; start++ {
			for _, n := range []int{1, 2, 3, 5, 100} {
				require.NoError(t, logs.WriteHeadToCommit(fiveCommits[start]))
				require.NoError(t, logs.WriteHeadToCount(n))
				head, err := logs.ReadHead("branch-A")
				require.NoError(t, err)
				assert.Equal(t, fiveCommits[max(start-n, 0)], head, "to count: start=%d n=%d", start, n)

				require.NoError(t, logs.WriteHeadToCommit(fiveCommits[start]))
				require.NoError(t, logs.WriteHeadBackToCount(n))
				head, err = logs.ReadHead("branch-A")
				require.NoError(t, err)
				assert.Equal(t, fiveCommits[min(start+n, last)], head, "back to count: start=%d n=%d", start, n)
			}
		}
	})
}

func TestLogs_WriteHeadCount_InvalidCount(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		require.NoError(t, logs.WriteCommits("branch-A", fiveCommits))
		require.NoError(t, logs.WriteHeadToCommit("commitC"))

		assert.ErrorIs(t, logs.WriteHeadToCount(0), ErrInvalidCount)
		assert.ErrorIs(t, logs.WriteHeadBackToCount(-3), ErrInvalidCount)

		head, err := logs.ReadHead("branch-A")
		require.NoError(t, err)
		assert.Equal(t, "commitC", head)
	})
}

func TestLogs_WriteHeadToCommit_Invalid(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		require.NoError(t, logs.WriteCommits("branch-A", fiveCommits))
		require.NoError(t, logs.WriteHeadToCommit("commitD"))

		err := logs.WriteHeadToCommit("commitZ")
		assert.ErrorIs(t, err, ErrInvalidCommit)

		head, err := logs.ReadHead("branch-A")
		require.NoError(t, err)
		assert.Equal(t, "commitD", head, "failed write must not move the head")
	})
}

func TestLogs_IsValidCommit(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		require.NoError(t, logs.WriteCommits("branch-A", fiveCommits))

		valid, err := logs.IsValidCommit("branch-A", "commitC")
		require.NoError(t, err)
		assert.True(t, valid)

		valid, err = logs.IsValidCommit("branch-A", "commitZ")
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

// ==================== Rewrite Tests ====================

func TestLogs_WriteCommits_PreservesHead(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		require.NoError(t, logs.WriteCommits("branch-A", fiveCommits))
		require.NoError(t, logs.WriteHeadToCommit("commitC"))

		require.NoError(t, logs.WriteCommits("branch-A", fiveCommits))
		head, err := logs.ReadHead("branch-A")
		require.NoError(t, err)
		assert.Equal(t, "commitC", head)

		// New commits on top keep the head too.
		grown := append([]string{"commitNew"}, fiveCommits...)
		require.NoError(t, logs.WriteCommits("branch-A", grown))
		head, err = logs.ReadHead("branch-A")
		require.NoError(t, err)
		assert.Equal(t, "commitC", head)

		commits, err := logs.ReadCommits("branch-A")
		require.NoError(t, err)
		assert.Equal(t, grown, commits)
	})
}

func TestLogs_WriteCommits_ResetsLostHead(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		require.NoError(t, logs.WriteCommits("branch-A", fiveCommits))
		require.NoError(t, logs.WriteHeadToCommit("commitC"))

		rewritten := []string{"commitX", "commitY", "commitE"}
		require.NoError(t, logs.WriteCommits("branch-A", rewritten))

		head, err := logs.ReadHead("branch-A")
		require.NoError(t, err)
		assert.Equal(t, "commitX", head)
	})
}

func TestLogs_WriteCommits_CopiesInput(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		commits := []string{"commitA", "commitB"}
		require.NoError(t, logs.WriteCommits("branch-A", commits))
		commits[0] = "mutated"

		read, err := logs.ReadCommits("branch-A")
		require.NoError(t, err)
		assert.Equal(t, []string{"commitA", "commitB"}, read)
	})
}

// ==================== Branch Tests ====================

func TestLogs_WriteReadBranch(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		require.NoError(t, logs.WriteCommits("branch-A", []string{"commitA", "commitB", "commitC"}))
		require.NoError(t, logs.WriteCommits("branch-B", []string{"commitD", "commitE", "commitF"}))

		current, err := logs.ReadCurrentBranch()
		require.NoError(t, err)
		assert.Equal(t, "branch-A", current)

		require.NoError(t, logs.SwitchCurrentBranch("branch-B"))
		current, err = logs.ReadCurrentBranch()
		require.NoError(t, err)
		assert.Equal(t, "branch-B", current)

		branches, err := logs.Branches()
		require.NoError(t, err)
		assert.Equal(t, []string{"branch-A", "branch-B"}, branches)
	})
}

func TestLogs_HeadMovesFollowCurrentBranch(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		require.NoError(t, logs.WriteCommits("branch-A", []string{"commitA", "commitB", "commitC"}))
		require.NoError(t, logs.WriteCommits("branch-B", []string{"commitD", "commitE", "commitF"}))
		require.NoError(t, logs.SwitchCurrentBranch("branch-B"))

		require.NoError(t, logs.WriteHeadToStart())

		headB, err := logs.ReadHead("branch-B")
		require.NoError(t, err)
		assert.Equal(t, "commitF", headB)

		headA, err := logs.ReadHead("branch-A")
		require.NoError(t, err)
		assert.Equal(t, "commitA", headA, "other branch is untouched")

		assert.ErrorIs(t, logs.WriteHeadToCommit("commitB"), ErrInvalidCommit)
	})
}

func TestLogs_ProjectsAreIsolated(t *testing.T) {
	backend := newTestBackend(t, DriverBolt)
	first, err := NewLogs(backend, "first")
	require.NoError(t, err)
	second, err := NewLogs(backend, "second")
	require.NoError(t, err)

	require.NoError(t, first.WriteCommits("main", fiveCommits))

	initialized, err := second.IsInitialized("main")
	require.NoError(t, err)
	assert.False(t, initialized)

	_, err = second.ReadCurrentBranch()
	assert.ErrorIs(t, err, ErrNoCurrentBranch)
}

func TestLogs_BranchNamesWithSlashes(t *testing.T) {
	forEachDriver(t, func(t *testing.T, logs *Logs) {
		require.NoError(t, logs.WriteCommits("feature/login", fiveCommits))

		log, err := logs.ReadBranchLog("feature/login")
		require.NoError(t, err)
		assert.Equal(t, "feature/login", log.Branch)
		assert.Equal(t, "project", log.Project)
		assert.True(t, log.Valid())
	})
}
