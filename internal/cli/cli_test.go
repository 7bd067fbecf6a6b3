package cli

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/kilupskalvis/git-travel/internal/core"
	"github.com/kilupskalvis/git-travel/internal/models"
	"github.com/kilupskalvis/git-travel/internal/store"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr string
	}{
		{"default", nil, 1, ""},
		{"explicit", []string{"3"}, 3, ""},
		{"not a number", []string{"x"}, 0, "invalid integer value : x"},
		{"zero", []string{"0"}, 0, "count must be greater than 0, got 0"},
		{"negative", []string{"-2"}, 0, "count must be greater than 0, got -2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCount(tt.args)
			if tt.wantErr != "" {
				var usage *UsageError
				require.ErrorAs(t, err, &usage)
				assert.Equal(t, tt.wantErr, usage.Msg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTravelArgs(t *testing.T) {
	assert.NoError(t, travelArgs(travelCmd, nil))
	assert.NoError(t, travelArgs(travelCmd, []string{"2"}))
	assert.Error(t, travelArgs(travelCmd, []string{"1", "2"}))
	assert.EqualError(t, travelArgs(travelCmd, []string{"abc"}), "invalid integer value : abc")
}

func TestTravelCommand(t *testing.T) {
	cmd, err := travelCommand([]string{"4"}, true, false)
	require.NoError(t, err)
	assert.Equal(t, core.TravelCommand{Count: 4, Back: true}, cmd)

	cmd, err = travelCommand(nil, false, true)
	require.NoError(t, err)
	assert.Equal(t, core.TravelCommand{Count: 1, Track: true}, cmd)
}

func TestInitCommand(t *testing.T) {
	assert.Equal(t, core.InitCommand{}, initCommand(nil))
	assert.Equal(t, core.InitCommand{Branch: "develop"}, initCommand([]string{"develop"}))
}

func TestCommandNamesCaseInsensitive(t *testing.T) {
	for _, name := range []string{"init", "Init", "HERE", "Travel", "mOvE"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.NotSame(t, rootCmd, cmd, name)
	}
}

func TestArgumentCounts(t *testing.T) {
	assert.Error(t, hereCmd.Args(hereCmd, []string{"x"}))
	assert.NoError(t, hereCmd.Args(hereCmd, nil))

	assert.Error(t, moveCmd.Args(moveCmd, nil))
	assert.Error(t, moveCmd.Args(moveCmd, []string{"a", "b"}))
	assert.NoError(t, moveCmd.Args(moveCmd, []string{"start"}))

	assert.NoError(t, initCmd.Args(initCmd, nil))
	assert.Error(t, initCmd.Args(initCmd, []string{"a", "b"}))
}

func newOutputCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestPrintStatus(t *testing.T) {
	cmd, buf := newOutputCmd()
	printStatus(cmd, &models.HeadState{
		Project:       "demo",
		CurrentBranch: "main",
		TrackedHead:   "a1a1a1a1a1a1",
		RealHead:      "a1a1a1a1a1a1",
	})

	out := buf.String()
	assert.Contains(t, out, "Project: demo\n")
	assert.Contains(t, out, "On branch main\n")
	assert.Contains(t, out, "Tracked head: a1a1a1a1\n")
	assert.Contains(t, out, "Tracked head matches HEAD")
}

func TestPrintStatus_Uninitialized(t *testing.T) {
	cmd, buf := newOutputCmd()
	printStatus(cmd, &models.HeadState{Project: "demo", RealHead: "b2b2b2b2b2"})

	out := buf.String()
	assert.Contains(t, out, "No branch initialized")
	assert.Contains(t, out, "HEAD: b2b2b2b2\n")
	assert.NotContains(t, out, "Tracked head")
}

func TestPrintImport(t *testing.T) {
	cmd, buf := newOutputCmd()
	printImport(cmd, "demo", &store.ImportResult{
		Imported:      []string{"main", "feature/login"},
		Skipped:       []string{"empty"},
		HeadsReset:    []string{"feature/login"},
		CurrentBranch: "main",
	})

	out := buf.String()
	assert.Contains(t, out, "warning: skipped branch 'empty': no commits\n")
	assert.Contains(t, out, "warning: head of 'feature/login' reset to the newest commit\n")
	assert.Contains(t, out, "Imported 2 branch(es) of demo\n")
	assert.Contains(t, out, "Current branch: main\n")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "a1b2c3d4", shortID("a1b2c3d4e5f6"))
	assert.Equal(t, "abc", shortID("abc"))
}
