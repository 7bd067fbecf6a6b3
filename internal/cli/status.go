package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/git-travel/internal/core"
	"github.com/kilupskalvis/git-travel/internal/models"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current branch and tracked head",
	Long: `Show the project name, the branch head movements apply to, its tracked
head and the real HEAD of the repository.`,
	Args: cobra.NoArgs,
	Run:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	state, err := core.Status(context.Background(), c.Repo, c.Logs)
	if err != nil {
		c.Close()
		exitError("%v", err)
	}

	printStatus(cmd, state)
}

func printStatus(cmd *cobra.Command, state *models.HeadState) {
	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	fmt.Fprintf(out, "Project: %s\n", state.Project)

	if state.CurrentBranch == "" {
		fmt.Fprintln(out, "No branch initialized")
		fmt.Fprintln(out, "  (use \"git-travel init [branch]\" to record one)")
	} else {
		fmt.Fprintf(out, "On branch %s\n", state.CurrentBranch)
		fmt.Fprintf(out, "Tracked head: %s\n", shortID(state.TrackedHead))
	}

	if state.RealHead == "" {
		fmt.Fprintln(out, "HEAD: no commits yet")
		return
	}
	fmt.Fprintf(out, "HEAD: %s\n", shortID(state.RealHead))

	if state.CurrentBranch == "" {
		return
	}
	if state.InSync() {
		green.Fprintln(out, "Tracked head matches HEAD")
	} else {
		yellow.Fprintln(out, "Tracked head differs from HEAD")
	}
}
