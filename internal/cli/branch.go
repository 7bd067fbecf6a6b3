package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch [name]",
	Short: "List or switch initialized branches",
	Long: `Without arguments, lists the branches recorded with init; the current one
is marked with '*'. With a name, makes that branch the current one, so
tracked head movements apply to it.

Examples:
  git-travel branch            # List initialized branches
  git-travel branch develop    # Track head movements on develop`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBranch,
}

func runBranch(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	logs := c.Logs
	out := cmd.OutOrStdout()

	// Switch branch
	if len(args) > 0 {
		if err := logs.SwitchCurrentBranch(args[0]); err != nil {
			c.Close()
			exitError("%v", err)
		}
		fmt.Fprintf(out, "Switched to branch '%s'\n", args[0])
		return
	}

	// List branches
	branches, err := logs.Branches()
	if err != nil {
		c.Close()
		exitError("%v", err)
	}
	if len(branches) == 0 {
		fmt.Fprintln(out, "No branches initialized")
		return
	}

	current, _ := logs.ReadCurrentBranch()
	green := color.New(color.FgGreen)
	for _, b := range branches {
		if b == current {
			green.Fprintf(out, "* %s\n", b)
		} else {
			fmt.Fprintf(out, "  %s\n", b)
		}
	}
}
