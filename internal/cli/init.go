package cli

import (
	"context"

	"github.com/kilupskalvis/git-travel/internal/core"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [branch]",
	Short: "Record the history of a branch",
	Long: `Record the commits of a branch, newest first, as its travel log.

Without a branch name, main is used, or master if there is no main.
Running init again refreshes the log and keeps the tracked head when it is
still part of the history.

Examples:
  git-travel init             # Record main (or master)
  git-travel init develop     # Record develop`,
	Args: cobra.MaximumNArgs(1),
	Run:  runInit,
}

func runInit(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	if err := core.Run(context.Background(), c.Env(cmd), initCommand(args)); err != nil {
		c.Close()
		exitError("%v", err)
	}
}

func initCommand(args []string) core.InitCommand {
	if len(args) == 0 {
		return core.InitCommand{}
	}
	return core.InitCommand{Branch: args[0]}
}
