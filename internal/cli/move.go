package cli

import (
	"context"

	"github.com/kilupskalvis/git-travel/internal/core"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move <start|begin|end|last|commit>",
	Short: "Move HEAD to a commit",
	Long: `Check out the oldest commit (start, begin), the newest commit (end, last)
or any commit or branch git can resolve.

Examples:
  git-travel move start      # Oldest commit
  git-travel move end        # Newest commit
  git-travel move 1a2b3c     # A specific commit`,
	Args: cobra.ExactArgs(1),
	Run:  runMove,
}

var moveTrack bool

func init() {
	moveCmd.Flags().BoolVar(&moveTrack, "track", false, "Also move the tracked head of the current branch")
}

func runMove(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	move := core.MoveCommand{Destination: args[0], Track: moveTrack || c.Config.TrackHead}
	if err := core.Run(context.Background(), c.Env(cmd), move); err != nil {
		c.Close()
		exitError("%v", err)
	}
}
