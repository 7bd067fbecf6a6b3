package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kilupskalvis/git-travel/internal/core"
	"github.com/spf13/cobra"
)

var travelCmd = &cobra.Command{
	Use:   "travel [count]",
	Short: "Move HEAD a number of commits",
	Long: `Check out the commit count steps away from HEAD in the history of all refs.
Travel goes toward the newest commit; with --back it goes toward the oldest.
Travel stops at either end of the history. Count defaults to 1.

Examples:
  git-travel travel           # One commit newer
  git-travel travel 3         # Three commits newer
  git-travel travel --back 2  # Two commits older`,
	Args: travelArgs,
	Run:  runTravel,
}

var (
	travelBack  bool
	travelTrack bool
)

func init() {
	travelCmd.Flags().BoolVarP(&travelBack, "back", "b", false, "Travel toward older commits")
	travelCmd.Flags().BoolVar(&travelTrack, "track", false, "Also move the tracked head of the current branch")
}

func travelArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return err
	}
	_, err := parseCount(args)
	return err
}

func runTravel(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	travel, err := travelCommand(args, travelBack, travelTrack || c.Config.TrackHead)
	if err != nil {
		c.Close()
		exitError("%v", err)
	}

	if err := core.Run(context.Background(), c.Env(cmd), travel); err != nil {
		c.Close()
		exitError("%v", err)
	}
}

func travelCommand(args []string, back, track bool) (core.TravelCommand, error) {
	count, err := parseCount(args)
	if err != nil {
		return core.TravelCommand{}, err
	}
	return core.TravelCommand{Count: count, Back: back, Track: track}, nil
}

// parseCount reads the optional positional count, defaulting to 1.
func parseCount(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	count, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, &UsageError{Msg: fmt.Sprintf("invalid integer value : %s", args[0])}
	}
	if count <= 0 {
		return 0, &UsageError{Msg: fmt.Sprintf("count must be greater than 0, got %d", count)}
	}
	return count, nil
}
