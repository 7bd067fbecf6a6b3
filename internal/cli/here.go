package cli

import (
	"context"

	"github.com/kilupskalvis/git-travel/internal/core"
	"github.com/spf13/cobra"
)

var hereCmd = &cobra.Command{
	Use:   "here",
	Short: "Show the commits around HEAD",
	Long: `Show up to two commits on each side of HEAD in the history of all refs,
newest first. The HEAD commit is highlighted.`,
	Args: cobra.NoArgs,
	Run:  runHere,
}

func runHere(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	if err := core.Run(context.Background(), c.Env(cmd), core.HereCommand{}); err != nil {
		c.Close()
		exitError("%v", err)
	}
}
