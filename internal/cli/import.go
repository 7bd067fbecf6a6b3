package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/git-travel/internal/config"
	"github.com/kilupskalvis/git-travel/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Import logs from the plain-file layout",
	Long: `Import the travel logs of this project from the plain-file layout
(<dir>/<project>/<branch>/commits and head, <dir>/<project>/.current-branch).
The default directory is ~/.data/git-travel-data.

Imported commits replace the stored log of the same branch. A head that is
not one of its branch's commits is reset to the newest commit.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runImport,
}

func runImport(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	dir := ""
	if len(args) > 0 {
		dir = args[0]
	} else {
		d, err := config.DefaultLegacyDir()
		if err != nil {
			c.Close()
			exitError("%v", err)
		}
		dir = d
	}

	result, err := c.Logs.ImportLegacy(dir)
	if err != nil {
		c.Close()
		exitError("%v", err)
	}

	printImport(cmd, c.Logs.Project(), result)
}

func printImport(cmd *cobra.Command, project string, result *store.ImportResult) {
	out := cmd.OutOrStdout()
	yellow := color.New(color.FgYellow)

	for _, b := range result.Skipped {
		yellow.Fprintf(out, "warning: skipped branch '%s': no commits\n", b)
	}
	for _, b := range result.HeadsReset {
		yellow.Fprintf(out, "warning: head of '%s' reset to the newest commit\n", b)
	}

	fmt.Fprintf(out, "Imported %d branch(es) of %s\n", len(result.Imported), project)
	for _, b := range result.Imported {
		fmt.Fprintf(out, "  %s\n", b)
	}
	if result.CurrentBranch != "" {
		fmt.Fprintf(out, "Current branch: %s\n", result.CurrentBranch)
	}
}
