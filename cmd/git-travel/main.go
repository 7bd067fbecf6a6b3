// Command git-travel steps through the commit history of the git repository
// in the working directory.
package main

import (
	"os"

	"github.com/kilupskalvis/git-travel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
