// Package cli implements the command-line interface for git-travel.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/kilupskalvis/git-travel/internal/config"
	"github.com/kilupskalvis/git-travel/internal/core"
	"github.com/kilupskalvis/git-travel/internal/git"
	"github.com/kilupskalvis/git-travel/internal/store"
	"github.com/spf13/cobra"
)

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Config  *config.Config
	Backend store.Backend
	Logs    *store.Logs
	Repo    git.Repository
	Logger  *slog.Logger
}

// Close releases resources held by cmdContext
func (c *cmdContext) Close() {
	if c.Backend != nil {
		if err := c.Backend.Close(); err != nil {
			c.Logger.Warn("failed to close store", "error", err)
		}
	}
}

// Env returns the collaborators core.Run works against.
func (c *cmdContext) Env(cmd *cobra.Command) *core.Env {
	return &core.Env{
		Repo:   c.Repo,
		Logs:   c.Logs,
		Out:    cmd.OutOrStdout(),
		Logger: c.Logger,
	}
}

// initContext finds the repository around the working directory and opens
// the travel log store for it.
func initContext() *cmdContext {
	dataDir, err := config.DataDir()
	if err != nil {
		exitError("%v", err)
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		exitError("%v", err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger, err := config.NewLogger(os.Stderr, level, cfg.LogFormat)
	if err != nil {
		exitError("%v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		exitError("failed to get working directory: %v", err)
	}
	root, err := git.FindRoot(wd)
	if err != nil {
		exitError("%v", err)
	}
	repo, err := git.Open(root)
	if err != nil {
		exitError("%v", err)
	}

	backend, err := store.OpenWithRetry(context.Background(), cfg.StoreDriver, dataDir, nil)
	if err != nil {
		exitError("failed to open store: %v", err)
	}

	logs, err := store.NewLogs(backend, git.ProjectName(root))
	if err != nil {
		backend.Close()
		exitError("%v", err)
	}

	logger.Debug("context ready", "root", root, "data_dir", dataDir, "driver", cfg.StoreDriver)
	return &cmdContext{Config: cfg, Backend: backend, Logs: logs, Repo: repo, Logger: logger}
}

var rootCmd = &cobra.Command{
	Use:   "git-travel",
	Short: "Step through the commit history of a git repository",
	Long: `git-travel moves HEAD through the history of the repository in the current
directory: forward and back by a number of commits, to the first or last
commit, or to any commit by name, and shows where HEAD stands.

Commands are case-insensitive.`,
}

var logLevel string

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.EnableCaseInsensitive = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Diagnostic log level: debug, info, warn or error")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(travelCmd)
	rootCmd.AddCommand(hereCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(importCmd)
}

// UsageError reports malformed arguments. Cobra prints it with the usage text.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// shortID returns the abbreviated form of a commit ID
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
