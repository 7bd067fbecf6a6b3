// Package core implements the travel commands on top of the repository and
// the travel log store.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/kilupskalvis/git-travel/internal/git"
	"github.com/kilupskalvis/git-travel/internal/store"
)

// ErrHeadNotInHistory is returned when HEAD is not among the enumerated commits.
var ErrHeadNotInHistory = errors.New("HEAD is not part of the commit history")

// Command is one of InitCommand, TravelCommand, HereCommand or MoveCommand.
type Command interface {
	command()
}

// InitCommand records the history of a branch. An empty Branch picks main
// or master.
type InitCommand struct {
	Branch string
}

// TravelCommand moves HEAD Count commits toward the newest commit, or toward
// the oldest one when Back is set. Track also moves the tracked head.
type TravelCommand struct {
	Count int
	Back  bool
	Track bool
}

// HereCommand shows the commits around HEAD.
type HereCommand struct{}

// MoveCommand checks out the oldest commit ("start", "begin"), the newest
// commit ("end", "last") or any other commit or branch by name.
type MoveCommand struct {
	Destination string
	Track       bool
}

func (InitCommand) command()   {}
func (TravelCommand) command() {}
func (HereCommand) command()   {}
func (MoveCommand) command()   {}

// Env holds the collaborators a command runs against.
type Env struct {
	Repo   git.Repository
	Logs   *store.Logs
	Out    io.Writer
	Logger *slog.Logger
}

// Run executes cmd and writes its report to env.Out.
// A nil error means success (exit code 0), anything else failure (exit code 1).
func Run(ctx context.Context, env *Env, cmd Command) error {
	logger := env.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Debug("running command", "command", fmt.Sprintf("%T", cmd), "project", env.Logs.Project())

	yellow := color.New(color.FgYellow)
	printWarnings := func(warnings []string) {
		for _, w := range warnings {
			yellow.Fprintf(env.Out, "warning: %s\n", w)
		}
	}

	switch c := cmd.(type) {
	case InitCommand:
		result, err := InitBranch(ctx, env.Repo, env.Logs, c.Branch)
		if err != nil {
			return err
		}
		logger.Debug("branch initialized", "branch", result.Branch, "commits", result.CommitCount, "head", result.Head)
		fmt.Fprintf(env.Out, "Initialized branch '%s' (%d commits)\n", result.Branch, result.CommitCount)
		if result.CurrentBranch != result.Branch {
			fmt.Fprintf(env.Out, "Current branch is still '%s'\n", result.CurrentBranch)
		}

	case TravelCommand:
		result, err := Travel(ctx, env.Repo, env.Logs, c)
		if err != nil {
			return err
		}
		logger.Debug("traveled", "from", result.Previous, "to", result.Target.ID)
		fmt.Fprintf(env.Out, "Travel to : %s\n", result.Target.OneLine())
		printWarnings(result.Warnings)

	case HereCommand:
		entries, err := Here(ctx, env.Repo)
		if err != nil {
			return err
		}
		red := color.New(color.FgRed)
		for _, e := range entries {
			if e.Focal {
				red.Fprintln(env.Out, e.Commit.OneLine())
			} else {
				fmt.Fprintln(env.Out, e.Commit.OneLine())
			}
		}

	case MoveCommand:
		result, err := Move(ctx, env.Repo, env.Logs, c)
		if err != nil {
			return err
		}
		logger.Debug("moved", "from", result.Previous, "to", result.Target.ID)
		fmt.Fprintf(env.Out, "Move to : %s\n", result.Target.OneLine())
		printWarnings(result.Warnings)

	default:
		return fmt.Errorf("unknown command %T", cmd)
	}

	return nil
}
