package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kilupskalvis/git-travel/internal/models"
)

// File names of the plain-file layout used before the embedded database:
//
//	<dir>/<project>/.current-branch
//	<dir>/<project>/<branch>/commits
//	<dir>/<project>/<branch>/head
const (
	legacyCurrentBranchFile = ".current-branch"
	legacyCommitsFile       = "commits"
	legacyHeadFile          = "head"
)

// ImportResult summarizes an ImportLegacy run.
type ImportResult struct {
	Imported      []string // Branches written to the store
	Skipped       []string // Branches without commits
	HeadsReset    []string // Branches whose recorded head was not in their commits
	CurrentBranch string   // Branch marker after the import
}

// ImportLegacy copies the logs of this project from the plain-file layout
// rooted at dir into the store. Commits replace what is stored; a recorded
// head is kept when it is one of the commits and otherwise reset to the
// newest. The whole import is one transaction.
func (l *Logs) ImportLegacy(dir string) (*ImportResult, error) {
	projectDir := filepath.Join(dir, l.project)
	info, err := os.Stat(projectDir)
	if err != nil {
		return nil, fmt.Errorf("read legacy logs: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("read legacy logs: %s is not a directory", projectDir)
	}

	logs, skipped, err := readLegacyLogs(projectDir)
	if err != nil {
		return nil, err
	}
	legacyCurrent := readFirstLine(filepath.Join(projectDir, legacyCurrentBranchFile))

	result := &ImportResult{Skipped: skipped}
	err = l.backend.Update(func(tx Tx) error {
		for _, log := range logs {
			log.Project = l.project
			if !log.Valid() {
				result.HeadsReset = append(result.HeadsReset, log.Branch)
				log.Head = log.Newest()
			}
			if err := tx.PutBranchLog(log); err != nil {
				return err
			}
			result.Imported = append(result.Imported, log.Branch)
		}

		current, err := tx.CurrentBranch(l.project)
		if err != nil {
			return err
		}
		switch {
		case slices.Contains(result.Imported, legacyCurrent):
			current = legacyCurrent
		case current == "" && len(result.Imported) > 0:
			current = result.Imported[0]
		}
		if current != "" {
			if err := tx.SetCurrentBranch(l.project, current); err != nil {
				return err
			}
		}
		result.CurrentBranch = current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import legacy logs: %w", err)
	}

	return result, nil
}

// readLegacyLogs finds every directory below projectDir holding a commits
// file. Branch names keep their slashes ("feature/login").
func readLegacyLogs(projectDir string) ([]*models.BranchLog, []string, error) {
	var logs []*models.BranchLog
	var skipped []string

	err := filepath.WalkDir(projectDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != legacyCommitsFile {
			return nil
		}

		branchDir := filepath.Dir(path)
		rel, err := filepath.Rel(projectDir, branchDir)
		if err != nil || rel == "." {
			return nil
		}
		branch := filepath.ToSlash(rel)

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		commits := splitLines(string(data))
		if len(commits) == 0 {
			skipped = append(skipped, branch)
			return nil
		}

		logs = append(logs, &models.BranchLog{
			Branch:  branch,
			Commits: commits,
			Head:    readFirstLine(filepath.Join(branchDir, legacyHeadFile)),
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return logs, skipped, nil
}

// readFirstLine returns the first non-blank line of a file, or "" if the file
// is missing or empty.
func readFirstLine(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	lines := splitLines(string(data))
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[0])
}
