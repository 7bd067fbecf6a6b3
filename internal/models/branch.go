package models

import "slices"

// BranchLog is the tracked history of one branch of one project.
// Commits are ordered newest-first; Head is the last visited commit.
type BranchLog struct {
	Project string   `json:"project"`
	Branch  string   `json:"branch"`
	Commits []string `json:"commits"`
	Head    string   `json:"head"`
}

// Valid reports whether the log has at least one commit and its head is one of them.
func (l *BranchLog) Valid() bool {
	return len(l.Commits) > 0 && slices.Contains(l.Commits, l.Head)
}

// Newest returns the most recent commit of the log.
func (l *BranchLog) Newest() string {
	return l.Commits[0]
}

// Oldest returns the first commit ever made on the branch.
func (l *BranchLog) Oldest() string {
	return l.Commits[len(l.Commits)-1]
}
