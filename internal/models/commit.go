package models

import (
	"strings"
	"time"
)

// ShortIDLength is the number of hash characters shown in one-line output.
const ShortIDLength = 6

// Commit is a single entry of a branch history as reported by git.
type Commit struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Author    string    `json:"author,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ShortID returns a shortened commit ID (first 6 characters)
func (c *Commit) ShortID() string {
	if len(c.ID) > ShortIDLength {
		return c.ID[:ShortIDLength]
	}
	return c.ID
}

// Subject returns the first line of the commit message.
func (c *Commit) Subject() string {
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return strings.TrimSpace(subject)
}

// OneLine formats the commit as "<short id> <subject>".
func (c *Commit) OneLine() string {
	return c.ShortID() + " " + c.Subject()
}

// CommitIDs returns the IDs of commits in order.
func CommitIDs(commits []Commit) []string {
	ids := make([]string, len(commits))
	for i := range commits {
		ids[i] = commits[i].ID
	}
	return ids
}
