package models

// WindowEntry is one line of the history window shown around a focal commit.
type WindowEntry struct {
	Commit Commit
	Focal  bool
}
