package models

// HeadState describes where a project currently stands: the branch marker and
// tracked head from the log store, next to the real repository HEAD.
type HeadState struct {
	Project       string
	CurrentBranch string // Empty if no branch was initialized yet
	TrackedHead   string // Empty if the current branch has no log
	RealHead      string // Empty for a repository without commits
}

// InSync reports whether the tracked head matches the repository HEAD.
func (h *HeadState) InSync() bool {
	return h.TrackedHead != "" && h.TrackedHead == h.RealHead
}
