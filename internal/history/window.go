package history

import "github.com/kilupskalvis/git-travel/internal/models"

// WindowRadius is how many commits are shown on each side of the focal commit.
const WindowRadius = 2

// WindowBounds returns the inclusive index range of the window around focal.
// Near either end the range is cut short rather than shifted.
func WindowBounds(focal, length int) (start, end int) {
	start = max(focal-WindowRadius, 0)
	end = min(focal+WindowRadius, length-1)
	return start, end
}

// Window returns the entries of commits around the focal index, with the
// focal entry flagged. It returns nil when focal is out of range.
func Window(commits []models.Commit, focal int) []models.WindowEntry {
	if focal < 0 || focal >= len(commits) {
		return nil
	}

	start, end := WindowBounds(focal, len(commits))
	entries := make([]models.WindowEntry, 0, end-start+1)
	for i := start; i <= end; i++ {
		entries = append(entries, models.WindowEntry{
			Commit: commits[i],
			Focal:  i == focal,
		})
	}
	return entries
}
