// Package history holds the index arithmetic used to move through a
// newest-first commit sequence and to cut the window shown around a commit.
// Nothing here touches storage or git.
package history

// NotFound is returned by IndexOf when the target is absent.
const NotFound = -1

// ClampedOffset moves offset by step and saturates the result at the bounds.
// A positive step is clamped at hi, any other step at lo.
//
// Commit sequences are newest-first, so a negative step travels toward newer
// commits and a positive step toward older ones.
func ClampedOffset(lo, hi, offset, step int) int {
	if step > 0 {
		return min(offset+step, hi)
	}
	return max(offset+step, lo)
}

// IndexOf returns the index of the first element equal to target, or NotFound.
func IndexOf(target string, sequence []string) int {
	for i, s := range sequence {
		if s == target {
			return i
		}
	}
	return NotFound
}
