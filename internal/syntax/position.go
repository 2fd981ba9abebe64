package syntax

import "strings"

// Line returns the 1-based line of a byte offset in src.
func Line(src string, offset int) int {
	if offset < 0 {
		return 0
	}

	if offset > len(src) {
		offset = len(src)
	}

	return strings.Count(src[:offset], "\n") + 1
}
