package frequency

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxTranslationLen is the display limit for a catalog translation.
	MaxTranslationLen = 80

	ellipsis = "..."
)

// Truncate shortens s to at most maxLen runes. When s is too long it keeps
// the first maxLen-3 runes and, if that window has a ';' past its midpoint,
// cuts at the last one so that only whole glosses remain. Otherwise "..." is
// appended to the window.
//
// Truncate is idempotent: its output is never longer than maxLen.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= len(ellipsis) {
		return string([]rune(s)[:max(maxLen, 0)])
	}

	window := []rune(s)[:maxLen-len(ellipsis)]
	if i := lastIndexRune(window, ';'); i > maxLen/2 {
		return string(window[:i])
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(string(window))
	b.WriteString(ellipsis)
	return b.String()
}

func lastIndexRune(rs []rune, r rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == r {
			return i
		}
	}
	return -1
}
