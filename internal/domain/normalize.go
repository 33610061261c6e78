package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// HeadwordKey returns the comparison key for a dictionary headword or a
// frequency-list word. Full Unicode case folding is used so that accented
// capitals ("Él", "ÁRBOL") meet their lowercase spellings.
//
// Surrounding whitespace is trimmed; inner spacing and diacritics are kept.
func HeadwordKey(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	// A Caser keeps state between calls, so a fresh one is used each time.
	return cases.Fold().String(word)
}
