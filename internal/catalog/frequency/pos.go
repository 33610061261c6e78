package frequency

import (
	"slices"
	"strings"
)

// posAliases lists, for each dictionary POS tag, the frequency-list tags it
// accepts. Dictionary tags not listed here fall back to prefix matching.
var posAliases = map[string][]string{
	"v":    {"v"},
	"noun": {"n", "noun"},
	"adj":  {"adj", "adjective"},
	"adv":  {"adv", "adverb"},
	"prep": {"prep", "preposition"},
	"conj": {"conj", "conjunction"},
	"pron": {"pron", "pronoun"},
	"det":  {"determiner", "det"},
}

// posLabels maps lowercase frequency-list tags to display labels.
var posLabels = map[string]string{
	"v":           "verb",
	"n":           "noun",
	"adj":         "adjective",
	"adv":         "adverb",
	"prep":        "preposition",
	"conj":        "conjunction",
	"pron":        "pronoun",
	"art":         "article",
	"num":         "number",
	"determiner":  "determiner",
	"contraction": "contraction",
	"none":        "particle",
}

// MatchesPOS reports whether a dictionary POS tag agrees with a
// frequency-list POS tag. Both are compared lowercased.
func MatchesPOS(dictTag, freqTag string) bool {
	d := strings.ToLower(dictTag)
	f := strings.ToLower(freqTag)

	if aliases, ok := posAliases[d]; ok {
		return slices.Contains(aliases, f)
	}
	return strings.HasPrefix(d, f) || strings.HasPrefix(f, d)
}

// NormalizePOS converts a frequency-list POS tag to its display label.
// The lookup is case-insensitive; unknown tags are returned unchanged.
func NormalizePOS(freqTag string) string {
	if label, ok := posLabels[strings.ToLower(freqTag)]; ok {
		return label
	}
	return freqTag
}
