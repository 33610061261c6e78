package frequency

import "testing"

func TestMatchesPOS(t *testing.T) {
	tests := []struct {
		dict string
		freq string
		want bool
	}{
		// Fixed alias table.
		{"v", "v", true},
		{"v", "verb", false},
		{"noun", "n", true},
		{"noun", "noun", true},
		{"noun", "v", false},
		{"adj", "adj", true},
		{"adj", "adjective", true},
		{"adv", "adv", true},
		{"adv", "adverb", true},
		{"prep", "prep", true},
		{"prep", "preposition", true},
		{"conj", "conj", true},
		{"conj", "conjunction", true},
		{"pron", "pron", true},
		{"pron", "pronoun", true},
		{"det", "determiner", true},
		{"det", "det", true},
		{"det", "art", false},

		// Case-insensitive on both sides.
		{"NOUN", "N", true},
		{"Prep", "PREPOSITION", true},
		{"V", "v", true},

		// Prefix fallback for tags outside the table.
		{"verb", "v", true},
		{"num", "number", true},
		{"number", "num", true},
		{"article", "art", true},
		{"intj", "interjection", false},
		{"particle", "art", false},
		{"contraction", "contraction", true},

		// An empty frequency tag is a prefix of everything.
		{"verb", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.dict+"/"+tt.freq, func(t *testing.T) {
			got := MatchesPOS(tt.dict, tt.freq)
			if got != tt.want {
				t.Errorf("MatchesPOS(%q, %q) = %v, want %v", tt.dict, tt.freq, got, tt.want)
			}
		})
	}
}

func TestNormalizePOS(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"v", "verb"},
		{"n", "noun"},
		{"adj", "adjective"},
		{"adv", "adverb"},
		{"prep", "preposition"},
		{"conj", "conjunction"},
		{"pron", "pronoun"},
		{"art", "article"},
		{"num", "number"},
		{"determiner", "determiner"},
		{"contraction", "contraction"},
		{"none", "particle"},

		// Case insensitivity.
		{"V", "verb"},
		{"Prep", "preposition"},
		{"NONE", "particle"},

		// Unknown tags pass through with their original case.
		{"interj", "interj"},
		{"Interj", "Interj"},
		{"noun", "noun"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizePOS(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePOS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
