package dictionary

import (
	"regexp"
	"strings"
)

var (
	labeledLinkRe = regexp.MustCompile(`\[\[([^\]|]+)\|([^\]]+)\]\]`)
	plainLinkRe   = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	templateRe    = regexp.MustCompile(`\{\{[^}]+\}\}`)
	htmlTagRe     = regexp.MustCompile(`<[^>]+>`)
)

// crossReferencePrefixes mark glosses that point at another headword instead
// of defining this one.
var crossReferencePrefixes = []string{
	"inflection of",
	"form of",
	"obsolete form",
	"pronunciation spelling",
}

// CleanGloss strips wiki markup from a gloss:
//
//	[[target|label]] → label
//	[[target]]       → target
//	{{template}}     → removed
//	<tag>            → removed
//
// The result is trimmed. Cross-reference glosses ("inflection of ...",
// "form of ...") come back as "".
func CleanGloss(gloss string) string {
	if gloss == "" {
		return ""
	}

	gloss = labeledLinkRe.ReplaceAllString(gloss, "${2}")
	gloss = plainLinkRe.ReplaceAllString(gloss, "${1}")
	gloss = templateRe.ReplaceAllString(gloss, "")
	gloss = htmlTagRe.ReplaceAllString(gloss, "")
	gloss = strings.TrimSpace(gloss)

	for _, prefix := range crossReferencePrefixes {
		if strings.HasPrefix(gloss, prefix) {
			return ""
		}
	}

	return gloss
}
