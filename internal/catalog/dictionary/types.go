// Package dictionary parses a bilingual dictionary dump into an in-memory
// headword index.
//
// The dump is a flat text made of records separated by "_____". The first
// line of a record is the headword; "pos:" lines open a sense and "gloss:"
// lines add translations to it. Malformed records are skipped, never fatal.
package dictionary

import "github.com/heartmarshall/spanish-vocab/internal/domain"

// Entry is one part-of-speech group of glosses for a headword.
type Entry struct {
	PartOfSpeech string
	Glosses      []string
}

// Index maps headwords to their entries. Keys are case-folded, so lookups are
// case-insensitive. An Index is read-only once Parse returns and may be shared
// between goroutines.
type Index struct {
	entries map[string][]Entry
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{entries: make(map[string][]Entry)}
}

// Lookup returns the entries for word in insertion order. The returned slice
// belongs to the index and must not be modified.
func (ix *Index) Lookup(word string) ([]Entry, bool) {
	if ix == nil {
		return nil, false
	}
	entries, ok := ix.entries[domain.HeadwordKey(word)]
	return entries, ok
}

// Len returns the number of distinct headwords.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// add appends entries for headword, accumulating across records.
func (ix *Index) add(headword string, entries ...Entry) {
	if len(entries) == 0 {
		return
	}
	key := domain.HeadwordKey(headword)
	ix.entries[key] = append(ix.entries[key], entries...)
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalRecords     int
	SkippedRecords   int
	Entries          int
	DiscardedGlosses int
}
