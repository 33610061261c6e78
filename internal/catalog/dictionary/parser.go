package dictionary

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode"
)

const (
	// recordDelimiter separates records anywhere in the dump.
	recordDelimiter = "_____"

	posPrefix   = "pos:"
	glossPrefix = "gloss:"

	// maxRecordSize caps a single record (16 MB); longer records are skipped.
	maxRecordSize = 16 << 20
)

// ParseFile parses the dictionary dump at path. A missing file is not an
// error: it yields an empty index.
func ParseFile(path string) (*Index, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewIndex(), Stats{}, nil
		}
		return NewIndex(), Stats{}, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse streams records from r into an Index. Records that cannot be
// understood, including records over maxRecordSize, are skipped. The
// returned error only reports a failure of r itself; the index holds
// everything parsed up to that point.
func Parse(r io.Reader) (*Index, Stats, error) {
	idx := NewIndex()
	var stats Stats

	records := newRecordReader(r, maxRecordSize)
	for {
		record, oversized, err := records.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return idx, stats, nil
			}
			return idx, stats, fmt.Errorf("read dictionary: %w", err)
		}

		if oversized {
			stats.TotalRecords++
			stats.SkippedRecords++
			continue
		}
		if strings.TrimSpace(record) == "" {
			continue
		}
		stats.TotalRecords++

		headword, entries, discarded, ok := parseRecord(record)
		stats.DiscardedGlosses += discarded
		if !ok {
			stats.SkippedRecords++
			continue
		}

		idx.add(headword, entries...)
		stats.Entries += len(entries)
	}
}

// sense is a pos+glosses group under construction.
type sense struct {
	pos     string
	hasPos  bool
	glosses []string
}

func (s *sense) complete() bool {
	return s.hasPos && len(s.glosses) > 0
}

func (s *sense) entry() Entry {
	return Entry{
		PartOfSpeech: s.pos,
		Glosses:      append([]string(nil), s.glosses...),
	}
}

// parseRecord extracts the headword and its senses from one record. ok is
// false when the record has no usable headword. discarded counts glosses that
// were empty after cleaning.
func parseRecord(record string) (headword string, entries []Entry, discarded int, ok bool) {
	lines := nonEmptyLines(record)
	if len(lines) < 2 {
		return "", nil, 0, false
	}

	headword = strings.TrimSpace(lines[0])
	if headword == "" || strings.HasPrefix(headword, "-") || strings.HasPrefix(headword, "*") {
		return "", nil, 0, false
	}

	var cur sense
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)

		switch {
		case strings.HasPrefix(trimmed, posPrefix):
			if cur.complete() {
				entries = append(entries, cur.entry())
			}
			cur = sense{
				pos:    strings.TrimSpace(trimmed[len(posPrefix):]),
				hasPos: true,
			}

		case strings.HasPrefix(trimmed, glossPrefix):
			gloss := CleanGloss(strings.TrimSpace(trimmed[len(glossPrefix):]))
			if gloss == "" {
				discarded++
				continue
			}
			cur.glosses = append(cur.glosses, gloss)
		}
	}

	if cur.complete() {
		entries = append(entries, cur.entry())
	}

	return headword, entries, discarded, true
}

// nonEmptyLines splits s on '\n' and drops zero-length lines. A trailing
// '\r' is removed first so CRLF dumps parse like LF ones.
func nonEmptyLines(s string) []string {
	parts := strings.Split(s, "\n")
	lines := parts[:0]
	for _, p := range parts {
		p = strings.TrimSuffix(p, "\r")
		if p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}
