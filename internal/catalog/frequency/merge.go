// Package frequency merges a frequency-ranked word list with a parsed
// dictionary into the ranked, translated vocabulary catalog.
//
// The frequency list is comma-separated text with a header row:
//
//	rank,word,pos,flags
//	1,de,prep,
//	2,el,art,DUPLICATE
//
// Malformed rows are skipped, never fatal.
package frequency

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/heartmarshall/spanish-vocab/internal/catalog/dictionary"
	"github.com/heartmarshall/spanish-vocab/internal/domain"
)

const (
	// maxGlosses is how many glosses of the selected sense form a translation.
	maxGlosses     = 3
	glossSeparator = "; "

	minFields = 3

	// maxLineSize caps one row (1 MB); longer rows are skipped as short.
	maxLineSize = 1 << 20
)

// rowFlags mark rows the frequency list itself has rejected.
var rowFlags = []string{"DUPLICATE", "NOUSAGE"}

// Dictionary resolves a word to its dictionary senses.
type Dictionary interface {
	Lookup(word string) ([]dictionary.Entry, bool)
}

// Options tunes a merge run.
type Options struct {
	// Limit caps the number of catalog words. Zero or negative means
	// domain.MaxCatalogWords.
	Limit int
}

func (o Options) limit() int {
	if o.Limit <= 0 {
		return domain.MaxCatalogWords
	}
	return o.Limit
}

// Stats holds merge statistics for logging.
type Stats struct {
	TotalRows    int // data rows read, header excluded
	ShortRows    int
	FlaggedRows  int
	Ranked       int
	Untranslated int
	Emitted      int
}

// MergeFile merges the frequency list at path with dict. A missing file is
// not an error: it yields an empty catalog.
func MergeFile(path string, dict Dictionary, opts Options) ([]domain.CatalogWord, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Stats{}, nil
		}
		return nil, Stats{}, fmt.Errorf("open frequency list: %w", err)
	}
	defer f.Close()

	return Merge(f, dict, opts)
}

// Merge scans the frequency list once and emits a catalog word for every row
// that has a translation in dict, until the limit is reached.
//
// FrequencyRank counts every row that is not flagged, translated or not.
// ID counts only emitted words. The returned error only reports a failure of
// r itself; the words merged before it are still returned.
func Merge(r io.Reader, dict Dictionary, opts Options) ([]domain.CatalogWord, Stats, error) {
	limit := opts.limit()

	var (
		words []domain.CatalogWord
		stats Stats
		rank  int
		id    int
	)

	br := bufio.NewReaderSize(r, 64*1024)

	// Skip header row.
	if _, _, err := readRow(br); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stats, nil
		}
		return nil, stats, fmt.Errorf("read header: %w", err)
	}

	var readErr error
	for id < limit {
		line, oversized, err := readRow(br)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = fmt.Errorf("read frequency list: %w", err)
			}
			break
		}
		stats.TotalRows++

		if oversized {
			stats.ShortRows++
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < minFields {
			stats.ShortRows++
			continue
		}

		spanish := strings.TrimSpace(fields[1])
		pos := strings.TrimSpace(fields[2])

		if len(fields) > minFields && isFlagged(fields[3]) {
			stats.FlaggedRows++
			continue
		}

		rank++

		english, ok := translate(dict, spanish, pos)
		if !ok {
			stats.Untranslated++
			continue
		}

		id++
		words = append(words, domain.CatalogWord{
			ID:            id,
			Spanish:       spanish,
			English:       english,
			PartOfSpeech:  NormalizePOS(pos),
			FrequencyRank: rank,
		})
	}

	stats.Ranked = rank
	stats.Emitted = len(words)

	return words, stats, readErr
}

// readRow returns the next line without its terminator. A line longer than
// maxLineSize is read to its end but not kept, and oversized is set.
// io.EOF is returned only when no line is left.
func readRow(br *bufio.Reader) (line string, oversized bool, err error) {
	var (
		buf  []byte
		read bool
	)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && read {
				return string(buf), oversized, nil
			}
			return "", false, err
		}
		read = true

		if !oversized {
			if len(buf)+len(chunk) > maxLineSize {
				oversized = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), oversized, nil
		}
	}
}

func isFlagged(field string) bool {
	for _, flag := range rowFlags {
		if strings.Contains(field, flag) {
			return true
		}
	}
	return false
}

// translate builds the display translation for word used as pos. ok is
// false when the dictionary has nothing usable.
func translate(dict Dictionary, word, pos string) (string, bool) {
	entries, ok := dict.Lookup(word)
	if !ok || len(entries) == 0 {
		return "", false
	}

	entry := selectEntry(entries, pos)
	if len(entry.Glosses) == 0 {
		return "", false
	}

	glosses := entry.Glosses[:min(len(entry.Glosses), maxGlosses)]
	english := strings.Join(glosses, glossSeparator)
	if english == "" {
		return "", false
	}

	return Truncate(english, MaxTranslationLen), true
}

// selectEntry returns the first entry whose POS matches freqPOS, or the
// first entry when none does. entries must not be empty.
func selectEntry(entries []dictionary.Entry, freqPOS string) *dictionary.Entry {
	for i := range entries {
		if MatchesPOS(entries[i].PartOfSpeech, freqPOS) {
			return &entries[i]
		}
	}
	return &entries[0]
}
