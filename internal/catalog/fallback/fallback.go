// Package fallback provides the built-in catalog served when no word could be
// produced from the dictionary and frequency files.
package fallback

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/heartmarshall/spanish-vocab/internal/catalog/frequency"
	"github.com/heartmarshall/spanish-vocab/internal/domain"
)

//go:embed words.csv
var wordsCSV []byte

var header = []string{"id", "spanish", "english", "pos", "rank", "example", "example_translation"}

var loadWords = sync.OnceValue(func() []domain.CatalogWord {
	words, err := Parse(bytes.NewReader(wordsCSV))
	if err != nil {
		panic(fmt.Sprintf("fallback: embedded word list: %v", err))
	}
	return words
})

// Words returns the embedded list of the most frequent Spanish words, ordered
// by frequency rank. Each call returns a fresh copy.
func Words() []domain.CatalogWord {
	return slices.Clone(loadWords())
}

// Parse reads a fallback word list in CSV form. The first row must be the
// header id,spanish,english,pos,rank,example,example_translation.
// Empty example cells leave the corresponding field nil.
func Parse(r io.Reader) ([]domain.CatalogWord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !slices.Equal(head, header) {
		return nil, fmt.Errorf("unexpected header %q", strings.Join(head, ","))
	}

	var words []domain.CatalogWord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		w, err := parseRow(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		words = append(words, w)
	}

	return words, nil
}

func parseRow(rec []string) (domain.CatalogWord, error) {
	id, err := strconv.Atoi(rec[0])
	if err != nil || id <= 0 {
		return domain.CatalogWord{}, fmt.Errorf("invalid id %q", rec[0])
	}
	rank, err := strconv.Atoi(rec[4])
	if err != nil || rank <= 0 {
		return domain.CatalogWord{}, fmt.Errorf("invalid rank %q", rec[4])
	}

	w := domain.CatalogWord{
		ID:            id,
		Spanish:       strings.TrimSpace(rec[1]),
		English:       strings.TrimSpace(rec[2]),
		PartOfSpeech:  frequency.NormalizePOS(strings.TrimSpace(rec[3])),
		FrequencyRank: rank,
	}
	if w.Spanish == "" || w.English == "" {
		return domain.CatalogWord{}, fmt.Errorf("word %d: spanish and english are required", id)
	}
	if s := strings.TrimSpace(rec[5]); s != "" {
		w.ExampleSentence = &s
	}
	if s := strings.TrimSpace(rec[6]); s != "" {
		w.ExampleTranslation = &s
	}

	return w, nil
}
