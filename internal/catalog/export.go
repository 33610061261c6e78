package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/spanish-vocab/internal/domain"
)

// Export is the JSON document written by the catalog-build command.
type Export struct {
	BuildID     uuid.UUID            `json:"buildId"`
	Source      domain.DataSource    `json:"source"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Count       int                  `json:"count"`
	Words       []domain.CatalogWord `json:"words"`
}

// WriteJSON encodes res as an indented Export document.
func WriteJSON(w io.Writer, res Result, now time.Time) error {
	words := res.Words
	if words == nil {
		words = []domain.CatalogWord{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(Export{
		BuildID:     res.BuildID,
		Source:      res.Source,
		GeneratedAt: now.UTC(),
		Count:       len(words),
		Words:       words,
	}); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return nil
}

// WriteJSONFile writes res to path, replacing any existing file.
func WriteJSONFile(path string, res Result, now time.Time) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", cerr)
		}
	}()

	return WriteJSON(f, res, now)
}
