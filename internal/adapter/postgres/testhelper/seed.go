package testhelper

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/spanish-vocab/internal/domain"
)

// SeedWords inserts n words under a fresh build and returns them. Word i has
// ID i and FrequencyRank 2*i so ids and ranks differ.
func SeedWords(t *testing.T, pool *pgxpool.Pool, n int) (uuid.UUID, []domain.CatalogWord) {
	t.Helper()
	ctx := context.Background()

	buildID := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO catalog_builds (id, source, word_count) VALUES ($1, $2, $3)`,
		buildID, string(domain.DataSourceDictionary), n,
	)
	if err != nil {
		t.Fatalf("testhelper: seed build: %v", err)
	}

	words := make([]domain.CatalogWord, 0, n)
	for i := 1; i <= n; i++ {
		w := domain.CatalogWord{
			ID:            i,
			Spanish:       fmt.Sprintf("palabra%d", i),
			English:       fmt.Sprintf("word %d", i),
			PartOfSpeech:  "noun",
			FrequencyRank: 2 * i,
		}
		_, err := pool.Exec(ctx,
			`INSERT INTO catalog_words (id, spanish, english, part_of_speech, frequency_rank, build_id)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			w.ID, w.Spanish, w.English, w.PartOfSpeech, w.FrequencyRank, buildID,
		)
		if err != nil {
			t.Fatalf("testhelper: seed word %d: %v", i, err)
		}
		words = append(words, w)
	}

	return buildID, words
}
