// Package catalog implements catalog persistence using PostgreSQL.
// A publication replaces every word at once; reads never see a mix of builds.
package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/spanish-vocab/internal/adapter/postgres"
	"github.com/heartmarshall/spanish-vocab/internal/domain"
)

const (
	wordsTable  = "catalog_words"
	buildsTable = "catalog_builds"

	defaultBatchSize = 500
)

var wordColumns = []string{
	"id", "spanish", "english", "part_of_speech", "frequency_rank",
	"example_sentence", "example_translation",
}

var buildColumns = []string{"id", "source", "word_count", "created_at"}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides catalog persistence backed by PostgreSQL.
type Repo struct {
	db        postgres.Querier
	txm       *postgres.TxManager
	batchSize int
}

// New creates a new catalog repository. batchSize bounds the number of rows
// per pgx.Batch round trip; zero or negative selects the default.
func New(db postgres.Querier, txm *postgres.TxManager, batchSize int) *Repo {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Repo{db: db, txm: txm, batchSize: batchSize}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// ReplaceAll records a new build and replaces all catalog words with words,
// in one transaction. Returns the number of inserted words.
func (r *Repo) ReplaceAll(ctx context.Context, buildID uuid.UUID, source domain.DataSource, words []domain.CatalogWord) (int, error) {
	var inserted int

	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		sql, args, err := psql.Insert(buildsTable).
			Columns("id", "source", "word_count").
			Values(buildID, string(source), len(words)).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert build query: %w", err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, "catalog_build", buildID)
		}

		if _, err := q.Exec(ctx, `DELETE FROM `+wordsTable); err != nil {
			return fmt.Errorf("delete catalog words: %w", err)
		}

		for start := 0; start < len(words); start += r.batchSize {
			end := min(start+r.batchSize, len(words))
			n, err := insertWords(ctx, q, buildID, words[start:end])
			inserted += n
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func insertWords(ctx context.Context, q postgres.Querier, buildID uuid.UUID, words []domain.CatalogWord) (int, error) {
	batch := &pgx.Batch{}
	for _, w := range words {
		batch.Queue(
			`INSERT INTO catalog_words (id, spanish, english, part_of_speech, frequency_rank, example_sentence, example_translation, build_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			w.ID, w.Spanish, w.English, w.PartOfSpeech, w.FrequencyRank,
			w.ExampleSentence, w.ExampleTranslation, buildID,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for i := range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, postgres.MapError(err, "catalog_word", words[i].ID)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// All returns every catalog word ordered by id.
func (r *Repo) All(ctx context.Context) ([]domain.CatalogWord, error) {
	query := psql.Select(wordColumns...).From(wordsTable).OrderBy("id")
	return r.selectWords(ctx, query)
}

// LatestBuild returns the most recent build or domain.ErrNotFound when the
// catalog was never published.
func (r *Repo) LatestBuild(ctx context.Context) (domain.CatalogBuild, error) {
	sql, args, err := psql.Select(buildColumns...).
		From(buildsTable).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return domain.CatalogBuild{}, fmt.Errorf("build latest build query: %w", err)
	}

	var b domain.CatalogBuild
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &b, sql, args...); err != nil {
		return domain.CatalogBuild{}, postgres.MapError(err, "catalog_build", "latest")
	}
	return b, nil
}

func (r *Repo) selectWords(ctx context.Context, query squirrel.SelectBuilder) ([]domain.CatalogWord, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build words query: %w", err)
	}

	words := []domain.CatalogWord{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &words, sql, args...); err != nil {
		return nil, fmt.Errorf("select catalog words: %w", err)
	}
	return words, nil
}
