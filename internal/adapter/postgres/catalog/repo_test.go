package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/spanish-vocab/internal/adapter/postgres"
	"github.com/heartmarshall/spanish-vocab/internal/domain"
)

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock, postgres.NewTxManager(mock), 0), mock
}

func strPtr(s string) *string { return &s }

func wordRows() *pgxmock.Rows {
	return pgxmock.NewRows(wordColumns).
		AddRow(1, "de", "of; from", "preposition", 1, (*string)(nil), (*string)(nil)).
		AddRow(2, "casa", "house; home", "noun", 3, strPtr("Mi casa."), strPtr("My house."))
}

func TestRepo_All(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT id, spanish, english, part_of_speech, frequency_rank, example_sentence, example_translation FROM catalog_words ORDER BY id`).
		WillReturnRows(wordRows())

	words, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, words, 2)

	assert.Equal(t, domain.CatalogWord{ID: 1, Spanish: "de", English: "of; from", PartOfSpeech: "preposition", FrequencyRank: 1}, words[0])
	assert.Equal(t, 3, words[1].FrequencyRank)
	require.NotNil(t, words[1].ExampleSentence)
	assert.Equal(t, "Mi casa.", *words[1].ExampleSentence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_All_Empty(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`FROM catalog_words`).WillReturnRows(pgxmock.NewRows(wordColumns))

	words, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, words)
	assert.Empty(t, words)
}

func TestRepo_All_QueryError(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`FROM catalog_words`).WillReturnError(errors.New("connection reset"))

	_, err := repo.All(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select catalog words")
}

func TestRepo_LatestBuild(t *testing.T) {
	t.Parallel()

	buildID := uuid.New()
	now := time.Now()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT id, source, word_count, created_at FROM catalog_builds ORDER BY created_at DESC LIMIT`).
		WillReturnRows(pgxmock.NewRows(buildColumns).AddRow(buildID, domain.DataSourceDictionary, 1000, now))

	b, err := repo.LatestBuild(context.Background())
	require.NoError(t, err)
	assert.Equal(t, buildID, b.ID)
	assert.Equal(t, domain.DataSourceDictionary, b.Source)
	assert.Equal(t, 1000, b.WordCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_LatestBuild_NeverPublished(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`FROM catalog_builds`).WillReturnRows(pgxmock.NewRows(buildColumns))

	_, err := repo.LatestBuild(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_ReplaceAll_EmptyCatalog(t *testing.T) {
	t.Parallel()

	buildID := uuid.New()
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO catalog_builds`).
		WithArgs(buildID, "embedded fallback", 0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`DELETE FROM catalog_words`).
		WillReturnResult(pgxmock.NewResult("DELETE", 12))
	mock.ExpectCommit()

	n, err := repo.ReplaceAll(context.Background(), buildID, domain.DataSourceFallback, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ReplaceAll_DuplicateBuildRollsBack(t *testing.T) {
	t.Parallel()

	buildID := uuid.New()
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO catalog_builds`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})
	mock.ExpectRollback()

	words := []domain.CatalogWord{{ID: 1, Spanish: "de", English: "of", FrequencyRank: 1}}
	n, err := repo.ReplaceAll(context.Background(), buildID, domain.DataSourceDictionary, words)
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ReplaceAll_DeleteErrorRollsBack(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO catalog_builds`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`DELETE FROM catalog_words`).
		WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	_, err := repo.ReplaceAll(context.Background(), uuid.New(), domain.DataSourceDictionary, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete catalog words")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_DefaultBatchSize(t *testing.T) {
	t.Parallel()

	repo := New(nil, nil, -1)
	assert.Equal(t, defaultBatchSize, repo.batchSize)
}
