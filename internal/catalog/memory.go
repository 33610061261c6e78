package catalog

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/spanish-vocab/internal/domain"
)

// Memory is an in-process Store used when no database is configured.
type Memory struct {
	mu    sync.RWMutex
	words []domain.CatalogWord
	build *domain.CatalogBuild
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// ReplaceAll swaps the stored catalog.
func (m *Memory) ReplaceAll(_ context.Context, buildID uuid.UUID, source domain.DataSource, words []domain.CatalogWord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.words = slices.Clone(words)
	m.build = &domain.CatalogBuild{
		ID:        buildID,
		Source:    source,
		WordCount: len(words),
		CreatedAt: time.Now(),
	}
	return len(words), nil
}

// All returns a copy of the stored words.
func (m *Memory) All(_ context.Context) ([]domain.CatalogWord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.words), nil
}

// LatestBuild returns the last published build or domain.ErrNotFound.
func (m *Memory) LatestBuild(_ context.Context) (domain.CatalogBuild, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.build == nil {
		return domain.CatalogBuild{}, domain.ErrNotFound
	}
	return *m.build, nil
}
