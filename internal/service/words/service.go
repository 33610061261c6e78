// Package words serves lookups, frequency pages and random samples over the
// published vocabulary catalog.
package words

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/spanish-vocab/internal/catalog/fallback"
	"github.com/heartmarshall/spanish-vocab/internal/domain"
)

type catalogSource interface {
	All(ctx context.Context) ([]domain.CatalogWord, error)
	LatestBuild(ctx context.Context) (domain.CatalogBuild, error)
}

// Info describes the loaded catalog.
type Info struct {
	Source   domain.DataSource `json:"source"`
	Total    int               `json:"total"`
	BuildID  *uuid.UUID        `json:"buildId,omitempty"`
	LoadedAt time.Time         `json:"loadedAt"`
}

// snapshot is an immutable view of one loaded catalog.
type snapshot struct {
	words    []domain.CatalogWord // ordered by FrequencyRank
	byID     map[int]int          // id -> index into words
	source   domain.DataSource
	buildID  *uuid.UUID
	loadedAt time.Time
}

// Service holds the catalog in memory. Reload swaps it atomically; reads
// never block each other.
type Service struct {
	log    *slog.Logger
	source catalogSource

	mu   sync.RWMutex
	snap *snapshot

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService creates a new words service. The catalog is empty until Reload
// succeeds.
func NewService(logger *slog.Logger, source catalogSource) *Service {
	return &Service{
		log:    logger.With("service", "words"),
		source: source,
		snap:   &snapshot{byID: map[int]int{}},
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Reload reads the catalog from the source and replaces the served snapshot.
// An empty catalog is replaced by the embedded fallback list. On error the
// previous snapshot stays in place.
func (s *Service) Reload(ctx context.Context) error {
	words, err := s.source.All(ctx)
	if err != nil {
		return fmt.Errorf("load catalog words: %w", err)
	}

	snap := &snapshot{loadedAt: time.Now()}

	build, err := s.source.LatestBuild(ctx)
	switch {
	case err == nil:
		snap.source = build.Source
		snap.buildID = &build.ID
	case errors.Is(err, domain.ErrNotFound):
		snap.source = domain.DataSourceDictionary
	default:
		return fmt.Errorf("load catalog build: %w", err)
	}

	if len(words) == 0 {
		words = fallback.Words()
		snap.source = domain.DataSourceFallback
		snap.buildID = nil
		s.log.WarnContext(ctx, "catalog is empty, serving embedded fallback list",
			slog.Int("words", len(words)),
		)
	}

	words = slices.Clone(words)
	slices.SortStableFunc(words, func(a, b domain.CatalogWord) int {
		return a.FrequencyRank - b.FrequencyRank
	})
	snap.words = words
	snap.byID = make(map[int]int, len(words))
	for i, w := range words {
		snap.byID[w.ID] = i
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.log.InfoContext(ctx, "catalog loaded",
		slog.String("source", snap.source.String()),
		slog.Int("words", len(words)),
	)
	return nil
}

func (s *Service) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// GetByID returns the word with the given id or domain.ErrNotFound.
func (s *Service) GetByID(id int) (domain.CatalogWord, error) {
	snap := s.current()

	i, ok := snap.byID[id]
	if !ok {
		return domain.CatalogWord{}, fmt.Errorf("word %d: %w", id, domain.ErrNotFound)
	}
	return snap.words[i], nil
}

// ListByFrequency returns up to count words in frequency order after
// skipping the first skip. A negative skip is a validation error; a
// non-positive count or a skip past the end yields an empty page.
func (s *Service) ListByFrequency(count, skip int) ([]domain.CatalogWord, error) {
	if skip < 0 {
		return nil, domain.NewValidationError("skip", "must not be negative")
	}

	snap := s.current()
	if count <= 0 || skip >= len(snap.words) {
		return []domain.CatalogWord{}, nil
	}

	end := min(skip+count, len(snap.words))
	return slices.Clone(snap.words[skip:end]), nil
}

// Random returns up to count distinct words chosen uniformly at random,
// leaving out any word whose id is in exclude.
func (s *Service) Random(count int, exclude []int) []domain.CatalogWord {
	if count <= 0 {
		return []domain.CatalogWord{}
	}

	skip := make(map[int]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	snap := s.current()
	candidates := make([]domain.CatalogWord, 0, len(snap.words))
	for _, w := range snap.words {
		if _, ok := skip[w.ID]; !ok {
			candidates = append(candidates, w)
		}
	}

	n := min(count, len(candidates))

	// Partial Fisher-Yates: the first n slots end up uniformly sampled.
	s.rngMu.Lock()
	for i := range n {
		j := i + s.rng.IntN(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	s.rngMu.Unlock()

	return candidates[:n]
}

// Total returns the number of words in the loaded catalog.
func (s *Service) Total() int {
	return len(s.current().words)
}

// DataSource reports where the loaded catalog came from.
func (s *Service) DataSource() domain.DataSource {
	return s.current().source
}

// Loaded reports whether a catalog has been loaded.
func (s *Service) Loaded() bool {
	return !s.current().loadedAt.IsZero()
}

// Info describes the loaded catalog.
func (s *Service) Info() Info {
	snap := s.current()
	return Info{
		Source:   snap.source,
		Total:    len(snap.words),
		BuildID:  snap.buildID,
		LoadedAt: snap.loadedAt,
	}
}
