// Package catalog builds the vocabulary catalog from the dictionary dump and
// the frequency list, and publishes it to a Store.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/spanish-vocab/internal/catalog/dictionary"
	"github.com/heartmarshall/spanish-vocab/internal/catalog/fallback"
	"github.com/heartmarshall/spanish-vocab/internal/catalog/frequency"
	"github.com/heartmarshall/spanish-vocab/internal/config"
	"github.com/heartmarshall/spanish-vocab/internal/domain"
)

// Store receives a finished catalog.
type Store interface {
	ReplaceAll(ctx context.Context, buildID uuid.UUID, source domain.DataSource, words []domain.CatalogWord) (int, error)
}

// Result is the outcome of one build.
type Result struct {
	BuildID         uuid.UUID
	Words           []domain.CatalogWord
	Source          domain.DataSource
	DictionaryStats dictionary.Stats
	MergeStats      frequency.Stats
	Duration        time.Duration
}

// Builder runs the parse and merge phases.
type Builder struct {
	log *slog.Logger
	cfg config.CatalogConfig
}

// NewBuilder creates a new Builder.
func NewBuilder(log *slog.Logger, cfg config.CatalogConfig) *Builder {
	return &Builder{
		log: log.With(slog.String("component", "catalog_builder")),
		cfg: cfg,
	}
}

// Build parses the dictionary to completion, then merges the frequency list
// against it. Read failures are logged and whatever was produced is kept.
// When the merge yields no words the embedded fallback list is used.
// Only context cancellation is returned as an error.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{BuildID: uuid.New()}

	idx, dictStats, err := dictionary.ParseFile(b.cfg.DictionaryPath)
	if err != nil {
		b.log.Warn("dictionary read failed, continuing with partial index",
			slog.String("path", b.cfg.DictionaryPath),
			slog.String("error", err.Error()),
		)
	}
	res.DictionaryStats = dictStats
	b.log.Info("dictionary parsed",
		slog.Int("headwords", idx.Len()),
		slog.Int("records", dictStats.TotalRecords),
		slog.Int("skipped", dictStats.SkippedRecords),
		slog.Int("entries", dictStats.Entries),
		slog.Int("discarded_glosses", dictStats.DiscardedGlosses),
	)

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("build catalog: %w", err)
	}

	words, mergeStats, err := frequency.MergeFile(b.cfg.FrequencyPath, idx, frequency.Options{Limit: b.cfg.MaxWords})
	if err != nil {
		b.log.Warn("frequency list read failed, keeping merged words",
			slog.String("path", b.cfg.FrequencyPath),
			slog.String("error", err.Error()),
		)
	}
	res.MergeStats = mergeStats
	b.log.Info("frequency list merged",
		slog.Int("rows", mergeStats.TotalRows),
		slog.Int("short_rows", mergeStats.ShortRows),
		slog.Int("flagged_rows", mergeStats.FlaggedRows),
		slog.Int("ranked", mergeStats.Ranked),
		slog.Int("untranslated", mergeStats.Untranslated),
		slog.Int("emitted", mergeStats.Emitted),
	)

	if len(words) > 0 {
		res.Words = words
		res.Source = domain.DataSourceDictionary
	} else {
		res.Words = fallback.Words()
		res.Source = domain.DataSourceFallback
		b.log.Warn("no words merged, using embedded fallback list",
			slog.Int("words", len(res.Words)),
		)
	}

	res.Duration = time.Since(start)
	b.log.Info("catalog built",
		slog.String("build_id", res.BuildID.String()),
		slog.String("source", res.Source.String()),
		slog.Int("words", len(res.Words)),
		slog.Duration("duration", res.Duration),
	)

	return res, nil
}

// Publish replaces the store's catalog with res. In dry-run mode nothing is
// written and zero is returned.
func (b *Builder) Publish(ctx context.Context, store Store, res Result) (int, error) {
	if b.cfg.DryRun {
		b.log.Info("dry run, catalog not published", slog.Int("words", len(res.Words)))
		return 0, nil
	}

	n, err := store.ReplaceAll(ctx, res.BuildID, res.Source, res.Words)
	if err != nil {
		return 0, fmt.Errorf("publish catalog: %w", err)
	}

	b.log.Info("catalog published",
		slog.String("build_id", res.BuildID.String()),
		slog.Int("inserted", n),
	)
	return n, nil
}
