package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/spanish-vocab/internal/adapter/postgres"
	catalogrepo "github.com/heartmarshall/spanish-vocab/internal/adapter/postgres/catalog"
	"github.com/heartmarshall/spanish-vocab/internal/catalog"
	"github.com/heartmarshall/spanish-vocab/internal/config"
	"github.com/heartmarshall/spanish-vocab/internal/domain"
	"github.com/heartmarshall/spanish-vocab/migrations"
)

type catalogReader interface {
	All(ctx context.Context) ([]domain.CatalogWord, error)
	LatestBuild(ctx context.Context) (domain.CatalogBuild, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// source is where the server reads its catalog from. pinger is nil when no
// database is configured.
type source struct {
	reader catalogReader
	pinger pinger
	close  func()
}

func openSource(ctx context.Context, logger *slog.Logger, cfg *config.Config) (source, error) {
	if !cfg.Database.Enabled() {
		logger.Warn("no database configured, building catalog in memory")
		store, err := inMemorySource(ctx, logger, cfg.Catalog)
		if err != nil {
			return source{}, err
		}
		return source{reader: store, close: func() {}}, nil
	}

	pool, repo, err := openRepo(ctx, logger, cfg)
	if err != nil {
		return source{}, err
	}

	if err := bootstrap(ctx, logger, cfg.Catalog, repo); err != nil {
		pool.Close()
		return source{}, err
	}

	return source{reader: repo, pinger: pool, close: pool.Close}, nil
}

// openRepo connects to Postgres, applies migrations when configured and
// returns the catalog repository.
func openRepo(ctx context.Context, logger *slog.Logger, cfg *config.Config) (*pgxpool.Pool, *catalogrepo.Repo, error) {
	pool, err := postgres.NewPool(ctx, logger, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, logger, cfg.Database.DSN, migrations.FS); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}

	repo := catalogrepo.New(pool, postgres.NewTxManager(pool), cfg.Catalog.BatchSize)
	return pool, repo, nil
}

type bootstrapStore interface {
	catalog.Store
	LatestBuild(ctx context.Context) (domain.CatalogBuild, error)
}

// bootstrap publishes a freshly built catalog when the store has never been
// populated.
func bootstrap(ctx context.Context, logger *slog.Logger, cfg config.CatalogConfig, store bootstrapStore) error {
	_, err := store.LatestBuild(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("read latest build: %w", err)
	}

	logger.Info("catalog store is empty, building catalog")

	builder := catalog.NewBuilder(logger, cfg)
	res, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	if _, err := store.ReplaceAll(ctx, res.BuildID, res.Source, res.Words); err != nil {
		return fmt.Errorf("publish catalog: %w", err)
	}
	return nil
}
