package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/heartmarshall/spanish-vocab/internal/catalog"
	"github.com/heartmarshall/spanish-vocab/internal/config"
)

// ErrPublish is returned by RunBuild when the catalog could not be written to
// the database.
var ErrPublish = errors.New("publish failed")

// BuildOptions are the catalog-build command line switches.
type BuildOptions struct {
	ConfigPath string
	DryRun     bool
	Out        string
	NoDB       bool
}

// RunBuild builds the catalog, optionally exports it as JSON and publishes it
// to Postgres unless disabled.
func RunBuild(ctx context.Context, opts BuildOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.DryRun {
		cfg.Catalog.DryRun = true
	}

	logger := NewLogger(cfg.Log)
	logger.Info("catalog build starting",
		slog.String("version", BuildVersion()),
		slog.String("frequency_path", cfg.Catalog.FrequencyPath),
		slog.String("dictionary_path", cfg.Catalog.DictionaryPath),
		slog.Int("max_words", cfg.Catalog.MaxWords),
		slog.Bool("dry_run", cfg.Catalog.DryRun),
	)

	builder := catalog.NewBuilder(logger, cfg.Catalog)
	res, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	if opts.Out != "" {
		if err := catalog.WriteJSONFile(opts.Out, res, time.Now()); err != nil {
			return err
		}
		logger.Info("catalog exported", slog.String("path", opts.Out), slog.Int("words", len(res.Words)))
	}

	switch {
	case opts.NoDB:
		logger.Info("database publishing disabled")
		return nil
	case !cfg.Database.Enabled():
		logger.Warn("no database configured, catalog not published")
		return nil
	}

	pool, repo, err := openRepo(ctx, logger, cfg)
	if err != nil {
		return errors.Join(ErrPublish, err)
	}
	defer pool.Close()

	if _, err := builder.Publish(ctx, repo, res); err != nil {
		return errors.Join(ErrPublish, err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
