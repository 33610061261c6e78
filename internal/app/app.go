package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/spanish-vocab/internal/catalog"
	"github.com/heartmarshall/spanish-vocab/internal/config"
	"github.com/heartmarshall/spanish-vocab/internal/service/words"
	"github.com/heartmarshall/spanish-vocab/internal/transport/middleware"
	"github.com/heartmarshall/spanish-vocab/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, opens the catalog
// source, and serves the REST API until ctx is cancelled or a termination
// signal arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("database", cfg.Database.Enabled()),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openSource(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer src.close()

	svc := words.NewService(logger, src.reader)
	if err := svc.Reload(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var rateLimit middleware.Middleware
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimitPerMinute, time.Minute)
		defer limiter.Stop()
		rateLimit = limiter.Middleware()
	}

	router := rest.NewRouter(
		rest.NewWordsHandler(svc, logger),
		rest.NewHealthHandler(src.pinger, svc, BuildVersion()),
	)

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		rateLimit,
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	if cfg.Server.ReloadInterval > 0 {
		g.Go(func() error {
			reloadLoop(gctx, logger, svc, cfg.Server.ReloadInterval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

type reloader interface {
	Reload(ctx context.Context) error
	Total() int
}

// reloadLoop re-reads the catalog every interval until ctx is done. A failed
// reload keeps the previous snapshot.
func reloadLoop(ctx context.Context, logger *slog.Logger, svc reloader, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.Reload(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Error("catalog reload failed", slog.String("error", err.Error()))
				continue
			}
			logger.Debug("catalog reloaded", slog.Int("words", svc.Total()))
		}
	}
}

// inMemorySource builds the catalog in-process for running without a database.
func inMemorySource(ctx context.Context, logger *slog.Logger, cfg config.CatalogConfig) (*catalog.Memory, error) {
	res, err := catalog.NewBuilder(logger, cfg).Build(ctx)
	if err != nil {
		return nil, err
	}

	store := catalog.NewMemory()
	if _, err := store.ReplaceAll(ctx, res.BuildID, res.Source, res.Words); err != nil {
		return nil, fmt.Errorf("store catalog: %w", err)
	}
	return store, nil
}
