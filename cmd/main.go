package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"resto-ads/internal/adapter/cached"
	httpadapter "resto-ads/internal/adapter/http"
	"resto-ads/internal/adapter/llm"
	"resto-ads/internal/adapter/memory"
	"resto-ads/internal/adapter/meta"
	"resto-ads/internal/adapter/postgres"
	redisadapter "resto-ads/internal/adapter/redis"
	"resto-ads/internal/adapter/usecase"
	"resto-ads/internal/config"
	"resto-ads/internal/core/port"
	"resto-ads/internal/db"
	"resto-ads/internal/metrics"
	"resto-ads/internal/scheduler"
)

// main loads configuration, wires the store, cache, locks and external
// clients, then serves HTTP and runs the daily expiration sweep until a
// termination signal arrives.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := cfg.Log.New(os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("service stopped with error", slog.Any("error", err))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	cache, locker, closeRedis, err := openCoordination(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRedis()

	if cfg.Cache.Enabled {
		store = cached.New(store, cache, logger)
	}

	platform := meta.New(cfg.Meta, m, logger)
	classifier := usecase.NewClassifier(llm.New(cfg.LLM), logger)

	restaurants := usecase.NewRestaurantUseCase(store, platform, logger)
	adSets := usecase.NewAdSetUseCase(store, platform, cfg.AdSet, m, logger)
	opportunities := usecase.NewOpportunityUseCase(store, locker, logger, cfg.AdSet.LockWait)
	promotions := usecase.NewPromotionUseCase(store, platform, classifier, opportunities, adSets, locker, cfg.AdSet, m, logger)
	sweeper := usecase.NewExpirationSweeper(store, platform, m, logger)
	trackingLinks := usecase.NewTrackingUseCase(store, logger)

	handler := httpadapter.NewHandler(httpadapter.Services{
		Restaurants:   restaurants,
		AdSets:        adSets,
		Promotions:    promotions,
		Opportunities: opportunities,
		Tracking:      trackingLinks,
		Sweeper:       sweeper,
	}, cfg.Webhook, m, logger)

	if cfg.Scheduler.Enabled {
		hour, minute, loc := cfg.Scheduler.Clock()
		daily := &scheduler.Daily{
			Hour:     hour,
			Minute:   minute,
			Location: loc,
			Logger:   logger,
			Job: func(ctx context.Context) {
				res := sweeper.Sweep(ctx)
				logger.Info("expiration sweep finished",
					slog.Int("total", res.Total),
					slog.Int("success", res.Success),
					slog.Int("failed", res.Failed),
				)
			},
		}
		go daily.Run(ctx)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server gracefully stopped")
	return nil
}

// openStore selects the persistence driver. The postgres driver runs
// migrations and seeds the category catalogue when configured.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.Store, func(), error) {
	switch cfg.Store.Driver {
	case "memory":
		logger.Warn("using in-memory store, data is lost on restart")
		return memory.New(), func() {}, nil
	case "postgres":
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	if cfg.Psql.RunMigrations {
		if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied successfully")
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection: %w", err)
	}
	store := postgres.NewStore(pool)
	if cfg.Psql.Seed {
		if err := db.Seed(ctx, store, logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("seed categories: %w", err)
		}
	}
	return store, pool.Close, nil
}

// openCoordination returns the cache and the locker. Without a Redis
// address both live in process, which is only safe for a single replica.
func openCoordination(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.Cache, port.Locker, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR is empty, using in-process cache and locks")
		return memory.NewCache(cfg.Cache.TTL), memory.NewLocker(), func() {}, nil
	}
	client, err := db.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}
	return redisadapter.NewCache(client, cfg.Cache.TTL),
		redisadapter.NewLocker(client, cfg.Redis.LockTTL, logger),
		closeFn, nil
}
