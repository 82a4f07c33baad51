package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/tradedir-backend/api/controllers"
	"github.com/angelmondragon/tradedir-backend/api/routes"
	"github.com/angelmondragon/tradedir-backend/internal/categories"
	"github.com/angelmondragon/tradedir-backend/internal/directory"
	"github.com/angelmondragon/tradedir-backend/internal/subscriptions"
	"github.com/angelmondragon/tradedir-backend/pkg/config"
	"github.com/angelmondragon/tradedir-backend/pkg/db"
	"github.com/angelmondragon/tradedir-backend/pkg/env"
	"github.com/angelmondragon/tradedir-backend/pkg/instance"
	"github.com/angelmondragon/tradedir-backend/pkg/logger"
	"github.com/angelmondragon/tradedir-backend/pkg/metrics"
	"github.com/angelmondragon/tradedir-backend/pkg/migrate"
	"github.com/angelmondragon/tradedir-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	// Redis is optional. Both interfaces stay nil when it is not configured so
	// the resolver skips caching and readiness reports it as disabled.
	var (
		cache       categories.Cache
		redisPinger controllers.Pinger
	)
	if cfg.Redis.Enabled() {
		redisClient, redisErr := redis.New(ctx, cfg.Redis, logg)
		if redisErr != nil {
			return redisErr
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
		cache = redisClient
		redisPinger = redisClient
	} else {
		logg.Info(ctx, "redis not configured, category cache disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	subsResolver, err := subscriptions.NewResolver(subscriptions.NewRepository(dbClient.DB()), logg)
	if err != nil {
		return err
	}
	catResolver, err := categories.NewResolver(categories.NewRepository(dbClient.DB()), cache, cfg.Directory.CategoryCacheTTL, logg)
	if err != nil {
		return err
	}
	directoryService, err := directory.NewService(directory.ServiceParams{
		Listings:       directory.NewRepository(dbClient.DB()),
		Subscriptions:  subsResolver,
		Categories:     catResolver,
		Logger:         logg,
		Metrics:        metrics.NewDirectoryMetrics(registry),
		ParallelCounts: cfg.Directory.ParallelCounts,
	})
	if err != nil {
		return err
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.ID(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Deps{
			Directory:   directoryService,
			DB:          dbClient,
			Redis:       redisPinger,
			Gatherer:    registry,
			HTTPMetrics: metrics.NewHTTPMetrics(registry),
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(ctx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
