package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dotbio/dotbio-api/internal/auth"
	"github.com/dotbio/dotbio-api/internal/bootstrap"
	"github.com/dotbio/dotbio-api/internal/cases"
	"github.com/dotbio/dotbio-api/internal/config"
	"github.com/dotbio/dotbio-api/internal/database"
	"github.com/dotbio/dotbio-api/internal/inventory"
	"github.com/dotbio/dotbio-api/internal/livefeed"
	"github.com/dotbio/dotbio-api/internal/logger"
	"github.com/dotbio/dotbio-api/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logCfg := logger.ProductionConfig()
	logCfg.Level = cfg.LogLevel
	if !cfg.LogJSON {
		logCfg.Format = logger.LogFormatText
	}
	logger.InitLogger(logCfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.DefaultMaxConns, database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
	if err != nil {
		return err
	}

	if err := bootstrap.ApplySchema(ctx, dbPool); err != nil {
		dbPool.Close()
		return err
	}

	// Redis backs the live feed cache, the feed degrades to Postgres without it
	var (
		redisClient *redis.Client
		feedCache   livefeed.Cache
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.Warn("Redis unavailable, live feed served from database", "error", err)
			redisClient = nil
		} else {
			feedCache = livefeed.NewRedisCache(redisClient, cfg.FeedSize)
		}
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	eventBus := bootstrap.InitializeEventSystem()
	if err := bootstrap.RegisterSubscribers(cfg, eventBus, feedCache); err != nil {
		dbPool.Close()
		return err
	}

	casesService := cases.NewService(repos.Cases, eventBus)
	inventoryService := inventory.NewService(repos.Inventory, eventBus)
	feedService := livefeed.NewService(repos.Feed, feedCache, cfg.FeedSize)
	verifier := auth.NewVerifier(repos.Sessions)

	srv := server.NewServer(cfg.Port, verifier, cfg.TrustedProxies, dbPool, casesService, inventoryService, feedService)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		dbPool.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:      srv,
		DBPool:      dbPool,
		RedisClient: redisClient,
	})

	return nil
}
