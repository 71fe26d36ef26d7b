package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Shivanisinghay/Epsilon/internal/cache"
	"github.com/Shivanisinghay/Epsilon/internal/config"
	"github.com/Shivanisinghay/Epsilon/internal/database"
	"github.com/Shivanisinghay/Epsilon/internal/handlers"
	"github.com/Shivanisinghay/Epsilon/internal/jobs"
	"github.com/Shivanisinghay/Epsilon/internal/log"
	"github.com/Shivanisinghay/Epsilon/internal/media"
	"github.com/Shivanisinghay/Epsilon/internal/server"
	"github.com/Shivanisinghay/Epsilon/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	if err := database.Migrate(ctx, dbPool); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	mediaStore := media.NewStore(cfg.Media.ImagesDir, cfg.Media.AudioDir, cfg.Media.Retention, logger)
	if err := mediaStore.EnsureDirs(); err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare media dirs")
	}

	var archive *storage.Archive
	if cfg.Archive.Endpoint != "" {
		archive, err = storage.NewArchive(cfg.Archive)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init media archive")
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			logger.Warn().Err(err).Msg("ensure archive bucket failed")
		}
	}

	handlerSet := handlers.NewHandlerSet(logger, dbPool, redisClient, mediaStore, archive, cfg)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet, mediaStore)

	scheduler := jobs.NewScheduler(mediaStore, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, dbPool, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, db *pgxpool.Pool, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	scheduler.Stop()

	db.Close()
	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close error")
	}

	logger.Info().Msg("server exited cleanly")
}
