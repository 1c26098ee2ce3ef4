package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-recommender/backend/config"
	"github.com/pageza/recipe-recommender/backend/internal/catalog"
	"github.com/pageza/recipe-recommender/backend/internal/database"
	"github.com/pageza/recipe-recommender/backend/internal/logger"
	"github.com/pageza/recipe-recommender/backend/internal/router"
	"github.com/pageza/recipe-recommender/backend/internal/server"
	"github.com/pageza/recipe-recommender/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	source, err := newCatalogSource(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to configure catalog source: %v", err)
	}
	store := catalog.NewStore(source)
	if _, err := store.Reload(ctx); err != nil {
		logger.Fatalf("failed to load catalog: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			// Continue with in-process rate limiting
			logger.Warnw("redis unavailable, using local rate limiter", "error", err)
			redisClient = nil
		}
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	deps := router.Dependencies{
		Recommendations: service.NewRecommendationService(store, cfg.RankerMode, cfg.DefaultTopN, cfg.MaxTopN),
		Catalog:         service.NewCatalogService(store),
		Redis:           redisClient,
	}
	if cfg.JWTSecret != "" {
		deps.Tokens = service.NewTokenService(cfg.JWTSecret)
	} else {
		logger.Warnw("JWT_SECRET not set, admin endpoints disabled")
	}
	handler := router.SetupRouter(cfg, deps)

	var refresher *catalog.Refresher
	if cfg.CatalogRefreshSchedule != "" {
		refresher, err = catalog.NewRefresher(store, cfg.CatalogRefreshSchedule)
		if err != nil {
			logger.Fatalf("failed to schedule catalog refresh: %v", err)
		}
		refresher.Start()
	}

	srv := server.New(cfg, handler)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatalf("server error: %v", err)
		}
	case sig := <-quit:
		logger.Infow("received signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if refresher != nil {
		refresher.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown error: %v", err)
	}
	logger.Info("server stopped")
}

func newCatalogSource(ctx context.Context, cfg *config.Config) (catalog.Source, error) {
	var deps catalog.Deps
	switch cfg.CatalogSource {
	case config.CatalogSourceDatabase:
		db, err := database.Open(cfg)
		if err != nil {
			return nil, err
		}
		deps.DB = db
	case config.CatalogSourceS3:
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		deps.Objects = s3cfg
	}
	return catalog.NewSource(cfg, deps)
}
