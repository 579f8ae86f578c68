package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/DrugisCodes/PerFit-sub000/config"
	httpDelivery "github.com/DrugisCodes/PerFit-sub000/internal/delivery/http"
	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
	"github.com/DrugisCodes/PerFit-sub000/internal/infrastructure/cache"
	"github.com/DrugisCodes/PerFit-sub000/internal/infrastructure/chartstore"
	"github.com/DrugisCodes/PerFit-sub000/internal/logging"
	"github.com/DrugisCodes/PerFit-sub000/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	logger.Info().Msg("Starting PerFit Backend v1.0.0")
	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cacheType", cfg.Cache.Type).
		Dur("cacheTTL", cfg.Cache.TTL).
		Msg("configuration loaded")

	// Initialize infrastructure dependencies
	store, err := chartstore.Open(cfg.Charts.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Charts.DatabasePath).Msg("Failed to open chart store")
	}
	defer store.Close()

	if cfg.Charts.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := chartstore.Seed(ctx, store); err != nil {
			cancel()
			logger.Fatal().Err(err).Msg("Failed to seed chart store")
		}
		cancel()
	}
	if retailers, err := store.Retailers(context.Background()); err == nil {
		logger.Info().Int("retailers", len(retailers)).Str("path", cfg.Charts.DatabasePath).Msg("chart store ready")
	}

	var recommendationCache domain.CacheRepository
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Failed to connect to Redis")
		}
		defer redisCache.Close()
		recommendationCache = redisCache
		logger.Info().Str("addr", cfg.Cache.RedisAddr).Msg("using Redis recommendation cache")
	default:
		recommendationCache = cache.NewMemoryCache()
		logger.Info().Msg("using in-memory recommendation cache")
	}

	// Initialize usecase layer
	recommendationService := usecase.NewRecommendationService(store, recommendationCache, logger, cfg.Cache.TTL)
	chartService := usecase.NewChartService(store, logger)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recommendationService, chartService, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("Server listening")

	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
