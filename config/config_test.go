package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("PERFIT_SERVER_PORT")
		os.Unsetenv("PERFIT_SERVER_ENVIRONMENT")
		os.Unsetenv("PERFIT_CACHE_TYPE")
		os.Unsetenv("PERFIT_CACHE_REDIS_ADDR")
		os.Unsetenv("PERFIT_CACHE_REDIS_DB")
		os.Unsetenv("PERFIT_CACHE_TTL")
		os.Unsetenv("PERFIT_CHARTS_DATABASE_PATH")
		os.Unsetenv("PERFIT_CHARTS_SEED")
		os.Unsetenv("PERFIT_RATELIMIT_ENABLED")
		os.Unsetenv("PERFIT_RATELIMIT_RPS")
		os.Unsetenv("PERFIT_RATELIMIT_BURST")
		os.Unsetenv("PERFIT_LOGGING_LEVEL")
		os.Unsetenv("PERFIT_LOGGING_FORMAT")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "chrome-extension://*" {
			t.Errorf("Server.AllowedOrigins = %v, want [chrome-extension://*]", cfg.Server.AllowedOrigins)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 168*time.Hour {
			t.Errorf("Cache.TTL = %v, want 168h", cfg.Cache.TTL)
		}
		if cfg.Charts.DatabasePath != "perfit-charts.db" {
			t.Errorf("Charts.DatabasePath = %s, want perfit-charts.db", cfg.Charts.DatabasePath)
		}
		if !cfg.Charts.Seed {
			t.Error("Charts.Seed = false, want true")
		}
		if !cfg.RateLimit.Enabled {
			t.Error("RateLimit.Enabled = false, want true")
		}
		if cfg.RateLimit.RPS != 5.0 {
			t.Errorf("RateLimit.RPS = %v, want 5", cfg.RateLimit.RPS)
		}
		if cfg.RateLimit.Burst != 20 {
			t.Errorf("RateLimit.Burst = %d, want 20", cfg.RateLimit.Burst)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PERFIT_SERVER_PORT", "9090")
		os.Setenv("PERFIT_SERVER_ENVIRONMENT", "production")
		os.Setenv("PERFIT_CACHE_TYPE", "redis")
		os.Setenv("PERFIT_CACHE_REDIS_ADDR", "localhost:6379")
		os.Setenv("PERFIT_CACHE_TTL", "24h")
		os.Setenv("PERFIT_CHARTS_DATABASE_PATH", "/var/lib/perfit/charts.db")
		os.Setenv("PERFIT_RATELIMIT_RPS", "2.5")
		os.Setenv("PERFIT_LOGGING_LEVEL", "debug")
		os.Setenv("PERFIT_LOGGING_FORMAT", "json")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Cache.Type != "redis" {
			t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
		}
		if cfg.Cache.RedisAddr != "localhost:6379" {
			t.Errorf("Cache.RedisAddr = %s, want localhost:6379", cfg.Cache.RedisAddr)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.Charts.DatabasePath != "/var/lib/perfit/charts.db" {
			t.Errorf("Charts.DatabasePath = %s, want /var/lib/perfit/charts.db", cfg.Charts.DatabasePath)
		}
		if cfg.RateLimit.RPS != 2.5 {
			t.Errorf("RateLimit.RPS = %v, want 2.5", cfg.RateLimit.RPS)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
		}
		if cfg.Logging.Format != "json" {
			t.Errorf("Logging.Format = %s, want json", cfg.Logging.Format)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PERFIT_CACHE_TYPE", "invalid")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails validation when redis address missing for redis cache", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PERFIT_CACHE_TYPE", "redis")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing redis address")
		}
	})
}
