package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/DrugisCodes/PerFit-sub000/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.Enabled {
		router.Use(NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware())
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		recommendation := v1.Group("/recommendation")
		{
			recommendation.POST("", handler.CreateRecommendation)
			recommendation.GET("/last", handler.LastRecommendation)
		}

		charts := v1.Group("/charts")
		{
			charts.GET("", handler.ListRetailers)
			charts.GET("/:retailer", handler.GetChart)
			charts.PUT("/:retailer", handler.SaveChart)
		}
	}

	return router
}
