package http

import (
	"github.com/aha-designer/backend/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router. limiter may be nil to
// disable per-client rate limiting.
func SetupRouter(cfg *config.Config, handler *Handler, limiter Limiter, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// the API is served to local clients only; never take the client IP
	// from X-Forwarded-For
	if err := router.SetTrustedProxies(nil); err != nil {
		logger.Warn("failed to reset trusted proxies", zap.Error(err))
	}

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(OriginGuardMiddleware(cfg.Server.AllowedOrigins))
	v1.Use(RequireJSONMiddleware())
	if limiter != nil {
		v1.Use(RateLimitMiddleware(limiter))
	}
	{
		parts := v1.Group("/parts")
		{
			parts.POST("/search", handler.SearchParts)
			parts.POST("/normalize", handler.NormalizeParts)
		}

		v1.PUT("/workspace", handler.SaveWorkspace)
		v1.GET("/workspace", handler.LoadWorkspace)

		v1.POST("/simulations/thermal", handler.RunThermalSimulation)
		v1.POST("/git", handler.ExecuteGit)
	}

	return router
}
