package api

import (
	"html-extract-go/pkg/api/handlers"
	"html-extract-go/pkg/api/middleware"
	"html-extract-go/pkg/config"
	"html-extract-go/pkg/extractor"

	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, ex extractor.Extractor) *gin.Engine {
	router := gin.New()

	extractService := handlers.NewExtractService(ex, cfg.Timeout(), cfg.API.MaxConcurrent)

	// Middleware
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/extract", handlers.Extract(extractService))
	}

	return router
}
