package api

import (
	"github.com/Conceptual-Machines/mindloop/internal/affirm"
	"github.com/Conceptual-Machines/mindloop/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/mindloop/internal/api/middleware"
	"github.com/Conceptual-Machines/mindloop/internal/config"
	"github.com/Conceptual-Machines/mindloop/internal/metrics"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, generator *affirm.Generator, recorder metrics.Recorder, version string) *gin.Engine {
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(recorder))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.CORSAllowedOrigins))

	// Single-page app and offline assets
	router.GET("/", handlers.Index)
	router.GET("/sw.js", handlers.ServiceWorker)
	router.GET("/manifest.json", handlers.Manifest)

	// Health check
	healthHandler := handlers.NewHealthHandler(generator.Catalog())
	router.GET("/health", healthHandler.HealthCheck)

	api := router.Group("/api")
	{
		// Metrics endpoint
		metricsHandler := handlers.NewMetricsHandler(version, generator.Catalog())
		api.GET("/metrics", metricsHandler.GetMetrics)

		affirmHandler := handlers.NewAffirmHandler(generator, recorder)
		api.POST("/affirm", apimiddleware.MaxBodySize(cfg.MaxRequestBytes), affirmHandler.Affirm)
	}

	return router
}
