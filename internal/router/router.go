package router

import (
	"github.com/gin-gonic/gin"

	"paperbridge/internal/config"
	"paperbridge/internal/handler"
	"paperbridge/internal/metrics"
	"paperbridge/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	ingestH *handler.IngestHandler,
	suggestH *handler.SuggestHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks and metrics
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/api/v1")
	v1.POST("/process", ingestH.Process)
	v1.GET("/ingestions", ingestH.History)
	v1.POST("/suggest", suggestH.Suggest)

	return r
}
