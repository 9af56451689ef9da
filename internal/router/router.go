package router

import (
	"github.com/gin-gonic/gin"

	"descgate/internal/config"
	"descgate/internal/handler"
	"descgate/internal/middleware"
	"descgate/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	gateH *handler.GateHandler,
	recordH *handler.RecordHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/token", authH.Token)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Stateless validation
	protected.POST("/validate", gateH.Validate)

	// Asset gate routes
	assets := protected.Group("/assets")
	assets.POST("/:id/gate", gateH.Check)
	assets.POST("/:id/submissions", gateH.Submit)
	assets.GET("/:id/state", gateH.GetAssetState)

	// Gate record routes
	records := protected.Group("/records")
	records.GET("", recordH.List)
	records.GET("/export", recordH.ExportCSV)
	records.GET("/:id", recordH.GetByID)
	records.GET("/:id/archive", recordH.ArchiveURL)

	return r
}
