package router

import (
	"github.com/gin-gonic/gin"

	"docvert/internal/config"
	"docvert/internal/handler"
	"docvert/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	convertH *handler.ConvertHandler,
	archiveH *handler.ArchiveHandler,
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

	v1 := r.Group("/api/v1")

	// Conversion routes
	convert := v1.Group("/convert")
	convert.POST("", convertH.Convert)
	convert.POST("/batch", convertH.ConvertBatch)
	convert.POST("/folder", convertH.ConvertFolder)

	// Archive routes exist only when artifact archiving is enabled.
	if archiveH != nil {
		archive := v1.Group("/archive")
		archive.GET("/url", archiveH.GetURL)
		archive.DELETE("", archiveH.Delete)
	}

	return r
}
