package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/actionsync/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	extractionHandler *Extraction
	syncHandler       *Sync
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, extractionHandler *Extraction, syncHandler *Sync) *Router {
	return &Router{
		cfg:               cfg,
		extractionHandler: extractionHandler,
		syncHandler:       syncHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupExtractionRoutes(v1)
	rt.setupSyncRoutes(v1)
}

func (rt *Router) setupExtractionRoutes(g *echo.Group) {
	if rt.extractionHandler != nil {
		g.POST("/actions/extract", rt.extractionHandler.Extract)
	} else {
		g.POST("/actions/extract", rt.notImplemented)
	}
}

func (rt *Router) setupSyncRoutes(g *echo.Group) {
	if rt.syncHandler != nil {
		g.POST("/sync/:integration_id", rt.syncHandler.BulkSync)
		g.GET("/processors/status", rt.syncHandler.ProcessorStatus)
	} else {
		g.POST("/sync/:integration_id", rt.notImplemented)
		g.GET("/processors/status", rt.notImplemented)
	}
}

// healthCheck returns service health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "actionsync-api",
	})
}

// notImplemented is a placeholder for routes without an initialized handler
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]string{
		"error": "endpoint not implemented",
	})
}
