package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Mode        string
	CORSOrigins []string
}

// NewRouter mounts the read-only API on a fresh gin engine.
func NewRouter(h *Handler, logger *slog.Logger, cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger), CORS(cfg.CORSOrigins), gzip.Gzip(gzip.DefaultCompression))

	r.GET("/ping", Ping)

	api := r.Group("/api")
	api.GET("/tablas", h.ListTablesHandler)
	api.GET("/test-db", h.TestDBHandler)
	api.GET("/model_results", h.ModelResultsHandler)
	api.GET("/:tabla", h.TableDataHandler)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ruta no encontrada: " + c.Request.Method + " " + c.Request.URL.Path})
	})

	return r
}
