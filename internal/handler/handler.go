package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"licitaciones/backend/internal/model"
	"licitaciones/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Service is the read API the handlers expose over HTTP.
type Service interface {
	FetchPage(ctx context.Context, tabla string, pagina, limite int, filtro string) (*model.Page, error)
	ListTables(ctx context.Context) ([]string, error)
	ListAllTables(ctx context.Context) ([]string, error)
}

type Handler struct {
	svc         Service
	resultsPath string
	logger      *slog.Logger
}

// NewHandler wires the handlers to svc. resultsPath points at the JSON
// document served by /api/model_results.
func NewHandler(svc Service, resultsPath string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{svc: svc, resultsPath: resultsPath, logger: logger}
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

func (h *Handler) ListTablesHandler(c *gin.Context) {
	tables, err := h.svc.ListTables(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.TablesResponse{Tablas: tables})
}

// TestDBHandler lists every physical table, including the ones outside the
// allow-list.
func (h *Handler) TestDBHandler(c *gin.Context) {
	tables, err := h.svc.ListAllTables(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.TablesResponse{Tablas: tables})
}

func (h *Handler) ModelResultsHandler(c *gin.Context) {
	body, err := os.ReadFile(h.resultsPath)
	if err == nil && !json.Valid(body) {
		err = errors.New("invalid JSON document")
	}
	if err != nil {
		h.logger.Error("error al leer resultados del modelo", "path", h.resultsPath, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al cargar resultados del modelo"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := service.StatusOf(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(c.Request.Context(), level, "request failed",
		"path", c.Request.URL.Path,
		"kind", service.KindOf(err).String(),
		"error", err)

	c.JSON(status, gin.H{"error": err.Error()})
}
