package handler

import (
	"net/http"

	"licitaciones/backend/internal/model"

	"github.com/gin-gonic/gin"
)

// TableDataHandler serves GET /api/:tabla?pagina=&limite=&filtro=.
func (h *Handler) TableDataHandler(c *gin.Context) {
	tabla := c.Param("tabla")

	var req model.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Warn("invalid pagination parameters", "table", tabla, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetros de paginación inválidos"})
		return
	}

	page, err := h.svc.FetchPage(c.Request.Context(), tabla, req.Pagina, req.Limite, req.Filtro)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
