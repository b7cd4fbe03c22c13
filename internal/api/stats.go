package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maintence-saida/gestion-maintenance/internal/stats"
)

// GetStats counters and chart series of the filtered view
// GET /api/stats
func (h *Handler) GetStats(c *gin.Context) {
	view, _ := h.view(c)
	c.JSON(http.StatusOK, stats.Build(view))
}
