package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maintence-saida/gestion-maintenance/internal/session"
)

// ListSheets sheets of the loaded workbook
// GET /api/sheets
func (h *Handler) ListSheets(c *gin.Context) {
	snap := h.session.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"sheets":  snap.Sheets,
		"current": snap.Sheet,
	})
}

type selectSheetRequest struct {
	Sheet string `json:"sheet" binding:"required"`
}

// SelectSheet switches the current sheet
// POST /api/sheets/select
func (h *Handler) SelectSheet(c *gin.Context) {
	var req selectSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sheet requis"})
		return
	}

	report, err := h.session.SelectSheet(req.Sheet)
	switch {
	case errors.Is(err, session.ErrNoWorkbook):
		c.JSON(http.StatusConflict, gin.H{"error": "Aucun fichier chargé"})
		return
	case errors.Is(err, session.ErrSheetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Feuille non trouvée: " + req.Sheet})
		return
	case errors.Is(err, session.ErrStaleLoad):
		c.JSON(http.StatusConflict, gin.H{"error": "Un autre chargement est en cours"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sheet":  req.Sheet,
		"report": report,
	})
}
