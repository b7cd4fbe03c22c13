package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

// StatusResponse dashboard state summary
type StatusResponse struct {
	Loaded       bool             `json:"loaded"`
	WorkbookID   string           `json:"workbookId,omitempty"`
	Filename     string           `json:"filename,omitempty"`
	Sheet        string           `json:"sheet,omitempty"`
	TotalRecords int              `json:"totalRecords"`
	ViewRecords  int              `json:"viewRecords"`
	DroppedRows  int              `json:"droppedRows"`
	LastImport   *model.ImportLog `json:"lastImport,omitempty"`
}

// GetStatus current state
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	snap := h.session.Snapshot()

	resp := StatusResponse{
		Loaded:       snap.Loaded,
		WorkbookID:   snap.WorkbookID,
		Filename:     snap.Filename,
		Sheet:        snap.Sheet,
		TotalRecords: len(snap.Records),
		ViewRecords:  len(snap.View),
		DroppedRows:  snap.Report.DroppedRows,
	}

	if h.store != nil {
		last, err := h.store.LastImportLog()
		if err != nil {
			h.logger.Warn("last import log", zap.Error(err))
		}
		resp.LastImport = last
	}

	c.JSON(http.StatusOK, resp)
}

// ListImports import history
// GET /api/imports
func (h *Handler) ListImports(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"items": []model.ImportLog{}})
		return
	}
	logs, err := h.store.ListImportLogs(parseIntWithDefault(c.Query("limit"), 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}
