package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maintence-saida/gestion-maintenance/internal/exporter"
	"github.com/maintence-saida/gestion-maintenance/internal/metrics"
)

// ExportCSV downloads the filtered view as CSV
// GET /api/export/csv
func (h *Handler) ExportCSV(c *gin.Context) {
	h.export(c, exporter.FormatCSV)
}

// ExportXLSX downloads the filtered view as xlsx
// GET /api/export/xlsx
func (h *Handler) ExportXLSX(c *gin.Context) {
	h.export(c, exporter.FormatXLSX)
}

func (h *Handler) export(c *gin.Context, format exporter.Format) {
	view, _ := h.view(c)
	snap := h.session.Snapshot()

	res, err := exporter.Export(view, exporter.ExportOptions{
		Format: format,
		Sheet:  snap.Sheet,
		Now:    time.Now(),
	})
	if err != nil {
		metrics.RecordExport(string(format), "error")
		if errors.Is(err, exporter.ErrEmptyExport) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("export failed", zap.String("format", string(format)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export impossible: " + err.Error()})
		return
	}

	metrics.RecordExport(string(format), "ok")
	c.Header("Content-Disposition", buildContentDisposition(res.Filename))
	c.Data(http.StatusOK, res.ContentType, res.Data)
}

// buildContentDisposition attachment header with an ASCII fallback name and
// the UTF-8 name for accented sheet names
func buildContentDisposition(filename string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, filename)
	if fallback == filename {
		return fmt.Sprintf("attachment; filename=\"%s\"", filename)
	}
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", fallback, url.PathEscape(filename))
}
