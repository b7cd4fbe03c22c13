package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maintence-saida/gestion-maintenance/internal/exporter"
	"github.com/maintence-saida/gestion-maintenance/internal/metrics"
)

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// ExportStream builds an xlsx export with SSE progress, then hands out a
// one-shot download URL
// POST /api/export/stream
func (h *Handler) ExportStream(c *gin.Context) {
	view, _ := h.view(c)
	snap := h.session.Snapshot()

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(exportProgressEvent{
		Type:    "start",
		Message: "Export en cours",
		Data: map[string]any{
			"sheet":   snap.Sheet,
			"records": len(view),
		},
		Timestamp: time.Now(),
	})

	lastPercent := -1
	progressFn := func(p exporter.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		send(exportProgressEvent{
			Type:      "progress",
			Message:   p.Stage,
			Data:      map[string]any{"percent": p.Percent},
			Timestamp: time.Now(),
		})
	}

	res, err := exporter.Export(view, exporter.ExportOptions{
		Format:   exporter.FormatXLSX,
		Sheet:    snap.Sheet,
		Now:      time.Now(),
		Progress: progressFn,
	})
	if err != nil {
		metrics.RecordExport(string(exporter.FormatXLSX), "error")
		send(exportProgressEvent{
			Type:      "error",
			Message:   err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		return
	}
	metrics.RecordExport(string(exporter.FormatXLSX), "ok")

	token := h.downloads.put(res, 10*time.Minute)
	send(exportProgressEvent{
		Type:    "done",
		Message: "Export terminé",
		Data: map[string]any{
			"percent":     100,
			"filename":    res.Filename,
			"downloadUrl": fmt.Sprintf("/api/export/download/%s", token),
		},
		Timestamp: time.Now(),
	})
}

// DownloadExport serves a prepared export once
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token manquant"})
		return
	}

	item, ok := h.downloads.take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lien de téléchargement expiré"})
		return
	}

	c.Header("Content-Disposition", buildContentDisposition(item.Filename))
	c.Data(http.StatusOK, item.ContentType, item.Data)
}
