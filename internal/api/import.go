package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maintence-saida/gestion-maintenance/internal/importer"
	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

// maxUploadSize upper bound for an uploaded workbook
const maxUploadSize = 64 << 20

// Import loads an uploaded workbook (SSE progress stream)
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier reçu"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Fichier trop volumineux"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lecture du fichier impossible"})
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	file.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lecture du fichier impossible"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	progressChan := h.coordinator.Import(c.Request.Context(), importer.Request{
		Data:     data,
		Filename: fileHeader.Filename,
		Source:   model.ImportSourceUpload,
		Sheet:    c.PostForm("sheet"),
	})

	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		// SSE: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}
