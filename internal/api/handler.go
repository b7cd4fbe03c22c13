package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maintence-saida/gestion-maintenance/internal/importer"
	"github.com/maintence-saida/gestion-maintenance/internal/logging"
	"github.com/maintence-saida/gestion-maintenance/internal/session"
	"github.com/maintence-saida/gestion-maintenance/internal/store"
)

// Handler dashboard API
type Handler struct {
	session     *session.Session
	coordinator *importer.Coordinator
	store       *store.Store
	downloads   *exportDownloadStore
	logger      *zap.Logger
}

// NewHandler creates the API handler. st may be nil.
func NewHandler(sess *session.Session, coordinator *importer.Coordinator, st *store.Store, logger *zap.Logger) *Handler {
	return &Handler{
		session:     sess,
		coordinator: coordinator,
		store:       st,
		downloads:   newExportDownloadStore(),
		logger:      logging.OrNop(logger).Named("api"),
	}
}

// RegisterRoutes registers the API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// workbook loading
	router.POST("/import", h.Import)
	router.GET("/imports", h.ListImports)

	// sheets
	router.GET("/sheets", h.ListSheets)
	router.POST("/sheets/select", h.SelectSheet)

	// records and filters
	router.GET("/records", h.ListRecords)
	router.GET("/filters", h.GetFilters)
	router.PUT("/filters", h.UpdateFilters)
	router.POST("/filters/reset", h.ResetFilters)
	router.GET("/filters/options", h.GetFilterOptions)

	// charts and counters
	router.GET("/stats", h.GetStats)

	// export
	router.GET("/export/csv", h.ExportCSV)
	router.GET("/export/xlsx", h.ExportXLSX)
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
}
