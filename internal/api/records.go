package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maintence-saida/gestion-maintenance/internal/filter"
	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

type listRecordsResponse struct {
	Items    []model.MaintenanceRecord `json:"items"`
	Total    int                       `json:"total"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"pageSize"`
}

// ListRecords filtered records, most recent first
// GET /api/records?region&type&technician&status&page&pageSize
func (h *Handler) ListRecords(c *gin.Context) {
	view, _ := h.view(c)
	sorted := filter.SortByDateDesc(view)

	page := parseIntWithDefault(c.Query("page"), 1)
	pageSize := parseIntWithDefault(c.Query("pageSize"), 25)
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 25
	}
	if pageSize > 1000 {
		pageSize = 1000
	}

	start := (page - 1) * pageSize
	if start > len(sorted) {
		start = len(sorted)
	}
	end := start + pageSize
	if end > len(sorted) {
		end = len(sorted)
	}

	c.JSON(http.StatusOK, listRecordsResponse{
		Items:    sorted[start:end],
		Total:    len(sorted),
		Page:     page,
		PageSize: pageSize,
	})
}

// view session view, or an ad hoc one when the request carries filter
// parameters. The session selection is not changed.
func (h *Handler) view(c *gin.Context) ([]model.MaintenanceRecord, filter.Selection) {
	snap := h.session.Snapshot()
	if !hasFilterQuery(c) {
		return snap.View, snap.Selection
	}
	sel := filter.ParseSelection(
		c.Query("region"),
		c.Query("type"),
		c.Query("technician"),
		c.Query("status"),
	)
	return filter.Apply(snap.Records, sel), sel
}

func hasFilterQuery(c *gin.Context) bool {
	for _, key := range []string{"region", "type", "technician", "status"} {
		if _, ok := c.GetQuery(key); ok {
			return true
		}
	}
	return false
}

func parseIntWithDefault(v string, d int) int {
	if v == "" {
		return d
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return d
	}
	return i
}
