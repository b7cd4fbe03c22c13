package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maintence-saida/gestion-maintenance/internal/filter"
)

// selectionDTO selection as dropdown values, "all" when unconstrained
type selectionDTO struct {
	Region     string `json:"region"`
	Type       string `json:"type"`
	Technician string `json:"technicien"`
	Status     string `json:"statut"`
}

func toDTO(sel filter.Selection) selectionDTO {
	dto := selectionDTO{
		Region:     filter.AllValue,
		Type:       filter.AllValue,
		Technician: filter.AllValue,
		Status:     filter.AllValue,
	}
	if sel.Region != nil {
		dto.Region = *sel.Region
	}
	if sel.FacilityType != nil {
		dto.Type = string(*sel.FacilityType)
	}
	if sel.Technician != nil {
		dto.Technician = *sel.Technician
	}
	if sel.Status != nil {
		dto.Status = string(*sel.Status)
	}
	return dto
}

func (d selectionDTO) selection() filter.Selection {
	return filter.ParseSelection(d.Region, d.Type, d.Technician, d.Status)
}

// GetFilters current selection
// GET /api/filters
func (h *Handler) GetFilters(c *gin.Context) {
	snap := h.session.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"selection": toDTO(snap.Selection),
		"count":     len(snap.View),
	})
}

// UpdateFilters replaces the selection
// PUT /api/filters
func (h *Handler) UpdateFilters(c *gin.Context) {
	var req selectionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sélection invalide"})
		return
	}
	sel := req.selection()
	view := h.session.SetSelection(sel)
	c.JSON(http.StatusOK, gin.H{
		"selection": toDTO(sel),
		"count":     len(view),
	})
}

// ResetFilters back to the default selection
// POST /api/filters/reset
func (h *Handler) ResetFilters(c *gin.Context) {
	view := h.session.ResetSelection()
	c.JSON(http.StatusOK, gin.H{
		"selection": toDTO(filter.DefaultSelection()),
		"count":     len(view),
	})
}

// GetFilterOptions dropdown values
// GET /api/filters/options
func (h *Handler) GetFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, filter.BuildOptions(h.session.Snapshot().Records))
}
