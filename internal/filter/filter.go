package filter

import (
	"strings"

	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

// AllValue query value meaning "no constraint"
const AllValue = "all"

// Selection filter state; a nil field matches every record
type Selection struct {
	Region       *string             `json:"region,omitempty"`
	FacilityType *model.FacilityType `json:"type,omitempty"`
	Technician   *string             `json:"technicien,omitempty"`
	Status       *model.Status       `json:"statut,omitempty"`
}

// DefaultSelection the reset state: region pinned, everything else open
func DefaultSelection() Selection {
	region := model.DefaultRegion
	return Selection{Region: &region}
}

// ParseSelection builds a selection from raw values; "" and "all" mean no constraint
func ParseSelection(region, facilityType, technician, status string) Selection {
	var sel Selection
	if v, ok := constraint(region); ok {
		sel.Region = &v
	}
	if v, ok := constraint(facilityType); ok {
		ft := model.FacilityType(v)
		sel.FacilityType = &ft
	}
	if v, ok := constraint(technician); ok {
		sel.Technician = &v
	}
	if v, ok := constraint(status); ok {
		st := model.Status(v)
		sel.Status = &st
	}
	return sel
}

func constraint(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, AllValue) {
		return "", false
	}
	return v, true
}

// IsEmpty reports whether nothing is constrained
func (s Selection) IsEmpty() bool {
	return s.Region == nil && s.FacilityType == nil && s.Technician == nil && s.Status == nil
}

// Matches reports whether a record satisfies every constraint
func (s Selection) Matches(r model.MaintenanceRecord) bool {
	// records carry no region: only the populated wilaya matches
	if s.Region != nil && *s.Region != model.DefaultRegion {
		return false
	}
	if s.FacilityType != nil && r.FacilityType != *s.FacilityType {
		return false
	}
	if s.Technician != nil && r.Technician != *s.Technician {
		return false
	}
	if s.Status != nil && r.Status != *s.Status {
		return false
	}
	return true
}

// Apply returns the matching records in input order. The input is never modified.
func Apply(records []model.MaintenanceRecord, sel Selection) []model.MaintenanceRecord {
	out := make([]model.MaintenanceRecord, 0, len(records))
	for _, r := range records {
		if sel.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
