package stats

import (
	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

// CountByStatus counts records per status; every status is present
func CountByStatus(records []model.MaintenanceRecord) map[model.Status]int {
	counts := make(map[model.Status]int, len(model.Statuses))
	for _, s := range model.Statuses {
		counts[s] = 0
	}
	for _, r := range records {
		counts[r.Status]++
	}
	return counts
}

// CountByFacilityType counts records per facility type; every type is present
func CountByFacilityType(records []model.MaintenanceRecord) map[model.FacilityType]int {
	counts := make(map[model.FacilityType]int, len(model.FacilityTypes))
	for _, t := range model.FacilityTypes {
		counts[t] = 0
	}
	for _, r := range records {
		counts[r.FacilityType]++
	}
	return counts
}

// Summary stat card counters
type Summary struct {
	Total      int `json:"total"`
	Received   int `json:"recus"`
	Repaired   int `json:"repares"`
	Unrepaired int `json:"nonRepares"`
}

// Summarize computes the stat cards of a filtered view
func Summarize(records []model.MaintenanceRecord) Summary {
	byStatus := CountByStatus(records)
	return Summary{
		Total:      len(records),
		Received:   byStatus[model.StatusReceived],
		Repaired:   byStatus[model.StatusRepaired],
		Unrepaired: byStatus[model.StatusUnrepaired],
	}
}

// Series ordered chart data
type Series struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Colors []string `json:"colors"`
}

var statusColors = map[model.Status]string{
	model.StatusReceived:   "#4299e1",
	model.StatusRepaired:   "#48bb78",
	model.StatusUnrepaired: "#f56565",
}

var facilityColors = map[model.FacilityType]string{
	model.FacilityEP:        "#667eea",
	model.FacilityCEM:       "#764ba2",
	model.FacilityLycee:     "#f687b3",
	model.FacilityDirection: "#f6ad55",
	model.FacilityOther:     "#cbd5e0",
}

// StatusSeries doughnut chart data
func StatusSeries(records []model.MaintenanceRecord) Series {
	counts := CountByStatus(records)
	s := Series{Title: "Répartition par Statut"}
	for _, st := range model.Statuses {
		s.Labels = append(s.Labels, st.PluralLabel())
		s.Values = append(s.Values, counts[st])
		s.Colors = append(s.Colors, statusColors[st])
	}
	return s
}

// FacilityTypeSeries bar chart data
func FacilityTypeSeries(records []model.MaintenanceRecord) Series {
	counts := CountByFacilityType(records)
	s := Series{Title: "Répartition par Type d'Établissement"}
	for _, ft := range model.FacilityTypes {
		s.Labels = append(s.Labels, string(ft))
		s.Values = append(s.Values, counts[ft])
		s.Colors = append(s.Colors, facilityColors[ft])
	}
	return s
}

// Dashboard everything the stat cards and charts need
type Dashboard struct {
	Summary      Summary `json:"summary"`
	Status       Series  `json:"statusChart"`
	FacilityType Series  `json:"typeChart"`
}

// Build computes the dashboard for a filtered view
func Build(records []model.MaintenanceRecord) Dashboard {
	return Dashboard{
		Summary:      Summarize(records),
		Status:       StatusSeries(records),
		FacilityType: FacilityTypeSeries(records),
	}
}
