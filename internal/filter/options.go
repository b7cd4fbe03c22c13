package filter

import (
	"sort"
	"strings"

	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

// Option one dropdown entry
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options dropdown contents for the filter bar
type Options struct {
	Regions       []Option `json:"regions"`
	FacilityTypes []Option `json:"types"`
	Technicians   []Option `json:"techniciens"`
	Statuses      []Option `json:"statuts"`
}

// BuildOptions lists the filter values; technicians come from the records
func BuildOptions(records []model.MaintenanceRecord) Options {
	opts := Options{
		Regions: []Option{{Value: model.DefaultRegion, Label: model.DefaultRegion}},
	}
	for _, t := range model.FacilityTypes {
		opts.FacilityTypes = append(opts.FacilityTypes, Option{Value: string(t), Label: string(t)})
	}
	for _, s := range model.Statuses {
		opts.Statuses = append(opts.Statuses, Option{Value: string(s), Label: s.Label()})
	}

	seen := make(map[string]struct{})
	for _, r := range records {
		name := r.Technician
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		opts.Technicians = append(opts.Technicians, Option{Value: name, Label: name})
	}
	sort.Slice(opts.Technicians, func(i, j int) bool {
		return opts.Technicians[i].Value < opts.Technicians[j].Value
	})

	return opts
}
