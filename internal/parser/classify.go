package parser

import (
	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

// facility keyword groups, checked in order, first match wins
var facilityRules = []struct {
	keywords []string
	ftype    model.FacilityType
}{
	{[]string{"EP", "PRIMAIRE"}, model.FacilityEP},
	{[]string{"CEM"}, model.FacilityCEM},
	{[]string{"LYCEE", "LYCÉE"}, model.FacilityLycee},
	{[]string{"DIRECTION"}, model.FacilityDirection},
}

// ClassifyFacilityType maps a facility name to its type. Matching is plain
// substring containment on the upper-cased name, so "EP" also hits names such
// as "DEPOT"; the record keeps the original casing.
func ClassifyFacilityType(facility string) model.FacilityType {
	name := foldUpper(facility)
	for _, rule := range facilityRules {
		if ContainsAny(name, rule.keywords) {
			return rule.ftype
		}
	}
	return model.FacilityOther
}
