package model

// FacilityType facility category derived from the facility name
type FacilityType string

const (
	FacilityEP        FacilityType = "EP"
	FacilityCEM       FacilityType = "CEM"
	FacilityLycee     FacilityType = "Lycée"
	FacilityDirection FacilityType = "Direction"
	FacilityOther     FacilityType = "Autre"
)

// FacilityTypes all facility types in chart order
var FacilityTypes = []FacilityType{
	FacilityEP,
	FacilityCEM,
	FacilityLycee,
	FacilityDirection,
	FacilityOther,
}

// Valid reports whether t is one of the known facility types
func (t FacilityType) Valid() bool {
	for _, v := range FacilityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Status repair lifecycle state
type Status string

const (
	StatusReceived   Status = "rec" // reçu, not assessed yet
	StatusRepaired   Status = "re"  // réparé
	StatusUnrepaired Status = "nr"  // non réparé
)

// Statuses all statuses in chart order
var Statuses = []Status{
	StatusReceived,
	StatusRepaired,
	StatusUnrepaired,
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusRepaired, StatusUnrepaired:
		return true
	}
	return false
}

// Label badge text shown in the table
func (s Status) Label() string {
	switch s {
	case StatusReceived:
		return "Reçu"
	case StatusRepaired:
		return "Réparé"
	case StatusUnrepaired:
		return "Non réparé"
	}
	return string(s)
}

// PluralLabel chart legend text
func (s Status) PluralLabel() string {
	switch s {
	case StatusReceived:
		return "Reçus"
	case StatusRepaired:
		return "Réparés"
	case StatusUnrepaired:
		return "Non réparés"
	}
	return string(s)
}

// DefaultRegion the only wilaya with data
const DefaultRegion = "El Bayadh"

// MaintenanceRecord canonical maintenance record
type MaintenanceRecord struct {
	Equipment    string       `json:"equipement"`
	Brand        string       `json:"marque"`
	InventoryID  string       `json:"inventaire"`
	SerialNumber string       `json:"serie"`
	Facility     string       `json:"etablissement"`
	FacilityType FacilityType `json:"type"`
	Fault        string       `json:"panne"`
	Technician   string       `json:"technicien"`
	Status       Status       `json:"statut"`
	Date         string       `json:"date"`
}
