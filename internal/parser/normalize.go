package parser

import (
	"strings"

	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

// Normalizer turns raw sheet rows into canonical records
type Normalizer struct {
	aliases AliasSet
	status  *StatusClassifier
}

// NormalizerOptions normalizer settings
type NormalizerOptions struct {
	ExtraAliases map[string][]string
	StatusScope  StatusScope
}

// NewNormalizer creates a normalizer
func NewNormalizer(opts NormalizerOptions) *Normalizer {
	scope := opts.StatusScope
	if scope == "" {
		scope = StatusScopeColumns
	}
	return &Normalizer{
		aliases: DefaultAliases().Extend(opts.ExtraAliases),
		status:  NewStatusClassifier(scope),
	}
}

// Aliases alias set in use
func (n *Normalizer) Aliases() AliasSet {
	return n.aliases
}

// Normalize converts rows with the default aliases and status scope
func Normalize(rows []model.RawRow) []model.MaintenanceRecord {
	records, _ := NewNormalizer(NormalizerOptions{}).Normalize(rows)
	return records
}

// Normalize converts rows in order. Rows without an equipment value are
// dropped and counted in the report.
func (n *Normalizer) Normalize(rows []model.RawRow) ([]model.MaintenanceRecord, NormalizeReport) {
	report := NormalizeReport{TotalRows: len(rows)}
	records := make([]model.MaintenanceRecord, 0, len(rows))

	for _, row := range rows {
		rec, ok := n.normalizeRow(row)
		if !ok {
			report.DroppedRows++
			continue
		}
		records = append(records, rec)
	}

	report.KeptRows = len(records)
	return records, report
}

func (n *Normalizer) normalizeRow(row model.RawRow) (model.MaintenanceRecord, bool) {
	equipment := n.aliases.Resolve(row, FieldEquipment)
	if strings.TrimSpace(equipment) == "" {
		return model.MaintenanceRecord{}, false
	}

	facility := n.aliases.Resolve(row, FieldFacility)
	return model.MaintenanceRecord{
		Equipment:    equipment,
		Brand:        n.aliases.Resolve(row, FieldBrand),
		InventoryID:  n.aliases.Resolve(row, FieldInventoryID),
		SerialNumber: n.aliases.Resolve(row, FieldSerialNumber),
		Facility:     facility,
		FacilityType: ClassifyFacilityType(facility),
		Fault:        n.aliases.Resolve(row, FieldFault),
		Technician:   n.aliases.Resolve(row, FieldTechnician),
		// status reads the raw row: flag columns are not canonical fields
		Status: n.status.Classify(row),
		Date:   n.aliases.Resolve(row, FieldDate),
	}, true
}
