package parser

import (
	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

// Field canonical record field
type Field string

const (
	FieldEquipment    Field = "equipement"
	FieldBrand        Field = "marque"
	FieldInventoryID  Field = "inventaire"
	FieldSerialNumber Field = "serie"
	FieldFacility     Field = "etablissement"
	FieldFault        Field = "panne"
	FieldTechnician   Field = "technicien"
	FieldDate         Field = "date"
)

// Fields resolvable fields, equipment first
var Fields = []Field{
	FieldEquipment,
	FieldBrand,
	FieldInventoryID,
	FieldSerialNumber,
	FieldFacility,
	FieldFault,
	FieldTechnician,
	FieldDate,
}

// AliasSet ordered column spellings per field
type AliasSet map[Field][]string

// DefaultAliases built-in column spellings seen in the maintenance workbooks.
// Case and accent variants are listed explicitly; lookup never folds keys.
func DefaultAliases() AliasSet {
	return AliasSet{
		FieldEquipment:    {"équipement", "Equipement", "EQUIPEMENT", "Équipement", "ÉQUIPEMENT", "equipement"},
		FieldBrand:        {"marque", "Marque", "MARQUE"},
		FieldInventoryID:  {"inventaire", "Inventaire", "INVENTAIRE"},
		FieldSerialNumber: {"n° série", "N° série", "N° Série", "serie", "N° SÉRIE", "Serie", "SERIE", "série"},
		FieldFacility:     {"établissement", "Etablissement", "ETABLISSEMENT", "Établissement", "ÉTABLISSEMENT", "etablissement"},
		FieldFault:        {"panne", "Panne", "PANNE"},
		FieldTechnician:   {"technicien", "Technicien", "TECHNICIEN"},
		FieldDate:         {"date", "Date", "DATE"},
	}
}

// Extend appends extra spellings after the built-in ones. Unknown fields are ignored.
func (a AliasSet) Extend(extra map[string][]string) AliasSet {
	out := make(AliasSet, len(a))
	for f, list := range a {
		out[f] = append([]string(nil), list...)
	}
	for name, list := range extra {
		f := Field(name)
		if _, ok := out[f]; !ok {
			continue
		}
		for _, alias := range list {
			if !containsString(out[f], alias) {
				out[f] = append(out[f], alias)
			}
		}
	}
	return out
}

// Resolve returns the first non-empty value among the aliases, or "".
func Resolve(row model.RawRow, aliases []string) string {
	for _, key := range aliases {
		cell, ok := row[key]
		if !ok {
			continue
		}
		if v := cell.String(); v != "" {
			return v
		}
	}
	return ""
}

// Resolve resolves one canonical field
func (a AliasSet) Resolve(row model.RawRow, field Field) string {
	return Resolve(row, a[field])
}

// HasColumn reports whether one of the field aliases is a header
func (a AliasSet) HasColumn(headers []string, field Field) bool {
	for _, alias := range a[field] {
		if containsString(headers, alias) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
