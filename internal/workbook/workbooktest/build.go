// Package workbooktest builds small xlsx documents for tests.
package workbooktest

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// SheetData header plus data rows of one sheet
type SheetData struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// Build writes the sheets in order and returns the xlsx bytes
func Build(t testing.TB, sheets ...SheetData) []byte {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("new sheet %s: %v", s.Name, err)
		}

		header := make([]interface{}, len(s.Header))
		for j, h := range s.Header {
			header[j] = h
		}
		if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
			t.Fatalf("header %s: %v", s.Name, err)
		}
		for r, row := range s.Rows {
			axis, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				t.Fatalf("axis: %v", err)
			}
			row := row
			if err := f.SetSheetRow(s.Name, axis, &row); err != nil {
				t.Fatalf("row %d of %s: %v", r+2, s.Name, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return buf.Bytes()
}

// Maintenance a typical register sheet with mixed header spellings
func Maintenance(name string) SheetData {
	return SheetData{
		Name:   name,
		Header: []string{"équipement", "Marque", "Inventaire", "N° Série", "établissement", "Panne", "Technicien", "rec", "re", "nr", "Date"},
		Rows: [][]interface{}{
			{"PC-01", "Dell", "INV-001", "SN-001", "CEM Ibn Khaldoun", "écran noir", "Karim", 1, nil, nil, "2024-03-02"},
			{"Imprimante", "HP", "INV-002", "SN-002", "Lycée Ahmed", "bourrage", "Amina", nil, 1, nil, "2024-03-05"},
			{"", "HP", "", "", "EP El Amir", "", "", nil, nil, nil, ""},
			{"Onduleur", "APC", "INV-003", "", "Direction de l'éducation", "batterie", "Karim", nil, nil, 1, "2024-02-20"},
			{"Scanner", "Canon", "INV-004", "SN-004", "EP El Amir", "", "Amina", nil, nil, nil, ""},
		},
	}
}
