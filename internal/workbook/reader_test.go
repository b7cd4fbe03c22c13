package workbook_test

import (
	"errors"
	"testing"

	"github.com/maintence-saida/gestion-maintenance/internal/model"
	"github.com/maintence-saida/gestion-maintenance/internal/workbook"
	"github.com/maintence-saida/gestion-maintenance/internal/workbook/workbooktest"
)

func TestParse_SheetsAndRows(t *testing.T) {
	data := workbooktest.Build(t,
		workbooktest.Maintenance("Mars"),
		workbooktest.SheetData{Name: "Vide", Header: []string{"x"}},
	)

	wb, err := workbook.Parse(data, "gestion.xlsx")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if wb.ID == "" {
		t.Fatalf("workbook id not set")
	}
	if len(wb.SheetNames) != 2 || wb.SheetNames[0] != "Mars" || wb.SheetNames[1] != "Vide" {
		t.Fatalf("unexpected sheet names: %v", wb.SheetNames)
	}

	sheet, ok := wb.Sheet("Mars")
	if !ok {
		t.Fatalf("sheet Mars missing")
	}
	if len(sheet.Rows) != 5 {
		t.Fatalf("rows want=5 got=%d", len(sheet.Rows))
	}

	first := sheet.Rows[0]
	if got := first["équipement"]; got.Kind != model.CellText || got.Text != "PC-01" {
		t.Fatalf("équipement cell: %+v", got)
	}
	if got := first["rec"]; got.Kind != model.CellNumber || got.Number != 1 {
		t.Fatalf("rec cell: %+v", got)
	}
	if got, ok := first["re"]; !ok || got.Kind != model.CellEmpty {
		t.Fatalf("re cell should be present and empty: %+v ok=%v", got, ok)
	}

	if _, ok := wb.Sheet("Avril"); ok {
		t.Fatalf("unexpected sheet Avril")
	}

	infos := wb.Sheets()
	if infos[0].RowCount != 5 || infos[1].RowCount != 0 {
		t.Fatalf("unexpected infos: %+v", infos)
	}
}

func TestParse_DuplicateAndBlankHeaders(t *testing.T) {
	data := workbooktest.Build(t, workbooktest.SheetData{
		Name:   "S",
		Header: []string{"Marque", "", "Marque", ""},
		Rows:   [][]interface{}{{"a", "b", "c", "d", "e"}},
	})

	wb, err := workbook.Parse(data, "dup.xlsx")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	sheet, _ := wb.Sheet("S")
	want := []string{"Marque", "__EMPTY", "Marque_1", "__EMPTY_1", "__EMPTY_2"}
	if len(sheet.Headers) != len(want) {
		t.Fatalf("headers want=%v got=%v", want, sheet.Headers)
	}
	for i := range want {
		if sheet.Headers[i] != want[i] {
			t.Fatalf("headers want=%v got=%v", want, sheet.Headers)
		}
	}
	if sheet.Rows[0]["Marque_1"].Text != "c" {
		t.Fatalf("Marque_1 = %+v", sheet.Rows[0]["Marque_1"])
	}
}

func TestParse_BoolCell(t *testing.T) {
	data := workbooktest.Build(t, workbooktest.SheetData{
		Name:   "S",
		Header: []string{"équipement", "nr"},
		Rows:   [][]interface{}{{"PC", true}},
	})
	wb, err := workbook.Parse(data, "b.xlsx")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	sheet, _ := wb.Sheet("S")
	if !sheet.Rows[0]["nr"].Truthy() {
		t.Fatalf("bool cell not truthy: %+v", sheet.Rows[0]["nr"])
	}
}

func TestParse_Unreadable(t *testing.T) {
	_, err := workbook.Parse([]byte("definitely not a zip"), "bad.xlsx")
	if !errors.Is(err, workbook.ErrUnreadable) {
		t.Fatalf("want ErrUnreadable got=%v", err)
	}
}
