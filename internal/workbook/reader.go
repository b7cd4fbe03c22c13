package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

// ErrUnreadable the bytes are not a readable spreadsheet
var ErrUnreadable = errors.New("unreadable workbook")

// emptyHeader key given to columns without a header text
const emptyHeader = "__EMPTY"

// Sheet one worksheet as header keys plus defaulted rows
type Sheet struct {
	Name    string
	Headers []string
	Rows    []model.RawRow
}

// Workbook parsed spreadsheet, read-only once built
type Workbook struct {
	ID         string
	Filename   string
	SheetNames []string
	sheets     map[string]*Sheet
}

// Parse reads an xlsx document from memory
func Parse(data []byte, filename string) (*Workbook, error) {
	return Open(bytes.NewReader(data), filename)
}

// Open reads an xlsx document. Every sheet is materialized and the excelize
// handle is closed before returning.
func Open(r io.Reader, filename string) (*Workbook, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer file.Close()

	names := file.GetSheetList()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no sheets", ErrUnreadable)
	}

	wb := &Workbook{
		ID:         uuid.New().String(),
		Filename:   filename,
		SheetNames: names,
		sheets:     make(map[string]*Sheet, len(names)),
	}

	for _, name := range names {
		sheet, err := readSheet(file, name)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrUnreadable, name, err)
		}
		wb.sheets[name] = sheet
	}

	return wb, nil
}

// Sheet returns a sheet by exact name
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	s, ok := w.sheets[name]
	return s, ok
}

// Sheets sheet summaries in workbook order
func (w *Workbook) Sheets() []model.SheetInfo {
	result := make([]model.SheetInfo, 0, len(w.SheetNames))
	for _, name := range w.SheetNames {
		result = append(result, model.SheetInfo{
			Name:     name,
			RowCount: len(w.sheets[name].Rows),
		})
	}
	return result
}

// Headers header keys per sheet, used for sheet recognition
func (w *Workbook) Headers() map[string][]string {
	out := make(map[string][]string, len(w.sheets))
	for name, s := range w.sheets {
		out[name] = s.Headers
	}
	return out
}

// readSheet reads both the formatted and the raw grid: the formatted text is
// what the user sees (dates, thousands separators), the raw value carries the
// number behind it.
func readSheet(f *excelize.File, name string) (*Sheet, error) {
	formatted, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	sheet := &Sheet{Name: name}
	if len(formatted) == 0 {
		return sheet, nil
	}

	width := 0
	for _, row := range formatted {
		if len(row) > width {
			width = len(row)
		}
	}
	sheet.Headers = uniqueHeaders(formatted[0], width)

	for i := 1; i < len(formatted); i++ {
		row := make(model.RawRow, width)
		blank := true
		for j, key := range sheet.Headers {
			cell := readCell(f, name, i, j, at(formatted[i], j), at(rowAt(raw, i), j))
			if !cell.IsBlank() {
				blank = false
			}
			row[key] = cell
		}
		if blank {
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

func readCell(f *excelize.File, sheet string, rowIdx, colIdx int, text, rawValue string) model.Cell {
	if text == "" && rawValue == "" {
		return model.Cell{}
	}

	axis, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
	if err != nil {
		return model.TextCell(text)
	}
	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return model.TextCell(text)
	}

	switch cellType {
	case excelize.CellTypeBool:
		cell := model.BoolCell(rawValue == "1" || strings.EqualFold(rawValue, "true"))
		if text != "" {
			cell.Text = text
		}
		return cell
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeDate:
		v, err := strconv.ParseFloat(strings.TrimSpace(rawValue), 64)
		if err != nil {
			return model.TextCell(text)
		}
		cell := model.NumberCell(v)
		if text != "" {
			cell.Text = text
		}
		return cell
	default:
		return model.TextCell(text)
	}
}

// uniqueHeaders turns a header row into unique keys: repeated names get a
// _1, _2 suffix and blank headers become __EMPTY, __EMPTY_1, ...
func uniqueHeaders(header []string, width int) []string {
	keys := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		base := at(header, i)
		if strings.TrimSpace(base) == "" {
			base = emptyHeader
		}
		key := base
		if n, ok := seen[base]; ok {
			key = fmt.Sprintf("%s_%d", base, n)
			seen[base] = n + 1
		} else {
			seen[base] = 1
		}
		keys[i] = key
	}
	return keys
}

func at(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func rowAt(rows [][]string, i int) []string {
	if i < len(rows) {
		return rows[i]
	}
	return nil
}
