package exporter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

// ErrEmptyExport nothing to export
var ErrEmptyExport = errors.New("Aucune donnée à exporter")

// Format export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat parses a format name, defaulting to csv
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ContentType MIME type of the format
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Header export column titles, in record field order
var Header = []string{"Équipement", "Marque", "Inventaire", "N° Série", "Établissement", "Type", "Panne", "Technicien", "Statut", "Date"}

// Columns record values in Header order
func Columns(r model.MaintenanceRecord) []string {
	return []string{
		r.Equipment,
		r.Brand,
		r.InventoryID,
		r.SerialNumber,
		r.Facility,
		string(r.FacilityType),
		r.Fault,
		r.Technician,
		string(r.Status),
		r.Date,
	}
}

// ToCSV renders the records as CSV text. Values are wrapped in double quotes
// but embedded quotes and newlines are not escaped.
func ToCSV(records []model.MaintenanceRecord) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(Header, ","))
	for _, r := range records {
		cols := Columns(r)
		for i, v := range cols {
			cols[i] = `"` + v + `"`
		}
		lines = append(lines, strings.Join(cols, ","))
	}
	return strings.Join(lines, "\n")
}

// Filename download name: maintenance_<sheet>_<YYYY-MM-DD>.<ext>
func Filename(sheet string, now time.Time, format Format) string {
	return fmt.Sprintf("maintenance_%s_%s.%s", sheet, now.UTC().Format("2006-01-02"), format)
}

// ExportOptions export settings
type ExportOptions struct {
	Format   Format
	Sheet    string
	Now      time.Time
	Progress func(ProgressEvent)
}

// Result rendered export file
type Result struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Export renders the records in the requested format. An empty record set
// is refused with ErrEmptyExport.
func Export(records []model.MaintenanceRecord, opts ExportOptions) (*Result, error) {
	if len(records) == 0 {
		return nil, ErrEmptyExport
	}
	if opts.Format == "" {
		opts.Format = FormatCSV
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	result := &Result{
		Filename:    Filename(opts.Sheet, opts.Now, opts.Format),
		ContentType: opts.Format.ContentType(),
	}

	switch opts.Format {
	case FormatCSV:
		reportProgress(opts.Progress, 0, "csv")
		result.Data = []byte(ToCSV(records))
		reportProgress(opts.Progress, 100, "csv")
	case FormatXLSX:
		data, err := ToXLSX(records, opts.Sheet, opts.Progress)
		if err != nil {
			return nil, err
		}
		result.Data = data
	default:
		return nil, fmt.Errorf("unknown export format %q", opts.Format)
	}
	return result, nil
}

// ToXLSX writes the records to a single-sheet workbook with the CSV columns
func ToXLSX(records []model.MaintenanceRecord, sheet string, progress func(ProgressEvent)) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := xlsxSheetName(sheet)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(name, 1, 1, style)
	}
	_ = f.SetColWidth(name, "A", "J", 18)

	reportProgress(progress, 0, "xlsx")
	total := len(records)
	for i, r := range records {
		cols := Columns(r)
		row := make([]interface{}, len(cols))
		for j, v := range cols {
			row[j] = v
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(name, axis, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
		if total > 0 && (i+1)%100 == 0 {
			reportProgress(progress, (i+1)*100/total, "xlsx")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	reportProgress(progress, 100, "xlsx")
	return buf.Bytes(), nil
}

// xlsxSheetName sheet names are limited to 31 chars without []:*?/\
func xlsxSheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	if s == "" {
		return "Maintenance"
	}
	if runes := []rune(s); len(runes) > 31 {
		s = string(runes[:31])
	}
	return s
}
