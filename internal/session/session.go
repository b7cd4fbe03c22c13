package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/maintence-saida/gestion-maintenance/internal/filter"
	"github.com/maintence-saida/gestion-maintenance/internal/model"
	"github.com/maintence-saida/gestion-maintenance/internal/parser"
	"github.com/maintence-saida/gestion-maintenance/internal/workbook"
)

var (
	// ErrSheetNotFound the requested sheet is not in the loaded workbook
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrNoWorkbook nothing has been loaded yet
	ErrNoWorkbook = errors.New("no workbook loaded")
	// ErrStaleLoad a newer load was requested after this one
	ErrStaleLoad = errors.New("stale load")
)

// Token load generation, handed out by BeginLoad
type Token uint64

// Session in-memory dashboard state: workbook, selected sheet, records,
// filter selection and filtered view.
//
// Record slices are replaced, never modified in place, so slices returned by
// Snapshot may be shared with readers.
type Session struct {
	normalizer *parser.Normalizer

	mu        sync.RWMutex
	requested Token
	committed Token
	workbook  *workbook.Workbook
	sheet     string
	records   []model.MaintenanceRecord
	report    parser.NormalizeReport
	selection filter.Selection
	view      []model.MaintenanceRecord
}

// New creates an empty session. A nil normalizer uses the defaults.
func New(normalizer *parser.Normalizer) *Session {
	if normalizer == nil {
		normalizer = parser.NewNormalizer(parser.NormalizerOptions{})
	}
	return &Session{
		normalizer: normalizer,
		selection:  filter.DefaultSelection(),
		records:    []model.MaintenanceRecord{},
		view:       []model.MaintenanceRecord{},
	}
}

// Normalizer normalizer used for every sheet
func (s *Session) Normalizer() *parser.Normalizer {
	return s.normalizer
}

// BeginLoad reserves the next generation. Only the newest reservation can commit.
func (s *Session) BeginLoad() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requested++
	return s.requested
}

// Commit replaces the whole state with the given workbook and sheet.
// The state is left untouched when the sheet is missing or a newer load
// has been requested since token was issued.
func (s *Session) Commit(token Token, wb *workbook.Workbook, sheet string) (parser.NormalizeReport, error) {
	if wb == nil {
		return parser.NormalizeReport{}, ErrNoWorkbook
	}
	data, ok := wb.Sheet(sheet)
	if !ok {
		return parser.NormalizeReport{}, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}

	records, report := s.normalizer.Normalize(data.Rows)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.requested {
		return report, ErrStaleLoad
	}
	s.replace(token, wb, sheet, records, report)
	return report, nil
}

// SelectSheet switches to another sheet of the loaded workbook
func (s *Session) SelectSheet(name string) (parser.NormalizeReport, error) {
	token, wb, err := s.beginSwitch(name)
	if err != nil {
		return parser.NormalizeReport{}, err
	}
	return s.Commit(token, wb, name)
}

// beginSwitch captures the current workbook and reserves a generation under
// one lock, so a load committed in between cannot be reverted by the switch.
func (s *Session) beginSwitch(name string) (Token, *workbook.Workbook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.workbook == nil {
		return 0, nil, ErrNoWorkbook
	}
	if _, ok := s.workbook.Sheet(name); !ok {
		return 0, nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}
	s.requested++
	return s.requested, s.workbook, nil
}

func (s *Session) replace(token Token, wb *workbook.Workbook, sheet string, records []model.MaintenanceRecord, report parser.NormalizeReport) {
	s.committed = token
	s.workbook = wb
	s.sheet = sheet
	s.records = records
	s.report = report
	s.view = filter.Apply(records, s.selection)
}

// Selection current filter selection
func (s *Session) Selection() filter.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// SetSelection replaces the selection and recomputes the view
func (s *Session) SetSelection(sel filter.Selection) []model.MaintenanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = sel
	s.view = filter.Apply(s.records, sel)
	return s.view
}

// ResetSelection back to the default selection
func (s *Session) ResetSelection() []model.MaintenanceRecord {
	return s.SetSelection(filter.DefaultSelection())
}

// View filtered records in sheet order
func (s *Session) View() []model.MaintenanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Loaded reports whether a workbook has been committed
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workbook != nil
}

// Snapshot consistent copy of the session state
type Snapshot struct {
	Loaded     bool
	Generation Token
	WorkbookID string
	Filename   string
	Sheet      string
	Sheets     []model.SheetInfo
	Records    []model.MaintenanceRecord
	View       []model.MaintenanceRecord
	Selection  filter.Selection
	Report     parser.NormalizeReport
}

// Snapshot returns the state as of one instant
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Loaded:     s.workbook != nil,
		Generation: s.committed,
		Sheet:      s.sheet,
		Records:    s.records,
		View:       s.view,
		Selection:  s.selection,
		Report:     s.report,
		Sheets:     []model.SheetInfo{},
	}
	if s.workbook != nil {
		snap.WorkbookID = s.workbook.ID
		snap.Filename = s.workbook.Filename
		snap.Sheets = s.workbook.Sheets()
	}
	return snap
}
