package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/maintence-saida/gestion-maintenance/internal/logging"
	"github.com/maintence-saida/gestion-maintenance/internal/metrics"
	"github.com/maintence-saida/gestion-maintenance/internal/model"
	"github.com/maintence-saida/gestion-maintenance/internal/parser"
	"github.com/maintence-saida/gestion-maintenance/internal/session"
	"github.com/maintence-saida/gestion-maintenance/internal/store"
	"github.com/maintence-saida/gestion-maintenance/internal/workbook"
)

// ErrNoDefaultFile the conventional default workbook is absent
var ErrNoDefaultFile = errors.New("default workbook not found")

// Coordinator drives a load: bytes -> workbook -> sheet choice -> session commit
type Coordinator struct {
	session      *session.Session
	store        *store.Store
	recognizer   *parser.SheetRecognizer
	defaultSheet string
	logger       *zap.Logger
}

// Options coordinator settings
type Options struct {
	// DefaultSheet sheet preferred when a request names none
	DefaultSheet string
	Logger       *zap.Logger
}

// NewCoordinator creates a coordinator. store may be nil, then no import log is kept.
func NewCoordinator(sess *session.Session, st *store.Store, opts Options) *Coordinator {
	return &Coordinator{
		session:      sess,
		store:        st,
		recognizer:   parser.NewSheetRecognizer(sess.Normalizer().Aliases()),
		defaultSheet: opts.DefaultSheet,
		logger:       logging.OrNop(opts.Logger).Named("importer"),
	}
}

// Request one workbook to load
type Request struct {
	Data     []byte
	Filename string
	Source   model.ImportSource
	// Sheet explicit sheet; empty picks the default
	Sheet string
}

// ProgressEvent import progress
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/info/sheet_done/done/error
	Message   string      `json:"message"` // human readable
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Result outcome of a successful load
type Result struct {
	Log         model.ImportLog               `json:"log"`
	Sheet       string                        `json:"sheet"`
	Sheets      []model.SheetInfo             `json:"sheets"`
	Recognition parser.SheetRecognitionResult `json:"recognition"`
	Report      parser.NormalizeReport        `json:"report"`
}

// Import runs the load in the background and streams progress. The load
// generation is reserved before returning, so of two Import calls the later
// one wins whatever order they finish in.
func (c *Coordinator) Import(ctx context.Context, req Request) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)
	token := c.session.BeginLoad()

	go func() {
		defer close(progressChan)
		_, _ = c.load(ctx, token, req, func(evt ProgressEvent) {
			c.sendProgress(progressChan, evt)
		})
	}()

	return progressChan
}

// Load runs the load synchronously. progress may be nil.
func (c *Coordinator) Load(ctx context.Context, req Request, progress func(ProgressEvent)) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	return c.load(ctx, c.session.BeginLoad(), req, progress)
}

// LoadFile reads a workbook from disk and loads it
func (c *Coordinator) LoadFile(ctx context.Context, path string, source model.ImportSource, sheet string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c.Load(ctx, Request{
		Data:     data,
		Filename: filepath.Base(path),
		Source:   source,
		Sheet:    sheet,
	}, nil)
}

// LoadDefault loads the conventional default workbook. Absence yields
// ErrNoDefaultFile and leaves the session untouched.
func (c *Coordinator) LoadDefault(ctx context.Context, path string) (*Result, error) {
	if path == "" {
		return nil, ErrNoDefaultFile
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoDefaultFile, path)
		}
		return nil, err
	}
	return c.LoadFile(ctx, path, model.ImportSourceDefault, "")
}

func (c *Coordinator) load(ctx context.Context, token session.Token, req Request, emit func(ProgressEvent)) (*Result, error) {
	startTime := time.Now()
	if req.Source == "" {
		req.Source = model.ImportSourceUpload
	}
	log := c.logger.With(zap.String("filename", req.Filename), zap.String("source", string(req.Source)))

	emit(ProgressEvent{
		Type:    "start",
		Message: "Chargement du fichier",
		Data: map[string]string{
			"filename": req.Filename,
		},
		Timestamp: time.Now(),
	})

	entry := &model.ImportLog{
		Filename:  req.Filename,
		Source:    req.Source,
		StartedAt: startTime,
	}
	if c.store != nil {
		if _, err := c.store.CreateImportLog(entry); err != nil {
			log.Warn("import log unavailable", zap.Error(err))
		}
	}

	fail := func(err error) (*Result, error) {
		entry.Status = model.ImportStatusError
		entry.ErrorMessage = err.Error()
		c.complete(entry)
		metrics.RecordImport(string(req.Source), model.ImportStatusError, time.Since(startTime), 0, 0)

		if errors.Is(err, session.ErrStaleLoad) {
			log.Debug("load superseded by a newer one")
		} else {
			log.Warn("load failed", zap.Error(err))
		}
		emit(ProgressEvent{
			Type:      "error",
			Message:   err.Error(),
			Timestamp: time.Now(),
		})
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	wb, err := workbook.Parse(req.Data, req.Filename)
	if err != nil {
		return fail(err)
	}
	entry.WorkbookID = wb.ID

	emit(ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("%d feuille(s) trouvée(s)", len(wb.SheetNames)),
		Data: map[string]interface{}{
			"total_sheets": len(wb.SheetNames),
			"sheets":       wb.Sheets(),
		},
		Timestamp: time.Now(),
	})

	sheet, recognition, err := c.chooseSheet(wb, req.Sheet)
	if err != nil {
		return fail(err)
	}
	entry.Sheet = sheet

	emit(ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("Feuille \"%s\" sélectionnée (confiance: %.2f)", sheet, recognition.Confidence),
		Data: map[string]interface{}{
			"sheet_name": sheet,
			"confidence": recognition.Confidence,
			"missing":    recognition.MissingFields,
		},
		Timestamp: time.Now(),
	})

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	report, err := c.session.Commit(token, wb, sheet)
	if err != nil {
		return fail(err)
	}

	entry.TotalRows = report.TotalRows
	entry.KeptRows = report.KeptRows
	entry.DroppedRows = report.DroppedRows
	entry.Status = model.ImportStatusImported
	c.complete(entry)
	metrics.RecordImport(string(req.Source), model.ImportStatusImported, time.Since(startTime), report.KeptRows, report.DroppedRows)

	emit(ProgressEvent{
		Type:    "sheet_done",
		Message: fmt.Sprintf("%d enregistrement(s), %d ligne(s) ignorée(s)", report.KeptRows, report.DroppedRows),
		Data: map[string]interface{}{
			"sheet_name": sheet,
			"report":     report,
		},
		Timestamp: time.Now(),
	})

	result := &Result{
		Log:         *entry,
		Sheet:       sheet,
		Sheets:      wb.Sheets(),
		Recognition: recognition,
		Report:      report,
	}

	log.Info("workbook loaded",
		zap.String("sheet", sheet),
		zap.Int("records", report.KeptRows),
		zap.Int("dropped", report.DroppedRows),
		zap.Duration("duration", time.Since(startTime)),
	)

	emit(ProgressEvent{
		Type:      "done",
		Message:   "Chargement terminé",
		Data:      result,
		Timestamp: time.Now(),
	})
	return result, nil
}

// chooseSheet explicit name, then the configured default, then the best
// looking register, then the first sheet.
func (c *Coordinator) chooseSheet(wb *workbook.Workbook, requested string) (string, parser.SheetRecognitionResult, error) {
	headers := wb.Headers()

	if requested != "" {
		if _, ok := wb.Sheet(requested); !ok {
			return "", parser.SheetRecognitionResult{}, fmt.Errorf("%w: %s", session.ErrSheetNotFound, requested)
		}
		return requested, c.recognizer.Recognize(requested, headers[requested]), nil
	}

	if c.defaultSheet != "" {
		if _, ok := wb.Sheet(c.defaultSheet); ok {
			return c.defaultSheet, c.recognizer.Recognize(c.defaultSheet, headers[c.defaultSheet]), nil
		}
	}

	if best, ok := c.recognizer.BestSheet(wb.SheetNames, headers); ok {
		return best.SheetName, best, nil
	}

	first := wb.SheetNames[0]
	return first, c.recognizer.Recognize(first, headers[first]), nil
}

func (c *Coordinator) complete(entry *model.ImportLog) {
	if c.store == nil || entry.ID == 0 {
		return
	}
	if err := c.store.CompleteImportLog(entry); err != nil {
		c.logger.Warn("import log not updated", zap.Int64("id", entry.ID), zap.Error(err))
	}
}

// sendProgress drops the event when nobody keeps up with the channel
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}
