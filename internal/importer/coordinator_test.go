package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/maintence-saida/gestion-maintenance/internal/model"
	"github.com/maintence-saida/gestion-maintenance/internal/session"
	"github.com/maintence-saida/gestion-maintenance/internal/store"
	"github.com/maintence-saida/gestion-maintenance/internal/workbook"
	"github.com/maintence-saida/gestion-maintenance/internal/workbook/workbooktest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newCoordinator(t *testing.T, opts Options) (*Coordinator, *session.Session, *store.Store) {
	t.Helper()
	st, err := store.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	sess := session.New(nil)
	return NewCoordinator(sess, st, opts), sess, st
}

func summarySheet() workbooktest.SheetData {
	return workbooktest.SheetData{
		Name:   "Synthèse",
		Header: []string{"Mois", "Total"},
		Rows:   [][]interface{}{{"Mars", 4}},
	}
}

func TestImport_StreamsProgress(t *testing.T) {
	c, sess, st := newCoordinator(t, Options{})
	data := workbooktest.Build(t, workbooktest.Maintenance("Mars"))

	var types []string
	var result *Result
	for evt := range c.Import(context.Background(), Request{Data: data, Filename: "registre.xlsx"}) {
		types = append(types, evt.Type)
		if evt.Type == "error" {
			t.Fatalf("import error event: %s", evt.Message)
		}
		if evt.Type == "done" {
			result = evt.Data.(*Result)
		}
	}

	assert.Equal(t, []string{"start", "info", "info", "sheet_done", "done"}, types)
	require.NotNil(t, result)
	assert.Equal(t, "Mars", result.Sheet)
	assert.Equal(t, 4, result.Report.KeptRows)
	assert.Equal(t, 1, result.Report.DroppedRows)
	assert.Equal(t, model.ImportStatusImported, result.Log.Status)

	assert.Len(t, sess.View(), 4)

	last, err := st.LastImportLog()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, model.ImportStatusImported, last.Status)
	assert.Equal(t, "registre.xlsx", last.Filename)
	assert.Equal(t, model.ImportSourceUpload, last.Source)
	assert.Equal(t, 4, last.KeptRows)
}

func TestLoad_PicksRegisterSheet(t *testing.T) {
	c, sess, _ := newCoordinator(t, Options{})
	data := workbooktest.Build(t, summarySheet(), workbooktest.Maintenance("Mars"))

	res, err := c.Load(context.Background(), Request{Data: data, Filename: "x.xlsx"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Mars", res.Sheet)
	assert.Equal(t, "Mars", sess.Snapshot().Sheet)
	assert.Greater(t, res.Recognition.Confidence, 0.5)
}

func TestLoad_ConfiguredDefaultSheet(t *testing.T) {
	c, _, _ := newCoordinator(t, Options{DefaultSheet: "Avril"})
	data := workbooktest.Build(t, workbooktest.Maintenance("Mars"), workbooktest.Maintenance("Avril"))

	res, err := c.Load(context.Background(), Request{Data: data}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Avril", res.Sheet)
}

func TestLoad_FallsBackToFirstSheet(t *testing.T) {
	c, _, _ := newCoordinator(t, Options{})
	data := workbooktest.Build(t, summarySheet())

	res, err := c.Load(context.Background(), Request{Data: data}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Synthèse", res.Sheet)
	assert.Equal(t, 0, res.Report.KeptRows)
}

func TestLoad_ExplicitSheetMissing(t *testing.T) {
	c, sess, _ := newCoordinator(t, Options{})
	data := workbooktest.Build(t, workbooktest.Maintenance("Mars"))

	_, err := c.Load(context.Background(), Request{Data: data, Sheet: "Juin"}, nil)
	assert.True(t, errors.Is(err, session.ErrSheetNotFound))
	assert.False(t, sess.Loaded())
}

func TestLoad_UnreadableKeepsPriorState(t *testing.T) {
	c, sess, st := newCoordinator(t, Options{})
	_, err := c.Load(context.Background(), Request{Data: workbooktest.Build(t, workbooktest.Maintenance("Mars")), Filename: "ok.xlsx"}, nil)
	require.NoError(t, err)
	before := sess.Snapshot()

	var events []ProgressEvent
	_, err = c.Load(context.Background(), Request{Data: []byte("not a workbook"), Filename: "bad.xlsx"}, func(e ProgressEvent) {
		events = append(events, e)
	})
	assert.True(t, errors.Is(err, workbook.ErrUnreadable))
	require.NotEmpty(t, events)
	assert.Equal(t, "error", events[len(events)-1].Type)

	after := sess.Snapshot()
	assert.Equal(t, before.WorkbookID, after.WorkbookID)
	assert.Equal(t, before.Records, after.Records)

	last, err := st.LastImportLog()
	require.NoError(t, err)
	assert.Equal(t, model.ImportStatusError, last.Status)
	assert.NotEmpty(t, last.ErrorMessage)
}

func TestLoad_CanceledContext(t *testing.T) {
	c, sess, _ := newCoordinator(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Load(ctx, Request{Data: workbooktest.Build(t, workbooktest.Maintenance("Mars"))}, nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, sess.Loaded())
}

func TestImport_LaterRequestWins(t *testing.T) {
	c, sess, _ := newCoordinator(t, Options{})
	first := c.Import(context.Background(), Request{Data: workbooktest.Build(t, workbooktest.Maintenance("Premier")), Filename: "1.xlsx"})
	second := c.Import(context.Background(), Request{Data: workbooktest.Build(t, workbooktest.Maintenance("Second")), Filename: "2.xlsx"})

	for range second {
	}
	for range first {
	}

	assert.Equal(t, "Second", sess.Snapshot().Sheet)
}

func TestLoadDefault(t *testing.T) {
	c, sess, _ := newCoordinator(t, Options{})
	dir := t.TempDir()
	path := filepath.Join(dir, "gestion-maintenace.xlsx")

	_, err := c.LoadDefault(context.Background(), path)
	assert.True(t, errors.Is(err, ErrNoDefaultFile))
	assert.False(t, sess.Loaded())

	require.NoError(t, os.WriteFile(path, workbooktest.Build(t, workbooktest.Maintenance("Mars")), 0644))
	res, err := c.LoadDefault(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, model.ImportSourceDefault, res.Log.Source)
	assert.Equal(t, "gestion-maintenace.xlsx", sess.Snapshot().Filename)
}

func TestNewCoordinator_WithoutStore(t *testing.T) {
	c := NewCoordinator(session.New(nil), nil, Options{})
	res, err := c.Load(context.Background(), Request{Data: workbooktest.Build(t, workbooktest.Maintenance("Mars"))}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Log.ID)
}
