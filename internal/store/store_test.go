package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestImportLogLifecycle(t *testing.T) {
	s := newTestStore(t)

	log := &model.ImportLog{Filename: "registre.xlsx", Source: model.ImportSourceUpload}
	id, err := s.CreateImportLog(log)
	require.NoError(t, err)
	assert.Equal(t, id, log.ID)
	assert.Equal(t, model.ImportStatusProcessing, log.Status)

	last, err := s.LastImportLog()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, model.ImportStatusProcessing, last.Status)
	assert.Nil(t, last.CompletedAt)

	log.WorkbookID = "wb-1"
	log.Sheet = "Mars"
	log.TotalRows, log.KeptRows, log.DroppedRows = 5, 4, 1
	log.Status = model.ImportStatusImported
	require.NoError(t, s.CompleteImportLog(log))

	last, err = s.LastImportLog()
	require.NoError(t, err)
	assert.Equal(t, "wb-1", last.WorkbookID)
	assert.Equal(t, "Mars", last.Sheet)
	assert.Equal(t, 4, last.KeptRows)
	assert.Equal(t, 1, last.DroppedRows)
	assert.Equal(t, model.ImportSourceUpload, last.Source)
	require.NotNil(t, last.CompletedAt)
	assert.WithinDuration(t, time.Now(), *last.CompletedAt, time.Minute)
}

func TestListImportLogs_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"a.xlsx", "b.xlsx", "c.xlsx"} {
		_, err := s.CreateImportLog(&model.ImportLog{Filename: name, Source: model.ImportSourceCLI})
		require.NoError(t, err)
	}

	logs, err := s.ListImportLogs(2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "c.xlsx", logs[0].Filename)
	assert.Equal(t, "b.xlsx", logs[1].Filename)
}

func TestLastImportLog_Empty(t *testing.T) {
	last, err := newTestStore(t).LastImportLog()
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestNew_FileDSN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "maintdash.db")
	s, err := New("file:" + path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.CreateImportLog(&model.ImportLog{Filename: "x.xlsx"})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestFilePath(t *testing.T) {
	assert.Equal(t, "", filePath(":memory:"))
	assert.Equal(t, "", filePath(MemoryDSN))
	assert.Equal(t, "data/x.db", filePath("file:data/x.db?_busy_timeout=5000"))
	assert.Equal(t, "x.db", filePath("x.db"))
}
