package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maintence-saida/gestion-maintenance/internal/config"
	"github.com/maintence-saida/gestion-maintenance/internal/exporter"
	"github.com/maintence-saida/gestion-maintenance/internal/workbook/workbooktest"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registre.xlsx")
	require.NoError(t, os.WriteFile(path, workbooktest.Build(t, workbooktest.Maintenance("Mars")), 0644))
	return path
}

func TestRunExport_StdoutCSV(t *testing.T) {
	var stdout bytes.Buffer
	path, n, err := runExport(context.Background(), config.DefaultConfig(), zap.NewNop(), exportOptions{
		File:       writeWorkbook(t),
		Technician: "Karim",
		Format:     "csv",
		Out:        "-",
	}, &stdout)
	require.NoError(t, err)
	assert.Equal(t, "-", path)
	assert.Equal(t, 2, n)

	lines := strings.Split(stdout.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(exporter.Header, ","), lines[0])
}

func TestRunExport_FileXLSX(t *testing.T) {
	out := filepath.Join(t.TempDir(), "exports", "mars.xlsx")
	path, n, err := runExport(context.Background(), config.DefaultConfig(), zap.NewNop(), exportOptions{
		File:   writeWorkbook(t),
		Format: "xlsx",
		Out:    out,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, out, path)
	assert.Equal(t, 4, n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestRunExport_EmptySelection(t *testing.T) {
	_, _, err := runExport(context.Background(), config.DefaultConfig(), zap.NewNop(), exportOptions{
		File:   writeWorkbook(t),
		Region: "Oran",
		Out:    "-",
	}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, exporter.ErrEmptyExport))
}

func TestRunExport_BadFormat(t *testing.T) {
	_, _, err := runExport(context.Background(), config.DefaultConfig(), zap.NewNop(), exportOptions{
		File:   writeWorkbook(t),
		Format: "pdf",
	}, nil)
	assert.Error(t, err)
}
