package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maintence-saida/gestion-maintenance/internal/config"
	"github.com/maintence-saida/gestion-maintenance/internal/exporter"
	"github.com/maintence-saida/gestion-maintenance/internal/filter"
	"github.com/maintence-saida/gestion-maintenance/internal/importer"
	"github.com/maintence-saida/gestion-maintenance/internal/metrics"
	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

type exportOptions struct {
	File       string
	Sheet      string
	Region     string
	Type       string
	Technician string
	Status     string
	Format     string
	Out        string
}

var exportOpts exportOptions

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered records of a workbook without starting the server",
	Example: `  maintdash export --file registre.xlsx --status nr
  maintdash export --file registre.xlsx --sheet Mars --format xlsx --out mars.xlsx
  maintdash export --file registre.xlsx --out -`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)
		defer func() { _ = logger.Sync() }()

		path, n, err := runExport(cmd.Context(), cfg, logger, exportOpts, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if path != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d enregistrement(s) exporté(s) vers %s\n", n, path)
		}
		return nil
	},
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportOpts.File, "file", "", "workbook to read (.xlsx)")
	f.StringVar(&exportOpts.Sheet, "sheet", "", "sheet name (default: configured or best matching sheet)")
	f.StringVar(&exportOpts.Region, "region", filter.AllValue, "region filter")
	f.StringVar(&exportOpts.Type, "type", filter.AllValue, "facility type filter (EP, CEM, Lycée, Direction, Autre)")
	f.StringVar(&exportOpts.Technician, "technician", filter.AllValue, "technician filter")
	f.StringVar(&exportOpts.Status, "status", filter.AllValue, "status filter (rec, re, nr)")
	f.StringVar(&exportOpts.Format, "format", string(exporter.FormatCSV), "output format: csv or xlsx")
	f.StringVar(&exportOpts.Out, "out", "", "output path, - for stdout (default: generated name in the current directory)")
	_ = exportCmd.MarkFlagRequired("file")
}

// runExport loads the workbook, applies the filters and writes the export.
// It returns the output path and the number of exported records.
func runExport(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger, opts exportOptions, stdout io.Writer) (string, int, error) {
	format, err := exporter.ParseFormat(opts.Format)
	if err != nil {
		return "", 0, err
	}

	sess := newSession(cfg)
	coordinator := importer.NewCoordinator(sess, nil, importer.Options{
		DefaultSheet: cfg.Data.DefaultSheet,
		Logger:       logger,
	})
	res, err := coordinator.LoadFile(ctx, opts.File, model.ImportSourceCLI, opts.Sheet)
	if err != nil {
		return "", 0, err
	}

	view := sess.SetSelection(filter.ParseSelection(opts.Region, opts.Type, opts.Technician, opts.Status))
	out, err := exporter.Export(view, exporter.ExportOptions{
		Format: format,
		Sheet:  res.Sheet,
		Now:    time.Now(),
	})
	if err != nil {
		metrics.RecordExport(string(format), "error")
		return "", 0, err
	}
	metrics.RecordExport(string(format), "ok")

	path := opts.Out
	switch path {
	case "-":
		_, err = stdout.Write(out.Data)
		return path, len(view), err
	case "":
		path = out.Filename
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", 0, err
		}
	}
	if err := os.WriteFile(path, out.Data, 0644); err != nil {
		return "", 0, fmt.Errorf("write %s: %w", path, err)
	}
	return path, len(view), nil
}
