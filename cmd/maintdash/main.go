package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maintence-saida/gestion-maintenance/internal/config"
	"github.com/maintence-saida/gestion-maintenance/internal/logging"
	"github.com/maintence-saida/gestion-maintenance/internal/parser"
	"github.com/maintence-saida/gestion-maintenance/internal/session"
)

var (
	// global flags
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "maintdash",
	Short: "Tableau de bord de gestion de maintenance",
	Long: `maintdash loads a maintenance register workbook (.xlsx), normalizes its
rows into maintenance records and serves a filterable dashboard with
status and facility-type charts and CSV/Excel export.

Run without a subcommand to start the dashboard server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: config.toml next to the executable)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	addServeFlags(rootCmd)
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig config file, then environment, then global flags
func loadConfig() (*config.AppConfig, config.LoadConfigInfo, error) {
	var (
		cfg  *config.AppConfig
		info config.LoadConfigInfo
		err  error
	)
	if configPath != "" {
		cfg, info, err = config.LoadFile(configPath)
	} else {
		cfg, info, err = config.LoadConfigWithInfo()
	}
	if err != nil {
		return nil, info, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, info, nil
}

func newLogger(cfg *config.AppConfig) *zap.Logger {
	return logging.Must(cfg.Log)
}

func newSession(cfg *config.AppConfig) *session.Session {
	return session.New(parser.NewNormalizer(parser.NormalizerOptions{
		ExtraAliases: cfg.Aliases,
		StatusScope:  parser.ParseStatusScope(cfg.Classifier.StatusScope),
	}))
}
