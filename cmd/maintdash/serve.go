package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/maintence-saida/gestion-maintenance/internal/config"
	"github.com/maintence-saida/gestion-maintenance/internal/importer"
	"github.com/maintence-saida/gestion-maintenance/internal/server"
	"github.com/maintence-saida/gestion-maintenance/internal/store"
	"github.com/maintence-saida/gestion-maintenance/internal/util"
	"github.com/maintence-saida/gestion-maintenance/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	RunE:  runServe,
}

var (
	servePort      int
	serveDev       bool
	serveDataDir   string
	serveNoBrowser bool
)

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&servePort, "port", 0, "HTTP port")
	cmd.Flags().BoolVar(&serveDev, "dev", false, "development mode (page served from disk, no browser)")
	cmd.Flags().StringVar(&serveDataDir, "data-dir", "", "data directory (holds the default workbook)")
	cmd.Flags().BoolVar(&serveNoBrowser, "no-browser", false, "do not open a browser")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, info, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
		info.PortSpecified = true
	}
	if serveDev {
		cfg.Server.DevMode = true
	}
	if serveDataDir != "" {
		cfg.Data.DataDir = serveDataDir
	}
	if serveNoBrowser || cfg.Server.DevMode {
		cfg.Server.OpenBrowser = false
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	fmt.Println("==========================================")
	fmt.Println("  Système de Gestion de Maintenance")
	fmt.Println("==========================================")

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		logger.Warn("data directory not created", zap.Error(err))
	} else {
		fmt.Printf("Répertoire de données: %s\n", dataDir)
	}

	st, err := store.New(cfg.Store.DSN)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer st.Close()

	sess := newSession(cfg)
	coordinator := importer.NewCoordinator(sess, st, importer.Options{
		DefaultSheet: cfg.Data.DefaultSheet,
		Logger:       logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaultPath := config.DefaultFilePath(cfg)
	loadDefault := func(ctx context.Context) error {
		_, err := coordinator.LoadDefault(ctx, defaultPath)
		if errors.Is(err, importer.ErrNoDefaultFile) {
			logger.Info("no default workbook, waiting for an upload", zap.String("path", defaultPath))
			return nil
		}
		return err
	}
	if err := loadDefault(ctx); err != nil {
		logger.Warn("default workbook not loaded", zap.Error(err))
	}

	if !info.PortSpecified {
		if port, err := util.FindAvailablePort(cfg.Server.Port, 20); err == nil {
			cfg.Server.Port = port
		}
	}
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	srv := server.NewServer(server.Deps{
		Config:      cfg,
		Session:     sess,
		Coordinator: coordinator,
		Store:       st,
		Logger:      logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fmt.Printf("Serveur démarré sur le port %d ...\n", cfg.Server.Port)
		return srv.Run(gctx, addr)
	})

	if cfg.Data.WatchDefaultFile && defaultPath != "" {
		w := watcher.New(defaultPath, loadDefault, watcher.Options{Logger: logger})
		g.Go(func() error {
			// a watcher failure must not take the server down
			if err := w.Run(gctx); err != nil {
				logger.Warn("default workbook watcher stopped", zap.Error(err))
			}
			return nil
		})
	}

	if cfg.Server.OpenBrowser {
		fmt.Printf("Ouverture du navigateur: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("Impossible d'ouvrir le navigateur, ouvrez manuellement: %s\n", url)
		}
	} else {
		fmt.Printf("Tableau de bord: %s\n", url)
	}

	fmt.Println("\nCtrl+C pour arrêter...")

	err = g.Wait()
	fmt.Println("\nArrêt du serveur...")
	return err
}
