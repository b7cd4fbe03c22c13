package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/maintence-saida/gestion-maintenance/internal/api"
	"github.com/maintence-saida/gestion-maintenance/internal/config"
	"github.com/maintence-saida/gestion-maintenance/internal/importer"
	"github.com/maintence-saida/gestion-maintenance/internal/logging"
	"github.com/maintence-saida/gestion-maintenance/internal/session"
	"github.com/maintence-saida/gestion-maintenance/internal/store"
)

//go:embed all:static
var staticFiles embed.FS

// Deps collaborators shared with the rest of the process
type Deps struct {
	Config      *config.AppConfig
	Session     *session.Session
	Coordinator *importer.Coordinator
	Store       *store.Store
	Logger      *zap.Logger
}

// Server HTTP server
type Server struct {
	router *gin.Engine
	api    *api.Handler
	logger *zap.Logger
}

// NewServer creates the server and its routes
func NewServer(deps Deps) *Server {
	devMode := deps.Config.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logging.OrNop(deps.Logger)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger.Named("http")))

	s := &Server{
		router: router,
		api:    api.NewHandler(deps.Session, deps.Coordinator, deps.Store, logger),
		logger: logger,
	}

	s.setupRoutes(devMode)

	return s
}

// requestLogger access log through zap
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if devMode {
		// dev: serve the page from disk so edits show without a rebuild
		s.router.StaticFile("/", filepath.Join("internal", "server", "static", "index.html"))
		return
	}

	sub, _ := fs.Sub(staticFiles, "static")
	s.router.GET("/", func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
}

// Handler http.Handler of the server, for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
