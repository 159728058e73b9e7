// Package server exposes the latest assessment run over HTTP. It is a
// read-only view; runs are produced by the pipeline and persisted under
// .windscout/runs/.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingrea/windscout/internal/config"
	"github.com/kingrea/windscout/internal/pipeline"
)

// ErrDisabled is returned when the server is not enabled in config.
var ErrDisabled = errors.New("server: disabled by configuration")

// RunSource loads the run to serve. Swappable in tests.
type RunSource func() (pipeline.Run, error)

// Server wraps the HTTP bootstrap and route registration.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	http   *http.Server
	runs   RunSource
}

// Option customizes server construction.
type Option func(*Server)

// WithRunSource overrides where runs are loaded from (tests).
func WithRunSource(source RunSource) Option {
	return func(s *Server) {
		if source != nil {
			s.runs = source
		}
	}
}

// New constructs a results server bound to the project configuration.
func New(cfg *config.Config, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)
	srv := &Server{
		cfg:    cfg,
		engine: gin.New(),
		runs:   func() (pipeline.Run, error) { return pipeline.LoadLatest(cfg) },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(srv)
		}
	}
	srv.engine.Use(gin.Recovery())
	srv.registerRoutes()
	return srv
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens on the configured address and serves until the context
// is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg == nil || !s.cfg.Project.Server.Enabled {
		return ErrDisabled
	}
	s.http = &http.Server{
		Addr:    s.cfg.Project.Server.Address(),
		Handler: s.engine,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.healthz)
	api := s.engine.Group("/api")
	{
		api.GET("/run", s.getRun)
		api.GET("/comparison", s.getComparison)
	}
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getRun(c *gin.Context) {
	run, err := s.runs()
	if err != nil {
		if errors.Is(err, pipeline.ErrNoRun) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no run recorded yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) getComparison(c *gin.Context) {
	run, err := s.runs()
	if err != nil {
		if errors.Is(err, pipeline.ErrNoRun) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no run recorded yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if run.Comparison == nil {
		c.JSON(http.StatusConflict, gin.H{"error": run.ComparisonError})
		return
	}
	c.JSON(http.StatusOK, run.Comparison)
}
