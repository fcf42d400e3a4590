// Package server exposes the calculator over HTTP for web front ends.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxcut/internal/breakeven"
	"github.com/rgehrsitz/taxcut/internal/calculation"
	"github.com/rgehrsitz/taxcut/internal/compare"
	"github.com/rgehrsitz/taxcut/internal/transform"
	"github.com/sirupsen/logrus"
)

// Config holds listener settings
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the default listener settings
func DefaultConfig() Config {
	return Config{Addr: ":8080", ShutdownTimeout: 5 * time.Second}
}

// Server serves the calculator JSON API, health checks and Prometheus metrics
type Server struct {
	config   Config
	router   *gin.Engine
	handlers *Handlers
	metrics  *Metrics
	log      logrus.FieldLogger
}

// NewServer wires routes around the engine and preset registry
func NewServer(cfg Config, engine *calculation.CalculationEngine, presets *transform.PresetRegistry, log logrus.FieldLogger) *Server {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	if presets == nil {
		presets = transform.CreateBuiltInPresets()
	}

	router := gin.New()
	metrics := NewMetrics()
	router.Use(gin.Recovery(), requestLogger(log), metrics.Middleware())

	s := &Server{
		config:  cfg,
		router:  router,
		metrics: metrics,
		log:     log,
		handlers: &Handlers{
			Engine:        engine,
			CompareEngine: compare.NewCompareEngine(engine, presets),
			Solver:        breakeven.NewDefaultSolver(engine),
			Presets:       presets,
			Metrics:       metrics,
		},
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/metrics", s.metrics.Handler())

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/compare", s.handlers.Compare)
		v1.POST("/compare/presets", s.handlers.ComparePresets)
		v1.POST("/breakeven", s.handlers.BreakEven)
		v1.GET("/tables/:status", s.handlers.Table)
		v1.GET("/presets", s.handlers.ListPresets)
		v1.GET("/assumptions", s.handlers.Assumptions)
	}
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.config.Addr).Info("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		s.log.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
		if len(c.Errors) > 0 {
			entry.Warn(c.Errors.String())
			return
		}
		entry.Debug("request")
	}
}
