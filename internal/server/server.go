// Package server exposes the simulator over a small stateless HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/theirongolddev/stratsim/internal/engine"
	"github.com/theirongolddev/stratsim/internal/export"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// SourceFactory returns the random source for one request. seed is the
// request's optional seed (0 when absent).
type SourceFactory func(seed uint64) engine.RandomSource

// Server holds no per-run state; every request simulates from scratch.
type Server struct {
	router    *gin.Engine
	logger    *log.Logger
	sources   SourceFactory
	export    export.Options
	startedAt time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithSourceFactory overrides how request random sources are built.
func WithSourceFactory(f SourceFactory) Option {
	return func(s *Server) { s.sources = f }
}

// WithExportOptions sets the options used for export responses.
func WithExportOptions(o export.Options) Option {
	return func(s *Server) { s.export = o }
}

// New builds the router. logger must not be nil.
func New(logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		router:    gin.New(),
		logger:    logger,
		sources:   engine.SourceFromSeed,
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes(s.router.Group("/api"))
	return s
}

func (s *Server) registerRoutes(api *gin.RouterGroup) {
	api.GET("/status", s.handleStatus)
	api.POST("/simulate", s.handleSimulate)
	api.POST("/export/:format", s.handleExport)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"dur", time.Since(start).Round(time.Microsecond),
		}
		switch {
		case status >= 500:
			s.logger.Error("request", kv...)
		case status >= 400:
			s.logger.Warn("request", kv...)
		default:
			s.logger.Debug("request", kv...)
		}
	}
}
