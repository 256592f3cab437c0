// Package server exposes one telemetry engine as a JSON HTTP API: metric
// ingestion, per-operation statistics, live percentiles, snapshots,
// regression detection, the benchmark registry, and on-demand report
// rendering.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/opspulse/pulse/telemetry"
)

const defaultAddr = ":8080"

// shutdownTimeout bounds the graceful drain after the run context ends.
const shutdownTimeout = 5 * time.Second

// Server serves the telemetry API over a single engine instance.
type Server struct {
	engine *telemetry.Engine
	logger *zap.Logger
	addr   string
}

// Config contains construction-time settings for a Server.
type Config struct {
	// Addr is the listen address (default ":8080").
	Addr string

	// Engine is the engine exposed by the API. Defaults to a fresh engine
	// with stock settings.
	Engine *telemetry.Engine

	// Logger receives request and lifecycle logs. Defaults to a nop logger.
	Logger *zap.Logger
}

// New creates a server.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.Engine == nil {
		cfg.Engine = telemetry.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Server{
		engine: cfg.Engine,
		logger: cfg.Logger,
		addr:   cfg.Addr,
	}
}

// Router builds the handler tree behind the server.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/metrics", s.handleIngest)
		r.Get("/metrics", s.handleListMetrics)
		r.Get("/stats/{name}", s.handleStats)
		r.Get("/live", s.handleLiveStats)
		r.Post("/snapshots", s.handleCreateSnapshot)
		r.Get("/snapshots", s.handleListSnapshots)
		r.Get("/regressions", s.handleRegressions)
		r.Get("/benchmarks", s.handleListBenchmarks)
		r.Post("/benchmarks", s.handleRegisterBenchmark)
		r.Get("/report", s.handleReport)
	})

	return r
}

// Run serves the API until ctx is canceled, then drains in-flight requests
// before returning.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	return <-errCh
}
