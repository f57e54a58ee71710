// Package server exposes the monitor over HTTP for the dashboard frontend:
// project snapshots, presentation-filtered alerts, dismissals, and an
// on-demand analyzer proxy.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Veraticus/client-pulse/internal/certs"
	"github.com/Veraticus/client-pulse/internal/monitor"
	"github.com/Veraticus/client-pulse/internal/service"
)

// Config holds server configuration.
type Config struct {
	Addr            string
	RefreshInterval time.Duration
	// TLSCertDir enables local HTTPS with a self-signed certificate stored
	// in this directory. Empty means plain HTTP.
	TLSCertDir string
}

// Server serves the dashboard API and keeps a periodically refreshed
// snapshot so GET requests stay cheap.
type Server struct {
	monitor  *monitor.Monitor
	analyzer service.Analyzer
	clock    clockwork.Clock
	cfg      Config

	mu     sync.RWMutex
	latest monitor.Snapshot
	loaded bool
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the wall clock, primarily for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithAnalyzer enables the POST /api/analyze proxy endpoint.
func WithAnalyzer(a service.Analyzer) Option {
	return func(s *Server) { s.analyzer = a }
}

// New creates a Server around the given monitor.
func New(m *monitor.Monitor, cfg Config, opts ...Option) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":3001"
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 5 * time.Minute
	}

	s := &Server{
		monitor: m,
		clock:   clockwork.NewRealClock(),
		cfg:     cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the HTTP router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.metricsMiddleware)
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.handleProjects)
		r.Get("/alerts", s.handleAlerts)
		r.Get("/projects/{projectID}/alerts", s.handleProjectAlerts)
		r.Post("/projects/{projectID}/alerts/{alertID}/dismiss", s.handleDismiss)
		r.Post("/analyze", s.handleAnalyze)
	})

	return r
}

// Run serves until the context is canceled, refreshing the snapshot on the
// configured interval, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if _, err := s.refresh(ctx); err != nil {
		slog.Warn("Initial snapshot failed, serving will retry", "error", err)
	}

	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go s.refreshLoop(refreshCtx)

	errCh := make(chan error, 1)
	if s.cfg.TLSCertDir != "" {
		cert, err := certs.NewManager(s.cfg.TLSCertDir).GetOrCreate()
		if err != nil {
			return fmt.Errorf("failed to load TLS certificate: %w", err)
		}
		httpServer.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		go func() {
			slog.Info("HTTPS server listening", "addr", s.cfg.Addr)
			errCh <- httpServer.ListenAndServeTLS("", "")
		}()
	} else {
		go func() {
			slog.Info("HTTP server listening", "addr", s.cfg.Addr)
			errCh <- httpServer.ListenAndServe()
		}()
	}

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	slog.Info("HTTP server stopped")
	return nil
}

// refreshLoop re-snapshots on the configured interval.
func (s *Server) refreshLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(s.cfg.RefreshInterval):
			if _, err := s.refresh(ctx); err != nil {
				slog.Error("Scheduled snapshot refresh failed", "error", err)
			}
		}
	}
}

// refresh takes a fresh snapshot at the current clock time and caches it.
func (s *Server) refresh(ctx context.Context) (monitor.Snapshot, error) {
	snap, err := s.monitor.Snapshot(ctx, s.clock.Now())
	if err != nil {
		return monitor.Snapshot{}, err
	}

	s.mu.Lock()
	s.latest = snap
	s.loaded = true
	s.mu.Unlock()

	slog.Debug("Snapshot refreshed",
		"projects", len(snap.Projects),
		"alerts", len(snap.Alerts))
	return snap, nil
}

// snapshot returns the cached snapshot, refreshing first when the cache is
// cold or the caller forces it.
func (s *Server) snapshot(ctx context.Context, force bool) (monitor.Snapshot, error) {
	s.mu.RLock()
	snap, loaded := s.latest, s.loaded
	s.mu.RUnlock()

	if loaded && !force {
		return snap, nil
	}
	return s.refresh(ctx)
}
