package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the Prometheus metrics and the latest check results over
// HTTP.
type Server struct {
	echo *echo.Echo
	addr string
	log  *slog.Logger

	mu     sync.RWMutex
	latest []Result
}

// NewServer creates a Server listening on addr once started.
func NewServer(addr string, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, addr: addr, log: log}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/status", s.status)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s
}

// Record stores results as the latest round. It is meant to be passed to
// NewScheduler.
func (s *Server) Record(results []Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = results
}

// status answers 503 until the first round completes.
func (s *Server) status(c echo.Context) error {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()

	if latest == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "pending"})
	}
	return c.JSON(http.StatusOK, latest)
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("starting metrics server", "addr", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down metrics server: %w", err)
	}
	return nil
}
