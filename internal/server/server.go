// Package server owns the HTTP listener lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config holds HTTP server configuration.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default HTTP server configuration.
// WriteTimeout leaves room for a full inference round trip.
func DefaultConfig() Config {
	return Config{
		Addr:            "0.0.0.0:8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    60 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Server wraps the HTTP server and the resources released on shutdown.
type Server struct {
	config Config
	closer io.Closer
	http   *http.Server
}

// NewServer creates a server for handler. closer (typically the database
// connector) is closed after the HTTP server drains; it may be nil.
func NewServer(handler http.Handler, closer io.Closer, config Config) *Server {
	httpServer := &http.Server{
		Addr:         config.Addr,
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config: config,
		closer: closer,
		http:   httpServer,
	}
}

// Run serves until ctx is cancelled or the listener fails, then shuts down
// gracefully. A cancelled context is a clean exit and returns nil.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting http server", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown(context.Background())
	})

	return g.Wait()
}

// Shutdown drains in-flight requests within ShutdownTimeout and closes the
// attached resources. The closer runs even when the drain times out.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down http server")

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var errs []error
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}
	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close error: %w", err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	slog.Info("server shutdown complete")
	return nil
}
