package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nfrund/fieldnotes/internal/app"
)

const shutdownTimeout = 10 * time.Second

// Start runs the HTTP server until an interrupt or terminate signal arrives,
// then shuts down gracefully.
func (s *Server) Start() error {
	addr := s.deps.Config.GetServerAddr()
	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("Starting server", "addr", addr)
		if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case <-quit:
	case serveErr = <-errCh:
		s.deps.Logger.Error("Server stopped unexpectedly", "error", serveErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		return err
	}
	return serveErr
}

// Shutdown stops accepting requests, stops module background work and
// releases the bus and the remaining resources.
func (s *Server) Shutdown(ctx context.Context) error {
	s.deps.Logger.Info("Shutting down server")
	var errs []error

	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.cancelModules != nil {
		s.cancelModules()
	}
	if err := app.ShutdownModules(ctx, s.deps.Modules); err != nil {
		errs = append(errs, err)
	}
	if s.deps.Bus != nil {
		if err := s.deps.Bus.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, r := range s.deps.Resources {
		if err := r.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
