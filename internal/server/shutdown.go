package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nfrund/authforms/internal/submit"
)

const (
	shutdownTimeout = 10 * time.Second
	formIdleTimeout = 30 * time.Minute
	sweepInterval   = time.Minute
)

// ShutdownContext returns a context cancelled on an interrupt or terminate signal.
func ShutdownContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := submit.LogSubmissions(ctx, s.bus, slog.Default()); err != nil {
		return err
	}
	go s.sweepForms(ctx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", s.Cfg.GetAddr())
		if err := s.E.Start(s.Cfg.GetAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.E.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return s.bus.Close()
}

// sweepForms drops form sessions whose tab went away without navigating.
func (s *Server) sweepForms(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.forms.Sweep(formIdleTimeout); n > 0 {
				slog.Debug("Expired idle forms", "count", n)
			}
		}
	}
}
