package httpx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/config"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"

	"golang.org/x/sync/errgroup"
)

type Server struct {
	name            string
	server          *http.Server
	shutdownTimeout time.Duration
	log             logger.Logger
}

func NewServer(name string, handler http.Handler, cfg *config.HTTP, log logger.Logger) *Server {
	return &Server{
		name: name,
		server: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             log.With("server", name),
	}
}

// NewMetricsServer serves handler (the Prometheus registry) on its own port.
func NewMetricsServer(handler http.Handler, cfg *config.Metrics, log logger.Logger) *Server {
	return &Server{
		name: "metrics",
		server: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		shutdownTimeout: 5 * time.Second,
		log:             log.With("server", "metrics"),
	}
}

func (s *Server) Addr() string { return s.server.Addr }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	op := "httpx.Server.Run(" + s.name + ")"

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		s.log.Infow("starting HTTP server", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorw("HTTP server failed", "error", err)
			return fmt.Errorf("%s: listen and serve: %w", op, err)
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		return s.Stop(context.WithoutCancel(ctx))
	})

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	s.log.Infow("shutting down HTTP server", "timeout", s.shutdownTimeout.String())
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.log.Errorw("HTTP server forced shutdown", "error", err)
		return fmt.Errorf("httpx.Server.Stop: shutdown: %w", err)
	}
	s.log.Infow("HTTP server stopped gracefully")
	return nil
}
