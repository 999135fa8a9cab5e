package health

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/config"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const _pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes grpc.health.v1 for the service name and keeps it in sync
// with the database ping.
type Server struct {
	service  string
	addr     string
	interval time.Duration
	pinger   Pinger
	log      logger.Logger

	grpc   *grpc.Server
	health *health.Server
}

func NewServer(service string, cfg *config.GRPC, pinger Pinger, log logger.Logger) *Server {
	gs := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(gs, hs)
	reflection.Register(gs)

	hs.SetServingStatus(service, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &Server{
		service:  service,
		addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		interval: cfg.PingInterval,
		pinger:   pinger,
		log:      log.With("server", "grpc"),
		grpc:     gs,
		health:   hs,
	}
}

// Run serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	const op = "health.Server.Run"

	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%s: listen %s: %w", op, s.addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("starting gRPC health server", "addr", s.addr)
		errCh <- s.grpc.Serve(lis)
	}()

	s.Check(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			s.grpc.GracefulStop()
			s.log.Infow("gRPC health server stopped")
			return nil
		case err := <-errCh:
			return fmt.Errorf("%s: serve: %w", op, err)
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Check pings the database once and publishes the result.
func (s *Server) Check(ctx context.Context) grpc_health_v1.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, _pingTimeout)
	defer cancel()

	status := grpc_health_v1.HealthCheckResponse_SERVING
	if err := s.pinger.Ping(ctx); err != nil {
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		s.log.Warnw("database ping failed", "error", err)
	}
	s.health.SetServingStatus(s.service, status)
	s.health.SetServingStatus("", status)
	return status
}
