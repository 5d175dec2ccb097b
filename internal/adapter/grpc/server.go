package grpc

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// PublicMethods need no session
var PublicMethods = []string{
	healthpb.Health_Check_FullMethodName,
}

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the operational gRPC endpoint: health checking and reflection
type Server struct {
	GRPC   *grpc.Server
	Health *health.Server
	logger *zap.Logger
}

// NewServer creates the gRPC server with the auth and logging interceptors
func NewServer(validator SessionValidator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("grpc")

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			LoggingInterceptor(logger),
			AuthInterceptor(validator, PublicMethods...),
		),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return &Server{GRPC: srv, Health: hs, logger: logger}
}

// Serve blocks serving lis until the server stops
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
	return s.GRPC.Serve(lis)
}

// WatchReadiness pings db every interval and mirrors the result into the
// health status until ctx is done
func (s *Server) WatchReadiness(ctx context.Context, db Pinger, interval time.Duration) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		if err := db.Ping(pingCtx); err != nil {
			s.logger.Warn("readiness check failed", zap.Error(err))
			s.Health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
			return
		}
		s.Health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// Stop marks the server as not serving and drains in-flight calls
func (s *Server) Stop() {
	s.Health.Shutdown()
	s.GRPC.GracefulStop()
	s.logger.Info("gRPC server stopped")
}
