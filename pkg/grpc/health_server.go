package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/example/punkfits/pkg/config"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

// HealthServer exposes grpc.health.v1 for the API process. The overall
// status ("") and the named service follow the result of the checker.
type HealthServer struct {
	config  *config.GRPCConfig
	service string
	check   Checker
	logger  *zap.Logger

	server *grpc.Server
	health *health.Server
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHealthServer(cfg *config.GRPCConfig, service string, check Checker, logger *zap.Logger) *HealthServer {
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(service, healthpb.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithCancel(context.Background())
	return &HealthServer{
		config:  cfg,
		service: service,
		check:   check,
		logger:  logger,
		server:  srv,
		health:  hs,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (s *HealthServer) Start() error {
	lis, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(lis)
}

// Serve probes once, starts the periodic probe and blocks serving lis.
func (s *HealthServer) Serve(lis net.Listener) error {
	s.Probe(s.ctx)
	go s.watch(s.ctx)

	s.logger.Info("gRPC health server started", zap.String("address", lis.Addr().String()))
	return s.server.Serve(lis)
}

func (s *HealthServer) watch(ctx context.Context) {
	interval := s.config.HealthInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}

// Probe runs the checker once and publishes the resulting status.
func (s *HealthServer) Probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.check(pctx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn("Health probe failed", zap.Error(err))
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(s.service, status)
}

func (s *HealthServer) Stop() {
	s.cancel()
	s.health.Shutdown()
	s.server.GracefulStop()
}
