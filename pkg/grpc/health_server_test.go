package grpc

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/punkfits/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func startHealthServer(t *testing.T, check Checker) (*HealthServer, healthpb.HealthClient) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	hs := NewHealthServer(&config.GRPCConfig{HealthInterval: time.Hour}, "punkfits-api", check, zap.NewNop())
	go func() { _ = hs.Serve(lis) }()
	t.Cleanup(hs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return hs, healthpb.NewHealthClient(conn)
}

func status(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthFollowsChecker(t *testing.T) {
	var down atomic.Bool
	hs, client := startHealthServer(t, func(context.Context) error {
		if down.Load() {
			return errors.New("database unreachable")
		}
		return nil
	})

	require.Eventually(t, func() bool {
		return status(t, client, "punkfits-api") == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, ""))

	down.Store(true)
	hs.Probe(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client, "punkfits-api"))

	down.Store(false)
	hs.Probe(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, ""))
}
