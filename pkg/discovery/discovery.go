package discovery

import (
	"context"
	"fmt"

	"github.com/example/punkfits/pkg/config"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"
)

type ServiceDiscovery struct {
	client *clientv3.Client
	config *config.EtcdConfig
	logger *zap.Logger
	lease  clientv3.LeaseID
}

type ServiceInstance struct {
	Name string
	Host string
	Port int
}

func (i *ServiceInstance) Addr() string {
	return fmt.Sprintf("%s:%d", i.Host, i.Port)
}

// Key is the etcd key an instance is registered under.
func Key(prefix string, instance *ServiceInstance) string {
	return fmt.Sprintf("%s%s/%s", prefix, instance.Name, instance.Addr())
}

func NewServiceDiscovery(cfg *config.EtcdConfig, logger *zap.Logger) (*ServiceDiscovery, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("no etcd endpoints configured")
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}

	return &ServiceDiscovery{
		client: cli,
		config: cfg,
		logger: logger,
	}, nil
}

// Register puts the instance under a lease and keeps the lease alive until
// ctx is cancelled or Deregister is called.
func (sd *ServiceDiscovery) Register(ctx context.Context, instance *ServiceInstance) error {
	key := Key(sd.config.Prefix, instance)

	lease, err := sd.client.Grant(ctx, sd.config.LeaseTTL)
	if err != nil {
		return fmt.Errorf("failed to create lease: %w", err)
	}

	_, err = sd.client.Put(ctx, key, instance.Addr(), clientv3.WithLease(lease.ID))
	if err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}
	sd.lease = lease.ID

	// Keep alive
	ch, kaerr := sd.client.KeepAlive(ctx, lease.ID)
	if kaerr != nil {
		return fmt.Errorf("failed to keep alive: %w", kaerr)
	}

	go func() {
		for range ch {
		}
		sd.logger.Warn("etcd lease keep-alive stopped", zap.String("key", key))
	}()

	return nil
}

func (sd *ServiceDiscovery) Deregister(ctx context.Context, instance *ServiceInstance) error {
	if _, err := sd.client.Delete(ctx, Key(sd.config.Prefix, instance)); err != nil {
		return fmt.Errorf("failed to deregister service: %w", err)
	}
	if sd.lease != 0 {
		if _, err := sd.client.Revoke(ctx, sd.lease); err != nil {
			return fmt.Errorf("failed to revoke lease: %w", err)
		}
	}
	return nil
}

func (sd *ServiceDiscovery) Close() error {
	return sd.client.Close()
}
