package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/punkfits/gateway"
	"github.com/example/punkfits/pkg/config"
	"github.com/example/punkfits/pkg/database"
	"github.com/example/punkfits/pkg/discovery"
	"github.com/example/punkfits/pkg/events"
	"github.com/example/punkfits/pkg/grpc"
	"github.com/example/punkfits/pkg/logging"
	"github.com/example/punkfits/pkg/repository"
	"github.com/example/punkfits/pkg/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	configPath := flag.String("config", os.Getenv("PUNKFITS_CONFIG"), "path to config file")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := logging.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting PunkFits API",
		zap.String("name", cfg.Server.Name),
		zap.String("address", cfg.Gateway.Addr()),
		zap.String("db_driver", cfg.Database.Driver))

	db, err := database.Open(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer database.Close(db)

	// Product cache
	var cache service.ProductCache
	if cfg.Redis.Enabled {
		redisRepo := repository.NewRedisRepository(&cfg.Redis)
		defer redisRepo.Close()
		if err := redisRepo.Ping(context.Background()); err != nil {
			logger.Warn("Redis connection failed, product reads go to the database", zap.Error(err))
		} else {
			logger.Info("Redis connected successfully")
			cache = redisRepo
		}
	}

	// Audit trail
	var sink events.Sink
	var auditReader gateway.AuditReader
	if cfg.MongoDB.Enabled {
		mongoCtx, mongoCancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoRepo, err := repository.NewMongoRepository(mongoCtx, &cfg.MongoDB)
		mongoCancel()
		if err != nil {
			logger.Warn("MongoDB connection failed, audit events are only logged", zap.Error(err))
		} else {
			defer mongoRepo.Close(context.Background())
			sink = mongoRepo
			auditReader = mongoRepo
		}
	}
	auditor, err := events.NewAuditor(cfg.Server.Name, sink, logger)
	if err != nil {
		logger.Fatal("Failed to start audit actor", zap.Error(err))
	}
	defer auditor.Stop(cfg.Gateway.ShutdownTimeout)

	services := newServices(db, cfg, cache, auditor, logger)
	services.Audit = auditReader
	services.Ready = func(ctx context.Context) error { return database.Ping(ctx, db) }

	gw := gateway.NewGateway(cfg, logger, services)

	// Start gateway in goroutine
	errCh := make(chan error, 2)
	go func() {
		if err := gw.Start(); err != nil {
			errCh <- fmt.Errorf("gateway: %w", err)
		}
	}()

	var healthServer *grpc.HealthServer
	if cfg.GRPC.Enabled {
		healthServer = grpc.NewHealthServer(&cfg.GRPC, cfg.Server.Name, services.Ready, logger)
		go func() {
			if err := healthServer.Start(); err != nil {
				errCh <- fmt.Errorf("grpc: %w", err)
			}
		}()
	}

	// Register in etcd when configured
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var sd *discovery.ServiceDiscovery
	instance := &discovery.ServiceInstance{
		Name: cfg.Server.Name,
		Host: cfg.Gateway.Host,
		Port: cfg.Gateway.Port,
	}
	if len(cfg.Etcd.Endpoints) > 0 {
		sd, err = discovery.NewServiceDiscovery(&cfg.Etcd, logger)
		if err != nil {
			logger.Warn("Failed to connect to etcd, continuing without service discovery", zap.Error(err))
		} else if err := sd.Register(ctx, instance); err != nil {
			logger.Warn("Failed to register service", zap.Error(err))
		} else {
			logger.Info("Service registered in etcd", zap.String("key", discovery.Key(cfg.Etcd.Prefix, instance)))
		}
	}

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-errCh:
		logger.Error("Server error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Gateway.ShutdownTimeout)
	defer shutdownCancel()

	if sd != nil {
		if err := sd.Deregister(shutdownCtx, instance); err != nil {
			logger.Warn("Failed to deregister service", zap.Error(err))
		}
		sd.Close()
	}
	if healthServer != nil {
		healthServer.Stop()
	}
	if err := gw.Shutdown(shutdownCtx); err != nil {
		logger.Error("Gateway shutdown failed", zap.Error(err))
	}

	logger.Info("Gateway stopped")
}

func newServices(db *gorm.DB, cfg *config.Config, cache service.ProductCache, pub events.Publisher, logger *zap.Logger) gateway.Services {
	return gateway.Services{
		Auth:     service.NewAuthService(db, cfg.Auth, pub, logger.Named("auth")),
		Users:    service.NewUserService(db, cfg.Auth.BcryptCost, pub, logger.Named("users")),
		Products: service.NewProductService(db, cache, pub, logger.Named("products")),
		Carts:    service.NewCartService(db, pub, logger.Named("carts")),
		Checkout: service.NewCheckoutService(db, service.SimulatedPayments{}, pub, logger.Named("checkout")),
		Orders:   service.NewOrderService(db, pub, logger.Named("orders")),
	}
}
