package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/example/punkfits/pkg/config"
	"github.com/example/punkfits/pkg/database"
	"github.com/example/punkfits/pkg/logging"
	"go.uber.org/zap"
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

	// Migration runs explicitly below
	cfg.Database.AutoMigrate = false
	db, err := database.Open(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.Ping(ctx, db); err != nil {
		logger.Fatal("Database unreachable", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}
	logger.Info("Schema migrated",
		zap.String("driver", cfg.Database.Driver),
		zap.String("database", cfg.Database.Database))
}
