package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/example/punkfits/pkg/config"
	"github.com/example/punkfits/pkg/database"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

const JWTSecret = "test-secret"

func Logger(tb testing.TB) *zap.Logger {
	tb.Helper()
	return zaptest.NewLogger(tb, zaptest.Level(zap.WarnLevel))
}

// DB opens a migrated sqlite database in the test's temp dir. Each call gets
// its own file so tests never share rows.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	cfg := &config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            filepath.Join(tb.TempDir(), "punkfits.db"),
		MaxIdleConns:    4,
		MaxOpenConns:    4,
		ConnMaxLifetime: time.Minute,
		AutoMigrate:     true,
		LogLevel:        "silent",
	}
	db, err := database.Open(cfg, zap.NewNop())
	if err != nil {
		tb.Fatalf("failed to init test db: %v", err)
	}
	tb.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

func AuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:  JWTSecret,
		TokenTTL:   time.Hour,
		Enforce:    true,
		BcryptCost: 4,
	}
}
