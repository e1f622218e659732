package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/punkfits/pkg/config"
	"github.com/example/punkfits/pkg/events"
	"github.com/example/punkfits/pkg/repository"
	"github.com/example/punkfits/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ service.ProductCache = (*repository.RedisRepository)(nil)
	_ events.Sink          = (*repository.MongoRepository)(nil)
)

func TestRedisUnreachableIsAnError(t *testing.T) {
	repo := repository.NewRedisRepository(&config.RedisConfig{Addr: "127.0.0.1:1", PoolSize: 1, TTL: time.Minute})
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.Error(t, repo.Ping(ctx))
	_, err := repo.GetProduct(ctx, "p1")
	assert.Error(t, err)
}
