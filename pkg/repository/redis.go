package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/punkfits/pkg/config"
	"github.com/example/punkfits/pkg/models"
	"github.com/go-redis/redis/v8"
)

type RedisRepository struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config: cfg,
	}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisRepository) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisRepository) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

// GetProduct returns redis.Nil on a cache miss.
func (r *RedisRepository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.GetJSON(ctx, productKey(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *RedisRepository) SetProduct(ctx context.Context, product *models.Product) error {
	return r.SetJSON(ctx, productKey(product.ID), product, r.config.TTL)
}

func (r *RedisRepository) DeleteProduct(ctx context.Context, id string) error {
	return r.Del(ctx, productKey(id))
}
