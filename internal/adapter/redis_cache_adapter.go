package adapter

import (
	"context"
	"errors"
	"time"

	"design-dojo/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCacheAdapter implements domain.Cache on a go-redis client.
type RedisCacheAdapter struct {
	client redis.Cmdable
}

// NewRedisCacheAdapter expects a connected client.
func NewRedisCacheAdapter(client redis.Cmdable) domain.Cache {
	return &RedisCacheAdapter{client: client}
}

// Get translates redis.Nil to domain.ErrCacheMiss.
func (r *RedisCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisCacheAdapter) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisCacheAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
