package cache

import (
	"context"
	"fmt"
	"time"

	"design-dojo/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates and returns a new Redis client instance.
// It pings the server to ensure connectivity.
func NewRedisClient(ctx context.Context, redisCfg config.RedisConfig) (*redis.Client, error) {
	if redisCfg.Address == "" {
		return nil, fmt.Errorf("redis configuration is missing or address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", redisCfg.Address, err)
	}

	return client, nil
}
