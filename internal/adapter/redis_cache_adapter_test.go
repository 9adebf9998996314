package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"design-dojo/internal/cache"
	"design-dojo/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := cache.OptimalSolutionKey("3")
	solution := "public class Logger {}"

	t.Run("Hit", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(solution)
		val, err := adapter.Get(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, solution, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.Nil)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection reset")
		mock.ExpectGet(key).SetErr(redisErr)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, redisErr)
		assert.NotErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := cache.OptimalSolutionKey("3")
	ttl := 168 * time.Hour

	t.Run("Success", func(t *testing.T) {
		mock.ExpectSet(key, "code", ttl).SetVal("OK")
		assert.NoError(t, adapter.Set(ctx, key, "code", ttl))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("OOM command not allowed")
		mock.ExpectSet(key, "code", ttl).SetErr(redisErr)
		assert.ErrorIs(t, adapter.Set(ctx, key, "code", ttl), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := cache.OptimalSolutionKey("3")

	mock.ExpectDel(key).SetVal(1)
	assert.NoError(t, adapter.Delete(ctx, key))

	mock.ExpectDel(key).SetVal(0)
	assert.NoError(t, adapter.Delete(ctx, key), "deleting a missing key is not an error")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, adapter.Ping(ctx))

	pingErr := errors.New("dial tcp: connection refused")
	mock.ExpectPing().SetErr(pingErr)
	assert.ErrorIs(t, adapter.Ping(ctx), pingErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}
