package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

var _ fiber.Storage = (*RedisStorage)(nil)

// RedisStorage implements fiber.Storage on Redis so the limiter state is
// shared between server instances.
type RedisStorage struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
}

// NewRedisStorage creates a storage whose keys live under prefix.
func NewRedisStorage(
	client redis.UniversalClient,
	prefix string,
	logger *slog.Logger,
) *RedisStorage {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStorage{client: client, prefix: prefix, logger: logger}
}

func (r *RedisStorage) key(key string) string {
	return r.prefix + key
}

// Get returns nil, nil when key does not exist.
func (r *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := r.client.Get(context.Background(), r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Redis storage get error", "key", key, "error", err)
		return nil, err
	}
	return val, nil
}

// Set stores val under key. A zero exp keeps the key forever.
func (r *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if err := r.client.Set(context.Background(), r.key(key), val, exp).Err(); err != nil {
		r.logger.Error("Redis storage set error", "key", key, "error", err)
		return err
	}
	return nil
}

func (r *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	if err := r.client.Del(context.Background(), r.key(key)).Err(); err != nil {
		r.logger.Error("Redis storage delete error", "key", key, "error", err)
		return err
	}
	return nil
}

// Reset removes every key under the storage prefix.
func (r *RedisStorage) Reset() error {
	ctx := context.Background()
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Close is a no-op; the client is owned and closed by the caller.
func (r *RedisStorage) Close() error {
	return nil
}
