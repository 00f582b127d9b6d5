// Package cache provides the Redis-backed stores: the rate limiter
// storage and the suggestion job store.
package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to cfg.URL and pings the server. The URL may
// omit the redis:// scheme.
func NewRedisClient(ctx context.Context, cfg *config.Redis) (*redis.Client, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("redis url is not set")
	}
	url := cfg.URL
	if !strings.Contains(url, "://") {
		url = "redis://" + url
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opt.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opt.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, opt.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
