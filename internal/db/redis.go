package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"resto-ads/internal/config/configs"
)

// NewRedis connects to Redis and pings it. The client is closed again when
// the ping fails.
func NewRedis(ctx context.Context, cfg configs.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctxPing, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctxPing).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
