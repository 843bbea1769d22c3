// Package redis implements the cache and lock ports on top of go-redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"resto-ads/internal/core/port"
)

const keyPrefix = "resto-ads"

// Cache stores JSON values under generation-stamped keys. Invalidate bumps
// the generation of an entity so every older key becomes unreachable and
// expires by TTL.
type Cache struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

var _ port.Cache = (*Cache)(nil)

func NewCache(client goredis.UniversalClient, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func genKey(entity port.Entity) string {
	return fmt.Sprintf("%s:gen:%s", keyPrefix, entity)
}

func (c *Cache) dataKey(ctx context.Context, entity port.Entity, key string) (string, error) {
	gen, err := c.client.Get(ctx, genKey(entity)).Int64()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return "", fmt.Errorf("read cache generation: %w", err)
	}
	return fmt.Sprintf("%s:%s:%d:%s", keyPrefix, entity, gen, key), nil
}

func (c *Cache) Get(ctx context.Context, entity port.Entity, key string, dst any) (bool, error) {
	k, err := c.dataKey(ctx, entity, key)
	if err != nil {
		return false, err
	}
	data, err := c.client.Get(ctx, k).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", k, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", k, err)
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, entity port.Entity, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	k, err := c.dataKey(ctx, entity, key)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, k, data, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, entity port.Entity) error {
	return c.client.Incr(ctx, genKey(entity)).Err()
}
