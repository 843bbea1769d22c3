package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"resto-ads/internal/core/port"
)

type cacheEntry struct {
	data    []byte
	expires time.Time
}

// Cache is a process-local port.Cache. Values are stored JSON encoded so
// callers never share memory with the cache.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[port.Entity]map[string]cacheEntry
	now     func() time.Time
}

var _ port.Cache = (*Cache)(nil)

func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, entries: make(map[port.Entity]map[string]cacheEntry), now: time.Now}
}

func (c *Cache) Get(_ context.Context, entity port.Entity, key string, dst any) (bool, error) {
	c.mu.Lock()
	e, ok := c.entries[entity][key]
	if ok && !c.now().Before(e.expires) {
		delete(c.entries[entity], key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Set(_ context.Context, entity port.Entity, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[entity] == nil {
		c.entries[entity] = make(map[string]cacheEntry)
	}
	c.entries[entity][key] = cacheEntry{data: data, expires: c.now().Add(c.ttl)}
	return nil
}

func (c *Cache) Invalidate(_ context.Context, entity port.Entity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, entity)
	return nil
}
