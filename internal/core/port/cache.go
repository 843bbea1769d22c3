package port

import (
	"context"
	"time"
)

// Entity names the cached collections.
type Entity string

const (
	EntityRestaurants Entity = "restaurants"
	EntityCategories  Entity = "categories"
	EntityAdSets      Entity = "ad_sets"
	EntityPosts       Entity = "posts"
)

// Cache is a read-through cache keyed by entity type. Invalidate drops
// every entry of the entity and must be called synchronously after a write.
type Cache interface {
	Get(ctx context.Context, entity Entity, key string, dst any) (bool, error)
	Set(ctx context.Context, entity Entity, key string, value any) error
	Invalidate(ctx context.Context, entity Entity) error
}

// Locker provides mutual exclusion across processes.
type Locker interface {
	// Lock blocks until the key is acquired or wait elapses, in which case
	// ErrLocked is returned.
	Lock(ctx context.Context, key string, wait time.Duration) (unlock func(), err error)
	// TryLock acquires the key or returns ErrLocked immediately.
	TryLock(ctx context.Context, key string) (unlock func(), err error)
}
