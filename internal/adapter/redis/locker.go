package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"resto-ads/internal/core/port"
)

// lockRetry is the polling interval of a blocking Lock.
const lockRetry = 50 * time.Millisecond

// release deletes the key only when it still holds our token.
var release = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a port.Locker backed by SET NX PX. A lock held by a crashed
// process expires after ttl.
type Locker struct {
	client goredis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

var _ port.Locker = (*Locker)(nil)

func NewLocker(client goredis.UniversalClient, ttl time.Duration, logger *slog.Logger) *Locker {
	return &Locker{client: client, ttl: ttl, logger: logger}
}

func lockKey(key string) string {
	return keyPrefix + ":lock:" + key
}

func (l *Locker) TryLock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, lockKey(key), token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, port.ErrLocked
	}
	return l.unlocker(key, token), nil
}

func (l *Locker) Lock(ctx context.Context, key string, wait time.Duration) (func(), error) {
	deadline := time.Now().Add(wait)
	ticker := time.NewTicker(lockRetry)
	defer ticker.Stop()
	for {
		unlock, err := l.TryLock(ctx, key)
		if !errors.Is(err, port.ErrLocked) {
			return unlock, err
		}
		if time.Now().After(deadline) {
			return nil, port.ErrLocked
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *Locker) unlocker(key, token string) func() {
	return func() {
		// the caller's context may already be cancelled
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := release.Run(ctx, l.client, []string{lockKey(key)}, token).Err(); err != nil {
			l.logger.Warn("release lock", slog.String("key", key), slog.Any("error", err))
		}
	}
}
