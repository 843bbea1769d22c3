package memory

import (
	"context"
	"sync"
	"time"

	"resto-ads/internal/core/port"
)

// Locker is a process-local port.Locker built on one buffered channel per
// key. A key is dropped once nobody holds or waits for it.
type Locker struct {
	mu   sync.Mutex
	keys map[string]*lockEntry
}

type lockEntry struct {
	ch   chan struct{}
	refs int
}

var _ port.Locker = (*Locker)(nil)

func NewLocker() *Locker {
	return &Locker{keys: make(map[string]*lockEntry)}
}

// acquire registers the caller as holder or waiter of key.
func (l *Locker) acquire(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.keys[key]
	if !ok {
		e = &lockEntry{ch: make(chan struct{}, 1)}
		l.keys[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) leave(key string, e *lockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.keys, key)
	}
}

func (l *Locker) Lock(ctx context.Context, key string, wait time.Duration) (func(), error) {
	e := l.acquire(key)
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case e.ch <- struct{}{}:
		return l.release(key, e), nil
	case <-timer.C:
		l.leave(key, e)
		return nil, port.ErrLocked
	case <-ctx.Done():
		l.leave(key, e)
		return nil, ctx.Err()
	}
}

func (l *Locker) TryLock(_ context.Context, key string) (func(), error) {
	e := l.acquire(key)
	select {
	case e.ch <- struct{}{}:
		return l.release(key, e), nil
	default:
		l.leave(key, e)
		return nil, port.ErrLocked
	}
}

func (l *Locker) release(key string, e *lockEntry) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.leave(key, e)
		})
	}
}
