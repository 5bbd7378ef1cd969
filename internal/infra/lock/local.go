package lock

import (
	"context"
	"sync"
)

type localEntry struct {
	sem  chan struct{}
	refs int
}

// LocalLocker блокировки по ключу внутри одного процесса
// Используется, когда redis отключен
type LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*localEntry
}

// NewLocalLocker создает локальный локер
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{entries: make(map[string]*localEntry)}
}

// WithLock выполняет fn, удерживая блокировку key
func (l *LocalLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	entry := l.acquireEntry(key)

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseEntry(key, entry)
		return ErrLockTimeout
	}

	defer func() {
		<-entry.sem
		l.releaseEntry(key, entry)
	}()

	return fn(ctx)
}

func (l *LocalLocker) acquireEntry(key string) *localEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		entry = &localEntry{sem: make(chan struct{}, 1)}
		l.entries[key] = entry
	}
	entry.refs++
	return entry
}

func (l *LocalLocker) releaseEntry(key string, entry *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, key)
	}
}
