package lock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type localEntry struct {
	sem  chan struct{}
	refs int
}

// Local блокировки в памяти процесса, по одной на провайдера.
// Подходит для одного экземпляра сервиса и для тестов.
type Local struct {
	mu          sync.Mutex
	entries     map[int64]*localEntry
	waitTimeout time.Duration
}

// NewLocal создает локальный locker. waitTimeout <= 0 - ждать до отмены контекста.
func NewLocal(waitTimeout time.Duration) *Local {
	return &Local{
		entries:     make(map[int64]*localEntry),
		waitTimeout: waitTimeout,
	}
}

func (l *Local) WithProviderLock(ctx context.Context, providerID int64, fn func(ctx context.Context) error) error {
	entry := l.acquireEntry(providerID)
	defer l.releaseEntry(providerID)

	waitCtx := ctx
	if l.waitTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.waitTimeout)
		defer cancel()
	}

	select {
	case entry.sem <- struct{}{}:
	case <-waitCtx.Done():
		return fmt.Errorf("%w: provider %d: %v", ErrLockNotAcquired, providerID, waitCtx.Err())
	}
	defer func() { <-entry.sem }()

	return fn(ctx)
}

func (l *Local) acquireEntry(providerID int64) *localEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[providerID]
	if !ok {
		entry = &localEntry{sem: make(chan struct{}, 1)}
		l.entries[providerID] = entry
	}
	entry.refs++
	return entry
}

func (l *Local) releaseEntry(providerID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.entries[providerID]
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, providerID)
	}
}
