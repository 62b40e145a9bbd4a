package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SerializesSameProvider(t *testing.T) {
	locker := NewLocal(0)

	var active, maxActive int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locker.WithProviderLock(context.Background(), 1, func(ctx context.Context) error {
				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Empty(t, locker.entries)
}

func TestLocal_DifferentProvidersDoNotBlock(t *testing.T) {
	locker := NewLocal(time.Second)

	inside := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = locker.WithProviderLock(context.Background(), 1, func(ctx context.Context) error {
			close(inside)
			<-release
			return nil
		})
	}()
	<-inside

	err := locker.WithProviderLock(context.Background(), 2, func(ctx context.Context) error { return nil })
	require.NoError(t, err)

	close(release)
}

func TestLocal_WaitTimeout(t *testing.T) {
	locker := NewLocal(20 * time.Millisecond)

	inside := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = locker.WithProviderLock(context.Background(), 1, func(ctx context.Context) error {
			close(inside)
			<-release
			return nil
		})
	}()
	<-inside

	err := locker.WithProviderLock(context.Background(), 1, func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrLockNotAcquired)

	close(release)
	<-done
}

func TestLocal_PropagatesError(t *testing.T) {
	locker := NewLocal(0)
	boom := errors.New("boom")

	err := locker.WithProviderLock(context.Background(), 1, func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	err = locker.WithProviderLock(context.Background(), 1, func(ctx context.Context) error { return nil })
	assert.NoError(t, err)
}
