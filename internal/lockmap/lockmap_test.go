package lockmap

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

func TestRegistry_LockForReturnsSameLock(t *testing.T) {
	r := New()

	const goroutines = 32
	locks := make([]*Lock, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			locks[i] = r.LockFor("book-1")
		}(i)
	}
	wg.Wait()

	for _, l := range locks {
		assert.Same(t, locks[0], l)
	}
	assert.NotSame(t, locks[0], r.LockFor("book-2"))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_WithLockIsMutuallyExclusive(t *testing.T) {
	r := New()
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := r.WithLock(ctx, "book-1", func(context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestRegistry_WithLockReturnsFnError(t *testing.T) {
	r := New()
	errBoom := errors.New("boom")

	err := r.WithLock(context.Background(), "k", func(context.Context) error { return errBoom })
	assert.ErrorIs(t, err, errBoom)

	release, ok := r.LockFor("k").TryAcquire()
	require.True(t, ok)
	release()
}

func TestLock_AcquireHonoursContext(t *testing.T) {
	l := New().LockFor("book-1")

	release, err := l.Acquire(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release()

	_, ok := l.TryAcquire()
	assert.True(t, ok)
	_, ok = l.TryAcquire()
	assert.False(t, ok)
}
