// Package lockmap hands out one mutual-exclusion lock per key. Locks are
// created on first use and live as long as the registry.
package lockmap

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

type Lock struct {
	sem *semaphore.Weighted
}

// Acquire blocks until the lock is held or ctx is done. The returned release
// must be called exactly once.
func (l *Lock) Acquire(ctx context.Context) (release func(), err error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	var once sync.Once
	return func() {
		once.Do(func() { l.sem.Release(1) })
	}, nil
}

// TryAcquire takes the lock only if it is free.
func (l *Lock) TryAcquire() (release func(), ok bool) {
	if !l.sem.TryAcquire(1) {
		return nil, false
	}
	var once sync.Once
	return func() {
		once.Do(func() { l.sem.Release(1) })
	}, true
}

type Registry struct {
	locks sync.Map
}

func New() *Registry {
	return &Registry{}
}

// LockFor returns the lock for key. Concurrent first calls for the same key
// observe the same lock.
func (r *Registry) LockFor(key string) *Lock {
	if l, ok := r.locks.Load(key); ok {
		return l.(*Lock)
	}
	l, _ := r.locks.LoadOrStore(key, &Lock{sem: semaphore.NewWeighted(1)})
	return l.(*Lock)
}

// WithLock runs fn while holding the lock for key.
func (r *Registry) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	release, err := r.LockFor(key).Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx)
}

func (r *Registry) Len() int {
	n := 0
	r.locks.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
