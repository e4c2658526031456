package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"github.com/GlebRadaev/bookcounter/internal/docstore/memstore"
	"github.com/GlebRadaev/bookcounter/internal/domain"
	counterrepo "github.com/GlebRadaev/bookcounter/internal/repo/counter-repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newPauseState(t *testing.T, n int) (*PauseState, *memstore.Store, context.Context) {
	store := memstore.New()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	p := NewPauseState(counterrepo.New(store))
	require.NoError(t, p.Init(ctx, n))
	return p, store, ctx
}

func TestPauseState_Init(t *testing.T) {
	p, store, ctx := newPauseState(t, 3)

	assert.Equal(t, []int{1, 2, 3}, p.Counters())
	for _, id := range p.Counters() {
		paused, err := p.IsPaused(id)
		require.NoError(t, err)
		assert.False(t, paused)
	}

	docs, err := store.Query(ctx, domain.CountersCollection, docstore.Filter{"isPaused": false})
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestPauseState_PauseWritesThrough(t *testing.T) {
	p, store, ctx := newPauseState(t, 2)

	require.NoError(t, p.Pause(ctx, 2))

	paused, err := p.IsPaused(2)
	require.NoError(t, err)
	assert.True(t, paused)

	doc, err := store.Get(ctx, domain.CountersCollection, "2")
	require.NoError(t, err)
	assert.Equal(t, true, doc["isPaused"])

	// the change feed replays the pause before the resume, so only the
	// settled state is checked
	require.NoError(t, p.Resume(ctx, 2))
	assert.Eventually(t, func() bool {
		paused, err := p.IsPaused(2)
		return err == nil && !paused
	}, time.Second, 5*time.Millisecond)
}

func TestPauseState_UnknownCounter(t *testing.T) {
	p, _, ctx := newPauseState(t, 2)

	assert.ErrorIs(t, p.Pause(ctx, 3), ErrCounterNotFound)
	assert.ErrorIs(t, p.Resume(ctx, 0), ErrCounterNotFound)
	_, err := p.IsPaused(7)
	assert.ErrorIs(t, err, ErrCounterNotFound)
	assert.ErrorIs(t, p.WaitRunning(ctx, 7), ErrCounterNotFound)
}

func TestPauseState_FollowsStoredChanges(t *testing.T) {
	tests := []struct {
		name   string
		doc    docstore.Document
		paused bool
	}{
		{name: "paused", doc: docstore.Document{"counterId": 1, "isPaused": true}, paused: true},
		{name: "malformed flag pauses", doc: docstore.Document{"counterId": 1, "isPaused": "yes"}, paused: true},
		{name: "missing flag pauses", doc: docstore.Document{"counterId": 1}, paused: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, store, ctx := newPauseState(t, 1)

			require.NoError(t, store.Set(ctx, domain.CountersCollection, "1", tt.doc))
			assert.Eventually(t, func() bool {
				paused, _ := p.IsPaused(1)
				return paused == tt.paused
			}, time.Second, 5*time.Millisecond)

			require.NoError(t, store.Set(ctx, domain.CountersCollection, "1", docstore.Document{"counterId": 1, "isPaused": false}))
			assert.Eventually(t, func() bool {
				paused, _ := p.IsPaused(1)
				return !paused
			}, time.Second, 5*time.Millisecond)
		})
	}
}

func TestPauseState_WaitRunning(t *testing.T) {
	p, store, ctx := newPauseState(t, 1)
	require.NoError(t, p.Pause(ctx, 1))

	done := make(chan error, 1)
	go func() { done <- p.WaitRunning(ctx, 1) }()

	select {
	case <-done:
		t.Fatal("paused counter did not wait")
	case <-time.After(30 * time.Millisecond):
	}

	require.NoError(t, store.Update(ctx, domain.CountersCollection, "1", docstore.Document{"isPaused": false}))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("stored resume did not wake the counter")
	}
}

func TestPauseState_WaitRunningStopsOnCancel(t *testing.T) {
	p, _, ctx := newPauseState(t, 1)
	require.NoError(t, p.Pause(ctx, 1))

	waitCtx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.WaitRunning(waitCtx, 1) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancel did not wake the counter")
	}
}

func TestPauseState_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockCounterRepo(ctrl)
	storeErr := errors.New("store unavailable")
	ctx := context.Background()

	p := NewPauseState(repo)
	repo.EXPECT().Reset(gomock.Any(), 2).Return(storeErr)
	assert.ErrorIs(t, p.Init(ctx, 2), storeErr)

	repo.EXPECT().Reset(gomock.Any(), 2).Return(nil)
	repo.EXPECT().Watch(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, p.Init(ctx, 2))

	repo.EXPECT().SetPaused(gomock.Any(), 1, true).Return(storeErr)
	assert.ErrorIs(t, p.Pause(ctx, 1), storeErr)

	paused, err := p.IsPaused(1)
	require.NoError(t, err)
	assert.False(t, paused, "memory must not change when the store write fails")
}
