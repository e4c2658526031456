package counterrepo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"github.com/GlebRadaev/bookcounter/internal/docstore/memstore"
	"github.com/GlebRadaev/bookcounter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRepository_Reset(t *testing.T) {
	store := memstore.New()
	repo := New(store)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.CountersCollection, "7", docstore.Document{"counterId": 7, "isPaused": true}))
	require.NoError(t, repo.Reset(ctx, 2))

	docs, err := store.Query(ctx, domain.CountersCollection, nil)
	require.NoError(t, err)
	assert.Equal(t, []docstore.Document{
		{"id": "1", "counterId": 1, "isPaused": false},
		{"id": "2", "counterId": 2, "isPaused": false},
	}, docs)
}

func TestRepository_SetPaused(t *testing.T) {
	repo := New(memstore.New())
	ctx := context.Background()

	require.NoError(t, repo.Reset(ctx, 1))
	require.NoError(t, repo.SetPaused(ctx, 1, true))

	counter, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &domain.Counter{ID: 1, IsPaused: true}, counter)

	assert.ErrorIs(t, repo.SetPaused(ctx, 5, true), ErrCounterNotFound)

	missing, err := repo.Get(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_Watch(t *testing.T) {
	store := memstore.New()
	repo := New(store)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		changes []domain.Counter
	)
	require.NoError(t, repo.Watch(ctx, func(c *domain.Counter) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, *c)
	}))

	require.NoError(t, repo.Reset(ctx, 1))
	require.NoError(t, store.Set(ctx, domain.CountersCollection, "x", docstore.Document{"isPaused": false}))
	require.NoError(t, repo.SetPaused(ctx, 1, true))
	require.NoError(t, store.Set(ctx, domain.CountersCollection, "1", docstore.Document{"counterId": 1}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changes) == 3
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.Counter{
		{ID: 1, IsPaused: false},
		{ID: 1, IsPaused: true},
		{ID: 1, IsPaused: true},
	}, changes)
}

func TestRepository_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := docstore.NewMockStore(ctrl)
	repo := New(store)
	ctx := context.Background()
	storeErr := errors.New("store unavailable")

	store.EXPECT().Query(gomock.Any(), domain.CountersCollection, gomock.Nil()).Return(nil, storeErr)
	assert.ErrorIs(t, repo.Reset(ctx, 2), storeErr)

	store.EXPECT().Query(gomock.Any(), domain.CountersCollection, gomock.Nil()).Return(nil, nil)
	store.EXPECT().Set(gomock.Any(), domain.CountersCollection, "1", gomock.Any()).Return(storeErr)
	assert.ErrorIs(t, repo.Reset(ctx, 2), storeErr)

	store.EXPECT().Update(gomock.Any(), domain.CountersCollection, "1", docstore.Document{"isPaused": true}).Return(storeErr)
	assert.ErrorIs(t, repo.SetPaused(ctx, 1, true), storeErr)

	store.EXPECT().Subscribe(gomock.Any(), domain.CountersCollection, gomock.Any()).Return(storeErr)
	assert.ErrorIs(t, repo.Watch(ctx, func(*domain.Counter) {}), storeErr)
}
