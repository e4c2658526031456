package borrowrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"github.com/GlebRadaev/bookcounter/internal/docstore/memstore"
	"github.com/GlebRadaev/bookcounter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repository, *docstore.MockStore) {
	ctrl := gomock.NewController(t)
	store := docstore.NewMockStore(ctrl)
	return New(store), store
}

func newBorrow(bookID, membershipID string) *domain.Borrow {
	borrowed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Borrow{
		BookID:       bookID,
		MembershipID: membershipID,
		BorrowDate:   borrowed,
		DueDate:      borrowed.Add(domain.LoanPeriod),
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := New(memstore.New())
	ctx := context.Background()

	borrow := newBorrow("book-1", "m1")
	require.NoError(t, repo.Create(ctx, borrow))
	assert.NotEmpty(t, borrow.ID)

	got, err := repo.Get(ctx, borrow.ID)
	require.NoError(t, err)
	assert.Equal(t, borrow, got)

	missing, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_FindActive(t *testing.T) {
	repo := New(memstore.New())
	ctx := context.Background()

	active := newBorrow("book-1", "m1")
	require.NoError(t, repo.Create(ctx, active))
	returned := newBorrow("book-2", "m1")
	require.NoError(t, repo.Create(ctx, returned))
	require.NoError(t, repo.MarkReturned(ctx, returned.ID, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.Create(ctx, newBorrow("book-3", "m2")))

	tests := []struct {
		name         string
		membershipID string
		bookIDs      []string
		expectedID   string
	}{
		{name: "active borrow of a listed copy", membershipID: "m1", bookIDs: []string{"book-9", "book-1"}, expectedID: active.ID},
		{name: "returned borrow is not active", membershipID: "m1", bookIDs: []string{"book-2"}},
		{name: "other membership", membershipID: "m1", bookIDs: []string{"book-3"}},
		{name: "no copies", membershipID: "m1", bookIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindActive(ctx, tt.membershipID, tt.bookIDs)
			require.NoError(t, err)
			if tt.expectedID == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.expectedID, got.ID)
		})
	}
}

func TestRepository_MarkReturned(t *testing.T) {
	repo := New(memstore.New())
	ctx := context.Background()

	err := repo.MarkReturned(ctx, "nope", time.Now())
	assert.ErrorIs(t, err, ErrBorrowNotFound)

	borrow := newBorrow("book-1", "m1")
	require.NoError(t, repo.Create(ctx, borrow))
	returnedOn := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkReturned(ctx, borrow.ID, returnedOn))

	got, err := repo.Get(ctx, borrow.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReturnDate)
	assert.Equal(t, returnedOn, *got.ReturnDate)

	err = repo.MarkReturned(ctx, borrow.ID, returnedOn.AddDate(0, 0, 3))
	assert.ErrorIs(t, err, ErrAlreadyReturned)

	got, err = repo.Get(ctx, borrow.ID)
	require.NoError(t, err)
	assert.Equal(t, returnedOn, *got.ReturnDate, "the first return date is kept")
}

func TestRepository_ListByMembershipAndDelete(t *testing.T) {
	repo := New(memstore.New())
	ctx := context.Background()

	first := newBorrow("book-1", "m1")
	second := newBorrow("book-2", "m1")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, newBorrow("book-3", "m2")))

	borrows, err := repo.ListByMembership(ctx, "m1")
	require.NoError(t, err)
	assert.Len(t, borrows, 2)

	require.NoError(t, repo.Delete(ctx, first.ID))
	borrows, err = repo.ListByMembership(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, borrows, 1)
	assert.Equal(t, second.ID, borrows[0].ID)
}

func TestRepository_StoreErrors(t *testing.T) {
	repo, store := NewMock(t)
	ctx := context.Background()
	storeErr := errors.New("store unavailable")

	tests := []struct {
		name      string
		mockSetup func()
		call      func() error
	}{
		{
			name: "create",
			mockSetup: func() {
				store.EXPECT().Set(gomock.Any(), domain.BorrowsCollection, gomock.Any(), gomock.Any()).Return(storeErr)
			},
			call: func() error { return repo.Create(ctx, newBorrow("book-1", "m1")) },
		},
		{
			name: "get",
			mockSetup: func() {
				store.EXPECT().Get(gomock.Any(), domain.BorrowsCollection, "b1").Return(nil, storeErr)
			},
			call: func() error {
				_, err := repo.Get(ctx, "b1")
				return err
			},
		},
		{
			name: "mark returned update",
			mockSetup: func() {
				store.EXPECT().Get(gomock.Any(), domain.BorrowsCollection, "b1").Return(docstore.Document{
					"id": "b1", "bookId": "book-1", "membershipId": "m1",
					"borrowDate": "2024-01-01", "dueDate": "2024-01-31", "returnDate": nil,
				}, nil)
				store.EXPECT().Update(gomock.Any(), domain.BorrowsCollection, "b1", gomock.Any()).Return(storeErr)
			},
			call: func() error { return repo.MarkReturned(ctx, "b1", time.Now()) },
		},
		{
			name: "find active",
			mockSetup: func() {
				store.EXPECT().Query(gomock.Any(), domain.BorrowsCollection, docstore.Filter{
					"membershipId": "m1", "returnDate": nil,
				}).Return(nil, storeErr)
			},
			call: func() error {
				_, err := repo.FindActive(ctx, "m1", []string{"book-1"})
				return err
			},
		},
		{
			name: "delete",
			mockSetup: func() {
				store.EXPECT().Delete(gomock.Any(), domain.BorrowsCollection, "b1").Return(storeErr)
			},
			call: func() error { return repo.Delete(ctx, "b1") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			assert.ErrorIs(t, tt.call(), storeErr)
		})
	}
}

func TestRepository_MarkReturnedRacesDelete(t *testing.T) {
	repo, store := NewMock(t)

	store.EXPECT().Get(gomock.Any(), domain.BorrowsCollection, "b1").Return(docstore.Document{
		"id": "b1", "borrowDate": "2024-01-01", "dueDate": "2024-01-31",
	}, nil)
	store.EXPECT().Update(gomock.Any(), domain.BorrowsCollection, "b1", gomock.Any()).Return(docstore.ErrNotFound)

	err := repo.MarkReturned(context.Background(), "b1", time.Now())
	assert.ErrorIs(t, err, ErrBorrowNotFound)
}
