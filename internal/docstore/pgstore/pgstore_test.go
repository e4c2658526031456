package pgstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"github.com/GlebRadaev/bookcounter/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Store, pgxmock.PgxPoolIface, *MockListener) {
	ctrl := gomock.NewController(t)
	listener := NewMockListener(ctrl)

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB, listener), mockDB, listener
}

func TestStore_Get(t *testing.T) {
	store, mock, _ := NewMock(t)
	selectBody := regexp.QuoteMeta(`SELECT "body" FROM "documents"`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    docstore.Document
	}{
		{
			name: "Document exists",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"body"}).AddRow([]byte(`{"name":"Dune","isAvailable":true}`))
				mock.ExpectQuery(selectBody).WithArgs("books", "b1").WillReturnRows(rows)
			},
			result: docstore.Document{"id": "b1", "name": "Dune", "isAvailable": true},
		},
		{
			name: "Document does not exist",
			mockSetup: func() {
				mock.ExpectQuery(selectBody).WithArgs("books", "b1").WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(selectBody).WithArgs("books", "b1").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
		{
			name: "Corrupt body",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"body"}).AddRow([]byte(`{"name":`))
				mock.ExpectQuery(selectBody).WithArgs("books", "b1").WillReturnRows(rows)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := store.Get(context.Background(), "books", "b1")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_GetValidatesKey(t *testing.T) {
	store, _, _ := NewMock(t)

	_, err := store.Get(context.Background(), "", "b1")
	assert.ErrorIs(t, err, docstore.ErrEmptyCollection)
	_, err = store.Get(context.Background(), "books", "")
	assert.ErrorIs(t, err, docstore.ErrEmptyID)
}

func TestStore_Query(t *testing.T) {
	store, mock, _ := NewMock(t)

	rows := pgxmock.NewRows([]string{"id", "body"}).
		AddRow("r1", []byte(`{"membershipId":"m1","returnDate":null}`)).
		AddRow("r2", []byte(`{"membershipId":"m1"}`))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id", "body" FROM "documents"`)+`.*@>.*ORDER BY "id" ASC`).
		WithArgs("borrows", "returnDate", `{"membershipId":"m1"}`).
		WillReturnRows(rows)

	docs, err := store.Query(context.Background(), "borrows", docstore.Filter{"membershipId": "m1", "returnDate": nil})
	require.NoError(t, err)
	assert.Equal(t, []docstore.Document{
		{"id": "r1", "membershipId": "m1", "returnDate": nil},
		{"id": "r2", "membershipId": "m1"},
	}, docs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_QueryError(t *testing.T) {
	store, mock, _ := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "documents"`)).
		WithArgs("books").
		WillReturnError(errors.New("database error"))

	_, err := store.Query(context.Background(), "books", nil)
	assert.Error(t, err)
}

func TestStore_Set(t *testing.T) {
	store, mock, _ := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "documents"`)+`.*ON CONFLICT`).
		WithArgs(`{"isPaused":false}`, "counters", "1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := store.Set(context.Background(), "counters", "1", docstore.Document{"id": "1", "isPaused": false})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Update(t *testing.T) {
	store, mock, _ := NewMock(t)
	update := regexp.QuoteMeta(`UPDATE "documents"`)

	tests := []struct {
		name          string
		mockSetup     func()
		expectedError error
	}{
		{
			name: "Document updated",
			mockSetup: func() {
				mock.ExpectExec(update).
					WithArgs(`{"isPaused":true}`, "counters", "1").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Document missing",
			mockSetup: func() {
				mock.ExpectExec(update).
					WithArgs(`{"isPaused":true}`, "counters", "1").
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectedError: docstore.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := store.Update(context.Background(), "counters", "1", docstore.Document{"isPaused": true})
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_Delete(t *testing.T) {
	store, mock, _ := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "documents"`)).
		WithArgs("books", "b1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, store.Delete(context.Background(), "books", "b1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func blockUntilDone(ctx context.Context) (*pgconn.Notification, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestStore_Subscribe(t *testing.T) {
	store, mock, listener := NewMock(t)
	ctrl := gomock.NewController(t)
	sub := pg.NewMockSubscription(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener.EXPECT().Listen(gomock.Any(), ChangesChannel).Return(sub, nil)
	gomock.InOrder(
		sub.EXPECT().Next(gomock.Any()).Return(&pgconn.Notification{Payload: `{"collection":"books","id":"b1"}`}, nil),
		sub.EXPECT().Next(gomock.Any()).Return(&pgconn.Notification{Payload: `{"collection":"counters","id":"2"}`}, nil),
		sub.EXPECT().Next(gomock.Any()).DoAndReturn(blockUntilDone),
	)
	closed := make(chan struct{})
	sub.EXPECT().Close().Do(func() { close(closed) })

	rows := pgxmock.NewRows([]string{"body"}).AddRow([]byte(`{"isPaused":true}`))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "body" FROM "documents"`)).WithArgs("counters", "2").WillReturnRows(rows)

	changes := make(chan docstore.Document, 1)
	require.NoError(t, store.Subscribe(ctx, "counters", func(doc docstore.Document) { changes <- doc }))

	select {
	case doc := <-changes:
		assert.Equal(t, docstore.Document{"id": "2", "isPaused": true}, doc)
	case <-time.After(2 * time.Second):
		t.Fatal("change was not delivered")
	}

	cancel()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription was not closed")
	}
}

func TestStore_SubscribeReconnects(t *testing.T) {
	store, _, listener := NewMock(t)
	ctrl := gomock.NewController(t)
	broken := pg.NewMockSubscription(ctrl)
	healthy := pg.NewMockSubscription(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reopened := make(chan struct{})
	gomock.InOrder(
		listener.EXPECT().Listen(gomock.Any(), ChangesChannel).Return(broken, nil),
		listener.EXPECT().Listen(gomock.Any(), ChangesChannel).DoAndReturn(func(context.Context, string) (pg.Subscription, error) {
			close(reopened)
			return healthy, nil
		}),
	)
	broken.EXPECT().Next(gomock.Any()).Return(nil, errors.New("connection reset"))
	broken.EXPECT().Close()
	healthy.EXPECT().Next(gomock.Any()).DoAndReturn(blockUntilDone)
	healthy.EXPECT().Close().AnyTimes()

	require.NoError(t, store.Subscribe(ctx, "counters", func(docstore.Document) {}))

	select {
	case <-reopened:
	case <-time.After(3 * time.Second):
		t.Fatal("subscription was not reopened")
	}
}

func TestStore_SubscribeListenError(t *testing.T) {
	store, _, listener := NewMock(t)
	listenErr := errors.New("too many connections")

	listener.EXPECT().Listen(gomock.Any(), ChangesChannel).Return(nil, listenErr)

	err := store.Subscribe(context.Background(), "counters", func(docstore.Document) {})
	assert.ErrorIs(t, err, listenErr)
	assert.ErrorIs(t, store.Subscribe(context.Background(), "", nil), docstore.ErrEmptyCollection)
}

func TestStore_HandleNotification(t *testing.T) {
	store, mock, _ := NewMock(t)
	called := false
	onChange := func(docstore.Document) { called = true }

	store.handleNotification(context.Background(), "counters", `not json`, onChange)
	assert.False(t, called)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "body" FROM "documents"`)).WithArgs("counters", "7").WillReturnError(pgx.ErrNoRows)
	store.handleNotification(context.Background(), "counters", `{"collection":"counters","id":"7"}`, onChange)
	assert.False(t, called, "a document deleted before the read is skipped")

	rows := pgxmock.NewRows([]string{"body"}).AddRow([]byte(`{"isPaused":false}`))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "body" FROM "documents"`)).WithArgs("counters", "1").WillReturnRows(rows)
	assert.NotPanics(t, func() {
		store.handleNotification(context.Background(), "counters", `{"collection":"counters","id":"1"}`, func(docstore.Document) {
			panic("handler failure")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
