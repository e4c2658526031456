package domain

import (
	"testing"
	"time"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorrowDocument(t *testing.T) {
	borrowed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	borrow := &Borrow{
		ID:           "b1",
		BookID:       "book-1",
		MembershipID: "m1",
		BorrowDate:   borrowed,
		DueDate:      borrowed.Add(LoanPeriod),
	}

	doc := borrow.Document()
	assert.Equal(t, docstore.Document{
		"bookId":       "book-1",
		"membershipId": "m1",
		"borrowDate":   "2024-01-01",
		"dueDate":      "2024-01-31",
		"returnDate":   nil,
	}, doc)

	doc[docstore.IDField] = "b1"
	decoded, err := BorrowFromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, borrow, decoded)
	assert.True(t, decoded.Active())

	returned := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	borrow.ReturnDate = &returned
	doc = borrow.Document()
	assert.Equal(t, "2024-02-03", doc["returnDate"])

	doc[docstore.IDField] = "b1"
	decoded, err = BorrowFromDocument(doc)
	require.NoError(t, err)
	assert.False(t, decoded.Active())
	assert.Equal(t, returned, *decoded.ReturnDate)
}

func TestBorrowFromDocument_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  docstore.Document
	}{
		{name: "missing borrow date", doc: docstore.Document{"dueDate": "2024-01-31"}},
		{name: "bad due date", doc: docstore.Document{"borrowDate": "2024-01-01", "dueDate": "soon"}},
		{name: "bad return date", doc: docstore.Document{"borrowDate": "2024-01-01", "dueDate": "2024-01-31", "returnDate": 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BorrowFromDocument(tt.doc)
			assert.ErrorIs(t, err, ErrMalformedDocument)
		})
	}
}

func TestFeeDocument(t *testing.T) {
	fee := &Fee{ID: "f1", MembershipID: "m1", Amount: decimal.NewFromInt(4), BorrowID: "b1"}

	doc := fee.Document()
	assert.Equal(t, "4", doc["amount"])

	doc[docstore.IDField] = "f1"
	decoded, err := FeeFromDocument(doc)
	require.NoError(t, err)
	assert.True(t, fee.Amount.Equal(decoded.Amount))
	assert.Equal(t, "b1", decoded.BorrowID)
	assert.False(t, decoded.Paid)

	_, err = FeeFromDocument(docstore.Document{"amount": "four"})
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestCounterFromDocument(t *testing.T) {
	tests := []struct {
		name     string
		doc      docstore.Document
		expected *Counter
		wantErr  bool
	}{
		{name: "running", doc: docstore.Document{"id": "1", "counterId": 1, "isPaused": false}, expected: &Counter{ID: 1}},
		{name: "paused", doc: docstore.Document{"id": "2", "counterId": int64(2), "isPaused": true}, expected: &Counter{ID: 2, IsPaused: true}},
		{name: "float counter id", doc: docstore.Document{"id": "3", "counterId": 3.0, "isPaused": false}, expected: &Counter{ID: 3}},
		{name: "missing flag means paused", doc: docstore.Document{"id": "1", "counterId": 1}, expected: &Counter{ID: 1, IsPaused: true}},
		{name: "malformed flag means paused", doc: docstore.Document{"id": "1", "counterId": 1, "isPaused": "no"}, expected: &Counter{ID: 1, IsPaused: true}},
		{name: "id from document id", doc: docstore.Document{"id": "4", "isPaused": false}, expected: &Counter{ID: 4}},
		{name: "no id at all", doc: docstore.Document{"isPaused": false}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter, err := CounterFromDocument(tt.doc)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedDocument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, counter)
		})
	}
}

func TestBookAndMembershipDocuments(t *testing.T) {
	book := &Book{ID: "1", Name: "Dune", Author: "Herbert", Available: true}
	doc := book.Document()
	doc[docstore.IDField] = "1"
	decoded, err := BookFromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, book, decoded)

	_, err = BookFromDocument(docstore.Document{"name": "Dune"})
	assert.ErrorIs(t, err, ErrMalformedDocument)

	membership := &Membership{ID: "m1", CitizenID: "c1", IssueDate: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)}
	doc = membership.Document()
	doc[docstore.IDField] = "m1"
	decodedMembership, err := MembershipFromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, membership, decodedMembership)
}
