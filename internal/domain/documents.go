package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"github.com/shopspring/decimal"
)

// Document field names.
const (
	FieldName         = "name"
	FieldAuthor       = "author"
	FieldAvailable    = "available"
	FieldBookID       = "bookId"
	FieldMembershipID = "membershipId"
	FieldBorrowDate   = "borrowDate"
	FieldDueDate      = "dueDate"
	FieldReturnDate   = "returnDate"
	FieldAmount       = "amount"
	FieldBorrowID     = "borrowId"
	FieldPaid         = "paid"
	FieldCounterID    = "counterId"
	FieldIsPaused     = "isPaused"
	FieldCitizenID    = "citizenId"
	FieldIssueDate    = "issueDate"
)

var ErrMalformedDocument = errors.New("malformed document")

func malformed(collection, id, field string) error {
	return fmt.Errorf("%w: %s/%s field %q", ErrMalformedDocument, collection, id, field)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func (b *Book) Document() docstore.Document {
	return docstore.Document{
		FieldName:      b.Name,
		FieldAuthor:    b.Author,
		FieldAvailable: b.Available,
	}
}

func BookFromDocument(doc docstore.Document) (*Book, error) {
	id := doc.String(docstore.IDField)
	available, ok := doc.Bool(FieldAvailable)
	if !ok {
		return nil, malformed(BooksCollection, id, FieldAvailable)
	}
	return &Book{
		ID:        id,
		Name:      doc.String(FieldName),
		Author:    doc.String(FieldAuthor),
		Available: available,
	}, nil
}

// Document writes an active borrow with an explicit null returnDate so that
// equality queries on a null returnDate find it in every backend.
func (b *Borrow) Document() docstore.Document {
	doc := docstore.Document{
		FieldBookID:       b.BookID,
		FieldMembershipID: b.MembershipID,
		FieldBorrowDate:   FormatDate(b.BorrowDate),
		FieldDueDate:      FormatDate(b.DueDate),
		FieldReturnDate:   nil,
	}
	if b.ReturnDate != nil {
		doc[FieldReturnDate] = FormatDate(*b.ReturnDate)
	}
	return doc
}

func BorrowFromDocument(doc docstore.Document) (*Borrow, error) {
	id := doc.String(docstore.IDField)
	borrowed, err := ParseDate(doc.String(FieldBorrowDate))
	if err != nil {
		return nil, malformed(BorrowsCollection, id, FieldBorrowDate)
	}
	due, err := ParseDate(doc.String(FieldDueDate))
	if err != nil {
		return nil, malformed(BorrowsCollection, id, FieldDueDate)
	}

	borrow := &Borrow{
		ID:           id,
		BookID:       doc.String(FieldBookID),
		MembershipID: doc.String(FieldMembershipID),
		BorrowDate:   borrowed,
		DueDate:      due,
	}
	if raw, ok := doc[FieldReturnDate]; ok && raw != nil {
		s, _ := raw.(string)
		returned, err := ParseDate(s)
		if err != nil {
			return nil, malformed(BorrowsCollection, id, FieldReturnDate)
		}
		borrow.ReturnDate = &returned
	}
	return borrow, nil
}

func (f *Fee) Document() docstore.Document {
	return docstore.Document{
		FieldMembershipID: f.MembershipID,
		FieldAmount:       f.Amount.String(),
		FieldBorrowID:     f.BorrowID,
		FieldPaid:         f.Paid,
	}
}

func FeeFromDocument(doc docstore.Document) (*Fee, error) {
	id := doc.String(docstore.IDField)
	amount, err := decimal.NewFromString(doc.String(FieldAmount))
	if err != nil {
		return nil, malformed(FeesCollection, id, FieldAmount)
	}
	paid, _ := doc.Bool(FieldPaid)
	return &Fee{
		ID:           id,
		MembershipID: doc.String(FieldMembershipID),
		Amount:       amount,
		BorrowID:     doc.String(FieldBorrowID),
		Paid:         paid,
	}, nil
}

// CounterDocumentID is the document id of counter id.
func CounterDocumentID(id int) string {
	return strconv.Itoa(id)
}

func (c *Counter) Document() docstore.Document {
	return docstore.Document{
		FieldCounterID: c.ID,
		FieldIsPaused:  c.IsPaused,
	}
}

// CounterFromDocument treats a missing or malformed isPaused flag as paused.
// The counter id falls back to the document id.
func CounterFromDocument(doc docstore.Document) (*Counter, error) {
	id, ok := doc.Int(FieldCounterID)
	if !ok {
		n, err := strconv.Atoi(doc.String(docstore.IDField))
		if err != nil {
			return nil, malformed(CountersCollection, doc.String(docstore.IDField), FieldCounterID)
		}
		id = n
	}
	paused, ok := doc.Bool(FieldIsPaused)
	if !ok {
		paused = true
	}
	return &Counter{ID: id, IsPaused: paused}, nil
}

func (m *Membership) Document() docstore.Document {
	return docstore.Document{
		FieldCitizenID: m.CitizenID,
		FieldIssueDate: FormatDate(m.IssueDate),
	}
}

func MembershipFromDocument(doc docstore.Document) (*Membership, error) {
	id := doc.String(docstore.IDField)
	issued, err := ParseDate(doc.String(FieldIssueDate))
	if err != nil {
		return nil, malformed(MembershipsCollection, id, FieldIssueDate)
	}
	return &Membership{
		ID:        id,
		CitizenID: doc.String(FieldCitizenID),
		IssueDate: issued,
	}, nil
}
