package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanPeriod is the time between borrowing a book and its due date.
const LoanPeriod = 30 * 24 * time.Hour

// DateLayout is how dates are written to the document store.
const DateLayout = "2006-01-02"

const (
	BooksCollection       = "books"
	BorrowsCollection     = "borrows"
	FeesCollection        = "fees"
	CountersCollection    = "counters"
	MembershipsCollection = "memberships"
)

type LoanRequest struct {
	CitizenID  string
	BookTitle  string
	BookAuthor string
}

type Book struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Author    string `json:"author"`
	Available bool   `json:"available"`
}

type Borrow struct {
	ID           string     `json:"id"`
	BookID       string     `json:"bookId"`
	MembershipID string     `json:"membershipId"`
	BorrowDate   time.Time  `json:"borrowDate"`
	DueDate      time.Time  `json:"dueDate"`
	ReturnDate   *time.Time `json:"returnDate"`
}

func (b *Borrow) Active() bool {
	return b.ReturnDate == nil
}

type Fee struct {
	ID           string          `json:"id"`
	MembershipID string          `json:"membershipId"`
	Amount       decimal.Decimal `json:"amount"`
	BorrowID     string          `json:"borrowId"`
	Paid         bool            `json:"paid"`
}

type Counter struct {
	ID       int  `json:"counterId"`
	IsPaused bool `json:"isPaused"`
}

type Membership struct {
	ID        string    `json:"id"`
	CitizenID string    `json:"citizenId"`
	IssueDate time.Time `json:"issueDate"`
}

// Today is the current date without its time of day.
func Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
