package returnservice

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/bookcounter/internal/domain"
	"github.com/GlebRadaev/bookcounter/internal/lockmap"
	"go.uber.org/zap"
)

//go:generate mockgen -source=returnservice.go -destination=returnservice_mock.go -package=returnservice

type BookRepo interface {
	FindByTitle(ctx context.Context, name, author string) ([]domain.Book, error)
	SetAvailable(ctx context.Context, id string, available bool) error
}

type BorrowRepo interface {
	Get(ctx context.Context, id string) (*domain.Borrow, error)
	FindActive(ctx context.Context, membershipID string, bookIDs []string) (*domain.Borrow, error)
	MarkReturned(ctx context.Context, id string, returned time.Time) error
}

type FeeService interface {
	GenerateOverdueFee(ctx context.Context, borrowID string) (*domain.Fee, error)
}

type Service struct {
	bookRepo   BookRepo
	borrowRepo BorrowRepo
	feeService FeeService
	bookLocks  *lockmap.Registry
	today      func() time.Time
}

// New takes the book lock registry of the loaning counters so that a return
// and a loan of the same copy never interleave.
func New(bookRepo BookRepo, borrowRepo BorrowRepo, feeService FeeService, bookLocks *lockmap.Registry) *Service {
	return &Service{
		bookRepo:   bookRepo,
		borrowRepo: borrowRepo,
		feeService: feeService,
		bookLocks:  bookLocks,
		today:      domain.Today,
	}
}

var ErrNoActiveBorrow = errors.New("no active borrow found")

// ProcessReturn closes the membership's active borrow of the book, puts the
// copy back on the shelf and charges any overdue fee.
func (s *Service) ProcessReturn(ctx context.Context, membershipID, title, author string) (*domain.Borrow, *domain.Fee, error) {
	copies, err := s.bookRepo.FindByTitle(ctx, title, author)
	if err != nil {
		zap.L().Error("failed to find book", zap.Error(err))
		return nil, nil, err
	}
	ids := make([]string, 0, len(copies))
	for _, book := range copies {
		ids = append(ids, book.ID)
	}

	borrow, err := s.borrowRepo.FindActive(ctx, membershipID, ids)
	if err != nil {
		zap.L().Error("failed to find active borrow", zap.Error(err))
		return nil, nil, err
	}
	if borrow == nil {
		zap.L().Info("no active borrow", zap.String("membership_id", membershipID), zap.String("title", title))
		return nil, nil, ErrNoActiveBorrow
	}

	if err := s.checkIn(ctx, borrow); err != nil {
		return nil, nil, err
	}

	fee, err := s.feeService.GenerateOverdueFee(ctx, borrow.ID)
	if err != nil {
		zap.L().Error("failed to generate overdue fee", zap.String("borrow_id", borrow.ID), zap.Error(err))
		return borrow, nil, err
	}
	return borrow, fee, nil
}

// checkIn re-reads the borrow under the copy's lock: a concurrent return of
// the same borrow may have closed it, and the copy may be on loan again.
func (s *Service) checkIn(ctx context.Context, borrow *domain.Borrow) error {
	release, err := s.bookLocks.LockFor(borrow.BookID).Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	current, err := s.borrowRepo.Get(ctx, borrow.ID)
	if err != nil {
		zap.L().Error("failed to re-read borrow", zap.String("borrow_id", borrow.ID), zap.Error(err))
		return err
	}
	if current == nil || !current.Active() {
		zap.L().Info("borrow closed by a concurrent return", zap.String("borrow_id", borrow.ID))
		return ErrNoActiveBorrow
	}

	today := s.today()
	if err := s.borrowRepo.MarkReturned(ctx, borrow.ID, today); err != nil {
		zap.L().Error("failed to mark borrow returned", zap.String("borrow_id", borrow.ID), zap.Error(err))
		return err
	}
	if err := s.bookRepo.SetAvailable(ctx, borrow.BookID, true); err != nil {
		zap.L().Error("failed to put book back", zap.String("book_id", borrow.BookID), zap.Error(err))
		return err
	}
	borrow.ReturnDate = &today
	return nil
}
