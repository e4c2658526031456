package feeservice

import (
	"context"
	"errors"

	"github.com/GlebRadaev/bookcounter/internal/domain"
	"github.com/GlebRadaev/bookcounter/internal/feecalc"
	"github.com/GlebRadaev/bookcounter/internal/lockmap"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=feeservice.go -destination=feeservice_mock.go -package=feeservice

type BorrowRepo interface {
	Get(ctx context.Context, id string) (*domain.Borrow, error)
}

type FeeRepo interface {
	Add(ctx context.Context, fee *domain.Fee) error
	FindByBorrow(ctx context.Context, borrowID string) (*domain.Fee, error)
	MarkPaid(ctx context.Context, id string) error
	ListByMembership(ctx context.Context, membershipID string) ([]domain.Fee, error)
}

type Service struct {
	borrowRepo BorrowRepo
	feeRepo    FeeRepo
	locks      *lockmap.Registry
	dailyRate  decimal.Decimal
}

func New(borrowRepo BorrowRepo, feeRepo FeeRepo) *Service {
	return &Service{
		borrowRepo: borrowRepo,
		feeRepo:    feeRepo,
		locks:      lockmap.New(),
		dailyRate:  feecalc.DailyRate,
	}
}

var (
	ErrBorrowNotFound   = errors.New("borrow not found")
	ErrNotReturned      = errors.New("borrow has not been returned")
	ErrFeeAlreadyExists = errors.New("fee already generated for borrow")
)

// GenerateOverdueFee charges a returned borrow for its late days. It returns
// (nil, nil) when the book came back in time.
func (s *Service) GenerateOverdueFee(ctx context.Context, borrowID string) (*domain.Fee, error) {
	var fee *domain.Fee
	err := s.locks.WithLock(ctx, borrowID, func(ctx context.Context) error {
		borrow, err := s.borrowRepo.Get(ctx, borrowID)
		if err != nil {
			zap.L().Error("failed to get borrow", zap.String("borrow_id", borrowID), zap.Error(err))
			return err
		}
		if borrow == nil {
			return ErrBorrowNotFound
		}
		if borrow.ReturnDate == nil {
			return ErrNotReturned
		}

		amount := feecalc.OverdueFee(borrow.DueDate, *borrow.ReturnDate, s.dailyRate)
		if !amount.IsPositive() {
			return nil
		}

		existing, err := s.feeRepo.FindByBorrow(ctx, borrowID)
		if err != nil {
			return err
		}
		if existing != nil {
			zap.L().Info("fee already generated", zap.String("borrow_id", borrowID), zap.String("fee_id", existing.ID))
			return ErrFeeAlreadyExists
		}

		fee = &domain.Fee{
			MembershipID: borrow.MembershipID,
			Amount:       amount,
			BorrowID:     borrowID,
		}
		if err := s.feeRepo.Add(ctx, fee); err != nil {
			zap.L().Error("failed to add fee", zap.String("borrow_id", borrowID), zap.Error(err))
			fee = nil
			return err
		}
		zap.L().Info("overdue fee generated",
			zap.String("borrow_id", borrowID),
			zap.String("fee_id", fee.ID),
			zap.String("amount", amount.String()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fee, nil
}

func (s *Service) MarkPaid(ctx context.Context, feeID string) error {
	if err := s.feeRepo.MarkPaid(ctx, feeID); err != nil {
		zap.L().Error("failed to mark fee paid", zap.String("fee_id", feeID), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) ListByMembership(ctx context.Context, membershipID string) ([]domain.Fee, error) {
	fees, err := s.feeRepo.ListByMembership(ctx, membershipID)
	if err != nil {
		zap.L().Error("failed to list fees", zap.Error(err))
		return nil, err
	}
	return fees, nil
}

// Outstanding sums the unpaid fees of a membership.
func (s *Service) Outstanding(ctx context.Context, membershipID string) (decimal.Decimal, error) {
	fees, err := s.ListByMembership(ctx, membershipID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, fee := range fees {
		if !fee.Paid {
			total = total.Add(fee.Amount)
		}
	}
	return total, nil
}
