package feerepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"github.com/GlebRadaev/bookcounter/internal/domain"
	"github.com/GlebRadaev/bookcounter/internal/lockmap"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrFeeAlreadyExists = errors.New("fee already exists for borrow")
	ErrFeeNotFound      = errors.New("fee not found")
)

// Fees and borrows share the registry, so their keys are prefixed.
const (
	borrowKey = "borrow/"
	feeKey    = "fee/"
)

type Repository struct {
	store docstore.Store
	locks *lockmap.Registry
}

func New(store docstore.Store) *Repository {
	return &Repository{
		store: store,
		locks: lockmap.New(),
	}
}

// Add stores fee unless its borrow already has one.
func (r *Repository) Add(ctx context.Context, fee *domain.Fee) error {
	return r.locks.WithLock(ctx, borrowKey+fee.BorrowID, func(ctx context.Context) error {
		existing, err := r.FindByBorrow(ctx, fee.BorrowID)
		if err != nil {
			return err
		}
		if existing != nil {
			zap.L().Info("fee already exists", zap.String("borrow_id", fee.BorrowID), zap.String("fee_id", existing.ID))
			return ErrFeeAlreadyExists
		}

		if fee.ID == "" {
			fee.ID = uuid.NewString()
		}
		if err := r.store.Set(ctx, domain.FeesCollection, fee.ID, fee.Document()); err != nil {
			zap.L().Error("can't save fee", zap.String("fee_id", fee.ID), zap.Error(err))
			return fmt.Errorf("save fee %s: %w", fee.ID, err)
		}
		return nil
	})
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Fee, error) {
	doc, err := r.store.Get(ctx, domain.FeesCollection, id)
	if err != nil {
		zap.L().Error("can't get fee", zap.String("fee_id", id), zap.Error(err))
		return nil, fmt.Errorf("get fee %s: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}
	return domain.FeeFromDocument(doc)
}

func (r *Repository) FindByBorrow(ctx context.Context, borrowID string) (*domain.Fee, error) {
	docs, err := r.store.Query(ctx, domain.FeesCollection, docstore.Filter{domain.FieldBorrowID: borrowID})
	if err != nil {
		zap.L().Error("can't find fee by borrow", zap.String("borrow_id", borrowID), zap.Error(err))
		return nil, fmt.Errorf("find fee of borrow %s: %w", borrowID, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return domain.FeeFromDocument(docs[0])
}

func (r *Repository) MarkPaid(ctx context.Context, id string) error {
	return r.locks.WithLock(ctx, feeKey+id, func(ctx context.Context) error {
		fee, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		if fee == nil {
			return ErrFeeNotFound
		}

		err = r.store.Update(ctx, domain.FeesCollection, id, docstore.Document{domain.FieldPaid: true})
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrFeeNotFound
		}
		if err != nil {
			zap.L().Error("can't mark fee paid", zap.String("fee_id", id), zap.Error(err))
			return fmt.Errorf("mark fee %s paid: %w", id, err)
		}
		return nil
	})
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.locks.WithLock(ctx, feeKey+id, func(ctx context.Context) error {
		if err := r.store.Delete(ctx, domain.FeesCollection, id); err != nil {
			zap.L().Error("can't delete fee", zap.String("fee_id", id), zap.Error(err))
			return fmt.Errorf("delete fee %s: %w", id, err)
		}
		return nil
	})
}

func (r *Repository) ListByMembership(ctx context.Context, membershipID string) ([]domain.Fee, error) {
	docs, err := r.store.Query(ctx, domain.FeesCollection, docstore.Filter{domain.FieldMembershipID: membershipID})
	if err != nil {
		zap.L().Error("can't list fees", zap.String("membership_id", membershipID), zap.Error(err))
		return nil, fmt.Errorf("list fees: %w", err)
	}

	fees := make([]domain.Fee, 0, len(docs))
	for _, doc := range docs {
		fee, err := domain.FeeFromDocument(doc)
		if err != nil {
			zap.L().Error("skipping malformed fee", zap.Error(err))
			continue
		}
		fees = append(fees, *fee)
	}
	return fees, nil
}
