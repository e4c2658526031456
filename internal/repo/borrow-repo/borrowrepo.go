package borrowrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"github.com/GlebRadaev/bookcounter/internal/domain"
	"github.com/GlebRadaev/bookcounter/internal/lockmap"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrBorrowNotFound  = errors.New("borrow not found")
	ErrAlreadyReturned = errors.New("borrow already returned")
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

// Create stores a new borrow, assigning it an id when it has none.
func (r *Repository) Create(ctx context.Context, borrow *domain.Borrow) error {
	if borrow.ID == "" {
		borrow.ID = uuid.NewString()
	}
	return r.locks.WithLock(ctx, borrow.ID, func(ctx context.Context) error {
		if err := r.store.Set(ctx, domain.BorrowsCollection, borrow.ID, borrow.Document()); err != nil {
			zap.L().Error("can't save borrow", zap.String("borrow_id", borrow.ID), zap.Error(err))
			return fmt.Errorf("save borrow %s: %w", borrow.ID, err)
		}
		return nil
	})
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Borrow, error) {
	doc, err := r.store.Get(ctx, domain.BorrowsCollection, id)
	if err != nil {
		zap.L().Error("can't get borrow", zap.String("borrow_id", id), zap.Error(err))
		return nil, fmt.Errorf("get borrow %s: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}
	return domain.BorrowFromDocument(doc)
}

// MarkReturned sets the return date once. A borrow that already has one is
// left untouched.
func (r *Repository) MarkReturned(ctx context.Context, id string, returned time.Time) error {
	return r.locks.WithLock(ctx, id, func(ctx context.Context) error {
		borrow, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		if borrow == nil {
			return ErrBorrowNotFound
		}
		if !borrow.Active() {
			return ErrAlreadyReturned
		}

		err = r.store.Update(ctx, domain.BorrowsCollection, id, docstore.Document{
			domain.FieldReturnDate: domain.FormatDate(returned),
		})
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrBorrowNotFound
		}
		if err != nil {
			zap.L().Error("can't mark borrow returned", zap.String("borrow_id", id), zap.Error(err))
			return fmt.Errorf("mark borrow %s returned: %w", id, err)
		}
		return nil
	})
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.locks.WithLock(ctx, id, func(ctx context.Context) error {
		if err := r.store.Delete(ctx, domain.BorrowsCollection, id); err != nil {
			zap.L().Error("can't delete borrow", zap.String("borrow_id", id), zap.Error(err))
			return fmt.Errorf("delete borrow %s: %w", id, err)
		}
		return nil
	})
}

// FindActive returns the not yet returned borrow of membershipID for any of
// bookIDs, or nil when there is none.
func (r *Repository) FindActive(ctx context.Context, membershipID string, bookIDs []string) (*domain.Borrow, error) {
	if len(bookIDs) == 0 {
		return nil, nil
	}
	docs, err := r.store.Query(ctx, domain.BorrowsCollection, docstore.Filter{
		domain.FieldMembershipID: membershipID,
		domain.FieldReturnDate:   nil,
	})
	if err != nil {
		zap.L().Error("can't query active borrows", zap.String("membership_id", membershipID), zap.Error(err))
		return nil, fmt.Errorf("query active borrows: %w", err)
	}

	wanted := make(map[string]struct{}, len(bookIDs))
	for _, id := range bookIDs {
		wanted[id] = struct{}{}
	}
	for _, doc := range docs {
		if _, ok := wanted[doc.String(domain.FieldBookID)]; !ok {
			continue
		}
		return domain.BorrowFromDocument(doc)
	}
	return nil, nil
}

func (r *Repository) ListByMembership(ctx context.Context, membershipID string) ([]domain.Borrow, error) {
	docs, err := r.store.Query(ctx, domain.BorrowsCollection, docstore.Filter{
		domain.FieldMembershipID: membershipID,
	})
	if err != nil {
		zap.L().Error("can't list borrows", zap.String("membership_id", membershipID), zap.Error(err))
		return nil, fmt.Errorf("list borrows: %w", err)
	}

	borrows := make([]domain.Borrow, 0, len(docs))
	for _, doc := range docs {
		borrow, err := domain.BorrowFromDocument(doc)
		if err != nil {
			zap.L().Error("skipping malformed borrow", zap.Error(err))
			continue
		}
		borrows = append(borrows, *borrow)
	}
	return borrows, nil
}
