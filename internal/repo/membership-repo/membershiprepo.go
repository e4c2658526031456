package membershiprepo

import (
	"context"
	"fmt"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"github.com/GlebRadaev/bookcounter/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository struct {
	store docstore.Store
}

func New(store docstore.Store) *Repository {
	return &Repository{store: store}
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Membership, error) {
	doc, err := r.store.Get(ctx, domain.MembershipsCollection, id)
	if err != nil {
		zap.L().Error("can't get membership", zap.String("membership_id", id), zap.Error(err))
		return nil, fmt.Errorf("get membership %s: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}
	return domain.MembershipFromDocument(doc)
}

// FindByCitizen returns the citizen's membership, or nil when they have none.
func (r *Repository) FindByCitizen(ctx context.Context, citizenID string) (*domain.Membership, error) {
	docs, err := r.store.Query(ctx, domain.MembershipsCollection, docstore.Filter{domain.FieldCitizenID: citizenID})
	if err != nil {
		zap.L().Error("can't find membership", zap.String("citizen_id", citizenID), zap.Error(err))
		return nil, fmt.Errorf("find membership of %s: %w", citizenID, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return domain.MembershipFromDocument(docs[0])
}

func (r *Repository) Create(ctx context.Context, membership *domain.Membership) error {
	if membership.ID == "" {
		membership.ID = uuid.NewString()
	}
	if err := r.store.Set(ctx, domain.MembershipsCollection, membership.ID, membership.Document()); err != nil {
		zap.L().Error("can't save membership", zap.String("membership_id", membership.ID), zap.Error(err))
		return fmt.Errorf("save membership %s: %w", membership.ID, err)
	}
	return nil
}
