package enrollmentservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/GlebRadaev/bookcounter/internal/domain"
	"github.com/GlebRadaev/bookcounter/internal/lockmap"
	"go.uber.org/zap"
)

//go:generate mockgen -source=enrollmentservice.go -destination=enrollmentservice_mock.go -package=enrollmentservice

type Repo interface {
	FindByCitizen(ctx context.Context, citizenID string) (*domain.Membership, error)
	Create(ctx context.Context, membership *domain.Membership) error
}

type Service struct {
	repo  Repo
	locks *lockmap.Registry
	today func() time.Time
}

func New(repo Repo) *Service {
	return &Service{
		repo:  repo,
		locks: lockmap.New(),
		today: domain.Today,
	}
}

var (
	ErrEmptyCitizen    = errors.New("citizen id must not be empty")
	ErrAlreadyEnrolled = errors.New("citizen already has a membership")
	ErrNotEnrolled     = errors.New("citizen has no membership")
)

func (s *Service) Enroll(ctx context.Context, citizenID string) (*domain.Membership, error) {
	citizenID = strings.TrimSpace(citizenID)
	if citizenID == "" {
		return nil, ErrEmptyCitizen
	}

	var membership *domain.Membership
	err := s.locks.WithLock(ctx, citizenID, func(ctx context.Context) error {
		existing, err := s.repo.FindByCitizen(ctx, citizenID)
		if err != nil {
			zap.L().Error("failed to find membership", zap.Error(err))
			return err
		}
		if existing != nil {
			zap.L().Info("citizen already enrolled", zap.String("citizen_id", citizenID))
			return ErrAlreadyEnrolled
		}

		membership = &domain.Membership{CitizenID: citizenID, IssueDate: s.today()}
		if err := s.repo.Create(ctx, membership); err != nil {
			zap.L().Error("failed to create membership", zap.Error(err))
			membership = nil
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}

func (s *Service) MembershipOf(ctx context.Context, citizenID string) (*domain.Membership, error) {
	membership, err := s.repo.FindByCitizen(ctx, citizenID)
	if err != nil {
		zap.L().Error("failed to find membership", zap.Error(err))
		return nil, err
	}
	if membership == nil {
		return nil, ErrNotEnrolled
	}
	return membership, nil
}
