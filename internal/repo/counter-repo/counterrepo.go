package counterrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"github.com/GlebRadaev/bookcounter/internal/domain"
	"go.uber.org/zap"
)

var ErrCounterNotFound = errors.New("counter not found")

type Repository struct {
	store docstore.Store
}

func New(store docstore.Store) *Repository {
	return &Repository{store: store}
}

// Reset drops every stored counter and writes counters 1..n as running.
func (r *Repository) Reset(ctx context.Context, n int) error {
	existing, err := r.store.Query(ctx, domain.CountersCollection, nil)
	if err != nil {
		zap.L().Error("can't list counters", zap.Error(err))
		return fmt.Errorf("list counters: %w", err)
	}
	for _, doc := range existing {
		id := doc.String(docstore.IDField)
		if err := r.store.Delete(ctx, domain.CountersCollection, id); err != nil {
			zap.L().Error("can't delete counter", zap.String("counter", id), zap.Error(err))
			return fmt.Errorf("delete counter %s: %w", id, err)
		}
	}

	for id := 1; id <= n; id++ {
		counter := &domain.Counter{ID: id}
		if err := r.store.Set(ctx, domain.CountersCollection, domain.CounterDocumentID(id), counter.Document()); err != nil {
			zap.L().Error("can't save counter", zap.Int("counter", id), zap.Error(err))
			return fmt.Errorf("save counter %d: %w", id, err)
		}
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id int) (*domain.Counter, error) {
	doc, err := r.store.Get(ctx, domain.CountersCollection, domain.CounterDocumentID(id))
	if err != nil {
		zap.L().Error("can't get counter", zap.Int("counter", id), zap.Error(err))
		return nil, fmt.Errorf("get counter %d: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}
	return domain.CounterFromDocument(doc)
}

func (r *Repository) SetPaused(ctx context.Context, id int, paused bool) error {
	err := r.store.Update(ctx, domain.CountersCollection, domain.CounterDocumentID(id), docstore.Document{
		domain.FieldIsPaused: paused,
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrCounterNotFound
	}
	if err != nil {
		zap.L().Error("can't update counter", zap.Int("counter", id), zap.Error(err))
		return fmt.Errorf("update counter %d: %w", id, err)
	}
	return nil
}

// Watch calls onChange with every stored counter change until ctx is done.
// Documents that do not identify a counter are logged and dropped.
func (r *Repository) Watch(ctx context.Context, onChange func(counter *domain.Counter)) error {
	err := r.store.Subscribe(ctx, domain.CountersCollection, func(doc docstore.Document) {
		counter, err := domain.CounterFromDocument(doc)
		if err != nil {
			zap.L().Error("ignoring counter change", zap.Error(err))
			return
		}
		onChange(counter)
	})
	if err != nil {
		zap.L().Error("can't watch counters", zap.Error(err))
		return fmt.Errorf("watch counters: %w", err)
	}
	return nil
}
