package bookrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"github.com/GlebRadaev/bookcounter/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrBookNotFound = errors.New("book not found")

type Repository struct {
	store docstore.Store
}

func New(store docstore.Store) *Repository {
	return &Repository{store: store}
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Book, error) {
	doc, err := r.store.Get(ctx, domain.BooksCollection, id)
	if err != nil {
		zap.L().Error("can't get book", zap.String("book_id", id), zap.Error(err))
		return nil, fmt.Errorf("get book %s: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}
	return domain.BookFromDocument(doc)
}

// FindByTitle returns every copy of the book, available or not.
func (r *Repository) FindByTitle(ctx context.Context, name, author string) ([]domain.Book, error) {
	return r.find(ctx, docstore.Filter{
		domain.FieldName:   name,
		domain.FieldAuthor: author,
	})
}

func (r *Repository) List(ctx context.Context) ([]domain.Book, error) {
	return r.find(ctx, nil)
}

func (r *Repository) find(ctx context.Context, filter docstore.Filter) ([]domain.Book, error) {
	docs, err := r.store.Query(ctx, domain.BooksCollection, filter)
	if err != nil {
		zap.L().Error("can't query books", zap.Error(err))
		return nil, fmt.Errorf("query books: %w", err)
	}

	books := make([]domain.Book, 0, len(docs))
	for _, doc := range docs {
		book, err := domain.BookFromDocument(doc)
		if err != nil {
			zap.L().Error("skipping malformed book", zap.Error(err))
			continue
		}
		books = append(books, *book)
	}
	return books, nil
}

// SetAvailable must be called with the book's lock held.
func (r *Repository) SetAvailable(ctx context.Context, id string, available bool) error {
	err := r.store.Update(ctx, domain.BooksCollection, id, docstore.Document{domain.FieldAvailable: available})
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrBookNotFound
	}
	if err != nil {
		zap.L().Error("can't update book availability", zap.String("book_id", id), zap.Error(err))
		return fmt.Errorf("update book %s: %w", id, err)
	}
	return nil
}

func (r *Repository) Add(ctx context.Context, book *domain.Book) error {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	if err := r.store.Set(ctx, domain.BooksCollection, book.ID, book.Document()); err != nil {
		zap.L().Error("can't save book", zap.String("book_id", book.ID), zap.Error(err))
		return fmt.Errorf("save book %s: %w", book.ID, err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, domain.BooksCollection, id); err != nil {
		zap.L().Error("can't delete book", zap.String("book_id", id), zap.Error(err))
		return fmt.Errorf("delete book %s: %w", id, err)
	}
	return nil
}
