package catalogservice

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/GlebRadaev/bookcounter/internal/domain"
	"github.com/GlebRadaev/bookcounter/internal/lockmap"
	"go.uber.org/zap"
)

//go:generate mockgen -source=catalogservice.go -destination=catalogservice_mock.go -package=catalogservice

type Repo interface {
	Get(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
	Add(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo      Repo
	bookLocks *lockmap.Registry
}

func New(repo Repo, bookLocks *lockmap.Registry) *Service {
	return &Service{
		repo:      repo,
		bookLocks: bookLocks,
	}
}

var (
	ErrInvalidBook  = errors.New("book name and author must not be empty")
	ErrBookNotFound = errors.New("book not found")
	ErrBookOnLoan   = errors.New("book is on loan")
)

// Availability counts the copies of one title.
type Availability struct {
	Name      string
	Author    string
	Available int
	Total     int
}

func (s *Service) AddCopy(ctx context.Context, name, author string) (*domain.Book, error) {
	name, author = strings.TrimSpace(name), strings.TrimSpace(author)
	if name == "" || author == "" {
		return nil, ErrInvalidBook
	}

	book := &domain.Book{Name: name, Author: author, Available: true}
	if err := s.repo.Add(ctx, book); err != nil {
		zap.L().Error("failed to add book", zap.Error(err))
		return nil, err
	}
	zap.L().Info("book copy added", zap.String("book_id", book.ID), zap.String("title", name))
	return book, nil
}

// RemoveCopy deletes a copy that is on the shelf.
func (s *Service) RemoveCopy(ctx context.Context, id string) error {
	return s.bookLocks.WithLock(ctx, id, func(ctx context.Context) error {
		book, err := s.repo.Get(ctx, id)
		if err != nil {
			zap.L().Error("failed to get book", zap.Error(err))
			return err
		}
		if book == nil {
			return ErrBookNotFound
		}
		if !book.Available {
			return ErrBookOnLoan
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			zap.L().Error("failed to delete book", zap.Error(err))
			return err
		}
		return nil
	})
}

// Availability groups every copy by title and author.
func (s *Service) Availability(ctx context.Context) ([]Availability, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		zap.L().Error("failed to list books", zap.Error(err))
		return nil, err
	}

	type key struct{ name, author string }
	byTitle := make(map[key]*Availability)
	for _, book := range books {
		k := key{book.Name, book.Author}
		a, ok := byTitle[k]
		if !ok {
			a = &Availability{Name: book.Name, Author: book.Author}
			byTitle[k] = a
		}
		a.Total++
		if book.Available {
			a.Available++
		}
	}

	result := make([]Availability, 0, len(byTitle))
	for _, a := range byTitle {
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].Author < result[j].Author
	})
	return result, nil
}
