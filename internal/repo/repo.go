package repo

import (
	"github.com/GlebRadaev/bookcounter/internal/docstore"
	bookrepo "github.com/GlebRadaev/bookcounter/internal/repo/book-repo"
	borrowrepo "github.com/GlebRadaev/bookcounter/internal/repo/borrow-repo"
	counterrepo "github.com/GlebRadaev/bookcounter/internal/repo/counter-repo"
	feerepo "github.com/GlebRadaev/bookcounter/internal/repo/fee-repo"
	membershiprepo "github.com/GlebRadaev/bookcounter/internal/repo/membership-repo"
)

type Repositories struct {
	BookRepo       *bookrepo.Repository
	BorrowRepo     *borrowrepo.Repository
	FeeRepo        *feerepo.Repository
	MembershipRepo *membershiprepo.Repository
	CounterRepo    *counterrepo.Repository
}

func New(store docstore.Store) *Repositories {
	return &Repositories{
		BookRepo:       bookrepo.New(store),
		BorrowRepo:     borrowrepo.New(store),
		FeeRepo:        feerepo.New(store),
		MembershipRepo: membershiprepo.New(store),
		CounterRepo:    counterrepo.New(store),
	}
}
