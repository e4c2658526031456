package service

import (
	"context"

	"github.com/GlebRadaev/bookcounter/internal/dispatch"
	"github.com/GlebRadaev/bookcounter/internal/domain"
	"github.com/GlebRadaev/bookcounter/internal/lockmap"
	"github.com/GlebRadaev/bookcounter/internal/repo"
	"github.com/GlebRadaev/bookcounter/internal/service/catalogservice"
	"github.com/GlebRadaev/bookcounter/internal/service/enrollmentservice"
	"github.com/GlebRadaev/bookcounter/internal/service/feeservice"
	"github.com/GlebRadaev/bookcounter/internal/service/returnservice"
	"go.opentelemetry.io/otel/metric"
)

type Services struct {
	Dispatcher        *dispatch.Dispatcher
	ReturnService     *returnservice.Service
	FeeService        *feeservice.Service
	EnrollmentService *enrollmentservice.Service
	CatalogService    *catalogservice.Service
}

// New wires the services over repo. Loans, returns and catalog changes share
// one registry of book locks.
func New(repo *repo.Repositories, meter metric.Meter) *Services {
	bookLocks := lockmap.New()

	feeService := feeservice.New(repo.BorrowRepo, repo.FeeRepo)
	dispatcher := dispatch.New(repo.MembershipRepo, repo.BookRepo, repo.BorrowRepo, repo.CounterRepo, bookLocks, meter)
	returnService := returnservice.New(repo.BookRepo, repo.BorrowRepo, feeService, bookLocks)
	enrollmentService := enrollmentservice.New(repo.MembershipRepo)
	catalogService := catalogservice.New(repo.BookRepo, bookLocks)

	return &Services{
		Dispatcher:        dispatcher,
		ReturnService:     returnService,
		FeeService:        feeService,
		EnrollmentService: enrollmentService,
		CatalogService:    catalogService,
	}
}

func (s *Services) SubmitLoanRequest(citizenID, title, author string) {
	s.Dispatcher.Enqueue(domain.LoanRequest{CitizenID: citizenID, BookTitle: title, BookAuthor: author})
}

func (s *Services) PauseCounter(ctx context.Context, id int) error {
	return s.Dispatcher.Pause(ctx, id)
}

func (s *Services) ResumeCounter(ctx context.Context, id int) error {
	return s.Dispatcher.Resume(ctx, id)
}

func (s *Services) ProcessReturn(ctx context.Context, membershipID, title, author string) (*domain.Borrow, *domain.Fee, error) {
	return s.ReturnService.ProcessReturn(ctx, membershipID, title, author)
}

func (s *Services) Enroll(ctx context.Context, citizenID string) (*domain.Membership, error) {
	return s.EnrollmentService.Enroll(ctx, citizenID)
}

func (s *Services) GenerateOverdueFee(ctx context.Context, borrowID string) (*domain.Fee, error) {
	return s.FeeService.GenerateOverdueFee(ctx, borrowID)
}

func (s *Services) MarkFeePaid(ctx context.Context, feeID string) error {
	return s.FeeService.MarkPaid(ctx, feeID)
}

func (s *Services) AddCopy(ctx context.Context, name, author string) (*domain.Book, error) {
	return s.CatalogService.AddCopy(ctx, name, author)
}

func (s *Services) RemoveCopy(ctx context.Context, id string) error {
	return s.CatalogService.RemoveCopy(ctx, id)
}
