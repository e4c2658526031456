// Package dispatch runs the loaning counters: a fixed set of pausable workers
// taking loan requests from one shared queue and granting books.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GlebRadaev/bookcounter/internal/domain"
	"github.com/GlebRadaev/bookcounter/internal/lockmap"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=dispatcher.go -destination=dispatcher_mock.go -package=dispatch

type MembershipRepo interface {
	FindByCitizen(ctx context.Context, citizenID string) (*domain.Membership, error)
}

type BookRepo interface {
	Get(ctx context.Context, id string) (*domain.Book, error)
	FindByTitle(ctx context.Context, name, author string) ([]domain.Book, error)
	SetAvailable(ctx context.Context, id string, available bool) error
}

type BorrowRepo interface {
	FindActive(ctx context.Context, membershipID string, bookIDs []string) (*domain.Borrow, error)
	Create(ctx context.Context, borrow *domain.Borrow) error
}

type CounterRepo interface {
	Reset(ctx context.Context, n int) error
	SetPaused(ctx context.Context, id int, paused bool) error
	Watch(ctx context.Context, onChange func(counter *domain.Counter)) error
}

var (
	ErrAlreadyStarted  = errors.New("dispatcher already started")
	ErrInvalidCounters = errors.New("number of counters must be positive")
	ErrCounterNotFound = errors.New("counter not found")
	ErrNoMembership    = errors.New("citizen has no membership")
	ErrAlreadyBorrowed = errors.New("book already borrowed by this membership")
	ErrBookNotFound    = errors.New("book not found")
	ErrBookUnavailable = errors.New("book unavailable")
)

// errCopyTaken means a copy was loaned out between the query and the lock.
var errCopyTaken = errors.New("copy taken")

type Dispatcher struct {
	memberships MembershipRepo
	books       BookRepo
	borrows     BorrowRepo
	bookLocks   *lockmap.Registry
	pause       *PauseState
	queue       *queue
	metrics     *metrics
	today       func() time.Time

	started atomic.Bool
	mu      sync.Mutex
	group   *errgroup.Group
}

func New(
	memberships MembershipRepo,
	books BookRepo,
	borrows BorrowRepo,
	counters CounterRepo,
	bookLocks *lockmap.Registry,
	meter metric.Meter,
) *Dispatcher {
	return &Dispatcher{
		memberships: memberships,
		books:       books,
		borrows:     borrows,
		bookLocks:   bookLocks,
		pause:       NewPauseState(counters),
		queue:       newQueue(),
		metrics:     newMetrics(meter),
		today:       domain.Today,
	}
}

// Start opens n counters and returns once they are serving. Counters stop
// when ctx is done; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context, n int) error {
	if n <= 0 {
		return ErrInvalidCounters
	}
	if !d.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	if err := d.pause.Init(ctx, n); err != nil {
		d.started.Store(false)
		return fmt.Errorf("init counters: %w", err)
	}

	g := &errgroup.Group{}
	for _, id := range d.pause.Counters() {
		id := id
		g.Go(func() error {
			d.serve(ctx, id)
			return nil
		})
	}

	d.mu.Lock()
	d.group = g
	d.mu.Unlock()

	zap.L().Info("loaning counters opened", zap.Int("counters", n))
	return nil
}

func (d *Dispatcher) Wait() {
	d.mu.Lock()
	g := d.group
	d.mu.Unlock()
	if g != nil {
		_ = g.Wait()
	}
}

// Enqueue never blocks and never rejects a request.
func (d *Dispatcher) Enqueue(req domain.LoanRequest) {
	d.queue.push(req)
	zap.L().Debug("loan request queued",
		zap.String("citizen_id", req.CitizenID),
		zap.String("title", req.BookTitle),
		zap.String("author", req.BookAuthor))
}

func (d *Dispatcher) Pending() int {
	return d.queue.len()
}

func (d *Dispatcher) Pause(ctx context.Context, id int) error {
	if err := d.pause.Pause(ctx, id); err != nil {
		return err
	}
	zap.L().Info("counter paused", zap.Int("counter", id))
	return nil
}

func (d *Dispatcher) Resume(ctx context.Context, id int) error {
	if err := d.pause.Resume(ctx, id); err != nil {
		return err
	}
	zap.L().Info("counter resumed", zap.Int("counter", id))
	return nil
}

func (d *Dispatcher) IsPaused(id int) (bool, error) {
	return d.pause.IsPaused(id)
}

func (d *Dispatcher) serve(ctx context.Context, id int) {
	zap.L().Info("counter open", zap.Int("counter", id))
	defer zap.L().Info("counter closed", zap.Int("counter", id))

	ready := func() bool {
		paused, err := d.pause.IsPaused(id)
		return err == nil && !paused
	}

	for {
		if err := d.pause.WaitRunning(ctx, id); err != nil {
			return
		}
		req, ok := d.queue.pop(ctx, ready)
		if !ok {
			if ctx.Err() != nil {
				return
			}
			continue
		}
		d.handle(ctx, id, req)
	}
}

// handle grants one request. Failures are logged and the request is dropped.
func (d *Dispatcher) handle(ctx context.Context, counter int, req domain.LoanRequest) {
	fields := []zap.Field{
		zap.Int("counter", counter),
		zap.String("citizen_id", req.CitizenID),
		zap.String("title", req.BookTitle),
		zap.String("author", req.BookAuthor),
	}

	defer func() {
		if r := recover(); r != nil {
			d.metrics.rejected(ctx, reasonPanic)
			zap.L().Error("loan request panicked", append(fields, zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))...)
		}
	}()

	borrow, err := d.Grant(ctx, req)
	switch {
	case err == nil:
		d.metrics.granted(ctx)
		zap.L().Info("book loaned", append(fields, zap.String("borrow_id", borrow.ID), zap.String("book_id", borrow.BookID))...)
	case isRejection(err):
		d.metrics.rejected(ctx, rejectionReason(err))
		zap.L().Info("loan rejected", append(fields, zap.Error(err))...)
	default:
		d.metrics.rejected(ctx, rejectionReason(err))
		zap.L().Error("loan failed", append(fields, zap.Error(err))...)
	}
}

// Grant runs the loaning protocol for req and returns the recorded borrow.
func (d *Dispatcher) Grant(ctx context.Context, req domain.LoanRequest) (*domain.Borrow, error) {
	membership, err := d.memberships.FindByCitizen(ctx, req.CitizenID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrNoMembership
	}

	copies, err := d.books.FindByTitle(ctx, req.BookTitle, req.BookAuthor)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(copies))
	for _, book := range copies {
		ids = append(ids, book.ID)
	}

	active, err := d.borrows.FindActive(ctx, membership.ID, ids)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrAlreadyBorrowed
	}
	if len(copies) == 0 {
		return nil, ErrBookNotFound
	}

	for _, book := range copies {
		if !book.Available {
			continue
		}
		borrow, err := d.loan(ctx, membership.ID, book.ID)
		if errors.Is(err, errCopyTaken) {
			continue
		}
		return borrow, err
	}
	return nil, ErrBookUnavailable
}

// loan flips one copy to unavailable and records the borrow while holding the
// copy's lock. The copy is re-read under the lock: the availability seen by
// the query may already be stale.
func (d *Dispatcher) loan(ctx context.Context, membershipID, bookID string) (*domain.Borrow, error) {
	release, err := d.bookLocks.LockFor(bookID).Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	book, err := d.books.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil || !book.Available {
		return nil, errCopyTaken
	}

	if err := d.books.SetAvailable(ctx, bookID, false); err != nil {
		return nil, err
	}

	today := d.today()
	borrow := &domain.Borrow{
		BookID:       bookID,
		MembershipID: membershipID,
		BorrowDate:   today,
		DueDate:      today.Add(domain.LoanPeriod),
	}
	if err := d.borrows.Create(ctx, borrow); err != nil {
		if rbErr := d.books.SetAvailable(context.WithoutCancel(ctx), bookID, true); rbErr != nil {
			zap.L().Error("can't restore book availability", zap.String("book_id", bookID), zap.Error(rbErr))
		}
		return nil, err
	}
	return borrow, nil
}

func isRejection(err error) bool {
	return errors.Is(err, ErrNoMembership) ||
		errors.Is(err, ErrAlreadyBorrowed) ||
		errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrBookUnavailable)
}
