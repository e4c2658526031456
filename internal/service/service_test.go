package service

import (
	"context"
	"testing"
	"time"

	"github.com/GlebRadaev/bookcounter/internal/dispatch"
	"github.com/GlebRadaev/bookcounter/internal/docstore/memstore"
	"github.com/GlebRadaev/bookcounter/internal/repo"
	"github.com/GlebRadaev/bookcounter/internal/service/catalogservice"
	"github.com/GlebRadaev/bookcounter/internal/service/returnservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNew(t *testing.T) {
	services := New(repo.New(memstore.New()), noop.NewMeterProvider().Meter("test"))

	assert.NotNil(t, services.Dispatcher)
	assert.NotNil(t, services.ReturnService)
	assert.NotNil(t, services.FeeService)
	assert.NotNil(t, services.EnrollmentService)
	assert.NotNil(t, services.CatalogService)
}

func TestServices_LoanAndReturn(t *testing.T) {
	repos := repo.New(memstore.New())
	services := New(repos, noop.NewMeterProvider().Meter("test"))

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		services.Dispatcher.Wait()
	}()
	require.NoError(t, services.Dispatcher.Start(ctx, 2))

	membership, err := services.Enroll(ctx, "c1")
	require.NoError(t, err)
	book, err := services.AddCopy(ctx, "Dune", "Herbert")
	require.NoError(t, err)

	services.SubmitLoanRequest("c1", "Dune", "Herbert")
	assert.Eventually(t, func() bool {
		borrows, err := repos.BorrowRepo.ListByMembership(ctx, membership.ID)
		return err == nil && len(borrows) == 1
	}, 2*time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, services.RemoveCopy(ctx, book.ID), catalogservice.ErrBookOnLoan)

	borrow, fee, err := services.ProcessReturn(ctx, membership.ID, "Dune", "Herbert")
	require.NoError(t, err)
	assert.Nil(t, fee, "a same-day return is on time")
	assert.Equal(t, book.ID, borrow.BookID)

	_, _, err = services.ProcessReturn(ctx, membership.ID, "Dune", "Herbert")
	assert.ErrorIs(t, err, returnservice.ErrNoActiveBorrow)

	require.NoError(t, services.RemoveCopy(ctx, book.ID))
}

func TestServices_CounterAdministration(t *testing.T) {
	services := New(repo.New(memstore.New()), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		services.Dispatcher.Wait()
	}()
	require.NoError(t, services.Dispatcher.Start(ctx, 2))

	require.NoError(t, services.PauseCounter(ctx, 2))
	paused, err := services.Dispatcher.IsPaused(2)
	require.NoError(t, err)
	assert.True(t, paused)

	require.NoError(t, services.ResumeCounter(ctx, 2))
	assert.ErrorIs(t, services.PauseCounter(ctx, 9), dispatch.ErrCounterNotFound)
}
