package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/GlebRadaev/bookcounter/internal/config"
	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"github.com/GlebRadaev/bookcounter/internal/docstore/memstore"
	"github.com/GlebRadaev/bookcounter/internal/docstore/mongostore"
	"github.com/GlebRadaev/bookcounter/internal/docstore/pgstore"
	"github.com/GlebRadaev/bookcounter/internal/docstore/tracedstore"
	"github.com/GlebRadaev/bookcounter/internal/pg"
	"github.com/GlebRadaev/bookcounter/internal/repo"
	"github.com/GlebRadaev/bookcounter/internal/service"
	"github.com/GlebRadaev/bookcounter/pkg/logger"
	"github.com/GlebRadaev/bookcounter/pkg/telemetry"
)

const (
	serviceName     = "bookcounter"
	shutdownTimeout = 5 * time.Second
)

var ErrUnknownStore = errors.New("unknown store backend")

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg       *config.Config
	srv       *service.Services
	repo      *repo.Repositories
	telemetry *telemetry.Providers
	closers   []func(context.Context) error

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}
	return a.start(ctx, cfg)
}

func (a *Application) start(ctx context.Context, cfg *config.Config) error {
	providers, err := telemetry.Setup(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("can't set up telemetry: %w", err)
	}
	a.telemetry = providers

	store, err := a.openStore(ctx, cfg)
	if err != nil {
		zap.L().Error("open store failed", zap.String("backend", cfg.Store), zap.Error(err))
		a.abort()
		return fmt.Errorf("can't open %s store: %w", cfg.Store, err)
	}
	traced := tracedstore.New(store, otel.Tracer(tracedstore.TracerName))

	a.cfg = cfg
	a.repo = repo.New(traced)
	a.srv = service.New(a.repo, otel.Meter(serviceName))

	if err := a.startCounters(ctx); err != nil {
		a.abort()
		return fmt.Errorf("can't open loaning counters: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully",
		zap.String("store", cfg.Store),
		zap.Int("counters", cfg.Counters))
	return nil
}

// Services exposes the core operations once Start has succeeded.
func (a *Application) Services() *service.Services {
	return a.srv
}

func (a *Application) openStore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memstore.New(), nil
	case config.StoreMongo:
		store, disconnect, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, disconnect)
		return store, nil
	case config.StorePostgres:
		pool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("can't build pgx pool: %w", err)
		}
		if err := pg.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("can't run migrations: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error {
			pool.Close()
			return nil
		})
		return pgstore.New(pool, pg.NewListener(pool)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Store)
	}
}

func (a *Application) startCounters(ctx context.Context) error {
	if err := a.srv.Dispatcher.Start(ctx, a.cfg.Counters); err != nil {
		return err
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.srv.Dispatcher.Wait()
		if ctx.Err() == nil {
			a.errCh <- errors.New("loaning counters stopped before shutdown")
		}
	}()
	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	if err := a.shutdown(); err != nil && appErr == nil {
		appErr = err
	}
	return appErr
}

func (a *Application) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.srv != nil {
		if pending := a.srv.Dispatcher.Pending(); pending > 0 {
			zap.L().Warn("loan requests left unserved", zap.Int("pending", pending))
		}
	}

	if a.telemetry != nil {
		if err := a.telemetry.LogMetrics(ctx); err != nil {
			zap.L().Warn("can't report metrics", zap.Error(err))
		}
	}
	return a.release(ctx)
}

// abort releases whatever a failed start has opened.
func (a *Application) abort() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.release(ctx); err != nil {
		zap.L().Warn("can't release resources after failed start", zap.Error(err))
	}
}

// release closes store connections in reverse order of opening, then the
// telemetry providers. It is safe to call more than once.
func (a *Application) release(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	a.closers = nil
	if a.telemetry != nil {
		errs = append(errs, a.telemetry.Shutdown(ctx))
		a.telemetry = nil
	}
	return errors.Join(errs...)
}
