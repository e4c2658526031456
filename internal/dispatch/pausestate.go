package dispatch

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/GlebRadaev/bookcounter/internal/domain"
	"go.uber.org/zap"
)

type counterState struct {
	mu     sync.Mutex
	cond   *sync.Cond
	paused bool
}

func (s *counterState) set(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
	s.cond.Broadcast()
}

func (s *counterState) broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cond.Broadcast()
}

// PauseState holds the paused flag of every counter and mirrors it to and
// from the counters collection.
type PauseState struct {
	repo CounterRepo

	mu       sync.RWMutex
	counters map[int]*counterState
}

func NewPauseState(repo CounterRepo) *PauseState {
	return &PauseState{
		repo:     repo,
		counters: make(map[int]*counterState),
	}
}

// Init registers counters 1..n as running, resets the stored counters and
// starts following stored changes until ctx is done.
func (p *PauseState) Init(ctx context.Context, n int) error {
	counters := make(map[int]*counterState, n)
	for id := 1; id <= n; id++ {
		st := &counterState{}
		st.cond = sync.NewCond(&st.mu)
		counters[id] = st
	}

	p.mu.Lock()
	p.counters = counters
	p.mu.Unlock()

	if err := p.repo.Reset(ctx, n); err != nil {
		return fmt.Errorf("reset counters: %w", err)
	}
	if err := p.repo.Watch(ctx, p.apply); err != nil {
		return fmt.Errorf("watch counters: %w", err)
	}
	return nil
}

// apply copies a stored change into memory.
func (p *PauseState) apply(counter *domain.Counter) {
	st := p.state(counter.ID)
	if st == nil {
		zap.L().Error("change for unknown counter", zap.Int("counter", counter.ID))
		return
	}
	st.set(counter.IsPaused)
	zap.L().Debug("counter state changed", zap.Int("counter", counter.ID), zap.Bool("paused", counter.IsPaused))
}

func (p *PauseState) Pause(ctx context.Context, id int) error {
	return p.setPaused(ctx, id, true)
}

func (p *PauseState) Resume(ctx context.Context, id int) error {
	return p.setPaused(ctx, id, false)
}

func (p *PauseState) setPaused(ctx context.Context, id int, paused bool) error {
	st := p.state(id)
	if st == nil {
		return ErrCounterNotFound
	}
	if err := p.repo.SetPaused(ctx, id, paused); err != nil {
		return err
	}
	st.set(paused)
	return nil
}

func (p *PauseState) IsPaused(id int) (bool, error) {
	st := p.state(id)
	if st == nil {
		return false, ErrCounterNotFound
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.paused, nil
}

// WaitRunning blocks while counter id is paused.
func (p *PauseState) WaitRunning(ctx context.Context, id int) error {
	st := p.state(id)
	if st == nil {
		return ErrCounterNotFound
	}

	stop := context.AfterFunc(ctx, st.broadcast)
	defer stop()

	st.mu.Lock()
	defer st.mu.Unlock()
	for st.paused && ctx.Err() == nil {
		st.cond.Wait()
	}
	return ctx.Err()
}

// Counters returns the registered counter ids in ascending order.
func (p *PauseState) Counters() []int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := make([]int, 0, len(p.counters))
	for id := range p.counters {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (p *PauseState) state(id int) *counterState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.counters[id]
}
