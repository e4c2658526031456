package dispatch

import (
	"context"
	"sync"

	"github.com/GlebRadaev/bookcounter/internal/domain"
)

// queue is an unbounded FIFO of loan requests shared by all counters.
type queue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []domain.LoanRequest
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push wakes every waiter: a single signal could land on a counter that has
// been paused meanwhile and would be lost.
func (q *queue) push(req domain.LoanRequest) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, req)
	q.cond.Broadcast()
}

// pop blocks until a request is available and takes it. It gives up without
// taking anything once ready reports false or ctx is done. ready is evaluated
// with the queue mutex held.
func (q *queue) pop(ctx context.Context, ready func() bool) (domain.LoanRequest, bool) {
	stop := context.AfterFunc(ctx, q.broadcast)
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		if ctx.Err() != nil || !ready() {
			return domain.LoanRequest{}, false
		}
		if len(q.items) > 0 {
			req := q.items[0]
			q.items[0] = domain.LoanRequest{}
			q.items = q.items[1:]
			return req, true
		}
		q.cond.Wait()
	}
}

func (q *queue) broadcast() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cond.Broadcast()
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
