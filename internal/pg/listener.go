package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -source=listener.go -destination=listener_mock.go -package=pg

// Subscription yields the notifications of one LISTEN session.
type Subscription interface {
	Next(ctx context.Context) (*pgconn.Notification, error)
	Close()
}

// Listener opens LISTEN sessions on dedicated pool connections.
type Listener struct {
	pool *pgxpool.Pool
}

func NewListener(pool *pgxpool.Pool) *Listener {
	return &Listener{pool: pool}
}

func (l *Listener) Listen(ctx context.Context, channel string) (Subscription, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to listen on %s: %w", channel, err)
	}
	return &subscription{conn: conn}, nil
}

type subscription struct {
	conn *pgxpool.Conn
}

func (s *subscription) Next(ctx context.Context) (*pgconn.Notification, error) {
	return s.conn.Conn().WaitForNotification(ctx)
}

// Close drops the connection instead of returning a listening session to the
// pool.
func (s *subscription) Close() {
	_ = s.conn.Conn().Close(context.Background())
	s.conn.Release()
}
