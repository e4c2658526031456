package dispatch

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const (
	grantedMetric  = "bookcounter.loans.granted"
	rejectedMetric = "bookcounter.loans.rejected"
)

const (
	reasonNoMembership    = "no_membership"
	reasonBorrowed        = "already_borrowed"
	reasonBookNotFound    = "book_not_found"
	reasonBookUnavailable = "book_unavailable"
	reasonError           = "error"
	reasonPanic           = "panic"
)

type metrics struct {
	grantedCounter  metric.Int64Counter
	rejectedCounter metric.Int64Counter
}

// newMetrics tolerates instrument errors: a loan is never refused because it
// can't be counted.
func newMetrics(meter metric.Meter) *metrics {
	m := &metrics{}
	if meter == nil {
		return m
	}

	var err error
	m.grantedCounter, err = meter.Int64Counter(grantedMetric,
		metric.WithDescription("Loan requests that produced a borrow"))
	if err != nil {
		zap.L().Warn("can't create metric", zap.String("metric", grantedMetric), zap.Error(err))
	}
	m.rejectedCounter, err = meter.Int64Counter(rejectedMetric,
		metric.WithDescription("Loan requests dropped without a borrow"))
	if err != nil {
		zap.L().Warn("can't create metric", zap.String("metric", rejectedMetric), zap.Error(err))
	}
	return m
}

func (m *metrics) granted(ctx context.Context) {
	if m.grantedCounter != nil {
		m.grantedCounter.Add(ctx, 1)
	}
}

func (m *metrics) rejected(ctx context.Context, reason string) {
	if m.rejectedCounter != nil {
		m.rejectedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrNoMembership):
		return reasonNoMembership
	case errors.Is(err, ErrAlreadyBorrowed):
		return reasonBorrowed
	case errors.Is(err, ErrBookNotFound):
		return reasonBookNotFound
	case errors.Is(err, ErrBookUnavailable):
		return reasonBookUnavailable
	default:
		return reasonError
	}
}
