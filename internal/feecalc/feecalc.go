// Package feecalc computes overdue fees for returned loans.
package feecalc

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRate is charged for every whole day a loan is returned late.
var DailyRate = decimal.NewFromInt(1)

const day = 24 * time.Hour

// OverdueDays is the number of whole calendar days between due and returned,
// zero when the loan came back on time or early.
func OverdueDays(due, returned time.Time) int {
	d := truncate(returned).Sub(truncate(due))
	if d <= 0 {
		return 0
	}
	return int(d / day)
}

func OverdueFee(due, returned time.Time, dailyRate decimal.Decimal) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(int64(OverdueDays(due, returned))))
}

// truncate drops the time of day so that a loan returned late in the evening
// of its due date is not charged.
func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
