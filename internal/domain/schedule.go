package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the cadence between scheduled payments.
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyCustom  Frequency = "custom"
)

// ScheduledPayment is one generated payment obligation. Sequence is 1-based.
type ScheduledPayment struct {
	DueDate  time.Time
	Amount   decimal.Decimal
	Sequence int
}

// GenerateSchedule splits total into count payments starting at start.
//
// Every payment carries floor(total/count) rounded to two decimal places,
// except the last one, which absorbs the residual so the amounts always sum
// to total exactly. customDays is only read for FrequencyCustom.
func GenerateSchedule(total decimal.Decimal, count int, start time.Time, freq Frequency, customDays int) ([]ScheduledPayment, error) {
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	if count < 1 {
		return nil, ErrInvalidInstallmentCount
	}

	switch freq {
	case FrequencyMonthly, FrequencyWeekly:
	case FrequencyCustom:
		if customDays < 1 {
			return nil, ErrInvalidCustomDays
		}
	default:
		return nil, ErrInvalidFrequency
	}

	base := total.DivRound(decimal.NewFromInt(int64(count)), 4).RoundFloor(2)
	// A count larger than the total in minor units floors the per-payment
	// amount to zero, which no installment may carry.
	if base.IsZero() {
		return nil, ErrInvalidInstallmentCount
	}

	payments := make([]ScheduledPayment, count)
	for i := 0; i < count; i++ {
		amount := base
		if i == count-1 {
			amount = total.Sub(base.Mul(decimal.NewFromInt(int64(count - 1))))
		}

		payments[i] = ScheduledPayment{
			Sequence: i + 1,
			DueDate:  dueDate(start, i, freq, customDays),
			Amount:   amount,
		}
	}

	return payments, nil
}

func dueDate(start time.Time, index int, freq Frequency, customDays int) time.Time {
	switch freq {
	case FrequencyWeekly:
		return start.AddDate(0, 0, 7*index)
	case FrequencyCustom:
		return start.AddDate(0, 0, customDays*index)
	default:
		return AddMonths(start, index)
	}
}

// AddMonths advances t by whole calendar months, clamping the day to the
// last valid day of the target month (31 Jan + 1 month = 28/29 Feb). The
// clamp is computed from the original day each time, so a start day of 31
// reverts to 31 in months that have one.
func AddMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())

	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}
