package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus is the payment state of a single installment.
type InstallmentStatus string

const (
	InstallmentPending   InstallmentStatus = "Pending"
	InstallmentCompleted InstallmentStatus = "Completed"
)

// Installment is one scheduled payment obligation owned by an instrument.
// Sequence is the 1-based position within the schedule.
type Installment struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DueDate      time.Time
	CompletedAt  *time.Time
	ID           string
	InstrumentID string
	Description  string
	Status       InstallmentStatus
	Amount       decimal.Decimal
	Sequence     int
}

// MarkCompleted transitions the installment to Completed, stamping the
// completion date. at may be a backdated, user-supplied time. Installments
// can be completed in any order.
func (i *Installment) MarkCompleted(at time.Time) {
	i.Status = InstallmentCompleted
	i.CompletedAt = &at
}

// MarkPending reverts the installment to Pending and clears the completion
// date. Both states stay reachable from the other.
func (i *Installment) MarkPending() {
	i.Status = InstallmentPending
	i.CompletedAt = nil
}

// Toggle flips the installment between Pending and Completed.
func (i *Installment) Toggle(at time.Time) {
	if i.Status == InstallmentCompleted {
		i.MarkPending()
		return
	}

	i.MarkCompleted(at)
}

// Validate validates an installment edit.
func (i *Installment) Validate() error {
	if i.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	switch i.Status {
	case InstallmentPending, InstallmentCompleted:
		return nil
	default:
		return ErrInvalidStatus
	}
}
