package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstrumentKind identifies the type of financial instrument.
type InstrumentKind string

const (
	KindLoan  InstrumentKind = "Loan"
	KindSplit InstrumentKind = "Split"
	KindSIP   InstrumentKind = "SIP"
)

// InstrumentStatus is the lifecycle state of an instrument. Closing is a
// manual step, never derived from payoff.
type InstrumentStatus string

const (
	InstrumentOpen   InstrumentStatus = "Open"
	InstrumentClosed InstrumentStatus = "Closed"
)

// Instrument is a tracked financial product that owns a set of installments.
type Instrument struct {
	CreatedAt        time.Time
	UpdatedAt        time.Time
	StartedOn        time.Time
	ID               string
	OwnerID          string
	Name             string
	Category         string
	Kind             InstrumentKind
	Status           InstrumentStatus
	Amount           decimal.Decimal
	NoOfInstallments int
}

// Validate validates instrument fields prior to any write.
func (i *Instrument) Validate() error {
	if err := ValidateName(i.Name); err != nil {
		return err
	}

	switch i.Kind {
	case KindLoan, KindSIP:
	case KindSplit:
		if i.Category == "" {
			return ErrCategoryRequired
		}
	default:
		return ErrInvalidKind
	}

	if i.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if i.NoOfInstallments < 1 {
		return ErrInvalidInstallmentCount
	}

	return nil
}

// IsClosed reports whether the instrument has been closed by the user.
func (i *Instrument) IsClosed() bool {
	return i.Status == InstrumentClosed
}

// Aggregate holds the derived paid/remaining totals for an instrument.
// It is computed from the installment collection on read, never stored.
type Aggregate struct {
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	PaidCount       int
	RemainingCount  int
	Inconsistent    bool
}

// ComputeAggregate derives the aggregate from the full installment set.
// When manual edits have pushed the paid amount above the instrument total,
// the remaining amount clamps at zero and Inconsistent is set so callers
// can surface the condition instead of a negative balance.
func ComputeAggregate(inst *Instrument, installments []*Installment) Aggregate {
	agg := Aggregate{
		PaidAmount:      decimal.Zero,
		RemainingAmount: decimal.Zero,
	}

	for _, ins := range installments {
		if ins.Status == InstallmentCompleted {
			agg.PaidCount++
			agg.PaidAmount = agg.PaidAmount.Add(ins.Amount)
		}
	}

	agg.RemainingCount = inst.NoOfInstallments - agg.PaidCount
	agg.RemainingAmount = inst.Amount.Sub(agg.PaidAmount)

	if agg.RemainingAmount.IsNegative() {
		agg.RemainingAmount = decimal.Zero
		agg.Inconsistent = true
	}

	return agg
}
