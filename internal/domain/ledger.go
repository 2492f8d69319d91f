package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger transaction. Receivable and Payable
// are outstanding obligations; Received and Paid record an already settled
// leg and are created directly in Completed status.
type TransactionType string

const (
	TypeReceivable TransactionType = "Receivable"
	TypePayable    TransactionType = "Payable"
	TypeReceived   TransactionType = "Received"
	TypePaid       TransactionType = "Paid"
)

// TransactionStatus is the settlement state of a ledger transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "Pending"
	TransactionCompleted TransactionStatus = "Completed"
)

// LedgerInstallmentStep is the due-date spacing, in days, between sibling
// transactions generated from one installment-enabled entry.
const LedgerInstallmentStep = 30

// LedgerTransaction is a receivable/payable entry tracked against a named
// counterparty. The deleted axis (DeletedAt) and the status axis are
// independent: a row can be deleted while completed and restored as such.
type LedgerTransaction struct {
	CreatedAt         time.Time
	UpdatedAt         time.Time
	TransactionDate   time.Time
	DueDate           *time.Time
	CompletionDate    *time.Time
	DeletedAt         *time.Time
	ID                string
	OwnerID           string
	Counterparty      string
	Description       string
	Type              TransactionType
	Status            TransactionStatus
	Amount            decimal.Decimal
	InstallmentNumber int
	TotalInstallments int
}

// Validate validates transaction fields prior to any write.
func (t *LedgerTransaction) Validate() error {
	if err := ValidateCounterparty(t.Counterparty); err != nil {
		return err
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	switch t.Type {
	case TypeReceivable, TypePayable, TypeReceived, TypePaid:
		return nil
	default:
		return ErrInvalidType
	}
}

// IsDeleted reports whether the row is soft-deleted.
func (t *LedgerTransaction) IsDeleted() bool {
	return t.DeletedAt != nil
}

// SoftDelete marks the row deleted without removing it.
func (t *LedgerTransaction) SoftDelete(at time.Time) error {
	if t.IsDeleted() {
		return ErrAlreadyDeleted
	}

	t.DeletedAt = &at

	return nil
}

// Restore clears the deleted marker, returning the row to active views
// with all other fields unchanged.
func (t *LedgerTransaction) Restore() error {
	if !t.IsDeleted() {
		return ErrNotDeleted
	}

	t.DeletedAt = nil

	return nil
}

// StatusLocked reports whether the status axis is frozen. Received and
// Paid rows record a settled leg and never move back to Pending.
func (t *LedgerTransaction) StatusLocked() bool {
	return t.Type == TypeReceived || t.Type == TypePaid
}

// ToggleStatus flips the row between Pending and Completed, stamping or
// clearing the completion date.
func (t *LedgerTransaction) ToggleStatus(at time.Time) error {
	if t.StatusLocked() {
		return ErrStatusLocked
	}

	if t.Status == TransactionPending {
		t.Status = TransactionCompleted
		t.CompletionDate = &at

		return nil
	}

	t.Status = TransactionPending
	t.CompletionDate = nil

	return nil
}

// IsOverdue reports whether a pending row's due date has passed.
func (t *LedgerTransaction) IsOverdue(today time.Time) bool {
	return t.Status == TransactionPending && t.DueDate != nil && t.DueDate.Before(today)
}

// CounterpartyBalance is the derived position against one counterparty,
// computed from pending rows at query time, never stored.
type CounterpartyBalance struct {
	Counterparty    string
	Settlement      string
	TotalReceivable decimal.Decimal
	TotalPayable    decimal.Decimal
	NetBalance      decimal.Decimal
}

// Settlement states for a counterparty balance.
const (
	SettlementOweYou  = "OWE_YOU"
	SettlementYouOwe  = "YOU_OWE"
	SettlementSettled = "SETTLED"
)

// ComputeCounterpartyBalance sums pending receivables and payables for one
// counterparty. Soft-deleted rows are ignored.
func ComputeCounterpartyBalance(counterparty string, transactions []*LedgerTransaction) CounterpartyBalance {
	b := CounterpartyBalance{
		Counterparty:    counterparty,
		TotalReceivable: decimal.Zero,
		TotalPayable:    decimal.Zero,
	}

	for _, t := range transactions {
		if t.IsDeleted() || !strings.EqualFold(t.Counterparty, counterparty) {
			continue
		}

		if t.Status != TransactionPending {
			continue
		}

		switch t.Type {
		case TypeReceivable:
			b.TotalReceivable = b.TotalReceivable.Add(t.Amount)
		case TypePayable:
			b.TotalPayable = b.TotalPayable.Add(t.Amount)
		}
	}

	b.NetBalance = b.TotalReceivable.Sub(b.TotalPayable)

	switch {
	case b.NetBalance.IsPositive():
		b.Settlement = SettlementOweYou
	case b.NetBalance.IsNegative():
		b.Settlement = SettlementYouOwe
	default:
		b.Settlement = SettlementSettled
	}

	return b
}

// SummarizeCounterparties computes balances for every counterparty present
// in the transaction list, ordered by absolute net balance, largest first.
func SummarizeCounterparties(transactions []*LedgerTransaction) []CounterpartyBalance {
	seen := make(map[string]string)
	for _, t := range transactions {
		if t.IsDeleted() {
			continue
		}

		key := strings.ToUpper(t.Counterparty)
		if _, ok := seen[key]; !ok {
			seen[key] = t.Counterparty
		}
	}

	balances := make([]CounterpartyBalance, 0, len(seen))
	for _, name := range seen {
		balances = append(balances, ComputeCounterpartyBalance(name, transactions))
	}

	sort.Slice(balances, func(i, j int) bool {
		return balances[i].NetBalance.Abs().GreaterThan(balances[j].NetBalance.Abs())
	})

	return balances
}

// AgingBuckets groups pending amounts by days overdue.
type AgingBuckets struct {
	Current    decimal.Decimal
	Days0to30  decimal.Decimal
	Days31to60 decimal.Decimal
	Days61to90 decimal.Decimal
	Over90     decimal.Decimal
}

// AgingReport is the aging analysis of receivables and payables.
type AgingReport struct {
	Receivables AgingBuckets
	Payables    AgingBuckets
}

// ComputeAging buckets pending receivables and payables by how far past
// due they are as of today. Rows without a due date count as current.
func ComputeAging(transactions []*LedgerTransaction, today time.Time) AgingReport {
	report := AgingReport{
		Receivables: newAgingBuckets(),
		Payables:    newAgingBuckets(),
	}

	for _, t := range transactions {
		if t.IsDeleted() || t.Status != TransactionPending {
			continue
		}

		var buckets *AgingBuckets

		switch t.Type {
		case TypeReceivable:
			buckets = &report.Receivables
		case TypePayable:
			buckets = &report.Payables
		default:
			continue
		}

		if t.DueDate == nil || !t.DueDate.Before(today) {
			buckets.Current = buckets.Current.Add(t.Amount)
			continue
		}

		switch days := int(today.Sub(*t.DueDate).Hours() / 24); {
		case days <= 30:
			buckets.Days0to30 = buckets.Days0to30.Add(t.Amount)
		case days <= 60:
			buckets.Days31to60 = buckets.Days31to60.Add(t.Amount)
		case days <= 90:
			buckets.Days61to90 = buckets.Days61to90.Add(t.Amount)
		default:
			buckets.Over90 = buckets.Over90.Add(t.Amount)
		}
	}

	return report
}

func newAgingBuckets() AgingBuckets {
	return AgingBuckets{
		Current:    decimal.Zero,
		Days0to30:  decimal.Zero,
		Days31to60: decimal.Zero,
		Days61to90: decimal.Zero,
		Over90:     decimal.Zero,
	}
}
