package domain

import "time"

// Event types
const (
	EventTypeInstrumentCreated    = "instrument.created"
	EventTypeInstrumentClosed     = "instrument.closed"
	EventTypeInstallmentCompleted = "installment.completed"
	EventTypeInstallmentReverted  = "installment.reverted"
	EventTypeTransactionCompleted = "ledger_transaction.completed"
	EventTypeTransactionDeleted   = "ledger_transaction.deleted"
	EventTypeTransactionRestored  = "ledger_transaction.restored"
)

// Aggregate types
const (
	AggregateTypeInstrument  = "instrument"
	AggregateTypeInstallment = "installment"
	AggregateTypeTransaction = "ledger_transaction"
)

// OutboxEvent represents an event recorded in the same database
// transaction as the state change and published asynchronously.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// InstrumentCreatedEvent payload
type InstrumentCreatedEvent struct {
	InstrumentID     string `json:"instrument_id"`
	Name             string `json:"name"`
	Kind             string `json:"kind"`
	Amount           string `json:"amount"`
	NoOfInstallments int    `json:"no_of_installments"`
}

// InstallmentCompletedEvent payload
type InstallmentCompletedEvent struct {
	InstallmentID string `json:"installment_id"`
	InstrumentID  string `json:"instrument_id"`
	Sequence      int    `json:"sequence"`
	Amount        string `json:"amount"`
	CompletedAt   string `json:"completed_at"`
}

// TransactionCompletedEvent payload
type TransactionCompletedEvent struct {
	TransactionID  string `json:"transaction_id"`
	Counterparty   string `json:"counterparty"`
	Type           string `json:"type"`
	Amount         string `json:"amount"`
	CompletionDate string `json:"completion_date"`
}
