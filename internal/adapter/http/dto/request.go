package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// CreateInstrumentRequest represents a request to create an instrument.
type CreateInstrumentRequest struct {
	Name             string          `json:"name"`
	Kind             string          `json:"kind"`
	Category         string          `json:"category,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	NoOfInstallments int             `json:"no_of_installments"`
	StartedOn        time.Time       `json:"started_on"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateInstrumentRequest) ToUseCaseInput(ownerID string) usecase.CreateInstrumentInput {
	return usecase.CreateInstrumentInput{
		OwnerID:          ownerID,
		Name:             r.Name,
		Kind:             domain.InstrumentKind(r.Kind),
		Category:         r.Category,
		Amount:           r.Amount,
		NoOfInstallments: r.NoOfInstallments,
		StartedOn:        r.StartedOn,
	}
}

// UpdateInstrumentRequest represents a request to edit an instrument.
type UpdateInstrumentRequest struct {
	Name             string          `json:"name"`
	Kind             string          `json:"kind"`
	Category         string          `json:"category,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	NoOfInstallments int             `json:"no_of_installments"`
	StartedOn        time.Time       `json:"started_on"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateInstrumentRequest) ToUseCaseInput(ownerID, id string) usecase.UpdateInstrumentInput {
	return usecase.UpdateInstrumentInput{
		OwnerID:          ownerID,
		ID:               id,
		Name:             r.Name,
		Kind:             domain.InstrumentKind(r.Kind),
		Category:         r.Category,
		Amount:           r.Amount,
		NoOfInstallments: r.NoOfInstallments,
		StartedOn:        r.StartedOn,
	}
}

// ToggleStatusRequest represents a request to toggle one installment,
// optionally backdating the completion.
type ToggleStatusRequest struct {
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// BulkToggleStatusRequest represents a request to toggle several
// installments at once.
type BulkToggleStatusRequest struct {
	IDs         []string   `json:"ids"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// UpdateInstallmentRequest represents a request to edit one installment.
type UpdateInstallmentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DueDate     time.Time       `json:"due_date"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateInstallmentRequest) ToUseCaseInput(ownerID, id string) usecase.UpdateInstallmentInput {
	return usecase.UpdateInstallmentInput{
		OwnerID:     ownerID,
		ID:          id,
		Amount:      r.Amount,
		Description: r.Description,
		DueDate:     r.DueDate,
	}
}

// CreateTransactionRequest represents a request to create a ledger
// transaction, or a series when total_installments is greater than one.
type CreateTransactionRequest struct {
	Counterparty      string          `json:"counterparty"`
	Type              string          `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description,omitempty"`
	Date              time.Time       `json:"date"`
	DueDate           *time.Time      `json:"due_date,omitempty"`
	TotalInstallments int             `json:"total_installments,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput(ownerID string) usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		OwnerID:           ownerID,
		Counterparty:      r.Counterparty,
		Type:              domain.TransactionType(r.Type),
		Amount:            r.Amount,
		Description:       r.Description,
		Date:              r.Date,
		DueDate:           r.DueDate,
		TotalInstallments: r.TotalInstallments,
	}
}

// UpdateTransactionRequest represents a request to edit a transaction.
type UpdateTransactionRequest struct {
	Counterparty string          `json:"counterparty"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
	Date         time.Time       `json:"date"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput(ownerID, id string) usecase.UpdateTransactionInput {
	return usecase.UpdateTransactionInput{
		OwnerID:      ownerID,
		ID:           id,
		Counterparty: r.Counterparty,
		Amount:       r.Amount,
		Description:  r.Description,
		Date:         r.Date,
		DueDate:      r.DueDate,
	}
}

// BulkIDsRequest carries the target IDs of a bulk operation.
type BulkIDsRequest struct {
	IDs []string `json:"ids"`
}

// RenameCounterpartyRequest represents a request to rename a counterparty
// across all its transactions.
type RenameCounterpartyRequest struct {
	NewName string `json:"new_name"`
}
