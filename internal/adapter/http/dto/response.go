package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// InstrumentResponse represents an instrument in API responses.
type InstrumentResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Kind             string          `json:"kind"`
	Category         string          `json:"category,omitempty"`
	Status           string          `json:"status"`
	Amount           decimal.Decimal `json:"amount"`
	NoOfInstallments int             `json:"no_of_installments"`
	StartedOn        time.Time       `json:"started_on"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// InstrumentFromDomain converts a domain instrument to a response.
func InstrumentFromDomain(i *domain.Instrument) *InstrumentResponse {
	return &InstrumentResponse{
		ID:               i.ID,
		Name:             i.Name,
		Kind:             string(i.Kind),
		Category:         i.Category,
		Status:           string(i.Status),
		Amount:           i.Amount,
		NoOfInstallments: i.NoOfInstallments,
		StartedOn:        i.StartedOn,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

// AggregateResponse represents derived instrument totals.
type AggregateResponse struct {
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PaidCount       int             `json:"paid_count"`
	RemainingCount  int             `json:"remaining_count"`
	Inconsistent    bool            `json:"inconsistent,omitempty"`
}

// AggregateFromDomain converts a domain aggregate to a response.
func AggregateFromDomain(a domain.Aggregate) AggregateResponse {
	return AggregateResponse{
		PaidAmount:      a.PaidAmount,
		RemainingAmount: a.RemainingAmount,
		PaidCount:       a.PaidCount,
		RemainingCount:  a.RemainingCount,
		Inconsistent:    a.Inconsistent,
	}
}

// InstallmentResponse represents an installment in API responses.
type InstallmentResponse struct {
	ID           string          `json:"id"`
	InstrumentID string          `json:"instrument_id"`
	Sequence     int             `json:"sequence"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      time.Time       `json:"due_date"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}

// InstallmentFromDomain converts a domain installment to a response.
func InstallmentFromDomain(i *domain.Installment) *InstallmentResponse {
	return &InstallmentResponse{
		ID:           i.ID,
		InstrumentID: i.InstrumentID,
		Sequence:     i.Sequence,
		Description:  i.Description,
		Status:       string(i.Status),
		Amount:       i.Amount,
		DueDate:      i.DueDate,
		CompletedAt:  i.CompletedAt,
	}
}

// InstallmentsFromDomain converts domain installments to responses.
func InstallmentsFromDomain(installments []*domain.Installment) []*InstallmentResponse {
	result := make([]*InstallmentResponse, len(installments))
	for i, ins := range installments {
		result[i] = InstallmentFromDomain(ins)
	}
	return result
}

// InstrumentDetailResponse bundles an instrument with its aggregate and
// installment schedule.
type InstrumentDetailResponse struct {
	Instrument   *InstrumentResponse    `json:"instrument"`
	Aggregate    AggregateResponse      `json:"aggregate"`
	Installments []*InstallmentResponse `json:"installments"`
}

// InstrumentDetailFromUseCase converts a use case detail to a response.
func InstrumentDetailFromUseCase(d *usecase.InstrumentDetail) *InstrumentDetailResponse {
	return &InstrumentDetailResponse{
		Instrument:   InstrumentFromDomain(d.Instrument),
		Aggregate:    AggregateFromDomain(d.Aggregate),
		Installments: InstallmentsFromDomain(d.Installments),
	}
}

// ListInstrumentsResponse represents a page of instruments.
type ListInstrumentsResponse struct {
	Instruments []*InstrumentDetailResponse `json:"instruments"`
	Total       int64                       `json:"total"`
}

// TransactionResponse represents a ledger transaction in API responses.
type TransactionResponse struct {
	ID                string          `json:"id"`
	Counterparty      string          `json:"counterparty"`
	Type              string          `json:"type"`
	Status            string          `json:"status"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description,omitempty"`
	Date              time.Time       `json:"date"`
	DueDate           *time.Time      `json:"due_date,omitempty"`
	CompletionDate    *time.Time      `json:"completion_date,omitempty"`
	DeletedAt         *time.Time      `json:"deleted_at,omitempty"`
	InstallmentNumber int             `json:"installment_number"`
	TotalInstallments int             `json:"total_installments"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.LedgerTransaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                t.ID,
		Counterparty:      t.Counterparty,
		Type:              string(t.Type),
		Status:            string(t.Status),
		Amount:            t.Amount,
		Description:       t.Description,
		Date:              t.TransactionDate,
		DueDate:           t.DueDate,
		CompletionDate:    t.CompletionDate,
		DeletedAt:         t.DeletedAt,
		InstallmentNumber: t.InstallmentNumber,
		TotalInstallments: t.TotalInstallments,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.LedgerTransaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse represents a page of transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// BulkFailureResponse reports one failed item of a bulk operation.
type BulkFailureResponse struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkOutcomeResponse reports per-item results of a bulk operation.
type BulkOutcomeResponse struct {
	Updated []string              `json:"updated"`
	Failed  []BulkFailureResponse `json:"failed"`
}

// BulkOutcomeFromUseCase converts a use case outcome to a response.
func BulkOutcomeFromUseCase(o *usecase.BulkOutcome) *BulkOutcomeResponse {
	resp := &BulkOutcomeResponse{
		Updated: o.Updated,
		Failed:  make([]BulkFailureResponse, len(o.Failed)),
	}
	if resp.Updated == nil {
		resp.Updated = []string{}
	}
	for i, f := range o.Failed {
		resp.Failed[i] = BulkFailureResponse{ID: f.ID, Reason: f.Reason}
	}
	return resp
}

// CounterpartyBalanceResponse represents one counterparty's balance.
type CounterpartyBalanceResponse struct {
	Counterparty    string          `json:"counterparty"`
	Settlement      string          `json:"settlement"`
	TotalReceivable decimal.Decimal `json:"total_receivable"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
	NetBalance      decimal.Decimal `json:"net_balance"`
}

// CounterpartyBalanceFromDomain converts a domain balance to a response.
func CounterpartyBalanceFromDomain(b domain.CounterpartyBalance) CounterpartyBalanceResponse {
	return CounterpartyBalanceResponse{
		Counterparty:    b.Counterparty,
		Settlement:      b.Settlement,
		TotalReceivable: b.TotalReceivable,
		TotalPayable:    b.TotalPayable,
		NetBalance:      b.NetBalance,
	}
}

// CounterpartyBalancesFromDomain converts domain balances to responses.
func CounterpartyBalancesFromDomain(balances []domain.CounterpartyBalance) []CounterpartyBalanceResponse {
	result := make([]CounterpartyBalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = CounterpartyBalanceFromDomain(b)
	}
	return result
}

// CounterpartyDetailResponse bundles a counterparty balance with its
// active transactions.
type CounterpartyDetailResponse struct {
	Balance      CounterpartyBalanceResponse `json:"balance"`
	Transactions []*TransactionResponse      `json:"transactions"`
}

// RenameCounterpartyResponse reports how many rows a rename touched.
type RenameCounterpartyResponse struct {
	Renamed int64 `json:"renamed"`
}

// AgingBucketsResponse represents one side of an aging report.
type AgingBucketsResponse struct {
	Current    decimal.Decimal `json:"current"`
	Days0to30  decimal.Decimal `json:"days_0_30"`
	Days31to60 decimal.Decimal `json:"days_31_60"`
	Days61to90 decimal.Decimal `json:"days_61_90"`
	Over90     decimal.Decimal `json:"over_90"`
}

// AgingReportResponse represents the aging of receivables and payables.
type AgingReportResponse struct {
	Receivables AgingBucketsResponse `json:"receivables"`
	Payables    AgingBucketsResponse `json:"payables"`
}

// AgingReportFromDomain converts a domain aging report to a response.
func AgingReportFromDomain(r *domain.AgingReport) *AgingReportResponse {
	return &AgingReportResponse{
		Receivables: agingBuckets(r.Receivables),
		Payables:    agingBuckets(r.Payables),
	}
}

func agingBuckets(b domain.AgingBuckets) AgingBucketsResponse {
	return AgingBucketsResponse{
		Current:    b.Current,
		Days0to30:  b.Days0to30,
		Days31to60: b.Days31to60,
		Days61to90: b.Days61to90,
		Over90:     b.Over90,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
