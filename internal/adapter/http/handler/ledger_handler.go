package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) ([]*domain.LedgerTransaction, error)
	GetTransaction(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.LedgerTransaction, error)
	UpdateTransaction(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.LedgerTransaction, error)
	ToggleTransactionStatus(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error)
	BulkToggleTransactionStatus(ctx context.Context, input usecase.BulkToggleInput) (*usecase.BulkOutcome, error)
	DeleteTransaction(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error)
	UndoDelete(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error)
	BulkUndoDelete(ctx context.Context, input usecase.BulkToggleInput) (*usecase.BulkOutcome, error)
	CounterpartySummaries(ctx context.Context, ownerID string) ([]domain.CounterpartyBalance, error)
	CounterpartyDetail(ctx context.Context, ownerID, name string) (domain.CounterpartyBalance, []*domain.LedgerTransaction, error)
	RenameCounterparty(ctx context.Context, ownerID, oldName, newName string) (int64, error)
	Aging(ctx context.Context, ownerID, counterparty string) (*domain.AgingReport, error)
}

// LedgerHandler handles ledger transaction HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Create creates one transaction, or a series of siblings when
// total_installments is greater than one.
func (h *LedgerHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transactions, err := h.ledgerUC.CreateTransaction(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        int64(len(transactions)),
	})
}

// Get retrieves one transaction.
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.ledgerUC.GetTransaction(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// List lists active transactions with filters.
func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// ListDeleted lists soft-deleted transactions.
func (h *LedgerHandler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *LedgerHandler) list(w http.ResponseWriter, r *http.Request, deletedOnly bool) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	q := r.URL.Query()

	input := usecase.ListTransactionsInput{
		OwnerID:      ownerID,
		Counterparty: q.Get("counterparty"),
		Search:       q.Get("search"),
		Status:       domain.TransactionStatus(q.Get("status")),
		Type:         domain.TransactionType(q.Get("type")),
		DeletedOnly:  deletedOnly,
		OverdueOnly:  q.Get("overdue") == "true",
		Limit:        parseIntQuery(r, "limit", 20),
		Offset:       parseIntQuery(r, "offset", 0),
	}

	if v := q.Get("start_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			input.StartDate = &t
		}
	}
	if v := q.Get("end_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			input.EndDate = &t
		}
	}

	transactions, err := h.ledgerUC.ListTransactions(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        int64(len(transactions)),
	})
}

// Update edits one transaction.
func (h *LedgerHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.ledgerUC.UpdateTransaction(r.Context(), req.ToUseCaseInput(ownerID, id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// ToggleStatus flips one transaction between Pending and Completed.
func (h *LedgerHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.ledgerUC.ToggleTransactionStatus(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to toggle transaction status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// BulkToggleStatus toggles several transactions, reporting per-item
// outcomes.
func (h *LedgerHandler) BulkToggleStatus(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, h.ledgerUC.BulkToggleTransactionStatus, "failed to toggle transactions")
}

// Delete soft-deletes one transaction.
func (h *LedgerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.ledgerUC.DeleteTransaction(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to delete transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// Undo restores one soft-deleted transaction.
func (h *LedgerHandler) Undo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.ledgerUC.UndoDelete(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to restore transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// BulkUndo restores several soft-deleted transactions.
func (h *LedgerHandler) BulkUndo(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, h.ledgerUC.BulkUndoDelete, "failed to restore transactions")
}

func (h *LedgerHandler) bulk(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, input usecase.BulkToggleInput) (*usecase.BulkOutcome, error),
	errMsg string,
) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	var req dto.BulkIDsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "no transaction IDs given", "")
		return
	}

	outcome, err := op(r.Context(), usecase.BulkToggleInput{OwnerID: ownerID, IDs: req.IDs})
	if err != nil {
		writeError(w, mapDomainError(err), errMsg, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BulkOutcomeFromUseCase(outcome))
}

// Counterparties returns per-counterparty balance summaries.
func (h *LedgerHandler) Counterparties(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	balances, err := h.ledgerUC.CounterpartySummaries(r.Context(), ownerID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to summarize counterparties", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CounterpartyBalancesFromDomain(balances))
}

// CounterpartyDetail returns one counterparty's balance and transactions.
func (h *LedgerHandler) CounterpartyDetail(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing counterparty name", "")
		return
	}

	balance, transactions, err := h.ledgerUC.CounterpartyDetail(r.Context(), ownerID, name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get counterparty detail", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CounterpartyDetailResponse{
		Balance:      dto.CounterpartyBalanceFromDomain(balance),
		Transactions: dto.TransactionsFromDomain(transactions),
	})
}

// Rename renames a counterparty across all its transactions.
func (h *LedgerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing counterparty name", "")
		return
	}

	var req dto.RenameCounterpartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	renamed, err := h.ledgerUC.RenameCounterparty(r.Context(), ownerID, name, req.NewName)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to rename counterparty", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RenameCounterpartyResponse{Renamed: renamed})
}

// Aging returns the aging report for one counterparty.
func (h *LedgerHandler) Aging(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	report, err := h.ledgerUC.Aging(r.Context(), ownerID, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute aging", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AgingReportFromDomain(report))
}
