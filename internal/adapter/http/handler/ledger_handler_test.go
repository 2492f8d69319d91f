package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

type ledgerServiceStub struct {
	createFn     func(ctx context.Context, input usecase.CreateTransactionInput) ([]*domain.LedgerTransaction, error)
	getFn        func(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error)
	listFn       func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.LedgerTransaction, error)
	updateFn     func(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.LedgerTransaction, error)
	toggleFn     func(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error)
	bulkToggleFn func(ctx context.Context, input usecase.BulkToggleInput) (*usecase.BulkOutcome, error)
	deleteFn     func(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error)
	undoFn       func(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error)
	bulkUndoFn   func(ctx context.Context, input usecase.BulkToggleInput) (*usecase.BulkOutcome, error)
	summariesFn  func(ctx context.Context, ownerID string) ([]domain.CounterpartyBalance, error)
	detailFn     func(ctx context.Context, ownerID, name string) (domain.CounterpartyBalance, []*domain.LedgerTransaction, error)
	renameFn     func(ctx context.Context, ownerID, oldName, newName string) (int64, error)
	agingFn      func(ctx context.Context, ownerID, counterparty string) (*domain.AgingReport, error)
}

func (s *ledgerServiceStub) CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) ([]*domain.LedgerTransaction, error) {
	return s.createFn(ctx, input)
}

func (s *ledgerServiceStub) GetTransaction(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error) {
	return s.getFn(ctx, ownerID, id)
}

func (s *ledgerServiceStub) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.LedgerTransaction, error) {
	return s.listFn(ctx, input)
}

func (s *ledgerServiceStub) UpdateTransaction(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.LedgerTransaction, error) {
	return s.updateFn(ctx, input)
}

func (s *ledgerServiceStub) ToggleTransactionStatus(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error) {
	return s.toggleFn(ctx, ownerID, id)
}

func (s *ledgerServiceStub) BulkToggleTransactionStatus(ctx context.Context, input usecase.BulkToggleInput) (*usecase.BulkOutcome, error) {
	return s.bulkToggleFn(ctx, input)
}

func (s *ledgerServiceStub) DeleteTransaction(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error) {
	return s.deleteFn(ctx, ownerID, id)
}

func (s *ledgerServiceStub) UndoDelete(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error) {
	return s.undoFn(ctx, ownerID, id)
}

func (s *ledgerServiceStub) BulkUndoDelete(ctx context.Context, input usecase.BulkToggleInput) (*usecase.BulkOutcome, error) {
	return s.bulkUndoFn(ctx, input)
}

func (s *ledgerServiceStub) CounterpartySummaries(ctx context.Context, ownerID string) ([]domain.CounterpartyBalance, error) {
	return s.summariesFn(ctx, ownerID)
}

func (s *ledgerServiceStub) CounterpartyDetail(ctx context.Context, ownerID, name string) (domain.CounterpartyBalance, []*domain.LedgerTransaction, error) {
	return s.detailFn(ctx, ownerID, name)
}

func (s *ledgerServiceStub) RenameCounterparty(ctx context.Context, ownerID, oldName, newName string) (int64, error) {
	return s.renameFn(ctx, ownerID, oldName, newName)
}

func (s *ledgerServiceStub) Aging(ctx context.Context, ownerID, counterparty string) (*domain.AgingReport, error) {
	return s.agingFn(ctx, ownerID, counterparty)
}

func sampleTransaction(id string) *domain.LedgerTransaction {
	return &domain.LedgerTransaction{
		ID:                id,
		OwnerID:           "user-1",
		Counterparty:      "ALICE",
		Type:              domain.TypeReceivable,
		Status:            domain.TransactionPending,
		Amount:            decimal.RequireFromString("300"),
		TransactionDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		InstallmentNumber: 1,
		TotalInstallments: 1,
	}
}

func TestLedgerHandler_Create_SeriesReturned(t *testing.T) {
	var captured usecase.CreateTransactionInput
	handler := NewLedgerHandler(&ledgerServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) ([]*domain.LedgerTransaction, error) {
			captured = input
			return []*domain.LedgerTransaction{
				sampleTransaction("txn-1"),
				sampleTransaction("txn-2"),
				sampleTransaction("txn-3"),
			}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateTransactionRequest{
		Counterparty:      "alice",
		Type:              "Receivable",
		Amount:            decimal.RequireFromString("1000"),
		Date:              time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalInstallments: 3,
	})

	req := withOwner(httptest.NewRequest(http.MethodPost, "/ledger/transactions", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.OwnerID != "user-1" || captured.TotalInstallments != 3 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.ListTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 3 {
		t.Fatalf("expected 3 siblings, got %d", resp.Total)
	}
}

func TestLedgerHandler_Create_InvalidCounterparty(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) ([]*domain.LedgerTransaction, error) {
			return nil, domain.ErrInvalidCounterparty
		},
	})

	body, _ := json.Marshal(dto.CreateTransactionRequest{Type: "Receivable"})
	req := withOwner(httptest.NewRequest(http.MethodPost, "/ledger/transactions", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLedgerHandler_ToggleStatus_Locked(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		toggleFn: func(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error) {
			return nil, domain.ErrStatusLocked
		},
	})

	req := withOwner(httptest.NewRequest(http.MethodPost, "/ledger/transactions/txn-1/status", nil), "user-1")
	req = withURLParam(req, "id", "txn-1")
	rec := httptest.NewRecorder()

	handler.ToggleStatus(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLedgerHandler_BulkToggle_ReportsOutcome(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		bulkToggleFn: func(ctx context.Context, input usecase.BulkToggleInput) (*usecase.BulkOutcome, error) {
			return &usecase.BulkOutcome{
				Updated: []string{"txn-1"},
				Failed:  []usecase.BulkFailure{{ID: "txn-2", Reason: "ledger transaction not found"}},
			}, nil
		},
	})

	body, _ := json.Marshal(dto.BulkIDsRequest{IDs: []string{"txn-1", "txn-2"}})
	req := withOwner(httptest.NewRequest(http.MethodPost, "/ledger/transactions/status", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	handler.BulkToggleStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BulkOutcomeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Updated) != 1 || len(resp.Failed) != 1 {
		t.Fatalf("expected one success and one failure, got %+v", resp)
	}
	if resp.Failed[0].ID != "txn-2" {
		t.Fatalf("expected txn-2 to fail, got %s", resp.Failed[0].ID)
	}
}

func TestLedgerHandler_BulkToggle_EmptyIDs(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		bulkToggleFn: func(ctx context.Context, input usecase.BulkToggleInput) (*usecase.BulkOutcome, error) {
			t.Fatal("bulk toggle should not be called with no IDs")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.BulkIDsRequest{})
	req := withOwner(httptest.NewRequest(http.MethodPost, "/ledger/transactions/status", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	handler.BulkToggleStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLedgerHandler_Delete_AlreadyDeleted(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		deleteFn: func(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error) {
			return nil, domain.ErrAlreadyDeleted
		},
	})

	req := withOwner(httptest.NewRequest(http.MethodDelete, "/ledger/transactions/txn-1", nil), "user-1")
	req = withURLParam(req, "id", "txn-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLedgerHandler_Undo_ReturnsTransaction(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		undoFn: func(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error) {
			return sampleTransaction(id), nil
		},
	})

	req := withOwner(httptest.NewRequest(http.MethodPost, "/ledger/transactions/txn-1/undo", nil), "user-1")
	req = withURLParam(req, "id", "txn-1")
	rec := httptest.NewRecorder()

	handler.Undo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "txn-1" {
		t.Fatalf("expected txn-1, got %s", resp.ID)
	}
}

func TestLedgerHandler_ListDeleted_SetsFlag(t *testing.T) {
	var captured usecase.ListTransactionsInput
	handler := NewLedgerHandler(&ledgerServiceStub{
		listFn: func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.LedgerTransaction, error) {
			captured = input
			return []*domain.LedgerTransaction{}, nil
		},
	})

	req := withOwner(httptest.NewRequest(http.MethodGet, "/ledger/transactions/deleted", nil), "user-1")
	rec := httptest.NewRecorder()

	handler.ListDeleted(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !captured.DeletedOnly {
		t.Fatal("expected DeletedOnly filter to be set")
	}
}

func TestLedgerHandler_Counterparties(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		summariesFn: func(ctx context.Context, ownerID string) ([]domain.CounterpartyBalance, error) {
			return []domain.CounterpartyBalance{
				{
					Counterparty:    "ALICE",
					Settlement:      domain.SettlementOweYou,
					TotalReceivable: decimal.RequireFromString("300"),
					TotalPayable:    decimal.Zero,
					NetBalance:      decimal.RequireFromString("300"),
				},
			}, nil
		},
	})

	req := withOwner(httptest.NewRequest(http.MethodGet, "/ledger/counterparties", nil), "user-1")
	rec := httptest.NewRecorder()

	handler.Counterparties(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []dto.CounterpartyBalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].Settlement != domain.SettlementOweYou {
		t.Fatalf("unexpected summaries: %+v", resp)
	}
}

func TestLedgerHandler_Rename(t *testing.T) {
	var gotOld, gotNew string
	handler := NewLedgerHandler(&ledgerServiceStub{
		renameFn: func(ctx context.Context, ownerID, oldName, newName string) (int64, error) {
			gotOld, gotNew = oldName, newName
			return 2, nil
		},
	})

	body, _ := json.Marshal(dto.RenameCounterpartyRequest{NewName: "Alice Smith"})
	req := withOwner(httptest.NewRequest(http.MethodPost, "/ledger/counterparties/ALICE/rename", bytes.NewReader(body)), "user-1")
	req = withURLParam(req, "name", "ALICE")
	rec := httptest.NewRecorder()

	handler.Rename(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotOld != "ALICE" || gotNew != "Alice Smith" {
		t.Fatalf("expected rename ALICE -> Alice Smith, got %q -> %q", gotOld, gotNew)
	}

	var resp dto.RenameCounterpartyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Renamed != 2 {
		t.Fatalf("expected 2 renamed rows, got %d", resp.Renamed)
	}
}

func TestLedgerHandler_Aging_PassesCounterparty(t *testing.T) {
	var gotCounterparty string
	handler := NewLedgerHandler(&ledgerServiceStub{
		agingFn: func(ctx context.Context, ownerID, counterparty string) (*domain.AgingReport, error) {
			gotCounterparty = counterparty
			return &domain.AgingReport{}, nil
		},
	})

	req := withOwner(httptest.NewRequest(http.MethodGet, "/ledger/counterparties/ALICE/aging", nil), "user-1")
	req = withURLParam(req, "name", "ALICE")
	rec := httptest.NewRecorder()

	handler.Aging(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotCounterparty != "ALICE" {
		t.Fatalf("expected counterparty ALICE, got %q", gotCounterparty)
	}
}
