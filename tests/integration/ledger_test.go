package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/tests/testutil"
)

func TestLedgerTransactionLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	var series dto.ListTransactionsResponse

	t.Run("create a series splits the amount and steps due dates", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v1/ledger/transactions", "user-1", dto.CreateTransactionRequest{
			Counterparty:      "alice",
			Type:              "Receivable",
			Amount:            decimal.RequireFromString("1000"),
			Date:              date,
			TotalInstallments: 3,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		decodeBody(t, w, &series)

		if len(series.Transactions) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(series.Transactions))
		}

		// Counterparty is normalized to upper case on write.
		if series.Transactions[0].Counterparty != "ALICE" {
			t.Errorf("counterparty = %s, want ALICE", series.Transactions[0].Counterparty)
		}

		wantAmounts := []string{"333.33", "333.33", "333.34"}
		for i, want := range wantAmounts {
			if got := series.Transactions[i].Amount.StringFixed(2); got != want {
				t.Errorf("transaction %d amount = %s, want %s", i, got, want)
			}
		}

		// Sibling due dates step thirty days apart from the start date.
		second := series.Transactions[1]
		if second.DueDate == nil || !second.DueDate.Equal(date.AddDate(0, 0, 30)) {
			t.Errorf("second due date = %v, want %v", second.DueDate, date.AddDate(0, 0, 30))
		}
	})

	t.Run("received entries are created completed and status locked", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v1/ledger/transactions", "user-1", dto.CreateTransactionRequest{
			Counterparty: "bob",
			Type:         "Received",
			Amount:       decimal.RequireFromString("250"),
			Date:         date,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		var created dto.ListTransactionsResponse
		decodeBody(t, w, &created)

		txn := created.Transactions[0]
		if txn.Status != "Completed" {
			t.Errorf("status = %s, want Completed", txn.Status)
		}

		w = doRequest(t, router, http.MethodPost, "/api/v1/ledger/transactions/"+txn.ID+"/status", "user-1", nil)
		if w.Code != http.StatusConflict {
			t.Errorf("expected status %d toggling a settled entry, got %d: %s", http.StatusConflict, w.Code, w.Body.String())
		}
	})

	t.Run("toggle completes a pending transaction", func(t *testing.T) {
		txn := series.Transactions[0]

		w := doRequest(t, router, http.MethodPost, "/api/v1/ledger/transactions/"+txn.ID+"/status", "user-1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var got dto.TransactionResponse
		decodeBody(t, w, &got)

		if got.Status != "Completed" {
			t.Errorf("status = %s, want Completed", got.Status)
		}
		if got.CompletionDate == nil {
			t.Error("expected completion_date to be set")
		}
	})

	t.Run("bulk toggle reports per-item outcomes", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v1/ledger/transactions/status", "user-1", dto.BulkIDsRequest{
			IDs: []string{series.Transactions[1].ID, "missing"},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var outcome dto.BulkOutcomeResponse
		decodeBody(t, w, &outcome)

		if len(outcome.Updated) != 1 || outcome.Updated[0] != series.Transactions[1].ID {
			t.Errorf("updated = %v, want [%s]", outcome.Updated, series.Transactions[1].ID)
		}
		if len(outcome.Failed) != 1 || outcome.Failed[0].ID != "missing" {
			t.Errorf("failed = %v, want one entry for missing", outcome.Failed)
		}
	})

	t.Run("soft delete hides and undo restores", func(t *testing.T) {
		txn := series.Transactions[2]

		w := doRequest(t, router, http.MethodDelete, "/api/v1/ledger/transactions/"+txn.ID, "user-1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var deleted dto.TransactionResponse
		decodeBody(t, w, &deleted)
		if deleted.DeletedAt == nil {
			t.Error("expected deleted_at to be set")
		}

		// Deleting again conflicts.
		w = doRequest(t, router, http.MethodDelete, "/api/v1/ledger/transactions/"+txn.ID, "user-1", nil)
		if w.Code != http.StatusConflict {
			t.Errorf("expected status %d on double delete, got %d: %s", http.StatusConflict, w.Code, w.Body.String())
		}

		// The default listing excludes it; the deleted listing shows it.
		w = doRequest(t, router, http.MethodGet, "/api/v1/ledger/transactions", "user-1", nil)
		var active dto.ListTransactionsResponse
		decodeBody(t, w, &active)
		for _, item := range active.Transactions {
			if item.ID == txn.ID {
				t.Error("deleted transaction still listed as active")
			}
		}

		w = doRequest(t, router, http.MethodGet, "/api/v1/ledger/transactions/deleted", "user-1", nil)
		var trashed dto.ListTransactionsResponse
		decodeBody(t, w, &trashed)
		found := false
		for _, item := range trashed.Transactions {
			if item.ID == txn.ID {
				found = true
			}
		}
		if !found {
			t.Error("deleted transaction missing from deleted listing")
		}

		w = doRequest(t, router, http.MethodPost, "/api/v1/ledger/transactions/"+txn.ID+"/undo", "user-1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var restored dto.TransactionResponse
		decodeBody(t, w, &restored)
		if restored.DeletedAt != nil {
			t.Errorf("expected deleted_at cleared, got %v", restored.DeletedAt)
		}

		// Undoing a live row conflicts.
		w = doRequest(t, router, http.MethodPost, "/api/v1/ledger/transactions/"+txn.ID+"/undo", "user-1", nil)
		if w.Code != http.StatusConflict {
			t.Errorf("expected status %d on double undo, got %d: %s", http.StatusConflict, w.Code, w.Body.String())
		}
	})

	t.Run("owners are isolated", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/v1/ledger/transactions/"+series.Transactions[0].ID, "user-2", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d: %s", http.StatusNotFound, w.Code, w.Body.String())
		}
	})
}
