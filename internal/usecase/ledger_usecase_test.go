package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
	"github.com/iho/finledger/internal/usecase/mocks"
)

type ledgerFixture struct {
	uc         *usecase.LedgerUseCase
	ledgerRepo *mocks.MockLedgerTransactionRepository
	outboxRepo *mocks.MockOutboxRepository
}

func newLedgerFixture() *ledgerFixture {
	ledgerRepo := mocks.NewMockLedgerTransactionRepository()
	outboxRepo := mocks.NewMockOutboxRepository()

	return &ledgerFixture{
		uc: usecase.NewLedgerUseCase(
			mocks.NewMockTransactionManager(),
			ledgerRepo,
			outboxRepo,
			mocks.NewMockIDGenerator(),
			mocks.NewMockRetrier(),
		),
		ledgerRepo: ledgerRepo,
		outboxRepo: outboxRepo,
	}
}

func TestLedgerUseCase_CreateTransaction(t *testing.T) {
	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		input       usecase.CreateTransactionInput
		wantCount   int
		wantStatus  domain.TransactionStatus
		expectError error
	}{
		{
			name: "single receivable stays pending",
			input: usecase.CreateTransactionInput{
				OwnerID:      "user-1",
				Counterparty: "alice",
				Type:         domain.TypeReceivable,
				Amount:       decimal.RequireFromString("500.00"),
				Date:         date,
			},
			wantCount:  1,
			wantStatus: domain.TransactionPending,
		},
		{
			name: "received entry is created completed",
			input: usecase.CreateTransactionInput{
				OwnerID:      "user-1",
				Counterparty: "bob",
				Type:         domain.TypeReceived,
				Amount:       decimal.RequireFromString("120.00"),
				Date:         date,
			},
			wantCount:  1,
			wantStatus: domain.TransactionCompleted,
		},
		{
			name: "empty counterparty is rejected",
			input: usecase.CreateTransactionInput{
				OwnerID: "user-1",
				Type:    domain.TypeReceivable,
				Amount:  decimal.RequireFromString("10.00"),
				Date:    date,
			},
			expectError: domain.ErrInvalidCounterparty,
		},
		{
			name: "zero amount is rejected",
			input: usecase.CreateTransactionInput{
				OwnerID:      "user-1",
				Counterparty: "alice",
				Type:         domain.TypeReceivable,
				Amount:       decimal.Zero,
				Date:         date,
			},
			expectError: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture()

			transactions, err := f.uc.CreateTransaction(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(transactions) != tt.wantCount {
				t.Fatalf("expected %d transactions, got %d", tt.wantCount, len(transactions))
			}

			if transactions[0].Status != tt.wantStatus {
				t.Errorf("status %s, want %s", transactions[0].Status, tt.wantStatus)
			}
		})
	}
}

func TestLedgerUseCase_CreateTransaction_InstallmentSeries(t *testing.T) {
	f := newLedgerFixture()

	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	transactions, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID:           "user-1",
		Counterparty:      "alice",
		Type:              domain.TypePayable,
		Amount:            decimal.RequireFromString("1000.00"),
		Date:              date,
		TotalInstallments: 3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(transactions) != 3 {
		t.Fatalf("expected 3 siblings, got %d", len(transactions))
	}

	wantAmounts := []string{"333.33", "333.33", "333.34"}
	sum := decimal.Zero

	for i, txn := range transactions {
		if txn.Amount.String() != wantAmounts[i] {
			t.Errorf("sibling %d amount %s, want %s", i+1, txn.Amount, wantAmounts[i])
		}
		sum = sum.Add(txn.Amount)

		if txn.InstallmentNumber != i+1 {
			t.Errorf("sibling %d number %d", i+1, txn.InstallmentNumber)
		}
		if txn.TotalInstallments != 3 {
			t.Errorf("sibling %d total %d, want 3", i+1, txn.TotalInstallments)
		}
		if txn.Counterparty != "ALICE" {
			t.Errorf("counterparty %q, want ALICE", txn.Counterparty)
		}

		if txn.DueDate == nil {
			t.Fatalf("sibling %d has no due date", i+1)
		}
		want := date.AddDate(0, 0, 30*i)
		if !txn.DueDate.Equal(want) {
			t.Errorf("sibling %d due %s, want %s", i+1, txn.DueDate, want)
		}
	}

	if sum.String() != "1000" {
		t.Errorf("siblings sum %s, want 1000", sum)
	}
}

func TestLedgerUseCase_ToggleTransactionStatus(t *testing.T) {
	f := newLedgerFixture()

	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	created, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID:      "user-1",
		Counterparty: "alice",
		Type:         domain.TypeReceivable,
		Amount:       decimal.RequireFromString("500.00"),
		Date:         date,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	id := created[0].ID

	completed, err := f.uc.ToggleTransactionStatus(context.Background(), "user-1", id)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if completed.Status != domain.TransactionCompleted || completed.CompletionDate == nil {
		t.Errorf("expected completed with date, got %s %v", completed.Status, completed.CompletionDate)
	}

	pending, err := f.uc.ToggleTransactionStatus(context.Background(), "user-1", id)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if pending.Status != domain.TransactionPending || pending.CompletionDate != nil {
		t.Errorf("expected pending with cleared date, got %s %v", pending.Status, pending.CompletionDate)
	}
}

func TestLedgerUseCase_ToggleTransactionStatus_StatusLocked(t *testing.T) {
	f := newLedgerFixture()

	created, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID:      "user-1",
		Counterparty: "bob",
		Type:         domain.TypePaid,
		Amount:       decimal.RequireFromString("75.00"),
		Date:         time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.uc.ToggleTransactionStatus(context.Background(), "user-1", created[0].ID); !errors.Is(err, domain.ErrStatusLocked) {
		t.Errorf("expected ErrStatusLocked, got %v", err)
	}
}

func TestLedgerUseCase_BulkToggleTransactionStatus_PartialFailure(t *testing.T) {
	f := newLedgerFixture()

	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	receivable, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID:      "user-1",
		Counterparty: "alice",
		Type:         domain.TypeReceivable,
		Amount:       decimal.RequireFromString("100.00"),
		Date:         date,
	})
	if err != nil {
		t.Fatalf("create receivable: %v", err)
	}

	paid, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID:      "user-1",
		Counterparty: "bob",
		Type:         domain.TypePaid,
		Amount:       decimal.RequireFromString("50.00"),
		Date:         date,
	})
	if err != nil {
		t.Fatalf("create paid: %v", err)
	}

	outcome, err := f.uc.BulkToggleTransactionStatus(context.Background(), usecase.BulkToggleInput{
		OwnerID: "user-1",
		IDs:     []string{receivable[0].ID, paid[0].ID, "missing"},
	})
	if err != nil {
		t.Fatalf("bulk toggle: %v", err)
	}

	if len(outcome.Updated) != 1 || outcome.Updated[0] != receivable[0].ID {
		t.Errorf("updated %v, want only the receivable", outcome.Updated)
	}
	if len(outcome.Failed) != 2 {
		t.Errorf("failed %v, want locked and missing entries", outcome.Failed)
	}
}

func TestLedgerUseCase_SoftDeleteAndUndo(t *testing.T) {
	f := newLedgerFixture()

	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	created, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID:      "user-1",
		Counterparty: "alice",
		Type:         domain.TypeReceivable,
		Amount:       decimal.RequireFromString("500.00"),
		Date:         date,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	id := created[0].ID

	// Complete, then delete. Restore must bring the status back untouched.
	if _, err := f.uc.ToggleTransactionStatus(context.Background(), "user-1", id); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	deleted, err := f.uc.DeleteTransaction(context.Background(), "user-1", id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted.IsDeleted() {
		t.Error("expected deleted marker set")
	}
	if deleted.Status != domain.TransactionCompleted {
		t.Errorf("delete changed status to %s", deleted.Status)
	}

	if _, err := f.uc.DeleteTransaction(context.Background(), "user-1", id); !errors.Is(err, domain.ErrAlreadyDeleted) {
		t.Errorf("second delete: expected ErrAlreadyDeleted, got %v", err)
	}

	if _, err := f.uc.ToggleTransactionStatus(context.Background(), "user-1", id); !errors.Is(err, domain.ErrAlreadyDeleted) {
		t.Errorf("toggle while deleted: expected ErrAlreadyDeleted, got %v", err)
	}

	restored, err := f.uc.UndoDelete(context.Background(), "user-1", id)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if restored.IsDeleted() {
		t.Error("expected deleted marker cleared")
	}
	if restored.Status != domain.TransactionCompleted || restored.CompletionDate == nil {
		t.Errorf("restore lost status: %s %v", restored.Status, restored.CompletionDate)
	}

	if _, err := f.uc.UndoDelete(context.Background(), "user-1", id); !errors.Is(err, domain.ErrNotDeleted) {
		t.Errorf("second undo: expected ErrNotDeleted, got %v", err)
	}
}

func TestLedgerUseCase_BulkUndoDelete(t *testing.T) {
	f := newLedgerFixture()

	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for _, name := range []string{"alice", "bob"} {
		created, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			OwnerID:      "user-1",
			Counterparty: name,
			Type:         domain.TypeReceivable,
			Amount:       decimal.RequireFromString("100.00"),
			Date:         date,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, created[0].ID)
	}

	if _, err := f.uc.DeleteTransaction(context.Background(), "user-1", ids[0]); err != nil {
		t.Fatalf("delete: %v", err)
	}

	outcome, err := f.uc.BulkUndoDelete(context.Background(), usecase.BulkToggleInput{
		OwnerID: "user-1",
		IDs:     ids,
	})
	if err != nil {
		t.Fatalf("bulk undo: %v", err)
	}

	if len(outcome.Updated) != 1 || outcome.Updated[0] != ids[0] {
		t.Errorf("updated %v, want only the deleted id", outcome.Updated)
	}
	if len(outcome.Failed) != 1 || outcome.Failed[0].ID != ids[1] {
		t.Errorf("failed %v, want the never-deleted id", outcome.Failed)
	}
}

func TestLedgerUseCase_CounterpartySummaries(t *testing.T) {
	f := newLedgerFixture()

	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	seed := []struct {
		counterparty string
		txType       domain.TransactionType
		amount       string
	}{
		{"alice", domain.TypeReceivable, "500.00"},
		{"alice", domain.TypePayable, "200.00"},
		{"bob", domain.TypePayable, "50.00"},
	}

	for _, s := range seed {
		if _, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			OwnerID:      "user-1",
			Counterparty: s.counterparty,
			Type:         s.txType,
			Amount:       decimal.RequireFromString(s.amount),
			Date:         date,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	summaries, err := f.uc.CounterpartySummaries(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 counterparties, got %d", len(summaries))
	}

	// Largest absolute net first.
	if summaries[0].Counterparty != "ALICE" {
		t.Errorf("first summary %s, want ALICE", summaries[0].Counterparty)
	}
	if summaries[0].NetBalance.String() != "300" {
		t.Errorf("alice net %s, want 300", summaries[0].NetBalance)
	}
	if summaries[0].Settlement != domain.SettlementOweYou {
		t.Errorf("alice settlement %s", summaries[0].Settlement)
	}
	if summaries[1].NetBalance.String() != "-50" {
		t.Errorf("bob net %s, want -50", summaries[1].NetBalance)
	}
	if summaries[1].Settlement != domain.SettlementYouOwe {
		t.Errorf("bob settlement %s", summaries[1].Settlement)
	}
}

func TestLedgerUseCase_RenameCounterparty(t *testing.T) {
	f := newLedgerFixture()

	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	for range 2 {
		if _, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			OwnerID:      "user-1",
			Counterparty: "alice",
			Type:         domain.TypeReceivable,
			Amount:       decimal.RequireFromString("10.00"),
			Date:         date,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	renamed, err := f.uc.RenameCounterparty(context.Background(), "user-1", "alice", "alice smith")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed != 2 {
		t.Errorf("renamed %d rows, want 2", renamed)
	}

	summaries, err := f.uc.CounterpartySummaries(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Counterparty != "ALICE SMITH" {
		t.Errorf("summaries after rename: %+v", summaries)
	}
}

func TestLedgerUseCase_Aging(t *testing.T) {
	f := newLedgerFixture()

	now := time.Now().UTC()
	overdueDate := now.AddDate(0, 0, -45)

	if _, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID:      "user-1",
		Counterparty: "alice",
		Type:         domain.TypeReceivable,
		Amount:       decimal.RequireFromString("500.00"),
		Date:         overdueDate,
		DueDate:      &overdueDate,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	report, err := f.uc.Aging(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("aging: %v", err)
	}

	if report.Receivables.Days31to60.String() != "500" {
		t.Errorf("31-60 bucket %s, want 500", report.Receivables.Days31to60)
	}

	t.Run("filtered by counterparty", func(t *testing.T) {
		if _, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			OwnerID:      "user-1",
			Counterparty: "bob",
			Type:         domain.TypePayable,
			Amount:       decimal.RequireFromString("75.00"),
			Date:         overdueDate,
			DueDate:      &overdueDate,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}

		report, err := f.uc.Aging(context.Background(), "user-1", "alice")
		if err != nil {
			t.Fatalf("aging: %v", err)
		}

		if report.Receivables.Days31to60.String() != "500" {
			t.Errorf("alice 31-60 bucket %s, want 500", report.Receivables.Days31to60)
		}
		if !report.Payables.Days31to60.IsZero() {
			t.Errorf("bob's payable leaked into alice's report: %s", report.Payables.Days31to60)
		}
	})
}

func TestLedgerUseCase_UpdateTransaction(t *testing.T) {
	f := newLedgerFixture()

	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	created, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID:           "user-1",
		Counterparty:      "alice",
		Type:              domain.TypeReceivable,
		Amount:            decimal.RequireFromString("300.00"),
		Date:              date,
		TotalInstallments: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newDate := date.AddDate(0, 0, 5)
	updated, err := f.uc.UpdateTransaction(context.Background(), usecase.UpdateTransactionInput{
		OwnerID:      "user-1",
		ID:           created[0].ID,
		Counterparty: "alice",
		Amount:       decimal.RequireFromString("200.00"),
		Description:  "adjusted",
		Date:         newDate,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Amount.String() != "200" {
		t.Errorf("amount %s, want 200", updated.Amount)
	}
	if updated.Description != "adjusted" {
		t.Errorf("description %q", updated.Description)
	}
	if !updated.TransactionDate.Equal(newDate) {
		t.Errorf("date %s, want %s", updated.TransactionDate, newDate)
	}

	// Editing one sibling never rebalances the other.
	sibling, err := f.uc.GetTransaction(context.Background(), "user-1", created[1].ID)
	if err != nil {
		t.Fatalf("get sibling: %v", err)
	}
	if sibling.Amount.String() != "150" {
		t.Errorf("sibling amount %s, want 150", sibling.Amount)
	}

	if _, err := f.uc.DeleteTransaction(context.Background(), "user-1", created[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.uc.UpdateTransaction(context.Background(), usecase.UpdateTransactionInput{
		OwnerID:      "user-1",
		ID:           created[0].ID,
		Counterparty: "alice",
		Amount:       decimal.RequireFromString("10.00"),
		Date:         newDate,
	}); !errors.Is(err, domain.ErrAlreadyDeleted) {
		t.Errorf("update of deleted row: expected ErrAlreadyDeleted, got %v", err)
	}
}
