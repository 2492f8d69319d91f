package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// LedgerUseCase handles counterparty ledger transactions.
type LedgerUseCase struct {
	txManager  TransactionManager
	ledgerRepo LedgerTransactionRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
	retrier    Retrier
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	ledgerRepo LedgerTransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:  txManager,
		ledgerRepo: ledgerRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		retrier:    retrier,
	}
}

// CreateTransactionInput represents input for creating a ledger transaction
// or a series of sibling installment transactions.
type CreateTransactionInput struct {
	Date              time.Time
	DueDate           *time.Time
	OwnerID           string
	Counterparty      string
	Description       string
	Type              domain.TransactionType
	Amount            decimal.Decimal
	TotalInstallments int
}

// CreateTransaction creates one transaction, or a series of independent
// sibling transactions when TotalInstallments is greater than one: the
// total amount is split with the residual on the last sibling and due
// dates step thirty days apart. Received and Paid entries record money
// that already moved and are created Completed.
func (uc *LedgerUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) ([]*domain.LedgerTransaction, error) {
	if err := domain.ValidateCounterparty(input.Counterparty); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	counterparty := strings.ToUpper(strings.TrimSpace(input.Counterparty))

	count := input.TotalInstallments
	if count < 1 {
		count = 1
	}

	startDue := input.Date
	if input.DueDate != nil {
		startDue = *input.DueDate
	}

	payments, err := domain.GenerateSchedule(input.Amount, count, startDue, domain.FrequencyCustom, domain.LedgerInstallmentStep)
	if err != nil {
		return nil, err
	}

	transactions := make([]*domain.LedgerTransaction, len(payments))
	for i, p := range payments {
		txn := &domain.LedgerTransaction{
			ID:                uc.idGen.Generate(),
			OwnerID:           input.OwnerID,
			Counterparty:      counterparty,
			Description:       input.Description,
			Type:              input.Type,
			Status:            domain.TransactionPending,
			Amount:            p.Amount,
			TransactionDate:   input.Date,
			InstallmentNumber: p.Sequence,
			TotalInstallments: count,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if count > 1 || input.DueDate != nil {
			due := p.DueDate
			txn.DueDate = &due
		}

		// Received and Paid describe settled money.
		if txn.StatusLocked() {
			txn.Status = domain.TransactionCompleted
			completedAt := input.Date
			txn.CompletionDate = &completedAt
		}

		if err := txn.Validate(); err != nil {
			return nil, err
		}

		transactions[i] = txn
	}

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		for _, txn := range transactions {
			if err := uc.ledgerRepo.Create(ctx, tx, txn); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// GetTransaction retrieves a single ledger transaction, deleted or not.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error) {
	return uc.ledgerRepo.GetByID(ctx, ownerID, id)
}

// ListTransactionsInput represents input for listing ledger transactions.
type ListTransactionsInput struct {
	StartDate    *time.Time
	EndDate      *time.Time
	OwnerID      string
	Counterparty string
	Search       string
	Status       domain.TransactionStatus
	Type         domain.TransactionType
	DeletedOnly  bool
	OverdueOnly  bool
	Limit        int
	Offset       int
}

// ListTransactions lists ledger transactions. Deleted entries are excluded
// unless DeletedOnly asks for them.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.LedgerTransaction, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	return uc.ledgerRepo.List(ctx, input.OwnerID, TransactionFilter{
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Counterparty: strings.ToUpper(strings.TrimSpace(input.Counterparty)),
		Search:       input.Search,
		Status:       input.Status,
		Type:         input.Type,
		DeletedOnly:  input.DeletedOnly,
		OverdueOnly:  input.OverdueOnly,
		Limit:        limit,
		Offset:       offset,
	})
}

// ToggleTransactionStatus flips a transaction between Pending and
// Completed. Received and Paid entries are settled by definition and
// refuse the toggle; deleted entries must be restored first.
func (uc *LedgerUseCase) ToggleTransactionStatus(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error) {
	now := time.Now().UTC()

	var txn *domain.LedgerTransaction

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		txn, err = uc.toggleOne(ctx, tx, ownerID, id, now)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// BulkToggleInput represents input for a bulk status toggle.
type BulkToggleInput struct {
	OwnerID string
	IDs     []string
}

// BulkToggleTransactionStatus toggles each listed transaction
// independently, reporting per-item outcomes. Status-locked and deleted
// entries fail individually without affecting the rest.
func (uc *LedgerUseCase) BulkToggleTransactionStatus(ctx context.Context, input BulkToggleInput) (*BulkOutcome, error) {
	now := time.Now().UTC()

	outcome := &BulkOutcome{}

	for _, id := range input.IDs {
		err := uc.retrier.Retry(ctx, func() error {
			tx, err := uc.txManager.Begin(ctx)
			if err != nil {
				return err
			}
			defer tx.Rollback(ctx)

			if _, err := uc.toggleOne(ctx, tx, input.OwnerID, id, now); err != nil {
				return err
			}

			return tx.Commit(ctx)
		})
		if err != nil {
			outcome.fail(id, err)
			continue
		}

		outcome.ok(id)
	}

	return outcome, nil
}

func (uc *LedgerUseCase) toggleOne(ctx context.Context, tx Transaction, ownerID, id string, now time.Time) (*domain.LedgerTransaction, error) {
	txn, err := uc.ledgerRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if txn.IsDeleted() {
		return nil, domain.ErrAlreadyDeleted
	}

	wasPending := txn.Status == domain.TransactionPending

	if err := txn.ToggleStatus(now); err != nil {
		return nil, err
	}
	txn.UpdatedAt = now

	if err := uc.ledgerRepo.Update(ctx, tx, txn); err != nil {
		return nil, err
	}

	if wasPending {
		event := newOutboxEvent(domain.AggregateTypeTransaction, txn.ID, domain.EventTypeTransactionCompleted, map[string]any{
			"transaction_id": txn.ID,
			"counterparty":   txn.Counterparty,
			"type":           string(txn.Type),
			"amount":         txn.Amount.String(),
		}, now)
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return nil, err
		}
	}

	return txn, nil
}

// UpdateTransactionInput represents input for editing a transaction.
type UpdateTransactionInput struct {
	Date         time.Time
	DueDate      *time.Time
	OwnerID      string
	ID           string
	Counterparty string
	Description  string
	Amount       decimal.Decimal
}

// UpdateTransaction edits a single transaction's counterparty, amount,
// dates and description. Siblings in the same series are not rebalanced.
func (uc *LedgerUseCase) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*domain.LedgerTransaction, error) {
	if err := domain.ValidateCounterparty(input.Counterparty); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var txn *domain.LedgerTransaction

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		txn, err = uc.ledgerRepo.GetByID(ctx, input.OwnerID, input.ID)
		if err != nil {
			return err
		}

		if txn.IsDeleted() {
			return domain.ErrAlreadyDeleted
		}

		txn.Counterparty = strings.ToUpper(strings.TrimSpace(input.Counterparty))
		txn.Description = input.Description
		txn.Amount = input.Amount
		txn.TransactionDate = input.Date
		txn.DueDate = input.DueDate
		txn.UpdatedAt = now

		if err := uc.ledgerRepo.Update(ctx, tx, txn); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// DeleteTransaction soft-deletes a transaction. Its status is untouched so
// a restore brings it back exactly as it was.
func (uc *LedgerUseCase) DeleteTransaction(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error) {
	return uc.setDeleted(ctx, ownerID, id, true)
}

// UndoDelete restores a soft-deleted transaction.
func (uc *LedgerUseCase) UndoDelete(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error) {
	return uc.setDeleted(ctx, ownerID, id, false)
}

// BulkUndoDelete restores each listed transaction independently.
func (uc *LedgerUseCase) BulkUndoDelete(ctx context.Context, input BulkToggleInput) (*BulkOutcome, error) {
	outcome := &BulkOutcome{}

	for _, id := range input.IDs {
		if _, err := uc.setDeleted(ctx, input.OwnerID, id, false); err != nil {
			outcome.fail(id, err)
			continue
		}

		outcome.ok(id)
	}

	return outcome, nil
}

func (uc *LedgerUseCase) setDeleted(ctx context.Context, ownerID, id string, deleted bool) (*domain.LedgerTransaction, error) {
	now := time.Now().UTC()

	var txn *domain.LedgerTransaction

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		txn, err = uc.ledgerRepo.GetByID(ctx, ownerID, id)
		if err != nil {
			return err
		}

		eventType := domain.EventTypeTransactionRestored
		if deleted {
			eventType = domain.EventTypeTransactionDeleted
			if err := txn.SoftDelete(now); err != nil {
				return err
			}
		} else {
			if err := txn.Restore(); err != nil {
				return err
			}
		}
		txn.UpdatedAt = now

		if err := uc.ledgerRepo.Update(ctx, tx, txn); err != nil {
			return err
		}

		event := newOutboxEvent(domain.AggregateTypeTransaction, txn.ID, eventType, map[string]any{
			"transaction_id": txn.ID,
			"counterparty":   txn.Counterparty,
		}, now)
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// CounterpartySummaries returns per-counterparty balances across active
// transactions, largest absolute net first.
func (uc *LedgerUseCase) CounterpartySummaries(ctx context.Context, ownerID string) ([]domain.CounterpartyBalance, error) {
	transactions, err := uc.ledgerRepo.ListActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return domain.SummarizeCounterparties(transactions), nil
}

// CounterpartyDetail returns one counterparty's balance plus its active
// transactions.
func (uc *LedgerUseCase) CounterpartyDetail(ctx context.Context, ownerID, name string) (domain.CounterpartyBalance, []*domain.LedgerTransaction, error) {
	transactions, err := uc.ledgerRepo.ListActive(ctx, ownerID)
	if err != nil {
		return domain.CounterpartyBalance{}, nil, err
	}

	balance := domain.ComputeCounterpartyBalance(name, transactions)

	matched := make([]*domain.LedgerTransaction, 0)
	for _, txn := range transactions {
		if strings.EqualFold(txn.Counterparty, strings.TrimSpace(name)) {
			matched = append(matched, txn)
		}
	}

	return balance, matched, nil
}

// RenameCounterparty renames every transaction carrying the old
// counterparty name, returning how many rows changed.
func (uc *LedgerUseCase) RenameCounterparty(ctx context.Context, ownerID, oldName, newName string) (int64, error) {
	if err := domain.ValidateCounterparty(newName); err != nil {
		return 0, err
	}

	from := strings.ToUpper(strings.TrimSpace(oldName))
	to := strings.ToUpper(strings.TrimSpace(newName))

	var renamed int64

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		renamed, err = uc.ledgerRepo.RenameCounterparty(ctx, tx, ownerID, from, to)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return 0, err
	}

	return renamed, nil
}

// Aging buckets pending receivables and payables by days overdue. A
// non-empty counterparty restricts the report to that counterparty.
func (uc *LedgerUseCase) Aging(ctx context.Context, ownerID, counterparty string) (*domain.AgingReport, error) {
	transactions, err := uc.ledgerRepo.ListActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(counterparty); name != "" {
		matched := make([]*domain.LedgerTransaction, 0, len(transactions))
		for _, txn := range transactions {
			if strings.EqualFold(txn.Counterparty, name) {
				matched = append(matched, txn)
			}
		}
		transactions = matched
	}

	report := domain.ComputeAging(transactions, time.Now().UTC())

	return &report, nil
}
