package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
	"github.com/iho/finledger/internal/usecase"
)

// LedgerTransactionRepository implements usecase.LedgerTransactionRepository.
type LedgerTransactionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLedgerTransactionRepository creates a new LedgerTransactionRepository.
func NewLedgerTransactionRepository(pool *pgxpool.Pool) *LedgerTransactionRepository {
	return &LedgerTransactionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a ledger transaction within a transaction.
func (r *LedgerTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.LedgerTransaction) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateLedgerTransaction(ctx, generated.CreateLedgerTransactionParams{
		ID:                transaction.ID,
		OwnerID:           transaction.OwnerID,
		Counterparty:      transaction.Counterparty,
		Description:       transaction.Description,
		Type:              string(transaction.Type),
		Status:            string(transaction.Status),
		Amount:            decimalToNumeric(transaction.Amount),
		TransactionDate:   timeToPgDate(transaction.TransactionDate),
		DueDate:           timePtrToPgDate(transaction.DueDate),
		CompletionDate:    timePtrToPgDate(transaction.CompletionDate),
		DeletedAt:         timePtrToPgTimestamptz(transaction.DeletedAt),
		InstallmentNumber: int32(transaction.InstallmentNumber),
		TotalInstallments: int32(transaction.TotalInstallments),
		CreatedAt:         timeToPgTimestamptz(transaction.CreatedAt),
		UpdatedAt:         timeToPgTimestamptz(transaction.UpdatedAt),
	})

	return err
}

// GetByID retrieves a transaction, deleted or not, scoped to its owner.
func (r *LedgerTransactionRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error) {
	row, err := r.queries.GetLedgerTransactionByID(ctx, generated.GetLedgerTransactionByIDParams{
		OwnerID: ownerID,
		ID:      id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToLedgerTransaction(row), nil
}

// List lists transactions with filters applied in SQL.
func (r *LedgerTransactionRepository) List(ctx context.Context, ownerID string, filter usecase.TransactionFilter) ([]*domain.LedgerTransaction, error) {
	rows, err := r.queries.ListLedgerTransactions(ctx, generated.ListLedgerTransactionsParams{
		OwnerID:      ownerID,
		DeletedOnly:  filter.DeletedOnly,
		Status:       string(filter.Status),
		Type:         string(filter.Type),
		Counterparty: filter.Counterparty,
		Search:       filter.Search,
		StartDate:    timePtrToPgDate(filter.StartDate),
		EndDate:      timePtrToPgDate(filter.EndDate),
		OverdueOnly:  filter.OverdueOnly,
		Limit:        int32(filter.Limit),
		Offset:       int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToLedgerTransactions(rows), nil
}

// ListActive lists all non-deleted transactions for an owner.
func (r *LedgerTransactionRepository) ListActive(ctx context.Context, ownerID string) ([]*domain.LedgerTransaction, error) {
	rows, err := r.queries.ListActiveLedgerTransactions(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return rowsToLedgerTransactions(rows), nil
}

// Update updates a transaction within a transaction.
func (r *LedgerTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, transaction *domain.LedgerTransaction) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateLedgerTransaction(ctx, generated.UpdateLedgerTransactionParams{
		OwnerID:         transaction.OwnerID,
		ID:              transaction.ID,
		Counterparty:    transaction.Counterparty,
		Description:     transaction.Description,
		Type:            string(transaction.Type),
		Status:          string(transaction.Status),
		Amount:          decimalToNumeric(transaction.Amount),
		TransactionDate: timeToPgDate(transaction.TransactionDate),
		DueDate:         timePtrToPgDate(transaction.DueDate),
		CompletionDate:  timePtrToPgDate(transaction.CompletionDate),
		DeletedAt:       timePtrToPgTimestamptz(transaction.DeletedAt),
		UpdatedAt:       timeToPgTimestamptz(transaction.UpdatedAt),
	})
}

// RenameCounterparty renames a counterparty across all of an owner's rows.
func (r *LedgerTransactionRepository) RenameCounterparty(ctx context.Context, tx usecase.Transaction, ownerID, oldName, newName string) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.RenameCounterparty(ctx, generated.RenameCounterpartyParams{
		OwnerID: ownerID,
		OldName: oldName,
		NewName: newName,
	})
}

func rowToLedgerTransaction(row generated.LedgerTransaction) *domain.LedgerTransaction {
	return &domain.LedgerTransaction{
		ID:                row.ID,
		OwnerID:           row.OwnerID,
		Counterparty:      row.Counterparty,
		Description:       row.Description,
		Type:              domain.TransactionType(row.Type),
		Status:            domain.TransactionStatus(row.Status),
		Amount:            numericToDecimal(row.Amount),
		TransactionDate:   row.TransactionDate.Time,
		DueDate:           pgDateToTimePtr(row.DueDate),
		CompletionDate:    pgDateToTimePtr(row.CompletionDate),
		DeletedAt:         pgTimestamptzToTimePtr(row.DeletedAt),
		InstallmentNumber: int(row.InstallmentNumber),
		TotalInstallments: int(row.TotalInstallments),
		CreatedAt:         row.CreatedAt.Time,
		UpdatedAt:         row.UpdatedAt.Time,
	}
}

func rowsToLedgerTransactions(rows []generated.LedgerTransaction) []*domain.LedgerTransaction {
	transactions := make([]*domain.LedgerTransaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, rowToLedgerTransaction(row))
	}

	return transactions
}
