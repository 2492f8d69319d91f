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

// InstallmentRepository implements usecase.InstallmentRepository.
type InstallmentRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewInstallmentRepository creates a new InstallmentRepository.
func NewInstallmentRepository(pool *pgxpool.Pool) *InstallmentRepository {
	return &InstallmentRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateBatch inserts installments within a transaction.
func (r *InstallmentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, installments []*domain.Installment) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	for _, ins := range installments {
		_, err := queries.CreateInstallment(ctx, generated.CreateInstallmentParams{
			ID:           ins.ID,
			InstrumentID: ins.InstrumentID,
			Sequence:     int32(ins.Sequence),
			DueDate:      timeToPgDate(ins.DueDate),
			Amount:       decimalToNumeric(ins.Amount),
			Status:       string(ins.Status),
			CompletedAt:  timePtrToPgTimestamptz(ins.CompletedAt),
			Description:  ins.Description,
			CreatedAt:    timeToPgTimestamptz(ins.CreatedAt),
			UpdatedAt:    timeToPgTimestamptz(ins.UpdatedAt),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an installment by ID.
func (r *InstallmentRepository) GetByID(ctx context.Context, id string) (*domain.Installment, error) {
	row, err := r.queries.GetInstallmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstallmentNotFound
		}

		return nil, err
	}

	return rowToInstallment(row), nil
}

// ListByInstrument lists an instrument's installments ordered by sequence.
func (r *InstallmentRepository) ListByInstrument(ctx context.Context, instrumentID string) ([]*domain.Installment, error) {
	rows, err := r.queries.ListInstallmentsByInstrument(ctx, instrumentID)
	if err != nil {
		return nil, err
	}

	return rowsToInstallments(rows), nil
}

// ListByInstrumentForUpdate lists installments with FOR UPDATE locks.
func (r *InstallmentRepository) ListByInstrumentForUpdate(ctx context.Context, tx usecase.Transaction, instrumentID string) ([]*domain.Installment, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.ListInstallmentsByInstrumentForUpdate(ctx, instrumentID)
	if err != nil {
		return nil, err
	}

	return rowsToInstallments(rows), nil
}

// Update updates an installment within a transaction.
func (r *InstallmentRepository) Update(ctx context.Context, tx usecase.Transaction, installment *domain.Installment) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateInstallment(ctx, generated.UpdateInstallmentParams{
		ID:          installment.ID,
		DueDate:     timeToPgDate(installment.DueDate),
		Amount:      decimalToNumeric(installment.Amount),
		Status:      string(installment.Status),
		CompletedAt: timePtrToPgTimestamptz(installment.CompletedAt),
		Description: installment.Description,
		UpdatedAt:   timeToPgTimestamptz(installment.UpdatedAt),
	})
}

// Delete removes a single installment within a transaction.
func (r *InstallmentRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.DeleteInstallment(ctx, id)
}

// DeleteByInstrument removes all installments of an instrument within a
// transaction.
func (r *InstallmentRepository) DeleteByInstrument(ctx context.Context, tx usecase.Transaction, instrumentID string) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.DeleteInstallmentsByInstrument(ctx, instrumentID)
}

func rowToInstallment(row generated.Installment) *domain.Installment {
	return &domain.Installment{
		ID:           row.ID,
		InstrumentID: row.InstrumentID,
		Sequence:     int(row.Sequence),
		DueDate:      row.DueDate.Time,
		Amount:       numericToDecimal(row.Amount),
		Status:       domain.InstallmentStatus(row.Status),
		CompletedAt:  pgTimestamptzToTimePtr(row.CompletedAt),
		Description:  row.Description,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}

func rowsToInstallments(rows []generated.Installment) []*domain.Installment {
	installments := make([]*domain.Installment, 0, len(rows))
	for _, row := range rows {
		installments = append(installments, rowToInstallment(row))
	}

	return installments
}
