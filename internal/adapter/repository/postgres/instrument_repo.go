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

// InstrumentRepository implements usecase.InstrumentRepository.
type InstrumentRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewInstrumentRepository creates a new InstrumentRepository.
func NewInstrumentRepository(pool *pgxpool.Pool) *InstrumentRepository {
	return &InstrumentRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts an instrument within a transaction.
func (r *InstrumentRepository) Create(ctx context.Context, tx usecase.Transaction, instrument *domain.Instrument) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateInstrument(ctx, generated.CreateInstrumentParams{
		ID:               instrument.ID,
		OwnerID:          instrument.OwnerID,
		Name:             instrument.Name,
		Category:         instrument.Category,
		Kind:             string(instrument.Kind),
		Status:           string(instrument.Status),
		Amount:           decimalToNumeric(instrument.Amount),
		NoOfInstallments: int32(instrument.NoOfInstallments),
		StartedOn:        timeToPgDate(instrument.StartedOn),
		CreatedAt:        timeToPgTimestamptz(instrument.CreatedAt),
		UpdatedAt:        timeToPgTimestamptz(instrument.UpdatedAt),
	})

	return err
}

// GetByID retrieves an instrument scoped to its owner.
func (r *InstrumentRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Instrument, error) {
	row, err := r.queries.GetInstrumentByID(ctx, generated.GetInstrumentByIDParams{
		OwnerID: ownerID,
		ID:      id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstrumentNotFound
		}

		return nil, err
	}

	return rowToInstrument(row), nil
}

// GetByIDForUpdate retrieves an instrument with a FOR UPDATE lock.
func (r *InstrumentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, ownerID, id string) (*domain.Instrument, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetInstrumentByIDForUpdate(ctx, generated.GetInstrumentByIDForUpdateParams{
		OwnerID: ownerID,
		ID:      id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstrumentNotFound
		}

		return nil, err
	}

	return rowToInstrument(row), nil
}

// List lists instruments with optional status and name filters.
func (r *InstrumentRepository) List(ctx context.Context, ownerID string, filter usecase.InstrumentFilter) ([]*domain.Instrument, error) {
	rows, err := r.queries.ListInstruments(ctx, generated.ListInstrumentsParams{
		OwnerID: ownerID,
		Status:  string(filter.Status),
		Search:  filter.Search,
		Limit:   int32(filter.Limit),
		Offset:  int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	instruments := make([]*domain.Instrument, 0, len(rows))
	for _, row := range rows {
		instruments = append(instruments, rowToInstrument(row))
	}

	return instruments, nil
}

// Update updates an instrument within a transaction.
func (r *InstrumentRepository) Update(ctx context.Context, tx usecase.Transaction, instrument *domain.Instrument) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateInstrument(ctx, generated.UpdateInstrumentParams{
		OwnerID:          instrument.OwnerID,
		ID:               instrument.ID,
		Name:             instrument.Name,
		Category:         instrument.Category,
		Kind:             string(instrument.Kind),
		Status:           string(instrument.Status),
		Amount:           decimalToNumeric(instrument.Amount),
		NoOfInstallments: int32(instrument.NoOfInstallments),
		StartedOn:        timeToPgDate(instrument.StartedOn),
		UpdatedAt:        timeToPgTimestamptz(instrument.UpdatedAt),
	})
}

// Delete removes an instrument within a transaction.
func (r *InstrumentRepository) Delete(ctx context.Context, tx usecase.Transaction, ownerID, id string) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.DeleteInstrument(ctx, generated.DeleteInstrumentParams{
		OwnerID: ownerID,
		ID:      id,
	})
}

// ExistsDuplicate reports whether an identical instrument already exists
// for the owner.
func (r *InstrumentRepository) ExistsDuplicate(ctx context.Context, instrument *domain.Instrument) (bool, error) {
	count, err := r.queries.CountDuplicateInstruments(ctx, generated.CountDuplicateInstrumentsParams{
		OwnerID:   instrument.OwnerID,
		Name:      instrument.Name,
		Kind:      string(instrument.Kind),
		Amount:    decimalToNumeric(instrument.Amount),
		StartedOn: timeToPgDate(instrument.StartedOn),
	})
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func rowToInstrument(row generated.Instrument) *domain.Instrument {
	return &domain.Instrument{
		ID:               row.ID,
		OwnerID:          row.OwnerID,
		Name:             row.Name,
		Category:         row.Category,
		Kind:             domain.InstrumentKind(row.Kind),
		Status:           domain.InstrumentStatus(row.Status),
		Amount:           numericToDecimal(row.Amount),
		NoOfInstallments: int(row.NoOfInstallments),
		StartedOn:        row.StartedOn.Time,
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}
