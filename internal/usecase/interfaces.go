package usecase

import (
	"context"
	"time"

	"github.com/iho/finledger/internal/domain"
)

// InstrumentFilter narrows instrument listings.
type InstrumentFilter struct {
	Search string
	Status domain.InstrumentStatus
	Limit  int
	Offset int
}

// TransactionFilter narrows ledger transaction listings. Soft-deleted rows
// are excluded unless DeletedOnly is set.
type TransactionFilter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	Counterparty string
	Search       string
	Status       domain.TransactionStatus
	Type         domain.TransactionType
	DeletedOnly  bool
	OverdueOnly  bool
	Limit        int
	Offset       int
}

// InstrumentRepository defines data access for instruments.
type InstrumentRepository interface {
	Create(ctx context.Context, tx Transaction, instrument *domain.Instrument) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Instrument, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, ownerID, id string) (*domain.Instrument, error)
	List(ctx context.Context, ownerID string, filter InstrumentFilter) ([]*domain.Instrument, error)
	Update(ctx context.Context, tx Transaction, instrument *domain.Instrument) error
	Delete(ctx context.Context, tx Transaction, ownerID, id string) error
	ExistsDuplicate(ctx context.Context, instrument *domain.Instrument) (bool, error)
}

// InstallmentRepository defines data access for installments.
type InstallmentRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, installments []*domain.Installment) error
	GetByID(ctx context.Context, id string) (*domain.Installment, error)
	ListByInstrument(ctx context.Context, instrumentID string) ([]*domain.Installment, error)
	ListByInstrumentForUpdate(ctx context.Context, tx Transaction, instrumentID string) ([]*domain.Installment, error)
	Update(ctx context.Context, tx Transaction, installment *domain.Installment) error
	Delete(ctx context.Context, tx Transaction, id string) error
	DeleteByInstrument(ctx context.Context, tx Transaction, instrumentID string) error
}

// LedgerTransactionRepository defines data access for ledger transactions.
type LedgerTransactionRepository interface {
	Create(ctx context.Context, tx Transaction, transaction *domain.LedgerTransaction) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error)
	List(ctx context.Context, ownerID string, filter TransactionFilter) ([]*domain.LedgerTransaction, error)
	ListActive(ctx context.Context, ownerID string) ([]*domain.LedgerTransaction, error)
	Update(ctx context.Context, tx Transaction, transaction *domain.LedgerTransaction) error
	RenameCounterparty(ctx context.Context, tx Transaction, ownerID, oldName, newName string) (int64, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
