package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// MockInstrumentRepository is a mock implementation of InstrumentRepository.
type MockInstrumentRepository struct {
	mu          sync.RWMutex
	instruments map[string]*domain.Instrument

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, instrument *domain.Instrument) error
	GetByIDFunc          func(ctx context.Context, ownerID, id string) (*domain.Instrument, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ownerID, id string) (*domain.Instrument, error)
	ListFunc             func(ctx context.Context, ownerID string, filter usecase.InstrumentFilter) ([]*domain.Instrument, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, instrument *domain.Instrument) error
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, ownerID, id string) error
	ExistsDuplicateFunc  func(ctx context.Context, instrument *domain.Instrument) (bool, error)
}

func NewMockInstrumentRepository() *MockInstrumentRepository {
	return &MockInstrumentRepository{
		instruments: make(map[string]*domain.Instrument),
	}
}

func (m *MockInstrumentRepository) Create(ctx context.Context, tx usecase.Transaction, instrument *domain.Instrument) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, instrument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.instruments[instrument.ID] = instrument
	return nil
}

func (m *MockInstrumentRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Instrument, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inst, ok := m.instruments[id]; ok && inst.OwnerID == ownerID {
		return inst, nil
	}
	return nil, domain.ErrInstrumentNotFound
}

func (m *MockInstrumentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, ownerID, id string) (*domain.Instrument, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, ownerID, id)
	}
	return m.GetByID(ctx, ownerID, id)
}

func (m *MockInstrumentRepository) List(ctx context.Context, ownerID string, filter usecase.InstrumentFilter) ([]*domain.Instrument, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var instruments []*domain.Instrument
	for _, inst := range m.instruments {
		if inst.OwnerID != ownerID {
			continue
		}
		if filter.Status != "" && inst.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(inst.Name), strings.ToLower(filter.Search)) {
			continue
		}
		instruments = append(instruments, inst)
	}
	sort.Slice(instruments, func(i, j int) bool { return instruments[i].ID < instruments[j].ID })
	return instruments, nil
}

func (m *MockInstrumentRepository) Update(ctx context.Context, tx usecase.Transaction, instrument *domain.Instrument) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, instrument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.instruments[instrument.ID]; !ok {
		return domain.ErrInstrumentNotFound
	}
	m.instruments[instrument.ID] = instrument
	return nil
}

func (m *MockInstrumentRepository) Delete(ctx context.Context, tx usecase.Transaction, ownerID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, ownerID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if inst, ok := m.instruments[id]; !ok || inst.OwnerID != ownerID {
		return domain.ErrInstrumentNotFound
	}
	delete(m.instruments, id)
	return nil
}

func (m *MockInstrumentRepository) ExistsDuplicate(ctx context.Context, instrument *domain.Instrument) (bool, error) {
	if m.ExistsDuplicateFunc != nil {
		return m.ExistsDuplicateFunc(ctx, instrument)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inst := range m.instruments {
		if inst.OwnerID == instrument.OwnerID &&
			inst.Name == instrument.Name &&
			inst.Kind == instrument.Kind &&
			inst.Amount.Equal(instrument.Amount) &&
			inst.StartedOn.Equal(instrument.StartedOn) {
			return true, nil
		}
	}
	return false, nil
}

// MockInstallmentRepository is a mock implementation of InstallmentRepository.
type MockInstallmentRepository struct {
	mu           sync.RWMutex
	installments map[string]*domain.Installment

	CreateBatchFunc               func(ctx context.Context, tx usecase.Transaction, installments []*domain.Installment) error
	GetByIDFunc                   func(ctx context.Context, id string) (*domain.Installment, error)
	ListByInstrumentFunc          func(ctx context.Context, instrumentID string) ([]*domain.Installment, error)
	ListByInstrumentForUpdateFunc func(ctx context.Context, tx usecase.Transaction, instrumentID string) ([]*domain.Installment, error)
	UpdateFunc                    func(ctx context.Context, tx usecase.Transaction, installment *domain.Installment) error
	DeleteFunc                    func(ctx context.Context, tx usecase.Transaction, id string) error
	DeleteByInstrumentFunc        func(ctx context.Context, tx usecase.Transaction, instrumentID string) error
}

func NewMockInstallmentRepository() *MockInstallmentRepository {
	return &MockInstallmentRepository{
		installments: make(map[string]*domain.Installment),
	}
}

func (m *MockInstallmentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, installments []*domain.Installment) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, installments)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ins := range installments {
		m.installments[ins.ID] = ins
	}
	return nil
}

func (m *MockInstallmentRepository) GetByID(ctx context.Context, id string) (*domain.Installment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if ins, ok := m.installments[id]; ok {
		return ins, nil
	}
	return nil, domain.ErrInstallmentNotFound
}

func (m *MockInstallmentRepository) ListByInstrument(ctx context.Context, instrumentID string) ([]*domain.Installment, error) {
	if m.ListByInstrumentFunc != nil {
		return m.ListByInstrumentFunc(ctx, instrumentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var installments []*domain.Installment
	for _, ins := range m.installments {
		if ins.InstrumentID == instrumentID {
			installments = append(installments, ins)
		}
	}
	sort.Slice(installments, func(i, j int) bool { return installments[i].Sequence < installments[j].Sequence })
	return installments, nil
}

func (m *MockInstallmentRepository) ListByInstrumentForUpdate(ctx context.Context, tx usecase.Transaction, instrumentID string) ([]*domain.Installment, error) {
	if m.ListByInstrumentForUpdateFunc != nil {
		return m.ListByInstrumentForUpdateFunc(ctx, tx, instrumentID)
	}
	return m.ListByInstrument(ctx, instrumentID)
}

func (m *MockInstallmentRepository) Update(ctx context.Context, tx usecase.Transaction, installment *domain.Installment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, installment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.installments[installment.ID]; !ok {
		return domain.ErrInstallmentNotFound
	}
	m.installments[installment.ID] = installment
	return nil
}

func (m *MockInstallmentRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.installments[id]; !ok {
		return domain.ErrInstallmentNotFound
	}
	delete(m.installments, id)
	return nil
}

func (m *MockInstallmentRepository) DeleteByInstrument(ctx context.Context, tx usecase.Transaction, instrumentID string) error {
	if m.DeleteByInstrumentFunc != nil {
		return m.DeleteByInstrumentFunc(ctx, tx, instrumentID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ins := range m.installments {
		if ins.InstrumentID == instrumentID {
			delete(m.installments, id)
		}
	}
	return nil
}

// MockLedgerTransactionRepository is a mock implementation of
// LedgerTransactionRepository.
type MockLedgerTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.LedgerTransaction

	CreateFunc             func(ctx context.Context, tx usecase.Transaction, transaction *domain.LedgerTransaction) error
	GetByIDFunc            func(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error)
	ListFunc               func(ctx context.Context, ownerID string, filter usecase.TransactionFilter) ([]*domain.LedgerTransaction, error)
	ListActiveFunc         func(ctx context.Context, ownerID string) ([]*domain.LedgerTransaction, error)
	UpdateFunc             func(ctx context.Context, tx usecase.Transaction, transaction *domain.LedgerTransaction) error
	RenameCounterpartyFunc func(ctx context.Context, tx usecase.Transaction, ownerID, oldName, newName string) (int64, error)
}

func NewMockLedgerTransactionRepository() *MockLedgerTransactionRepository {
	return &MockLedgerTransactionRepository{
		transactions: make(map[string]*domain.LedgerTransaction),
	}
}

func (m *MockLedgerTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.LedgerTransaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[transaction.ID] = transaction
	return nil
}

func (m *MockLedgerTransactionRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.LedgerTransaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if txn, ok := m.transactions[id]; ok && txn.OwnerID == ownerID {
		return txn, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockLedgerTransactionRepository) List(ctx context.Context, ownerID string, filter usecase.TransactionFilter) ([]*domain.LedgerTransaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transactions []*domain.LedgerTransaction
	for _, txn := range m.transactions {
		if txn.OwnerID != ownerID {
			continue
		}
		if txn.IsDeleted() != filter.DeletedOnly {
			continue
		}
		if filter.Status != "" && txn.Status != filter.Status {
			continue
		}
		if filter.Type != "" && txn.Type != filter.Type {
			continue
		}
		if filter.Counterparty != "" && txn.Counterparty != filter.Counterparty {
			continue
		}
		transactions = append(transactions, txn)
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID < transactions[j].ID })
	return transactions, nil
}

func (m *MockLedgerTransactionRepository) ListActive(ctx context.Context, ownerID string) ([]*domain.LedgerTransaction, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transactions []*domain.LedgerTransaction
	for _, txn := range m.transactions {
		if txn.OwnerID == ownerID && !txn.IsDeleted() {
			transactions = append(transactions, txn)
		}
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID < transactions[j].ID })
	return transactions, nil
}

func (m *MockLedgerTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, transaction *domain.LedgerTransaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[transaction.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	m.transactions[transaction.ID] = transaction
	return nil
}

func (m *MockLedgerTransactionRepository) RenameCounterparty(ctx context.Context, tx usecase.Transaction, ownerID, oldName, newName string) (int64, error) {
	if m.RenameCounterpartyFunc != nil {
		return m.RenameCounterpartyFunc(ctx, tx, ownerID, oldName, newName)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var renamed int64
	for _, txn := range m.transactions {
		if txn.OwnerID == ownerID && txn.Counterparty == oldName {
			txn.Counterparty = newName
			renamed++
		}
	}
	return renamed, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			events = append(events, e)
		}
		if len(events) == limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// Events returns a snapshot of all recorded events.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.OutboxEvent, len(m.events))
	copy(out, m.events)
	return out
}

// MockTransaction is a mock database transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

// MockRetrier is a mock Retrier that runs the operation once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockCacheStore is an in-memory Cache.
type MockCacheStore struct {
	mu      sync.RWMutex
	entries map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		entries: make(map[string][]byte),
	}
}

func (m *MockCacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCacheStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Has reports whether the cache currently holds key.
func (m *MockCacheStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[key]
	return ok
}
