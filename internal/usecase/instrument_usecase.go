package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// InstrumentUseCase handles instrument and schedule-generation logic.
type InstrumentUseCase struct {
	txManager       TransactionManager
	instrumentRepo  InstrumentRepository
	installmentRepo InstallmentRepository
	outboxRepo      OutboxRepository
	cache           Cache
	idGen           IDGenerator
	retrier         Retrier
}

// NewInstrumentUseCase creates a new InstrumentUseCase.
func NewInstrumentUseCase(
	txManager TransactionManager,
	instrumentRepo InstrumentRepository,
	installmentRepo InstallmentRepository,
	outboxRepo OutboxRepository,
	cache Cache,
	idGen IDGenerator,
	retrier Retrier,
) *InstrumentUseCase {
	return &InstrumentUseCase{
		txManager:       txManager,
		instrumentRepo:  instrumentRepo,
		installmentRepo: installmentRepo,
		outboxRepo:      outboxRepo,
		cache:           cache,
		idGen:           idGen,
		retrier:         retrier,
	}
}

// InstrumentDetail bundles an instrument with its installments and the
// aggregate derived from them.
type InstrumentDetail struct {
	Instrument   *domain.Instrument
	Installments []*domain.Installment
	Aggregate    domain.Aggregate
}

// CreateInstrumentInput represents input for creating an instrument.
type CreateInstrumentInput struct {
	StartedOn        time.Time
	OwnerID          string
	Name             string
	Category         string
	Kind             domain.InstrumentKind
	Amount           decimal.Decimal
	NoOfInstallments int
}

// CreateInstrument creates an instrument and generates its full
// installment schedule in one database transaction.
func (uc *InstrumentUseCase) CreateInstrument(ctx context.Context, input CreateInstrumentInput) (*InstrumentDetail, error) {
	now := time.Now().UTC()

	instrument := &domain.Instrument{
		ID:               uc.idGen.Generate(),
		OwnerID:          input.OwnerID,
		Name:             input.Name,
		Kind:             input.Kind,
		Category:         domain.InstallmentCategory(input.Kind, input.Category),
		Amount:           input.Amount,
		NoOfInstallments: input.NoOfInstallments,
		StartedOn:        input.StartedOn,
		Status:           domain.InstrumentOpen,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := instrument.Validate(); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(instrument.Amount); err != nil {
		return nil, err
	}

	exists, err := uc.instrumentRepo.ExistsDuplicate(ctx, instrument)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, domain.ErrDuplicateInstrument
	}

	payments, err := domain.GenerateSchedule(instrument.Amount, instrument.NoOfInstallments, instrument.StartedOn, domain.FrequencyMonthly, 0)
	if err != nil {
		return nil, err
	}

	installments := make([]*domain.Installment, len(payments))
	for i, p := range payments {
		installments[i] = &domain.Installment{
			ID:           uc.idGen.Generate(),
			InstrumentID: instrument.ID,
			Sequence:     p.Sequence,
			DueDate:      p.DueDate,
			Amount:       p.Amount,
			Status:       domain.InstallmentPending,
			Description:  installmentDescription(instrument.Name, instrument.Kind, p.Sequence),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.instrumentRepo.Create(ctx, tx, instrument); err != nil {
			return err
		}

		if err := uc.installmentRepo.CreateBatch(ctx, tx, installments); err != nil {
			return err
		}

		event := newOutboxEvent(domain.AggregateTypeInstrument, instrument.ID, domain.EventTypeInstrumentCreated, map[string]any{
			"instrument_id":      instrument.ID,
			"name":               instrument.Name,
			"kind":               string(instrument.Kind),
			"amount":             instrument.Amount.String(),
			"no_of_installments": instrument.NoOfInstallments,
		}, now)
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return &InstrumentDetail{
		Instrument:   instrument,
		Installments: installments,
		Aggregate:    domain.ComputeAggregate(instrument, installments),
	}, nil
}

// GetInstrument retrieves an instrument with its installments and derived
// aggregate. The aggregate is served from cache when a fresh copy exists;
// every installment write invalidates it.
func (uc *InstrumentUseCase) GetInstrument(ctx context.Context, ownerID, id string) (*InstrumentDetail, error) {
	instrument, err := uc.instrumentRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	installments, err := uc.installmentRepo.ListByInstrument(ctx, id)
	if err != nil {
		return nil, err
	}

	return &InstrumentDetail{
		Instrument:   instrument,
		Installments: installments,
		Aggregate:    uc.aggregate(ctx, instrument, installments),
	}, nil
}

// ListInstrumentsInput represents input for listing instruments.
type ListInstrumentsInput struct {
	OwnerID string
	Search  string
	Status  domain.InstrumentStatus
	Limit   int
	Offset  int
}

// ListInstruments lists instruments with their derived aggregates.
func (uc *InstrumentUseCase) ListInstruments(ctx context.Context, input ListInstrumentsInput) ([]*InstrumentDetail, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	instruments, err := uc.instrumentRepo.List(ctx, input.OwnerID, InstrumentFilter{
		Search: input.Search,
		Status: input.Status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	details := make([]*InstrumentDetail, 0, len(instruments))
	for _, instrument := range instruments {
		installments, err := uc.installmentRepo.ListByInstrument(ctx, instrument.ID)
		if err != nil {
			return nil, err
		}

		details = append(details, &InstrumentDetail{
			Instrument:   instrument,
			Installments: installments,
			Aggregate:    uc.aggregate(ctx, instrument, installments),
		})
	}

	return details, nil
}

// UpdateInstrumentInput represents input for editing an instrument.
type UpdateInstrumentInput struct {
	StartedOn        time.Time
	OwnerID          string
	ID               string
	Name             string
	Category         string
	Kind             domain.InstrumentKind
	Amount           decimal.Decimal
	NoOfInstallments int
}

// UpdateInstrument edits instrument metadata and adjusts the installment
// set to match. Completed installments are never touched: the remaining
// amount is redistributed over pending ones, appending or trimming
// installments when the count changes.
func (uc *InstrumentUseCase) UpdateInstrument(ctx context.Context, input UpdateInstrumentInput) (*InstrumentDetail, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if input.NoOfInstallments < 1 {
		return nil, domain.ErrInvalidInstallmentCount
	}

	now := time.Now().UTC()

	var detail *InstrumentDetail

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		instrument, err := uc.instrumentRepo.GetByIDForUpdate(ctx, tx, input.OwnerID, input.ID)
		if err != nil {
			return err
		}

		installments, err := uc.installmentRepo.ListByInstrumentForUpdate(ctx, tx, instrument.ID)
		if err != nil {
			return err
		}

		installments, err = uc.applyEdit(ctx, tx, instrument, installments, input, now)
		if err != nil {
			return err
		}

		instrument.UpdatedAt = now
		if err := uc.instrumentRepo.Update(ctx, tx, instrument); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		detail = &InstrumentDetail{
			Instrument:   instrument,
			Installments: installments,
			Aggregate:    domain.ComputeAggregate(instrument, installments),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateAggregate(ctx, input.ID)

	return detail, nil
}

// applyEdit mutates the instrument and its installment set according to the
// edit input, inside the caller's transaction.
func (uc *InstrumentUseCase) applyEdit(
	ctx context.Context,
	tx Transaction,
	instrument *domain.Instrument,
	installments []*domain.Installment,
	input UpdateInstrumentInput,
	now time.Time,
) ([]*domain.Installment, error) {
	paidCount := 0
	paidAmount := decimal.Zero

	for _, ins := range installments {
		if ins.Status == domain.InstallmentCompleted {
			paidCount++
			paidAmount = paidAmount.Add(ins.Amount)
		}
	}

	instrument.Name = input.Name
	instrument.Kind = input.Kind
	instrument.Category = domain.InstallmentCategory(input.Kind, input.Category)

	if err := instrument.Validate(); err != nil {
		return nil, err
	}

	// Descriptions follow the instrument name and kind.
	for _, ins := range installments {
		ins.Description = installmentDescription(instrument.Name, instrument.Kind, ins.Sequence)
	}

	// Start date change re-dates pending installments only. A start date on
	// or after an already paid installment's due date would rewrite history.
	if !input.StartedOn.Equal(instrument.StartedOn) {
		for _, ins := range installments {
			if ins.Status == domain.InstallmentCompleted && !ins.DueDate.Before(input.StartedOn) {
				return nil, domain.ErrStartAfterPaidDate
			}
		}

		instrument.StartedOn = input.StartedOn

		offset := 0
		for _, ins := range installments {
			if ins.Status == domain.InstallmentCompleted {
				continue
			}

			ins.DueDate = domain.AddMonths(input.StartedOn, offset)
			offset++
		}
	}

	// Amount or count change: redistribute the remaining amount over
	// pending installments, appending or trimming as needed.
	if !input.Amount.Equal(instrument.Amount) || input.NoOfInstallments != instrument.NoOfInstallments {
		if input.Amount.LessThan(paidAmount) {
			return nil, domain.ErrAmountBelowPaid
		}

		if input.NoOfInstallments < paidCount {
			return nil, domain.ErrCountBelowPaid
		}

		if input.Amount.GreaterThan(paidAmount) && input.NoOfInstallments == paidCount {
			return nil, domain.ErrNoPendingToAdjust
		}

		previousCount := instrument.NoOfInstallments
		instrument.Amount = input.Amount
		instrument.NoOfInstallments = input.NoOfInstallments

		if input.NoOfInstallments > previousCount {
			lastDue := instrument.StartedOn
			if len(installments) > 0 {
				lastDue = installments[len(installments)-1].DueDate
			}

			for i := previousCount; i < input.NoOfInstallments; i++ {
				ins := &domain.Installment{
					ID:           uc.idGen.Generate(),
					InstrumentID: instrument.ID,
					Sequence:     i + 1,
					DueDate:      domain.AddMonths(lastDue, i-previousCount+1),
					Status:       domain.InstallmentPending,
					Description:  installmentDescription(instrument.Name, instrument.Kind, i+1),
					CreatedAt:    now,
					UpdatedAt:    now,
				}
				installments = append(installments, ins)

				if err := uc.installmentRepo.CreateBatch(ctx, tx, []*domain.Installment{ins}); err != nil {
					return nil, err
				}
			}
		} else if input.NoOfInstallments < previousCount {
			kept := installments[:0]
			for _, ins := range installments {
				if ins.Sequence > input.NoOfInstallments && ins.Status == domain.InstallmentPending {
					if err := uc.installmentRepo.Delete(ctx, tx, ins.ID); err != nil {
						return nil, err
					}

					continue
				}

				kept = append(kept, ins)
			}
			installments = kept
		}

		if err := repricePending(installments, input.Amount.Sub(paidAmount)); err != nil {
			return nil, err
		}
	}

	for _, ins := range installments {
		ins.UpdatedAt = now
		if err := uc.installmentRepo.Update(ctx, tx, ins); err != nil {
			return nil, err
		}
	}

	return installments, nil
}

// repricePending spreads remaining over the pending installments using the
// same floor-plus-residual rule as schedule generation.
func repricePending(installments []*domain.Installment, remaining decimal.Decimal) error {
	var pending []*domain.Installment
	for _, ins := range installments {
		if ins.Status == domain.InstallmentPending {
			pending = append(pending, ins)
		}
	}

	if len(pending) == 0 {
		return nil
	}

	if remaining.LessThanOrEqual(decimal.Zero) {
		return domain.ErrNoPendingToAdjust
	}

	count := decimal.NewFromInt(int64(len(pending)))
	base := remaining.DivRound(count, 4).RoundFloor(2)
	if base.IsZero() {
		return domain.ErrInvalidInstallmentCount
	}

	for i, ins := range pending {
		if i == len(pending)-1 {
			ins.Amount = remaining.Sub(base.Mul(decimal.NewFromInt(int64(len(pending) - 1))))
			continue
		}

		ins.Amount = base
	}

	return nil
}

// ToggleInstrumentStatus flips an instrument between Open and Closed.
// Closing is refused while pending installments remain; it never changes
// individual installment states.
func (uc *InstrumentUseCase) ToggleInstrumentStatus(ctx context.Context, ownerID, id string) (*domain.Instrument, error) {
	now := time.Now().UTC()

	var instrument *domain.Instrument

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		instrument, err = uc.instrumentRepo.GetByIDForUpdate(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}

		if instrument.Status == domain.InstrumentOpen {
			installments, err := uc.installmentRepo.ListByInstrumentForUpdate(ctx, tx, id)
			if err != nil {
				return err
			}

			for _, ins := range installments {
				if ins.Status == domain.InstallmentPending {
					return domain.ErrPendingInstallments
				}
			}

			instrument.Status = domain.InstrumentClosed

			event := newOutboxEvent(domain.AggregateTypeInstrument, instrument.ID, domain.EventTypeInstrumentClosed, map[string]any{
				"instrument_id": instrument.ID,
				"name":          instrument.Name,
			}, now)
			if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
				return err
			}
		} else {
			instrument.Status = domain.InstrumentOpen
		}

		instrument.UpdatedAt = now
		if err := uc.instrumentRepo.Update(ctx, tx, instrument); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return instrument, nil
}

// DeleteInstrument hard-deletes an instrument, cascading to every owned
// installment.
func (uc *InstrumentUseCase) DeleteInstrument(ctx context.Context, ownerID, id string) error {
	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if _, err := uc.instrumentRepo.GetByIDForUpdate(ctx, tx, ownerID, id); err != nil {
			return err
		}

		if err := uc.installmentRepo.DeleteByInstrument(ctx, tx, id); err != nil {
			return err
		}

		if err := uc.instrumentRepo.Delete(ctx, tx, ownerID, id); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	uc.invalidateAggregate(ctx, id)

	return nil
}

// aggregate returns the derived aggregate, preferring a cached copy.
func (uc *InstrumentUseCase) aggregate(ctx context.Context, instrument *domain.Instrument, installments []*domain.Installment) domain.Aggregate {
	key := aggregateCacheKey(instrument.ID)

	if cached, err := uc.cache.Get(ctx, key); err == nil && cached != nil {
		var agg domain.Aggregate
		if json.Unmarshal(cached, &agg) == nil {
			return agg
		}
	}

	agg := domain.ComputeAggregate(instrument, installments)

	if encoded, err := json.Marshal(agg); err == nil {
		_ = uc.cache.Set(ctx, key, encoded, AggregateCacheTTL)
	}

	return agg
}

func (uc *InstrumentUseCase) invalidateAggregate(ctx context.Context, instrumentID string) {
	_ = uc.cache.Delete(ctx, aggregateCacheKey(instrumentID))
}

func installmentDescription(name string, kind domain.InstrumentKind, sequence int) string {
	return fmt.Sprintf("%s %s %d", name, domain.InstallmentLabel(kind), sequence)
}
