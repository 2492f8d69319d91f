package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// InstallmentUseCase handles installment status transitions and edits.
type InstallmentUseCase struct {
	txManager       TransactionManager
	instrumentRepo  InstrumentRepository
	installmentRepo InstallmentRepository
	outboxRepo      OutboxRepository
	cache           Cache
	retrier         Retrier
}

// NewInstallmentUseCase creates a new InstallmentUseCase.
func NewInstallmentUseCase(
	txManager TransactionManager,
	instrumentRepo InstrumentRepository,
	installmentRepo InstallmentRepository,
	outboxRepo OutboxRepository,
	cache Cache,
	retrier Retrier,
) *InstallmentUseCase {
	return &InstallmentUseCase{
		txManager:       txManager,
		instrumentRepo:  instrumentRepo,
		installmentRepo: installmentRepo,
		outboxRepo:      outboxRepo,
		cache:           cache,
		retrier:         retrier,
	}
}

// ToggleStatusInput represents input for toggling a single installment.
type ToggleStatusInput struct {
	CompletedAt *time.Time
	OwnerID     string
	ID          string
}

// ToggleStatus flips an installment between Pending and Completed. Moving
// to Completed stamps the completion date, defaulting to now when no
// explicit date is given; moving back clears it. Installments may be
// completed in any order.
func (uc *InstallmentUseCase) ToggleStatus(ctx context.Context, input ToggleStatusInput) (*domain.Installment, error) {
	now := time.Now().UTC()

	completedAt := now
	if input.CompletedAt != nil {
		completedAt = *input.CompletedAt
	}

	var installment *domain.Installment

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		installment, err = uc.toggleOne(ctx, tx, input.OwnerID, input.ID, completedAt, now)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateAggregate(ctx, installment.InstrumentID)

	return installment, nil
}

// BulkToggleStatusInput represents input for toggling several installments.
type BulkToggleStatusInput struct {
	CompletedAt *time.Time
	OwnerID     string
	IDs         []string
}

// BulkToggleStatus toggles each listed installment independently. Failures
// are reported per item and never roll back the others.
func (uc *InstallmentUseCase) BulkToggleStatus(ctx context.Context, input BulkToggleStatusInput) (*BulkOutcome, error) {
	now := time.Now().UTC()

	completedAt := now
	if input.CompletedAt != nil {
		completedAt = *input.CompletedAt
	}

	outcome := &BulkOutcome{}
	touched := make(map[string]struct{})

	for _, id := range input.IDs {
		err := uc.retrier.Retry(ctx, func() error {
			tx, err := uc.txManager.Begin(ctx)
			if err != nil {
				return err
			}
			defer tx.Rollback(ctx)

			installment, err := uc.toggleOne(ctx, tx, input.OwnerID, id, completedAt, now)
			if err != nil {
				return err
			}

			if err := tx.Commit(ctx); err != nil {
				return err
			}

			touched[installment.InstrumentID] = struct{}{}

			return nil
		})
		if err != nil {
			outcome.fail(id, err)
			continue
		}

		outcome.ok(id)
	}

	for instrumentID := range touched {
		uc.invalidateAggregate(ctx, instrumentID)
	}

	return outcome, nil
}

func (uc *InstallmentUseCase) toggleOne(ctx context.Context, tx Transaction, ownerID, id string, completedAt, now time.Time) (*domain.Installment, error) {
	installment, err := uc.installmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	instrument, err := uc.instrumentRepo.GetByIDForUpdate(ctx, tx, ownerID, installment.InstrumentID)
	if err != nil {
		return nil, err
	}

	wasPending := installment.Status == domain.InstallmentPending

	installment.Toggle(completedAt)
	installment.UpdatedAt = now

	if err := uc.installmentRepo.Update(ctx, tx, installment); err != nil {
		return nil, err
	}

	eventType := domain.EventTypeInstallmentReverted
	if wasPending {
		eventType = domain.EventTypeInstallmentCompleted
	}

	event := newOutboxEvent(domain.AggregateTypeInstallment, installment.ID, eventType, map[string]any{
		"installment_id": installment.ID,
		"instrument_id":  instrument.ID,
		"sequence":       installment.Sequence,
		"amount":         installment.Amount.String(),
	}, now)
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	return installment, nil
}

// UpdateInstallmentInput represents input for editing an installment.
type UpdateInstallmentInput struct {
	DueDate     time.Time
	OwnerID     string
	ID          string
	Description string
	Amount      decimal.Decimal
}

// UpdateInstallment edits a single installment's amount, due date and
// description. It does not rebalance siblings; the instrument aggregate
// absorbs the change on the next read.
func (uc *InstallmentUseCase) UpdateInstallment(ctx context.Context, input UpdateInstallmentInput) (*domain.Installment, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()

	var installment *domain.Installment

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		installment, err = uc.installmentRepo.GetByID(ctx, input.ID)
		if err != nil {
			return err
		}

		if _, err := uc.instrumentRepo.GetByIDForUpdate(ctx, tx, input.OwnerID, installment.InstrumentID); err != nil {
			return err
		}

		installment.Amount = input.Amount
		installment.DueDate = input.DueDate
		if input.Description != "" {
			installment.Description = input.Description
		}
		installment.UpdatedAt = now

		if err := uc.installmentRepo.Update(ctx, tx, installment); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateAggregate(ctx, installment.InstrumentID)

	return installment, nil
}

// DeleteInstallment removes a single installment from its schedule.
func (uc *InstallmentUseCase) DeleteInstallment(ctx context.Context, ownerID, id string) error {
	var instrumentID string

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		installment, err := uc.installmentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if _, err := uc.instrumentRepo.GetByIDForUpdate(ctx, tx, ownerID, installment.InstrumentID); err != nil {
			return err
		}

		if err := uc.installmentRepo.Delete(ctx, tx, id); err != nil {
			return err
		}

		instrumentID = installment.InstrumentID

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	uc.invalidateAggregate(ctx, instrumentID)

	return nil
}

func (uc *InstallmentUseCase) invalidateAggregate(ctx context.Context, instrumentID string) {
	_ = uc.cache.Delete(ctx, aggregateCacheKey(instrumentID))
}
