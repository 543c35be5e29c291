package usecase

import (
	"context"
	"time"

	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/infrastructure/metrics"
)

// RecurringUseCase materializes due recurring expenses. Invocation is
// external (a scheduler or the trigger endpoint); the processor itself owns
// no loop.
type RecurringUseCase struct {
	txManager   TransactionManager
	expenseRepo ExpenseRepository
	outboxRepo  OutboxRepository
	balances    *BalanceUseCase
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewRecurringUseCase creates a new RecurringUseCase.
func NewRecurringUseCase(
	txManager TransactionManager,
	expenseRepo ExpenseRepository,
	outboxRepo OutboxRepository,
	balances *BalanceUseCase,
	idGen IDGenerator,
	m *metrics.Metrics,
) *RecurringUseCase {
	return &RecurringUseCase{
		txManager:   txManager,
		expenseRepo: expenseRepo,
		outboxRepo:  outboxRepo,
		balances:    balances,
		idGen:       idGen,
		metrics:     m,
	}
}

// ProcessDue materializes one clone per recurring expense due at now and
// advances each source's schedule pointer strictly past now. A second
// invocation in the same cycle finds nothing due and returns an empty list.
func (uc *RecurringUseCase) ProcessDue(ctx context.Context, now time.Time) ([]*domain.Expense, error) {
	now = now.UTC()

	if uc.metrics != nil {
		uc.metrics.RecurringRuns.Inc()
	}

	due, err := uc.expenseRepo.ListDueRecurring(ctx, now)
	if err != nil {
		return nil, err
	}

	created := make([]*domain.Expense, 0, len(due))

	for _, source := range due {
		clone, err := uc.processSource(ctx, source.ID, now)
		if err != nil {
			return created, err
		}

		if clone != nil {
			created = append(created, clone)
		}
	}

	return created, nil
}

// processSource materializes a single source inside one transaction. The
// source row is locked and its dueness re-checked under the lock, so
// overlapping triggers cannot both clone the same cycle.
func (uc *RecurringUseCase) processSource(ctx context.Context, sourceID string, now time.Time) (*domain.Expense, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	source, err := uc.expenseRepo.GetByIDForUpdate(txCtx, tx, sourceID)
	if err != nil {
		return nil, err
	}

	if !source.IsDue(now) {
		// A concurrent trigger already advanced the schedule.
		return nil, nil
	}

	clone := source.Materialize(uc.idGen.Generate(), now)
	if err := uc.expenseRepo.CreateTx(txCtx, tx, clone); err != nil {
		return nil, err
	}

	next := source.NextExecutionAfter(now)
	if err := uc.expenseRepo.UpdateSchedule(txCtx, tx, source.ID, next); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   clone.ID,
		AggregateType: domain.AggregateTypeExpense,
		EventType:     domain.EventTypeExpenseMaterialized,
		Payload: map[string]any{
			"expense_id": clone.ID,
			"source_id":  source.ID,
			"group_id":   clone.GroupID,
			"amount":     clone.Amount.String(),
			"next_at":    next.Format(time.RFC3339),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.balances != nil {
		uc.balances.Invalidate(ctx, clone.GroupID)
	}

	if uc.metrics != nil {
		uc.metrics.RecurringMaterialized.Inc()
	}

	return clone, nil
}

// ListRecurring lists recurring templates, optionally scoped to a group.
func (uc *RecurringUseCase) ListRecurring(ctx context.Context, groupID string) ([]*domain.Expense, error) {
	return uc.expenseRepo.ListRecurring(ctx, groupID)
}
