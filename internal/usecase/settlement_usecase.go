package usecase

import (
	"context"
	"time"

	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/infrastructure/metrics"
)

// SettlementUseCase persists immutable settlement snapshots. Settling reads
// the ledger and settlement history, never writes expenses.
type SettlementUseCase struct {
	txManager      TransactionManager
	expenseRepo    ExpenseRepository
	settlementRepo SettlementRepository
	outboxRepo     OutboxRepository
	idGen          IDGenerator
	metrics        *metrics.Metrics
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	txManager TransactionManager,
	expenseRepo ExpenseRepository,
	settlementRepo SettlementRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager:      txManager,
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
		outboxRepo:     outboxRepo,
		idGen:          idGen,
		metrics:        m,
	}
}

// SettleGroup computes settlement-aware balances, matches them, and persists
// the resulting transfer list as a new Settlement. A nil settlement with nil
// error means there was nothing to settle.
func (uc *SettlementUseCase) SettleGroup(ctx context.Context, groupID string) (*domain.Settlement, error) {
	if groupID == "" {
		return nil, domain.ErrMissingField
	}

	expenses, err := uc.expenseRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	prior, err := uc.settlementRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	transfers := domain.MatchTransfers(domain.NetBalancesAfterSettlements(expenses, prior))
	if len(transfers) == 0 {
		if uc.metrics != nil {
			uc.metrics.SettleNoop.Inc()
		}

		return nil, nil
	}

	now := time.Now().UTC()
	settlement := &domain.Settlement{
		ID:        uc.idGen.Generate(),
		GroupID:   groupID,
		Entries:   transfers,
		SettledAt: now,
	}

	if err := settlement.Validate(); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.settlementRepo.Create(txCtx, tx, settlement); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   settlement.ID,
		AggregateType: domain.AggregateTypeSettlement,
		EventType:     domain.EventTypeGroupSettled,
		Payload: map[string]any{
			"settlement_id": settlement.ID,
			"group_id":      groupID,
			"transfers":     len(transfers),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SettlementsCreated.Inc()
	}

	return settlement, nil
}

// History returns all settlement snapshots for a group, newest first.
func (uc *SettlementUseCase) History(ctx context.Context, groupID string) ([]*domain.Settlement, error) {
	if groupID == "" {
		return nil, domain.ErrMissingField
	}

	return uc.settlementRepo.ListByGroup(ctx, groupID)
}
