package usecase

import (
	"context"
	"encoding/json"

	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/infrastructure/metrics"
)

// BalanceUseCase computes the optimized transfer set for a group's raw
// expense ledger. This view intentionally ignores settlement history; the
// settlement-aware view lives in SettlementUseCase.
type BalanceUseCase struct {
	expenseRepo ExpenseRepository
	cache       Cache
	metrics     *metrics.Metrics
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(expenseRepo ExpenseRepository, cache Cache, m *metrics.Metrics) *BalanceUseCase {
	return &BalanceUseCase{
		expenseRepo: expenseRepo,
		cache:       cache,
		metrics:     m,
	}
}

// ComputeBalances returns the transfers that settle the group's current net
// balances. An unknown group simply has no expenses and yields an empty list.
func (uc *BalanceUseCase) ComputeBalances(ctx context.Context, groupID string) ([]domain.Transfer, error) {
	if groupID == "" {
		return nil, domain.ErrMissingField
	}

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, balanceCacheKey(groupID)); err == nil && data != nil {
			var transfers []domain.Transfer
			if json.Unmarshal(data, &transfers) == nil {
				if uc.metrics != nil {
					uc.metrics.BalanceCacheHits.Inc()
				}

				return transfers, nil
			}
		}
	}

	expenses, err := uc.expenseRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	transfers := domain.MatchTransfers(domain.NetBalances(expenses))

	if uc.metrics != nil {
		uc.metrics.BalanceComputations.Inc()
		uc.metrics.TransfersMatched.Observe(float64(len(transfers)))
	}

	if uc.cache != nil {
		if data, err := json.Marshal(transfers); err == nil {
			_ = uc.cache.Set(ctx, balanceCacheKey(groupID), data, BalanceCacheTTL)
		}
	}

	return transfers, nil
}

// Invalidate drops the cached balance view for a group after a ledger write.
func (uc *BalanceUseCase) Invalidate(ctx context.Context, groupID string) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, balanceCacheKey(groupID))
	}
}

func balanceCacheKey(groupID string) string {
	return "balances:" + groupID
}
