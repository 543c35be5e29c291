package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/arav/divvy/internal/domain"
)

// ReductionMetrics reports how much the matcher shrinks the naive debt list.
type ReductionMetrics struct {
	OriginalTransactions  int
	OptimizedTransactions int
	ReductionPercentage   decimal.Decimal
}

// MetricsUseCase derives optimization metrics from the ledger.
type MetricsUseCase struct {
	expenseRepo ExpenseRepository
}

// NewMetricsUseCase creates a new MetricsUseCase.
func NewMetricsUseCase(expenseRepo ExpenseRepository) *MetricsUseCase {
	return &MetricsUseCase{expenseRepo: expenseRepo}
}

// Reduction compares the naive pairwise debt count (every non-payer
// participant owes the payer once per expense) against the matcher's output
// for the current raw balances.
func (uc *MetricsUseCase) Reduction(ctx context.Context, groupID string) (*ReductionMetrics, error) {
	if groupID == "" {
		return nil, domain.ErrMissingField
	}

	expenses, err := uc.expenseRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	original := 0
	for _, expense := range expenses {
		for _, participant := range expense.Participants {
			if participant != expense.PaidBy {
				original++
			}
		}
	}

	optimized := len(domain.MatchTransfers(domain.NetBalances(expenses)))

	percentage := decimal.Zero
	if original > 0 {
		percentage = decimal.NewFromInt(int64(original - optimized)).
			Div(decimal.NewFromInt(int64(original))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return &ReductionMetrics{
		OriginalTransactions:  original,
		OptimizedTransactions: optimized,
		ReductionPercentage:   percentage,
	}, nil
}
