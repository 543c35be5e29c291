package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/infrastructure/metrics"
)

// ExpenseUseCase handles expense ledger writes and reads.
type ExpenseUseCase struct {
	expenseRepo ExpenseRepository
	groupRepo   GroupRepository
	balances    *BalanceUseCase
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	expenseRepo ExpenseRepository,
	groupRepo GroupRepository,
	balances *BalanceUseCase,
	idGen IDGenerator,
	m *metrics.Metrics,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo: expenseRepo,
		groupRepo:   groupRepo,
		balances:    balances,
		idGen:       idGen,
		metrics:     m,
	}
}

// CreateExpenseInput represents input for creating an expense.
type CreateExpenseInput struct {
	GroupID            string
	PaidBy             string
	Amount             decimal.Decimal
	Participants       []string
	Description        string
	IsRecurring        bool
	RecurrenceInterval domain.RecurrenceInterval
	NextExecutionDate  *time.Time
}

// CreateExpense appends a new expense to the group's ledger.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	expense := &domain.Expense{
		ID:                 uc.idGen.Generate(),
		GroupID:            input.GroupID,
		PaidBy:             input.PaidBy,
		Amount:             input.Amount,
		Participants:       input.Participants,
		Description:        input.Description,
		IsRecurring:        input.IsRecurring,
		RecurrenceInterval: input.RecurrenceInterval,
		NextExecutionDate:  input.NextExecutionDate,
		CreatedAt:          time.Now().UTC(),
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.groupRepo.GetByID(ctx, input.GroupID); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	if uc.balances != nil {
		uc.balances.Invalidate(ctx, expense.GroupID)
	}

	if uc.metrics != nil {
		uc.metrics.ExpensesCreated.Inc()
	}

	return expense, nil
}

// ListByGroup returns the group's full expense snapshot.
func (uc *ExpenseUseCase) ListByGroup(ctx context.Context, groupID string) ([]*domain.Expense, error) {
	if groupID == "" {
		return nil, domain.ErrMissingField
	}

	return uc.expenseRepo.ListByGroup(ctx, groupID)
}
