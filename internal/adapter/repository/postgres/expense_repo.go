package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/usecase"
)

const expenseColumns = `id, group_id, paid_by, amount, participants, description,
	is_recurring, recurrence_interval, next_execution_date, source_expense_id, created_at`

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create appends an expense to the ledger.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	return createExpense(ctx, r.pool, expense)
}

// CreateTx appends an expense within an existing transaction.
func (r *ExpenseRepository) CreateTx(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	return createExpense(ctx, tx.(*Tx).PgxTx(), expense)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func createExpense(ctx context.Context, db execer, expense *domain.Expense) error {
	_, err := db.Exec(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		expense.ID,
		expense.GroupID,
		expense.PaidBy,
		decimalToNumeric(expense.Amount),
		expense.Participants,
		expense.Description,
		expense.IsRecurring,
		string(expense.RecurrenceInterval),
		timePtrToPgTimestamptz(expense.NextExecutionDate),
		expense.SourceExpenseID,
		timeToPgTimestamptz(expense.CreatedAt),
	)

	return err
}

// GetByIDForUpdate retrieves an expense with a FOR UPDATE lock.
func (r *ExpenseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error) {
	row := tx.(*Tx).PgxTx().QueryRow(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = $1 FOR UPDATE`, id)

	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}

		return nil, err
	}

	return expense, nil
}

// ListByGroup returns the group's full expense ledger, oldest first.
func (r *ExpenseRepository) ListByGroup(ctx context.Context, groupID string) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE group_id = $1 ORDER BY created_at, id`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// ListRecurring returns recurring templates, all groups when groupID is empty.
func (r *ExpenseRepository) ListRecurring(ctx context.Context, groupID string) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+expenseColumns+` FROM expenses
		WHERE is_recurring AND ($1 = '' OR group_id = $1)
		ORDER BY created_at, id`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// ListDueRecurring returns recurring templates whose schedule is due.
func (r *ExpenseRepository) ListDueRecurring(ctx context.Context, due time.Time) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+expenseColumns+` FROM expenses
		WHERE is_recurring AND next_execution_date IS NOT NULL AND next_execution_date <= $1
		ORDER BY next_execution_date, id`,
		timeToPgTimestamptz(due))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// UpdateSchedule advances a recurring template's schedule pointer.
func (r *ExpenseRepository) UpdateSchedule(ctx context.Context, tx usecase.Transaction, id string, nextExecution time.Time) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx,
		`UPDATE expenses SET next_execution_date = $2 WHERE id = $1 AND is_recurring`,
		id, timeToPgTimestamptz(nextExecution))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		expense       domain.Expense
		amount        pgtype.Numeric
		interval      string
		nextExecution pgtype.Timestamptz
		createdAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PaidBy,
		&amount,
		&expense.Participants,
		&expense.Description,
		&expense.IsRecurring,
		&interval,
		&nextExecution,
		&expense.SourceExpenseID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	expense.Amount = numericToDecimal(amount)
	expense.RecurrenceInterval = domain.RecurrenceInterval(interval)
	expense.NextExecutionDate = pgTimestamptzToTimePtr(nextExecution)
	expense.CreatedAt = createdAt.Time

	return &expense, nil
}

func collectExpenses(rows pgx.Rows) ([]*domain.Expense, error) {
	var expenses []*domain.Expense

	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}

		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}
