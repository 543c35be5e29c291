package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/usecase"
)

const transactionColumns = `id, from_user_id, to_user_id, group_id,
	total_amount, paid_amount, remaining_amount, status, created_at, updated_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create creates a new payment transaction.
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		transaction.ID,
		transaction.FromUserID,
		transaction.ToUserID,
		transaction.GroupID,
		decimalToNumeric(transaction.TotalAmount),
		decimalToNumeric(transaction.PaidAmount),
		decimalToNumeric(transaction.RemainingAmount),
		string(transaction.Status),
		timeToPgTimestamptz(transaction.CreatedAt),
		timeToPgTimestamptz(transaction.UpdatedAt),
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)

	return scanTransactionRow(row)
}

// GetByIDForUpdate retrieves a transaction with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	row := tx.(*Tx).PgxTx().QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id)

	return scanTransactionRow(row)
}

// UpdatePayment persists the transaction's payment fields after ApplyPayment.
func (r *TransactionRepository) UpdatePayment(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx, `
		UPDATE transactions
		SET paid_amount = $2, remaining_amount = $3, status = $4, updated_at = $5
		WHERE id = $1`,
		transaction.ID,
		decimalToNumeric(transaction.PaidAmount),
		decimalToNumeric(transaction.RemainingAmount),
		string(transaction.Status),
		timeToPgTimestamptz(transaction.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// List returns transactions, all groups when groupID is empty, newest first.
func (r *TransactionRepository) List(ctx context.Context, groupID string) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE $1 = '' OR group_id = $1
		ORDER BY created_at DESC, id DESC`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction

	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

func scanTransactionRow(row pgx.Row) (*domain.Transaction, error) {
	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return transaction, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction domain.Transaction
		total       pgtype.Numeric
		paid        pgtype.Numeric
		remaining   pgtype.Numeric
		status      string
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&transaction.ID,
		&transaction.FromUserID,
		&transaction.ToUserID,
		&transaction.GroupID,
		&total,
		&paid,
		&remaining,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	transaction.TotalAmount = numericToDecimal(total)
	transaction.PaidAmount = numericToDecimal(paid)
	transaction.RemainingAmount = numericToDecimal(remaining)
	transaction.Status = domain.TransactionStatus(status)
	transaction.CreatedAt = createdAt.Time
	transaction.UpdatedAt = updatedAt.Time

	return &transaction, nil
}
