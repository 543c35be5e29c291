package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/infrastructure/metrics"
)

// PaymentUseCase owns the partial-payment transaction state machine.
type PaymentUseCase struct {
	txManager       TransactionManager
	transactionRepo TransactionRepository
	outboxRepo      OutboxRepository
	retrier         Retrier
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	transactionRepo TransactionRepository,
	outboxRepo OutboxRepository,
	retrier Retrier,
	idGen IDGenerator,
	m *metrics.Metrics,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		outboxRepo:      outboxRepo,
		retrier:         retrier,
		idGen:           idGen,
		metrics:         m,
	}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	FromUserID  string
	ToUserID    string
	GroupID     string
	TotalAmount decimal.Decimal
}

// CreateTransaction creates a pending transaction tracking one directed debt.
func (uc *PaymentUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	transaction, err := domain.NewTransaction(
		uc.idGen.Generate(),
		input.FromUserID,
		input.ToUserID,
		input.GroupID,
		input.TotalAmount,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.Inc()
	}

	return transaction, nil
}

// MakePayment applies a payment as a single read-modify-write unit. The row
// is locked for the duration so concurrent payments against the same
// transaction serialize and cannot bypass the overpayment check; transient
// serialization failures are retried.
func (uc *PaymentUseCase) MakePayment(ctx context.Context, transactionID string, amount decimal.Decimal) (*domain.Transaction, error) {
	var result *domain.Transaction

	operation := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		transaction, err := uc.transactionRepo.GetByIDForUpdate(txCtx, tx, transactionID)
		if err != nil {
			return err
		}

		if err := transaction.ApplyPayment(amount); err != nil {
			return err
		}

		now := time.Now().UTC()
		transaction.UpdatedAt = now

		if err := uc.transactionRepo.UpdatePayment(txCtx, tx, transaction); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   transaction.ID,
			AggregateType: domain.AggregateTypeTransaction,
			EventType:     domain.EventTypePaymentRecorded,
			Payload: map[string]any{
				"transaction_id": transaction.ID,
				"group_id":       transaction.GroupID,
				"amount":         amount.String(),
				"paid":           transaction.PaidAmount.String(),
				"remaining":      transaction.RemainingAmount.String(),
				"status":         string(transaction.Status),
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		if err := tx.Commit(txCtx); err != nil {
			return err
		}

		result = transaction

		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}

	if err != nil {
		if uc.metrics != nil {
			uc.metrics.PaymentFailures.WithLabelValues(failureReason(err)).Inc()
		}

		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsRecorded.Inc()
	}

	return result, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *PaymentUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactions lists transactions, optionally filtered by group.
func (uc *PaymentUseCase) ListTransactions(ctx context.Context, groupID string) ([]*domain.Transaction, error) {
	return uc.transactionRepo.List(ctx, groupID)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrOverpayment):
		return "overpayment"
	case errors.Is(err, domain.ErrTransactionCompleted):
		return "already_completed"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrTransactionNotFound):
		return "not_found"
	default:
		return "storage"
	}
}
