package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/usecase"
	"github.com/arav/divvy/internal/usecase/mocks"
)

func newPaymentUseCase(transactionRepo *mocks.MockTransactionRepository, outboxRepo *mocks.MockOutboxRepository) *usecase.PaymentUseCase {
	return usecase.NewPaymentUseCase(
		mocks.NewMockTxManager(),
		transactionRepo,
		outboxRepo,
		&mocks.MockRetrier{},
		mocks.NewMockIDGenerator(),
		nil,
	)
}

func TestPaymentUseCase_CreateTransaction(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateTransactionInput
		expectError error
	}{
		{
			name: "valid input",
			input: usecase.CreateTransactionInput{
				FromUserID:  "bob",
				ToUserID:    "alice",
				GroupID:     "group-1",
				TotalAmount: decimal.NewFromInt(300),
			},
		},
		{
			name: "non-positive total",
			input: usecase.CreateTransactionInput{
				FromUserID:  "bob",
				ToUserID:    "alice",
				GroupID:     "group-1",
				TotalAmount: decimal.Zero,
			},
			expectError: domain.ErrInvalidAmount,
		},
		{
			name: "missing group",
			input: usecase.CreateTransactionInput{
				FromUserID:  "bob",
				ToUserID:    "alice",
				TotalAmount: decimal.NewFromInt(300),
			},
			expectError: domain.ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newPaymentUseCase(mocks.NewMockTransactionRepository(), mocks.NewMockOutboxRepository())

			transaction, err := uc.CreateTransaction(context.Background(), tt.input)

			if tt.expectError != nil {
				require.ErrorIs(t, err, tt.expectError)
				return
			}

			require.NoError(t, err)
			require.Equal(t, domain.TransactionPending, transaction.Status)
			require.True(t, transaction.RemainingAmount.Equal(tt.input.TotalAmount))
		})
	}
}

func TestPaymentUseCase_MakePayment_Lifecycle(t *testing.T) {
	transactionRepo := mocks.NewMockTransactionRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	uc := newPaymentUseCase(transactionRepo, outboxRepo)

	created, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		FromUserID:  "bob",
		ToUserID:    "alice",
		GroupID:     "group-1",
		TotalAmount: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	// 100 of 300: pending -> partial
	after, err := uc.MakePayment(context.Background(), created.ID, decimal.NewFromInt(100))
	require.NoError(t, err)
	require.Equal(t, domain.TransactionPartial, after.Status)
	require.Equal(t, "100", after.PaidAmount.String())
	require.Equal(t, "200", after.RemainingAmount.String())

	// remaining 200: partial -> completed
	after, err = uc.MakePayment(context.Background(), created.ID, decimal.NewFromInt(200))
	require.NoError(t, err)
	require.Equal(t, domain.TransactionCompleted, after.Status)
	require.True(t, after.RemainingAmount.IsZero())

	// completed is terminal
	_, err = uc.MakePayment(context.Background(), created.ID, decimal.NewFromInt(50))
	require.ErrorIs(t, err, domain.ErrTransactionCompleted)

	require.Len(t, outboxRepo.Events(), 2)
}

func TestPaymentUseCase_MakePayment_OverpaymentLeavesNoState(t *testing.T) {
	transactionRepo := mocks.NewMockTransactionRepository()
	uc := newPaymentUseCase(transactionRepo, mocks.NewMockOutboxRepository())

	created, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		FromUserID:  "bob",
		ToUserID:    "alice",
		GroupID:     "group-1",
		TotalAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = uc.MakePayment(context.Background(), created.ID, decimal.NewFromInt(200))
	require.ErrorIs(t, err, domain.ErrOverpayment)

	stored, err := uc.GetTransaction(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, stored.PaidAmount.IsZero(), "failed payment must not change paid amount")
	require.Equal(t, domain.TransactionPending, stored.Status)
}

func TestPaymentUseCase_MakePayment_NotFound(t *testing.T) {
	uc := newPaymentUseCase(mocks.NewMockTransactionRepository(), mocks.NewMockOutboxRepository())

	_, err := uc.MakePayment(context.Background(), "missing", decimal.NewFromInt(10))
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestPaymentUseCase_MakePayment_SerializedRetries(t *testing.T) {
	transactionRepo := mocks.NewMockTransactionRepository()

	attempts := 0
	transient := errors.New("deadlock detected")
	retrier := &mocks.MockRetrier{
		RetryFunc: func(ctx context.Context, operation func() error) error {
			for {
				if err := operation(); !errors.Is(err, transient) {
					return err
				}
			}
		},
	}

	uc := usecase.NewPaymentUseCase(
		&mocks.MockTxManager{
			BeginFunc: func(ctx context.Context) (usecase.Transaction, error) {
				attempts++
				if attempts == 1 {
					return nil, transient
				}

				return &mocks.MockTransaction{}, nil
			},
		},
		transactionRepo,
		mocks.NewMockOutboxRepository(),
		retrier,
		mocks.NewMockIDGenerator(),
		nil,
	)

	created, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		FromUserID:  "bob",
		ToUserID:    "alice",
		GroupID:     "group-1",
		TotalAmount: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	after, err := uc.MakePayment(context.Background(), created.ID, decimal.NewFromInt(50))
	require.NoError(t, err)
	require.Equal(t, domain.TransactionCompleted, after.Status)
	require.Equal(t, 2, attempts, "first attempt should have been retried")
}

func TestPaymentUseCase_ListTransactions(t *testing.T) {
	transactionRepo := mocks.NewMockTransactionRepository()
	uc := newPaymentUseCase(transactionRepo, mocks.NewMockOutboxRepository())

	for _, groupID := range []string{"group-1", "group-1", "group-2"} {
		_, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			FromUserID:  "bob",
			ToUserID:    "alice",
			GroupID:     groupID,
			TotalAmount: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}

	all, err := uc.ListTransactions(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	scoped, err := uc.ListTransactions(context.Background(), "group-1")
	require.NoError(t, err)
	require.Len(t, scoped, 2)
}
