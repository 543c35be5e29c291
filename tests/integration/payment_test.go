package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/arav/divvy/internal/adapter/repository/postgres"
	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/usecase"
	"github.com/arav/divvy/tests/testutil"
)

func newPaymentUseCase(testDB *testutil.TestDB) *usecase.PaymentUseCase {
	pool := testDB.Pool
	transactionRepo := postgres.NewTransactionRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(testutil.NopLogger())

	return usecase.NewPaymentUseCase(txManager, transactionRepo, outboxRepo, retrier, idGen, nil)
}

func TestPartialPaymentLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	paymentUC := newPaymentUseCase(testDB)

	alice := testDB.CreateTestUser(ctx, "alice")
	bob := testDB.CreateTestUser(ctx, "bob")
	group := testDB.CreateTestGroup(ctx, "dinner", alice.ID, bob.ID)

	transaction, err := paymentUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
		FromUserID:  bob.ID,
		ToUserID:    alice.ID,
		GroupID:     group.ID,
		TotalAmount: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	if transaction.Status != domain.TransactionPending {
		t.Fatalf("expected pending status, got %s", transaction.Status)
	}

	// First payment moves the transaction to partial.
	updated, err := paymentUC.MakePayment(ctx, transaction.ID, decimal.NewFromInt(40))
	if err != nil {
		t.Fatalf("failed to make first payment: %v", err)
	}
	if updated.Status != domain.TransactionPartial {
		t.Errorf("expected partial status, got %s", updated.Status)
	}
	if !updated.RemainingAmount.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected 60 remaining, got %s", updated.RemainingAmount)
	}

	// Paying off the remainder completes it.
	updated, err = paymentUC.MakePayment(ctx, transaction.ID, decimal.NewFromInt(60))
	if err != nil {
		t.Fatalf("failed to make final payment: %v", err)
	}
	if updated.Status != domain.TransactionCompleted {
		t.Errorf("expected completed status, got %s", updated.Status)
	}
	if !updated.RemainingAmount.IsZero() {
		t.Errorf("expected zero remaining, got %s", updated.RemainingAmount)
	}

	// Completed is terminal.
	if _, err := paymentUC.MakePayment(ctx, transaction.ID, decimal.NewFromInt(1)); !errors.Is(err, domain.ErrTransactionCompleted) {
		t.Fatalf("expected ErrTransactionCompleted, got %v", err)
	}
}

func TestOverpaymentRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	paymentUC := newPaymentUseCase(testDB)

	alice := testDB.CreateTestUser(ctx, "alice")
	bob := testDB.CreateTestUser(ctx, "bob")
	group := testDB.CreateTestGroup(ctx, "dinner", alice.ID, bob.ID)

	transaction, err := paymentUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
		FromUserID:  bob.ID,
		ToUserID:    alice.ID,
		GroupID:     group.ID,
		TotalAmount: decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	if _, err := paymentUC.MakePayment(ctx, transaction.ID, decimal.NewFromInt(75)); !errors.Is(err, domain.ErrOverpayment) {
		t.Fatalf("expected ErrOverpayment, got %v", err)
	}

	// The rejected payment left no trace.
	unchanged, err := paymentUC.GetTransaction(ctx, transaction.ID)
	if err != nil {
		t.Fatalf("failed to reload transaction: %v", err)
	}
	if !unchanged.PaidAmount.IsZero() {
		t.Errorf("expected no paid amount, got %s", unchanged.PaidAmount)
	}
	if unchanged.Status != domain.TransactionPending {
		t.Errorf("expected pending status, got %s", unchanged.Status)
	}
}
