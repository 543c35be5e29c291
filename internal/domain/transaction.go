package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus tracks progress of a partial-payment transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionPartial   TransactionStatus = "partial"
	TransactionCompleted TransactionStatus = "completed"
)

// Transaction tracks incremental fulfillment of one directed debt.
// TotalAmount is fixed at creation; PaidAmount only grows; status is a pure
// function of paid vs total and completed is terminal.
type Transaction struct {
	ID              string
	FromUserID      string
	ToUserID        string
	GroupID         string
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	Status          TransactionStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewTransaction creates a pending transaction for the full debt amount.
func NewTransaction(id, fromUserID, toUserID, groupID string, totalAmount decimal.Decimal, now time.Time) (*Transaction, error) {
	t := &Transaction{
		ID:              id,
		FromUserID:      fromUserID,
		ToUserID:        toUserID,
		GroupID:         groupID,
		TotalAmount:     totalAmount,
		PaidAmount:      decimal.Zero,
		RemainingAmount: totalAmount,
		Status:          TransactionPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks transaction invariants.
func (t *Transaction) Validate() error {
	if t.FromUserID == "" || t.ToUserID == "" || t.GroupID == "" {
		return ErrMissingField
	}

	if t.FromUserID == t.ToUserID {
		return ErrSameUser
	}

	if t.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// ApplyPayment advances the state machine by amount. It either fully applies
// the payment or leaves the transaction unchanged.
func (t *Transaction) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Status == TransactionCompleted {
		return ErrTransactionCompleted
	}

	if amount.GreaterThan(t.RemainingAmount) {
		return fmt.Errorf("%w of %s", ErrOverpayment, t.RemainingAmount)
	}

	t.PaidAmount = t.PaidAmount.Add(amount).Round(2)
	t.RemainingAmount = t.TotalAmount.Sub(t.PaidAmount)

	if t.RemainingAmount.IsZero() {
		t.Status = TransactionCompleted
	} else {
		t.Status = TransactionPartial
	}

	return nil
}
