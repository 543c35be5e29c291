package domain

import "errors"

var (
	// Validation errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrNoParticipants    = errors.New("expense requires at least one participant")
	ErrSameUser          = errors.New("from and to user must differ")
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidRecurrence = errors.New("invalid recurrence interval")

	// Not-found errors
	ErrUserNotFound        = errors.New("user not found")
	ErrGroupNotFound       = errors.New("group not found")
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Payment tracker errors
	ErrOverpayment          = errors.New("payment amount exceeds remaining balance")
	ErrTransactionCompleted = errors.New("transaction already completed")
)
