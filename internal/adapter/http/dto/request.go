package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/usecase"
)

// CreateUserRequest represents a user creation request.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUseCaseInput converts the request to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Name:  r.Name,
		Email: r.Email,
	}
}

// CreateGroupRequest represents a group creation request.
type CreateGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
}

// ToUseCaseInput converts the request to use case input.
func (r *CreateGroupRequest) ToUseCaseInput() usecase.CreateGroupInput {
	return usecase.CreateGroupInput{
		Name:      r.Name,
		MemberIDs: r.MemberIDs,
	}
}

// CreateExpenseRequest represents an expense creation request.
type CreateExpenseRequest struct {
	GroupID            string          `json:"group_id"`
	PaidBy             string          `json:"paid_by"`
	Amount             decimal.Decimal `json:"amount"`
	Participants       []string        `json:"participants"`
	Description        string          `json:"description"`
	IsRecurring        bool            `json:"is_recurring"`
	RecurrenceInterval string          `json:"recurrence_interval,omitempty"`
	NextExecutionDate  *time.Time      `json:"next_execution_date,omitempty"`
}

// ToUseCaseInput converts the request to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput() usecase.CreateExpenseInput {
	return usecase.CreateExpenseInput{
		GroupID:            r.GroupID,
		PaidBy:             r.PaidBy,
		Amount:             r.Amount,
		Participants:       r.Participants,
		Description:        r.Description,
		IsRecurring:        r.IsRecurring,
		RecurrenceInterval: domain.RecurrenceInterval(r.RecurrenceInterval),
		NextExecutionDate:  r.NextExecutionDate,
	}
}

// CreateTransactionRequest represents a payment transaction creation request.
type CreateTransactionRequest struct {
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	GroupID    string          `json:"group_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts the request to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		FromUserID:  r.FromUserID,
		ToUserID:    r.ToUserID,
		GroupID:     r.GroupID,
		TotalAmount: r.Amount,
	}
}

// MakePaymentRequest represents a payment against a transaction.
type MakePaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
