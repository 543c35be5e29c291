package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}

	return result
}

// ListUsersResponse wraps a user listing.
type ListUsersResponse struct {
	Users []*UserResponse `json:"users"`
	Total int64           `json:"total"`
}

// GroupResponse represents a group in API responses.
type GroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MemberIDs []string  `json:"member_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupFromDomain converts a domain group to a response.
func GroupFromDomain(g *domain.Group) *GroupResponse {
	return &GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		MemberIDs: g.MemberIDs,
		CreatedAt: g.CreatedAt,
	}
}

// GroupsFromDomain converts domain groups to responses.
func GroupsFromDomain(groups []*domain.Group) []*GroupResponse {
	result := make([]*GroupResponse, len(groups))
	for i, g := range groups {
		result[i] = GroupFromDomain(g)
	}

	return result
}

// ListGroupsResponse wraps a group listing.
type ListGroupsResponse struct {
	Groups []*GroupResponse `json:"groups"`
	Total  int64            `json:"total"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID                 string          `json:"id"`
	GroupID            string          `json:"group_id"`
	PaidBy             string          `json:"paid_by"`
	Amount             decimal.Decimal `json:"amount"`
	Participants       []string        `json:"participants"`
	Description        string          `json:"description,omitempty"`
	IsRecurring        bool            `json:"is_recurring"`
	RecurrenceInterval string          `json:"recurrence_interval,omitempty"`
	NextExecutionDate  *time.Time      `json:"next_execution_date,omitempty"`
	SourceExpenseID    *string         `json:"source_expense_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:                 e.ID,
		GroupID:            e.GroupID,
		PaidBy:             e.PaidBy,
		Amount:             e.Amount,
		Participants:       e.Participants,
		Description:        e.Description,
		IsRecurring:        e.IsRecurring,
		RecurrenceInterval: string(e.RecurrenceInterval),
		NextExecutionDate:  e.NextExecutionDate,
		SourceExpenseID:    e.SourceExpenseID,
		CreatedAt:          e.CreatedAt,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}

	return result
}

// ListExpensesResponse wraps an expense listing.
type ListExpensesResponse struct {
	Expenses []*ExpenseResponse `json:"expenses"`
	Total    int64              `json:"total"`
}

// TransferResponse represents a suggested transfer in API responses.
type TransferResponse struct {
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []domain.Transfer) []TransferResponse {
	result := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferResponse{
			FromUserID: t.FromUserID,
			ToUserID:   t.ToUserID,
			Amount:     t.Amount,
		}
	}

	return result
}

// BalancesResponse wraps the optimized transfer set for a group.
type BalancesResponse struct {
	GroupID   string             `json:"group_id"`
	Transfers []TransferResponse `json:"transfers"`
}

// SettlementResponse represents a settlement snapshot in API responses.
type SettlementResponse struct {
	ID        string             `json:"id"`
	GroupID   string             `json:"group_id"`
	Entries   []TransferResponse `json:"entries"`
	SettledAt time.Time          `json:"settled_at"`
}

// SettlementFromDomain converts a domain settlement to a response.
func SettlementFromDomain(s *domain.Settlement) *SettlementResponse {
	return &SettlementResponse{
		ID:        s.ID,
		GroupID:   s.GroupID,
		Entries:   TransfersFromDomain(s.Entries),
		SettledAt: s.SettledAt,
	}
}

// SettlementsFromDomain converts domain settlements to responses.
func SettlementsFromDomain(settlements []*domain.Settlement) []*SettlementResponse {
	result := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		result[i] = SettlementFromDomain(s)
	}

	return result
}

// ListSettlementsResponse wraps a settlement listing.
type ListSettlementsResponse struct {
	Settlements []*SettlementResponse `json:"settlements"`
	Total       int64                 `json:"total"`
}

// TransactionResponse represents a payment transaction in API responses.
type TransactionResponse struct {
	ID              string          `json:"id"`
	FromUserID      string          `json:"from_user_id"`
	ToUserID        string          `json:"to_user_id"`
	GroupID         string          `json:"group_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		FromUserID:      t.FromUserID,
		ToUserID:        t.ToUserID,
		GroupID:         t.GroupID,
		TotalAmount:     t.TotalAmount,
		PaidAmount:      t.PaidAmount,
		RemainingAmount: t.RemainingAmount,
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}

	return result
}

// ListTransactionsResponse wraps a transaction listing.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ReductionMetricsResponse reports debt-optimization metrics for a group.
type ReductionMetricsResponse struct {
	GroupID               string          `json:"group_id"`
	OriginalTransactions  int             `json:"original_transactions"`
	OptimizedTransactions int             `json:"optimized_transactions"`
	ReductionPercentage   decimal.Decimal `json:"reduction_percentage"`
}

// ReductionFromUseCase converts reduction metrics to a response.
func ReductionFromUseCase(groupID string, m *usecase.ReductionMetrics) *ReductionMetricsResponse {
	return &ReductionMetricsResponse{
		GroupID:               groupID,
		OriginalTransactions:  m.OriginalTransactions,
		OptimizedTransactions: m.OptimizedTransactions,
		ReductionPercentage:   m.ReductionPercentage,
	}
}

// GraphNodeResponse represents a debt graph node.
type GraphNodeResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Email string `json:"email,omitempty"`
}

// GraphEdgeResponse represents a debt graph edge.
type GraphEdgeResponse struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	FromLabel string          `json:"from_label"`
	ToLabel   string          `json:"to_label"`
	Weight    decimal.Decimal `json:"weight"`
}

// GraphResponse represents the debt graph of a group.
type GraphResponse struct {
	GroupID string              `json:"group_id"`
	Nodes   []GraphNodeResponse `json:"nodes"`
	Edges   []GraphEdgeResponse `json:"edges"`
}

// GraphFromUseCase converts a debt graph to a response.
func GraphFromUseCase(groupID string, g *usecase.DebtGraph) *GraphResponse {
	nodes := make([]GraphNodeResponse, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = GraphNodeResponse{ID: n.ID, Label: n.Label, Email: n.Email}
	}

	edges := make([]GraphEdgeResponse, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = GraphEdgeResponse{
			From:      e.From,
			To:        e.To,
			FromLabel: e.FromLabel,
			ToLabel:   e.ToLabel,
			Weight:    e.Weight,
		}
	}

	return &GraphResponse{GroupID: groupID, Nodes: nodes, Edges: edges}
}

// RecurringRunResponse reports one recurring processor run.
type RecurringRunResponse struct {
	Materialized []*ExpenseResponse `json:"materialized"`
	Count        int                `json:"count"`
}
