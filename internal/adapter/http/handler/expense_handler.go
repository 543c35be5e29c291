package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arav/divvy/internal/adapter/http/dto"
	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*domain.Expense, error)
	ListByGroup(ctx context.Context, groupID string) ([]*domain.Expense, error)
}

// RecurringService defines the recurring-processor behavior needed by
// ExpenseHandler.
type RecurringService interface {
	ProcessDue(ctx context.Context, now time.Time) ([]*domain.Expense, error)
	ListRecurring(ctx context.Context, groupID string) ([]*domain.Expense, error)
}

// ExpenseHandler handles expense-related HTTP requests.
type ExpenseHandler struct {
	expenseUC   ExpenseService
	recurringUC RecurringService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService, recurringUC RecurringService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC, recurringUC: recurringUC}
}

// Create appends a new expense to a group's ledger.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.CreateExpense(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create expense", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// ListByGroup lists a group's expenses.
func (h *ExpenseHandler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	expenses, err := h.expenseUC.ListByGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListExpensesResponse{
		Expenses: dto.ExpensesFromDomain(expenses),
		Total:    int64(len(expenses)),
	})
}

// ListRecurring lists recurring templates, optionally filtered by group.
func (h *ExpenseHandler) ListRecurring(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")

	expenses, err := h.recurringUC.ListRecurring(r.Context(), groupID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list recurring expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListExpensesResponse{
		Expenses: dto.ExpensesFromDomain(expenses),
		Total:    int64(len(expenses)),
	})
}

// TriggerRecurring runs the recurring processor once.
func (h *ExpenseHandler) TriggerRecurring(w http.ResponseWriter, r *http.Request) {
	materialized, err := h.recurringUC.ProcessDue(r.Context(), time.Now().UTC())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to process recurring expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RecurringRunResponse{
		Materialized: dto.ExpensesFromDomain(materialized),
		Count:        len(materialized),
	})
}
