package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arav/divvy/internal/adapter/http/dto"
	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/usecase"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	ComputeBalances(ctx context.Context, groupID string) ([]domain.Transfer, error)
}

// MetricsService reports debt-optimization metrics.
type MetricsService interface {
	Reduction(ctx context.Context, groupID string) (*usecase.ReductionMetrics, error)
}

// GraphService builds the debt graph view.
type GraphService interface {
	BuildDebtGraph(ctx context.Context, groupID string) (*usecase.DebtGraph, error)
}

// BalanceHandler serves the balance, metrics, and graph views of a group.
type BalanceHandler struct {
	balanceUC BalanceService
	metricsUC MetricsService
	graphUC   GraphService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService, metricsUC MetricsService, graphUC GraphService) *BalanceHandler {
	return &BalanceHandler{
		balanceUC: balanceUC,
		metricsUC: metricsUC,
		graphUC:   graphUC,
	}
}

// Balances returns the optimized transfer set for a group.
func (h *BalanceHandler) Balances(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	transfers, err := h.balanceUC.ComputeBalances(r.Context(), groupID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesResponse{
		GroupID:   groupID,
		Transfers: dto.TransfersFromDomain(transfers),
	})
}

// Metrics returns debt-optimization metrics for a group.
func (h *BalanceHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	reduction, err := h.metricsUC.Reduction(r.Context(), groupID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute metrics", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReductionFromUseCase(groupID, reduction))
}

// Graph returns the debt graph for a group.
func (h *BalanceHandler) Graph(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	graph, err := h.graphUC.BuildDebtGraph(r.Context(), groupID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build debt graph", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GraphFromUseCase(groupID, graph))
}
