package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arav/divvy/internal/adapter/http/dto"
	"github.com/arav/divvy/internal/domain"
)

// SettlementService defines the behavior needed by SettlementHandler.
type SettlementService interface {
	SettleGroup(ctx context.Context, groupID string) (*domain.Settlement, error)
	History(ctx context.Context, groupID string) ([]*domain.Settlement, error)
}

// SettlementHandler handles settlement-related HTTP requests.
type SettlementHandler struct {
	settlementUC SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// Settle records a settlement snapshot for a group. When all debts are
// already covered the response is 200 with a null settlement.
func (h *SettlementHandler) Settle(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	settlement, err := h.settlementUC.SettleGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to settle group", err.Error())
		return
	}

	if settlement == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"settlement": nil,
			"message":    "nothing to settle",
		})

		return
	}

	writeJSON(w, http.StatusCreated, dto.SettlementFromDomain(settlement))
}

// History lists a group's settlement snapshots, newest first.
func (h *SettlementHandler) History(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	settlements, err := h.settlementUC.History(r.Context(), groupID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list settlements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListSettlementsResponse{
		Settlements: dto.SettlementsFromDomain(settlements),
		Total:       int64(len(settlements)),
	})
}
