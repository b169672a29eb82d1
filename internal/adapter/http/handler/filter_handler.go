package handler

import (
	"encoding/json"
	"net/http"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/dto"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/middleware"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/usecase"
)

// FilterHandler handles deduction filter requests.
type FilterHandler struct {
	filterUC  *usecase.FilterUseCase
	historyUC *usecase.HistoryUseCase
}

// NewFilterHandler creates a new FilterHandler.
func NewFilterHandler(filterUC *usecase.FilterUseCase, historyUC *usecase.HistoryUseCase) *FilterHandler {
	return &FilterHandler{filterUC: filterUC, historyUC: historyUC}
}

// Preview computes deductions without touching entries or the balance.
func (h *FilterHandler) Preview(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	criteria, err := h.decodeCriteria(w, r)
	if err != nil {
		return
	}

	result, err := h.filterUC.Preview(r.Context(), identity.UserID, criteria)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to preview filter", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FilterFromResult(result, false))
}

// Apply commits the computed deductions as negative entries and credits the
// balance.
func (h *FilterHandler) Apply(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	criteria, err := h.decodeCriteria(w, r)
	if err != nil {
		return
	}

	result, err := h.filterUC.Apply(r.Context(), identity.UserID, identity.ActorID, criteria)
	if err != nil && !isPartialBatch(err) {
		writeError(w, mapDomainError(err), "failed to apply filter", err.Error())
		return
	}

	if result.Action != nil {
		h.historyUC.Record(identity.UserID, result.Action)
	}

	status := http.StatusCreated
	if err != nil {
		status = http.StatusMultiStatus
	}

	writeJSON(w, status, dto.FilterFromResult(result, true))
}

func (h *FilterHandler) decodeCriteria(w http.ResponseWriter, r *http.Request) (domain.FilterCriteria, error) {
	var req dto.FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return domain.FilterCriteria{}, err
	}

	criteria, err := req.ToCriteria()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter criteria", err.Error())
		return domain.FilterCriteria{}, err
	}

	return criteria, nil
}
