package handler

import (
	"net/http"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/dto"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/middleware"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/usecase"
)

// SummaryHandler handles per-number aggregation requests.
type SummaryHandler struct {
	summaryUC *usecase.SummaryUseCase
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryUC *usecase.SummaryUseCase) *SummaryHandler {
	return &SummaryHandler{summaryUC: summaryUC}
}

// Get returns the aggregated view for one category.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	category, err := domain.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category", err.Error())
		return
	}

	summary, err := h.summaryUC.Summaries(r.Context(), identity.UserID, category)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromUseCase(summary))
}

// GetAll returns the aggregated view for every category.
func (h *SummaryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	categories := []domain.Category{
		domain.CategoryOpen,
		domain.CategoryAkra,
		domain.CategoryRing,
		domain.CategoryPacket,
	}

	result := make([]*dto.SummaryResponse, 0, len(categories))
	for _, category := range categories {
		summary, err := h.summaryUC.Summaries(r.Context(), identity.UserID, category)
		if err != nil {
			writeError(w, mapDomainError(err), "failed to build summary", err.Error())
			return
		}

		result = append(result, dto.SummaryFromUseCase(summary))
	}

	writeJSON(w, http.StatusOK, result)
}
