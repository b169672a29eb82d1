package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/dto"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/middleware"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/usecase"
)

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	submitUC  *usecase.SubmitUseCase
	summaryUC *usecase.SummaryUseCase
	historyUC *usecase.HistoryUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(submitUC *usecase.SubmitUseCase, summaryUC *usecase.SummaryUseCase, historyUC *usecase.HistoryUseCase) *EntryHandler {
	return &EntryHandler{
		submitUC:  submitUC,
		summaryUC: summaryUC,
		historyUC: historyUC,
	}
}

// Submit parses free text and commits the resulting entries as one batch.
func (h *EntryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	var req dto.SubmitBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(identity.UserID, identity.ActorID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category", err.Error())
		return
	}

	result, err := h.submitUC.SubmitText(r.Context(), input)
	if err != nil && !isPartialBatch(err) {
		status := mapDomainError(err)
		writeError(w, status, "failed to submit batch", err.Error())
		return
	}

	if result.Action != nil {
		h.historyUC.Record(identity.UserID, result.Action)
	}

	status := http.StatusCreated
	if result.Succeeded < result.Requested {
		status = http.StatusMultiStatus
	}

	writeJSON(w, status, dto.BatchFromResult(result))
}

// List lists the owner's entries, newest first.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		parsed, err := domain.ParseCategory(category)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category", err.Error())
			return
		}

		entries, err := h.summaryUC.EntriesByCategory(r.Context(), identity.UserID, parsed)
		if err != nil {
			writeError(w, mapDomainError(err), "failed to list entries", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.summaryUC.Entries(r.Context(), identity.UserID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// Edit changes an entry's amounts and reconciles the balance by the delta.
func (h *EntryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.EditEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	action, err := h.submitUC.EditEntry(r.Context(), req.ToUseCaseInput(identity.UserID, identity.ActorID, entryID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to edit entry", err.Error())
		return
	}

	h.historyUC.Record(identity.UserID, action)
	writeJSON(w, http.StatusOK, dto.EntryFromDomain(action.Updated))
}

// Delete removes an entry and refunds its stake.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	action, err := h.submitUC.DeleteEntry(r.Context(), identity.UserID, identity.ActorID, entryID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete entry", err.Error())
		return
	}

	h.historyUC.Record(identity.UserID, action)
	writeJSON(w, http.StatusOK, dto.HistoryActionFromDomain(action))
}
