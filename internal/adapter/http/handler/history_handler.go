package handler

import (
	"net/http"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/dto"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/middleware"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/usecase"
)

// HistoryHandler handles undo/redo requests.
type HistoryHandler struct {
	historyUC *usecase.HistoryUseCase
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyUC *usecase.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{historyUC: historyUC}
}

// Undo reverses the owner's most recent action.
func (h *HistoryHandler) Undo(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	action, err := h.historyUC.Undo(r.Context(), identity.UserID, identity.ActorID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to undo", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryActionFromDomain(action))
}

// Redo reapplies the owner's most recently undone action.
func (h *HistoryHandler) Redo(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	action, err := h.historyUC.Redo(r.Context(), identity.UserID, identity.ActorID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to redo", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryActionFromDomain(action))
}

// Status reports how many actions are available to undo and redo.
func (h *HistoryHandler) Status(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	undo, redo := h.historyUC.Status(identity.UserID)
	writeJSON(w, http.StatusOK, dto.HistoryStatusResponse{
		UndoAvailable: undo,
		RedoAvailable: redo,
	})
}
