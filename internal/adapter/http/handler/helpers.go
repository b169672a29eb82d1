package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/dto"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var insufficientErr *domain.InsufficientBalanceError
	var limitErr *domain.LimitExceededError
	var persistErr *domain.PersistenceError

	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBalanceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNothingToUndo),
		errors.Is(err, domain.ErrNothingToRedo):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoValidEntries),
		errors.Is(err, domain.ErrNoAmount),
		errors.Is(err, domain.ErrInvalidNumber),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrNumberOutOfRange),
		errors.Is(err, domain.ErrInvalidFilter),
		errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.As(err, &insufficientErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &limitErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &persistErr):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrInconsistentLedger):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// isPartialBatch reports whether err is the non-fatal persistence error a
// partially committed batch carries. The debit and surviving entries stand;
// the handler answers 207 instead of failing the request.
func isPartialBatch(err error) bool {
	var perr *domain.PersistenceError
	return errors.As(err, &perr) && !perr.AllFailed
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
