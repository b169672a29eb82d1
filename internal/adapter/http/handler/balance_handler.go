package handler

import (
	"encoding/json"
	"net/http"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/dto"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/middleware"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/usecase"
)

// BalanceHandler handles balance-related HTTP requests.
type BalanceHandler struct {
	balanceUC *usecase.BalanceUseCase
	auditRepo usecase.AuditRepository
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC *usecase.BalanceUseCase, auditRepo usecase.AuditRepository) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC, auditRepo: auditRepo}
}

// Get returns the owner's balance.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	balance, err := h.balanceUC.Get(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// List lists balances across users.
func (h *BalanceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	balances, err := h.balanceUC.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromDomain(balances))
}

// Create opens a balance for a user.
func (h *BalanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "missing user_id", "")
		return
	}

	balance, err := h.balanceUC.Create(r.Context(), req.UserID, req.Opening, req.Unlimited)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create balance", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BalanceFromDomain(balance))
}

// Topup adds funds to the owner's balance.
func (h *BalanceHandler) Topup(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	var req dto.TopupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	balance, err := h.balanceUC.Topup(r.Context(), identity.UserID, identity.ActorID, req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to top up balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// SetUnlimited toggles the owner's unlimited flag.
func (h *BalanceHandler) SetUnlimited(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	var req dto.SetUnlimitedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	balance, err := h.balanceUC.SetUnlimited(r.Context(), identity.UserID, req.Unlimited)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// Consistency verifies that live entries back the owner's spent total.
func (h *BalanceHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	report, err := h.balanceUC.CheckConsistency(r.Context(), identity.UserID)
	if report == nil && err != nil {
		writeError(w, mapDomainError(err), "failed to check consistency", err.Error())
		return
	}

	// A drifted ledger still returns the report; the status signals it.
	status := http.StatusOK
	if !report.Consistent {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ConsistencyFromReport(report))
}

// AuditLog lists the owner's audit records, newest first.
func (h *BalanceHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing identity", "")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	logs, err := h.auditRepo.ListByOwner(r.Context(), identity.UserID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list audit log", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
