package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/parser"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/usecase"
)

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Number      string          `json:"number,omitempty"`
	Numbers     []string        `json:"numbers,omitempty"`
	Category    string          `json:"category"`
	First       decimal.Decimal `json:"first"`
	Second      decimal.Decimal `json:"second"`
	Notes       string          `json:"notes,omitempty"`
	IsDeduction bool            `json:"is_deduction,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Number:      e.Number,
		Numbers:     e.Numbers,
		Category:    string(e.Category),
		First:       e.First,
		Second:      e.Second,
		Notes:       e.Notes,
		IsDeduction: e.IsDeduction,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ParseErrorResponse reports one rejected token from a text submission.
type ParseErrorResponse struct {
	Line   int    `json:"line"`
	Token  int    `json:"token"`
	Input  string `json:"input"`
	Reason string `json:"reason"`
}

// ParseErrorsFromParser converts parser errors to responses.
func ParseErrorsFromParser(errs []parser.ParseError) []ParseErrorResponse {
	result := make([]ParseErrorResponse, len(errs))
	for i, e := range errs {
		result[i] = ParseErrorResponse{
			Line:   e.Line,
			Token:  e.Token,
			Input:  e.Input,
			Reason: e.Reason,
		}
	}
	return result
}

// BatchResponse reports the outcome of a committed batch.
type BatchResponse struct {
	Entries     []*EntryResponse     `json:"entries"`
	ParseErrors []ParseErrorResponse `json:"parse_errors,omitempty"`
	Requested   int                  `json:"requested"`
	Succeeded   int                  `json:"succeeded"`
	TotalCost   decimal.Decimal      `json:"total_cost"`
}

// BatchFromResult converts a use case batch result to a response.
func BatchFromResult(result *usecase.BatchResult) *BatchResponse {
	return &BatchResponse{
		Entries:     EntriesFromDomain(result.Entries),
		ParseErrors: ParseErrorsFromParser(result.ParseErrors),
		Requested:   result.Requested,
		Succeeded:   result.Succeeded,
		TotalCost:   result.TotalCost,
	}
}

// BalanceResponse represents a user balance in API responses.
type BalanceResponse struct {
	UserID     string          `json:"user_id"`
	Amount     decimal.Decimal `json:"amount"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	Version    int64           `json:"version"`
	Unlimited  bool            `json:"unlimited"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BalanceFromDomain converts a domain balance to a response.
func BalanceFromDomain(b *domain.Balance) *BalanceResponse {
	return &BalanceResponse{
		UserID:     b.UserID,
		Amount:     b.Amount,
		TotalSpent: b.TotalSpent,
		Version:    b.Version,
		Unlimited:  b.Unlimited,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// BalancesFromDomain converts domain balances to responses.
func BalancesFromDomain(balances []*domain.Balance) []*BalanceResponse {
	result := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = BalanceFromDomain(b)
	}
	return result
}

// NumberSummaryResponse represents per-number aggregation.
type NumberSummaryResponse struct {
	Number      string          `json:"number"`
	FirstTotal  decimal.Decimal `json:"first_total"`
	SecondTotal decimal.Decimal `json:"second_total"`
	EntryCount  int             `json:"entry_count"`
}

// SummaryResponse represents one category's aggregated view.
type SummaryResponse struct {
	Category    string                   `json:"category"`
	Summaries   []*NumberSummaryResponse `json:"summaries"`
	FirstTotal  decimal.Decimal          `json:"first_total"`
	SecondTotal decimal.Decimal          `json:"second_total"`
	NetTotal    decimal.Decimal          `json:"net_total"`
	EntryCount  int                      `json:"entry_count"`
	NumberCount int                      `json:"number_count"`
}

// SummaryFromUseCase converts a category summary to a response.
func SummaryFromUseCase(s *usecase.CategorySummary) *SummaryResponse {
	summaries := make([]*NumberSummaryResponse, len(s.Summaries))
	for i, ns := range s.Summaries {
		summaries[i] = &NumberSummaryResponse{
			Number:      ns.Number,
			FirstTotal:  ns.FirstTotal,
			SecondTotal: ns.SecondTotal,
			EntryCount:  ns.EntryCount,
		}
	}

	return &SummaryResponse{
		Category:    string(s.Category),
		Summaries:   summaries,
		FirstTotal:  s.Totals.FirstTotal,
		SecondTotal: s.Totals.SecondTotal,
		NetTotal:    s.Totals.NetTotal,
		EntryCount:  s.Totals.EntryCount,
		NumberCount: s.Totals.NumberCount,
	}
}

// DeductionResponse represents one computed deduction.
type DeductionResponse struct {
	Number string          `json:"number"`
	First  decimal.Decimal `json:"first"`
	Second decimal.Decimal `json:"second"`
}

// FilterResponse reports a deduction preview or application.
type FilterResponse struct {
	Category   string              `json:"category"`
	Deductions []DeductionResponse `json:"deductions"`
	Applied    bool                `json:"applied"`
}

// FilterFromResult converts a filter result to a response.
func FilterFromResult(result *usecase.FilterResult, applied bool) *FilterResponse {
	deductions := make([]DeductionResponse, len(result.Deductions))
	for i, d := range result.Deductions {
		deductions[i] = DeductionResponse{
			Number: d.Number,
			First:  d.First,
			Second: d.Second,
		}
	}

	return &FilterResponse{
		Category:   string(result.Category),
		Deductions: deductions,
		Applied:    applied,
	}
}

// HistoryActionResponse represents a replayed history action.
type HistoryActionResponse struct {
	Type            string    `json:"type"`
	AffectedNumbers []string  `json:"affected_numbers,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// HistoryActionFromDomain converts a history action to a response.
func HistoryActionFromDomain(a *domain.HistoryAction) *HistoryActionResponse {
	return &HistoryActionResponse{
		Type:            string(a.Type),
		AffectedNumbers: a.AffectedNumbers,
		Timestamp:       a.Timestamp,
	}
}

// HistoryStatusResponse reports the undo/redo stack depths.
type HistoryStatusResponse struct {
	UndoAvailable int `json:"undo_available"`
	RedoAvailable int `json:"redo_available"`
}

// ConsistencyResponse reports the outcome of a ledger consistency check.
type ConsistencyResponse struct {
	UserID     string          `json:"user_id"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	EntrySum   decimal.Decimal `json:"entry_sum"`
	Drift      decimal.Decimal `json:"drift"`
	Consistent bool            `json:"consistent"`
}

// ConsistencyFromReport converts a consistency report to a response.
func ConsistencyFromReport(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		UserID:     r.UserID,
		TotalSpent: r.TotalSpent,
		EntrySum:   r.EntrySum,
		Drift:      r.Drift,
		Consistent: r.Consistent,
	}
}

// AuditLogResponse represents an audit record in API responses.
type AuditLogResponse struct {
	ID           string         `json:"id"`
	ActorID      string         `json:"actor_id"`
	OwnerID      string         `json:"owner_id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id,omitempty"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	BeforeState  map[string]any `json:"before_state,omitempty"`
	AfterState   map[string]any `json:"after_state,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// AuditLogsFromDomain converts audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:           l.ID,
			ActorID:      l.ActorID,
			OwnerID:      l.OwnerID,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			Status:       l.Status,
			ErrorMessage: l.ErrorMessage,
			BeforeState:  l.BeforeState,
			AfterState:   l.AfterState,
			CreatedAt:    l.CreatedAt,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
