package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/handler"
	apimiddleware "github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/middleware"
)

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return true, []byte(`{"cached":true}`), nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}

func newRouterConfig(opts ...func(cfg *RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		EntryHandler:   &handler.EntryHandler{},
		SummaryHandler: &handler.SummaryHandler{},
		FilterHandler:  &handler.FilterHandler{},
		HistoryHandler: &handler.HistoryHandler{},
		BalanceHandler: &handler.BalanceHandler{},
		HealthHandler:  handler.NewHealthHandler(nil, nil),
		Logger:         zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_APIRequiresIdentity(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected identity-less API request to return 400, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
		cfg.IdempotencyTTL = time.Hour
	}))

	body := `{"text":"90 91 92 first 100"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.UserIDHeader, "user-1")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Router")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"POST /api/v1/entries/",
		"GET /api/v1/entries/",
		"PUT /api/v1/entries/{id}",
		"DELETE /api/v1/entries/{id}",
		"GET /api/v1/summaries/",
		"POST /api/v1/filters/preview",
		"POST /api/v1/filters/apply",
		"POST /api/v1/history/undo",
		"POST /api/v1/history/redo",
		"GET /api/v1/history/",
		"GET /api/v1/balance/",
		"POST /api/v1/balance/topup",
		"GET /api/v1/ledger/consistency",
		"GET /health",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Errorf("route %q not registered", route)
		}
	}
}
