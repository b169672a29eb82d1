package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireIdentity_MissingHeaderRejected(t *testing.T) {
	var called bool
	mw := RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	if called {
		t.Fatalf("handler should not be called without an identity")
	}
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestRequireIdentity_ActorDefaultsToUser(t *testing.T) {
	var got Identity
	mw := RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)
	req.Header.Set(UserIDHeader, "user-1")
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	if got.UserID != "user-1" || got.ActorID != "user-1" {
		t.Fatalf("expected actor to default to user, got %+v", got)
	}
}

func TestRequireIdentity_DistinctActor(t *testing.T) {
	var got Identity
	mw := RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", nil)
	req.Header.Set(UserIDHeader, "user-1")
	req.Header.Set(ActorIDHeader, "operator-9")
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	if got.UserID != "user-1" || got.ActorID != "operator-9" {
		t.Fatalf("expected distinct actor to be kept, got %+v", got)
	}
}
