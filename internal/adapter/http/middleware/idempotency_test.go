package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeIdempotencyStore struct {
	checkAndSetFn func(ctx context.Context, key string, ttl time.Duration) (bool, []byte, error)
	updateFn      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func (f *fakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, ttl time.Duration) (bool, []byte, error) {
	if f.checkAndSetFn != nil {
		return f.checkAndSetFn(ctx, key, ttl)
	}
	return false, nil, nil
}

func (f *fakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, key, response, ttl)
	}
	return nil
}

func TestIdempotencyMiddleware_ReplaysCachedResponse(t *testing.T) {
	var called bool
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, ttl time.Duration) (bool, []byte, error) {
			return true, []byte(`{"entries":[]}`), nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "key-replay")
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if called {
		t.Fatalf("handler should not run for a replayed key")
	}
	if rr.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatalf("expected replay header to be set")
	}
	if rr.Body.String() != `{"entries":[]}` {
		t.Fatalf("expected cached body, got %q", rr.Body.String())
	}
}

func TestIdempotencyMiddleware_StoreErrorRejectsRequest(t *testing.T) {
	var called bool
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, ttl time.Duration) (bool, []byte, error) {
			return false, nil, context.DeadlineExceeded
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "key-err")
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if called {
		t.Fatalf("handler should not be called when store errors")
	}
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_DoesNotCacheFailedResponses(t *testing.T) {
	var updated bool
	store := &fakeIdempotencyStore{
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			updated = true
			return nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "key-fail")
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})).ServeHTTP(rr, req)

	if updated {
		t.Fatalf("expected error responses not to be cached")
	}
}

func TestIdempotencyMiddleware_SkipsReadsAndKeylessRequests(t *testing.T) {
	var checked bool
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, ttl time.Duration) (bool, []byte, error) {
			checked = true
			return false, nil, nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)
	getReq.Header.Set(IdempotencyKeyHeader, "key-get")
	mw.Wrap(next).ServeHTTP(httptest.NewRecorder(), getReq)

	postReq := httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewBufferString(`{}`))
	mw.Wrap(next).ServeHTTP(httptest.NewRecorder(), postReq)

	if checked {
		t.Fatalf("store should not be consulted for reads or keyless requests")
	}
}
