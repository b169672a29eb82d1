package middleware

import (
	"context"
	"net/http"
)

// ContextKey is the type for context keys.
type ContextKey string

const (
	// IdentityContextKey is the context key for the request identity.
	IdentityContextKey ContextKey = "identity"

	// UserIDHeader carries the balance owner the request operates on.
	UserIDHeader = "X-User-ID"
	// ActorIDHeader carries the acting user when it differs from the owner,
	// e.g. an operator working another user's book.
	ActorIDHeader = "X-Actor-ID"
)

// Identity names the owner a request acts on and who performs the action.
type Identity struct {
	UserID  string
	ActorID string
}

// RequireIdentity rejects requests without an X-User-ID header and stores
// the resolved identity in the request context.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			http.Error(w, "missing "+UserIDHeader+" header", http.StatusBadRequest)
			return
		}

		actorID := r.Header.Get(ActorIDHeader)
		if actorID == "" {
			actorID = userID
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, Identity{
			UserID:  userID,
			ActorID: actorID,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the identity stored by RequireIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(IdentityContextKey).(Identity)
	return id, ok
}
