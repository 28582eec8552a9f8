package auth

import (
	"context"
	"net/http"

	"synapse_server/models"
)

type identityContextKey string

const userIDKey identityContextKey = "auth_user_id"

// Header carrying the authenticated user id. Identity verification itself
// belongs to the upstream auth collaborator; this server only consumes
// the id it forwards.
const UserIDHeader = "X-User-Id"

// WithUserID returns a context carrying the authenticated user id
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// CurrentUserID extracts the authenticated user id from the context.
// Every mutation is gated on it.
func CurrentUserID(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", models.ErrNotAuthenticated
	}
	return userID, nil
}

// Middleware lifts the forwarded user id into the request context.
// Requests without one proceed; handlers that require identity fail with
// models.ErrNotAuthenticated when they ask for it.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := r.Header.Get(UserIDHeader); userID != "" {
			r = r.WithContext(WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}
