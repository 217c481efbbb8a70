package middleware

import (
	"context"
	"net/http"

	"github.com/priyanshu14077/Video-La-Vida/internal/auth"
)

// SessionReader resolves a session ID to a user ID.
type SessionReader interface {
	Get(ctx context.Context, sessionID string) (string, error)
}

// RequireAuth is middleware that validates the session cookie and injects
// the user ID into the request context before any body handling runs.
func RequireAuth(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookie)
			if err != nil {
				http.Error(w, `{"error":"not authenticated"}`, http.StatusUnauthorized)
				return
			}

			userID, err := sessions.Get(r.Context(), cookie.Value)
			if err != nil || userID == "" {
				http.Error(w, `{"error":"session expired"}`, http.StatusUnauthorized)
				return
			}

			ctx := auth.ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
