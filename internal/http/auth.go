package httpapi

import (
	"context"
	"net/http"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/services"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/session"
)

type contextKey string

const ctxUsername contextKey = "username"

// WithSession admits a request only while a valid admin session is
// stored. The session itself is the credential; no token travels with
// the request beyond hitting these routes from the admin views.
func WithSession(guard *session.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := guard.Session()
			if !ok {
				WriteFailure(w, services.ErrUnauthorized("Authentication failed"))
				return
			}
			ctx := context.WithValue(r.Context(), ctxUsername, sess.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentUsername(r *http.Request) string {
	if value, ok := r.Context().Value(ctxUsername).(string); ok {
		return value
	}
	return ""
}
