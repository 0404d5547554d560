package middleware

import (
	"net/http"
	"strings"

	"pixel-canvas-server/pkg/response"
)

// Authorizer validates an admin bearer token.
type Authorizer interface {
	Enabled() bool
	Authorize(token string) error
}

// AdminMiddleware requires a valid bearer token when admin auth is enabled
// and passes every request through otherwise.
func AdminMiddleware(auth Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			if err := auth.Authorize(parts[1]); err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
