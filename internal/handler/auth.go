package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// RequireToken guards every journal route with a static bearer token.
// Session issuance and JWT validation live in a separate service; this is
// only the boundary check. A miss carries a human-readable message the
// client surfaces in place of the normal view.
func RequireToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED",
					"You don't have access to this journal.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
