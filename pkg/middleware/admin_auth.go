package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"
)

const AdminTokenHeader = "X-Admin-Token"

// RequireAdminToken rejects requests whose X-Admin-Token header does
// not match the configured shared password. Comparison is constant
// time. An empty configured password disables the gate; that is only
// acceptable in local development.
func RequireAdminToken(password string) mux.MiddlewareFunc {
	secret := []byte(password)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(secret) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			provided := []byte(r.Header.Get(AdminTokenHeader))
			if subtle.ConstantTimeCompare(provided, secret) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
