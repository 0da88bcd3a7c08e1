package middleware

import (
	"net/http"
	"strings"

	"github.com/koperasi/ledger/internal/infrastructure/identity"
)

// UserHeader carries the acting user recorded on audit logs.
const UserHeader = "X-User-ID"

// User stores the X-User-ID header on the request context. Requests without
// the header act as the configured default user.
func User(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(UserHeader)); id != "" {
			r = r.WithContext(identity.WithUser(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
