package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/koperasi/ledger/internal/infrastructure/identity"
)

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name   string
		status int
		user   string
		level  string
	}{
		{"ok", http.StatusOK, "bendahara", `"level":"info"`},
		{"locked snapshot", http.StatusConflict, "ketua", `"level":"warn"`},
		{"store down", http.StatusServiceUnavailable, "", `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := chi.NewRouter()
			r.Use(RequestLogger(zerolog.New(&buf)))
			r.Post("/api/v1/opening-balance/{action}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{}`))
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/opening-balance/lock", nil)
			if tt.user != "" {
				req.Header.Set(UserHeader, tt.user)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)

			out := buf.String()
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, fmt.Sprintf(`"status":%d`, tt.status))
			assert.Contains(t, out, `"route":"/api/v1/opening-balance/{action}"`)
			assert.Contains(t, out, `"path":"/api/v1/opening-balance/lock"`)
			assert.Contains(t, out, `"bytes":2`)
			if tt.user != "" {
				assert.Contains(t, out, fmt.Sprintf(`"user":%q`, tt.user))
			} else {
				assert.NotContains(t, out, `"user"`)
			}
		})
	}
}

func TestRequestLoggerUnmatchedRoute(t *testing.T) {
	var buf bytes.Buffer
	handler := RequestLogger(zerolog.New(&buf))(http.NotFoundHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Contains(t, buf.String(), `"route":"unmatched"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	handler := Recovery(zerolog.New(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/opening-balance/lock", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rr.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestUser(t *testing.T) {
	var got string
	var found bool
	handler := User(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = identity.UserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(UserHeader, " bendahara ")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, found)
	assert.Equal(t, "bendahara", got)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	assert.False(t, found)
}
