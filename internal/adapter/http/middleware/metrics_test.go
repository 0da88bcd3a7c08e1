package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type observation struct {
	method string
	path   string
	status int
}

type observerStub struct {
	inFlight int
	finished []observation
}

func (o *observerStub) RequestStarted() { o.inFlight++ }

func (o *observerStub) RequestFinished(method, path string, status int, _ time.Duration) {
	o.inFlight--
	o.finished = append(o.finished, observation{method, path, status})
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
		expected   string
	}{
		{
			name:       "uses route pattern",
			method:     http.MethodGet,
			path:       "/api/v1/journals/01HXJRNL",
			statusCode: http.StatusTeapot,
			expected:   "/api/v1/journals/{id}",
		},
		{
			name:       "static path",
			method:     http.MethodPost,
			path:       "/health",
			statusCode: http.StatusCreated,
			expected:   "/health",
		},
		{
			name:       "unmatched path",
			method:     http.MethodGet,
			path:       "/nope",
			statusCode: http.StatusNotFound,
			expected:   unmatchedRoute,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			observer := &observerStub{}

			r := chi.NewRouter()
			r.Use(Metrics(observer))
			reply := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(tc.statusCode) }
			r.Get("/api/v1/journals/{id}", reply)
			r.Post("/health", reply)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))

			if observer.inFlight != 0 {
				t.Fatalf("expected in-flight count to return to 0, got %v", observer.inFlight)
			}

			if len(observer.finished) != 1 {
				t.Fatalf("expected 1 observation, got %d", len(observer.finished))
			}

			got := observer.finished[0]
			want := observation{tc.method, tc.expected, tc.statusCode}
			if got != want {
				t.Fatalf("expected %+v, got %+v", want, got)
			}
		})
	}
}
