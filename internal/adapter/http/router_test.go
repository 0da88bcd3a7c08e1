package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koperasi/ledger/internal/adapter/http/handler"
	"github.com/koperasi/ledger/internal/adapter/store/memory"
	"github.com/koperasi/ledger/internal/app"
	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/infrastructure/config"
	"github.com/koperasi/ledger/tests/testutil"
)

func newTestApp(t *testing.T) (*app.App, http.Handler) {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.StoreDriver = config.StoreMemory

	a, err := app.NewWithStore(cfg, zerolog.Nop(), memory.New())
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		AccountHandler:        handler.NewAccountHandler(a.Accounts),
		OpeningBalanceHandler: handler.NewOpeningBalanceHandler(a.OpeningBalance),
		JournalHandler:        handler.NewJournalHandler(a.Journals),
		ReconciliationHandler: handler.NewReconciliationHandler(a.Reconciliation),
		HealthHandler:         handler.NewHealthHandler(a, cfg.StoreDriver),
		MetricsHandler:        a.Metrics.Handler(),
		Observer:              a.Metrics,
		Logger:                zerolog.Nop(),
	})
	return a, router
}

func createOpeningBalance(t *testing.T, a *app.App, s *domain.OpeningBalanceSnapshot) {
	t.Helper()

	ctx := context.Background()
	w := a.OpeningBalance.StartCreate(ctx)
	testutil.Fill(t, w, s)
	_, err := a.OpeningBalance.Submit(ctx, w)
	require.NoError(t, err)
}

func serve(router http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestNewRouter_HealthEndpointsAvailable(t *testing.T) {
	_, router := newTestApp(t)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/ready", nil).Code)
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	_, router := newTestApp(t)

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"GET /api/v1/accounts/",
		"GET /api/v1/accounts/equation",
		"GET /api/v1/accounts/{code}",
		"GET /api/v1/opening-balance/",
		"GET /api/v1/opening-balance/history",
		"POST /api/v1/opening-balance/lock",
		"POST /api/v1/opening-balance/unlock",
		"GET /api/v1/journals/",
		"GET /api/v1/journals/{id}",
		"GET /api/v1/reconciliation/",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func TestNewRouter_OpeningBalanceFlow(t *testing.T) {
	a, router := newTestApp(t)

	rec := serve(router, http.MethodGet, "/api/v1/opening-balance", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	createOpeningBalance(t, a, testutil.FullSnapshot("2025-01-01"))

	rec = serve(router, http.MethodGet, "/api/v1/opening-balance", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodGet, "/api/v1/accounts/equation", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var equation map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &equation))
	assert.Equal(t, true, equation["balanced"])

	rec = serve(router, http.MethodGet, "/api/v1/accounts/1-1000", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cash struct {
		Balance decimal.Decimal `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cash))
	assert.True(t, cash.Balance.Equal(testutil.Money("12500000")), "cash balance %s", cash.Balance)

	rec = serve(router, http.MethodGet, "/api/v1/journals?kind=opening", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var journals struct {
		Journals []struct {
			ID string `json:"id"`
		} `json:"journals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &journals))
	require.Len(t, journals.Journals, 1)

	rec = serve(router, http.MethodGet, "/api/v1/journals/"+journals.Journals[0].ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodGet, "/api/v1/reconciliation", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ledger_consistent":true`)
	assert.Contains(t, rec.Body.String(), `"discrepancies":[]`)
}

func TestNewRouter_LockRecordsHeaderUser(t *testing.T) {
	a, router := newTestApp(t)
	createOpeningBalance(t, a, testutil.CashOnly("2025-01-01", "5000000"))

	rec := serve(router, http.MethodPost, "/api/v1/opening-balance/lock", map[string]string{"X-User-ID": "ketua"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"locked_by":"ketua"`)

	logs, err := a.OpeningBalance.AuditTrail(context.Background(), domain.AuditFilter{Action: domain.AuditActionOpeningBalanceLock})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "ketua", logs[0].UserID)

	rec = serve(router, http.MethodPost, "/api/v1/opening-balance/unlock", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"locked":false`)
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	_, router := newTestApp(t)

	serve(router, http.MethodGet, "/api/v1/accounts", nil)
	rec := serve(router, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "koperasi_http_requests_total"), "missing http metrics")
	assert.True(t, strings.Contains(body, "koperasi_store_operations_total"), "missing store metrics")
}
