package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/infrastructure/config"
	"github.com/koperasi/ledger/internal/infrastructure/identity"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)

	dir := t.TempDir()
	cfg.StoreDriver = driver
	cfg.StorePath = filepath.Join(dir, "nested", "koperasi.json")
	cfg.SQLitePath = filepath.Join(dir, "koperasi.db")
	return cfg
}

func TestNew_Drivers(t *testing.T) {
	for _, driver := range []string{config.StoreMemory, config.StoreFile, config.StoreSQLite} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			a, err := New(ctx, testConfig(t, driver), zerolog.Nop())
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, a.Close()) })

			require.NoError(t, a.Ping(ctx))

			accounts, added, err := a.Accounts.SeedDefaults(identity.WithUser(ctx, "bendahara"))
			require.NoError(t, err)
			assert.Equal(t, 11, added)
			assert.Len(t, accounts, 11)

			logs, err := a.OpeningBalance.AuditTrail(ctx, domain.AuditFilter{})
			require.NoError(t, err)
			require.Len(t, logs, 1)
			assert.Equal(t, "bendahara", logs[0].UserID)

			sets := testutil.ToFloat64(a.Metrics.StoreOperations.WithLabelValues("set", "ok"))
			assert.Greater(t, sets, 0.0)
		})
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), testConfig(t, "etcd"), zerolog.Nop())
	assert.True(t, errors.Is(err, ErrUnknownDriver))
}

func TestNew_InvalidAccountMap(t *testing.T) {
	cfg := testConfig(t, config.StoreMemory)
	cfg.Accounts.Bank = cfg.Accounts.Cash

	_, err := New(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
