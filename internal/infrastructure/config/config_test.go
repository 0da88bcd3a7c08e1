package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.StoreDriver != config.StoreFile {
		t.Fatalf("expected default store driver file, got %q", cfg.StoreDriver)
	}

	if cfg.Keys.Snapshot != "saldo_awal" || cfg.Keys.Accounts != "coa" {
		t.Fatalf("unexpected default keys: %+v", cfg.Keys)
	}

	if cfg.CurrentUser != "admin" {
		t.Fatalf("expected default user admin, got %s", cfg.CurrentUser)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	m := cfg.Accounts.AccountMap()
	for role, code := range domain.DefaultAccountMap() {
		if m[role] != code {
			t.Fatalf("role %s: expected %s, got %s", role, code, m[role])
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("KEY_JOURNALS", "gl")
	t.Setenv("ACCOUNT_CASH", "1-1001")
	t.Setenv("CURRENT_USER", "bendahara")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.StoreDriver != config.StoreRedis || cfg.RedisURL != "redis://example" {
		t.Fatalf("expected redis store, got %s %s", cfg.StoreDriver, cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.Keys.Journals != "gl" {
		t.Fatalf("expected journal key override, got %s", cfg.Keys.Journals)
	}

	if cfg.Accounts.AccountMap()[domain.RoleCash] != "1-1001" {
		t.Fatalf("expected cash code override, got %s", cfg.Accounts.Cash)
	}

	if cfg.CurrentUser != "bendahara" {
		t.Fatalf("expected user override, got %s", cfg.CurrentUser)
	}
}

func TestLoadRejectsDuplicateAccountCodes(t *testing.T) {
	t.Setenv("ACCOUNT_BANK", "1-1000")

	_, err := config.Load()
	if !errors.Is(err, domain.ErrInvalidAccountMap) {
		t.Fatalf("expected invalid account map error, got %v", err)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SQLITE_PATH=/tmp/from-dotenv.db\n"), 0o600); err != nil {
		t.Fatalf("failed to write dotenv: %v", err)
	}
	t.Setenv("SQLITE_PATH", "")
	os.Unsetenv("SQLITE_PATH")

	cfg, err := config.Load(path, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("SQLITE_PATH") })

	if cfg.SQLitePath != "/tmp/from-dotenv.db" {
		t.Fatalf("expected dotenv value, got %s", cfg.SQLitePath)
	}
}
