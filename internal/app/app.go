// Package app wires configuration, storage and use cases together.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/koperasi/ledger/internal/adapter/repository/kv"
	"github.com/koperasi/ledger/internal/adapter/store"
	"github.com/koperasi/ledger/internal/adapter/store/file"
	"github.com/koperasi/ledger/internal/adapter/store/memory"
	pgstore "github.com/koperasi/ledger/internal/adapter/store/postgres"
	redisstore "github.com/koperasi/ledger/internal/adapter/store/redis"
	"github.com/koperasi/ledger/internal/adapter/store/sqlite"
	"github.com/koperasi/ledger/internal/infrastructure/config"
	"github.com/koperasi/ledger/internal/infrastructure/identity"
	"github.com/koperasi/ledger/internal/infrastructure/metrics"
	"github.com/koperasi/ledger/internal/ledger"
	"github.com/koperasi/ledger/internal/usecase"
)

// ErrUnknownDriver is returned for an unsupported STORE_DRIVER.
var ErrUnknownDriver = errors.New("unknown store driver")

// App holds every wired component.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Store    usecase.KeyValueStore
	Identity *identity.Provider

	OpeningBalance *usecase.OpeningBalanceUseCase
	Accounts       *usecase.AccountUseCase
	Journals       *usecase.JournalUseCase
	Reconciliation *usecase.ReconciliationUseCase

	closers []func() error
}

// New opens the configured store and builds the use cases over it.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	a := &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  metrics.New(),
		Identity: identity.NewProvider(cfg.CurrentUser),
	}

	raw, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a.wire(store.Instrument(raw, a.Metrics))
}

// NewWithStore builds the use cases over an already opened store.
func NewWithStore(cfg *config.Config, logger zerolog.Logger, kvStore usecase.KeyValueStore) (*App, error) {
	a := &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  metrics.New(),
		Identity: identity.NewProvider(cfg.CurrentUser),
	}
	return a.wire(store.Instrument(kvStore, a.Metrics))
}

func (a *App) wire(kvStore usecase.KeyValueStore) (*App, error) {
	engine, err := ledger.NewEngine(a.Config.Accounts.AccountMap())
	if err != nil {
		a.Close()
		return nil, err
	}

	keys := kv.Keys{
		Accounts:        a.Config.Keys.Accounts,
		Snapshot:        a.Config.Keys.Snapshot,
		SnapshotHistory: a.Config.Keys.SnapshotHistory,
		Journals:        a.Config.Keys.Journals,
		Audit:           a.Config.Keys.Audit,
	}

	a.Store = kvStore
	txManager := kv.NewTxManager(kvStore)
	accountRepo := kv.NewAccountRepository(kvStore, keys.Accounts, a.Logger)
	snapshotRepo := kv.NewSnapshotRepository(kvStore, keys.Snapshot, keys.SnapshotHistory, a.Logger)
	journalRepo := kv.NewJournalRepository(kvStore, keys.Journals, a.Logger)
	auditRepo := kv.NewAuditRepository(kvStore, keys.Audit, a.Logger)

	a.OpeningBalance = usecase.NewOpeningBalanceUseCase(
		engine, txManager, accountRepo, snapshotRepo, journalRepo, auditRepo,
		kv.NewULIDGenerator(), a.Identity,
		usecase.WithLogger(a.Logger),
		usecase.WithMetrics(a.Metrics),
	)
	a.Accounts = usecase.NewAccountUseCase(engine, txManager, accountRepo, auditRepo, a.Identity, a.Metrics)
	a.Journals = usecase.NewJournalUseCase(journalRepo)
	a.Reconciliation = usecase.NewReconciliationUseCase(engine, accountRepo, snapshotRepo, journalRepo)

	return a, nil
}

func (a *App) openStore(ctx context.Context) (usecase.KeyValueStore, error) {
	cfg := a.Config

	switch cfg.StoreDriver {
	case config.StoreMemory:
		return memory.New(), nil

	case config.StoreFile:
		if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		return file.New(cfg.StorePath)

	case config.StoreRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, cfg.DatabaseTimeout)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		a.Logger.Info().Msg("connected to redis")
		return redisstore.New(client, cfg.StoreKeyPrefix,
			redisstore.WithMaxRetries(cfg.StoreRetryMax),
			redisstore.WithLogger(a.Logger),
		), nil

	case config.StoreSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.closers = append(a.closers, s.Close)
		return s, nil

	case config.StorePostgres:
		if err := pgstore.RunMigrations(cfg.DatabaseURL, a.Logger); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		a.Logger.Info().Msg("connected to postgres")
		return pgstore.NewStore(pool, pgstore.NewRetrier(cfg.StoreRetryMax, a.Logger)), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StoreDriver)
	}
}

// Ping reads the snapshot key to prove the store answers.
func (a *App) Ping(ctx context.Context) error {
	_, _, err := a.Store.Get(ctx, a.Config.Keys.Snapshot)
	return err
}

// Close releases store connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
