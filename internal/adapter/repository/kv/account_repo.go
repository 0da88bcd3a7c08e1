package kv

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/usecase"
)

// AccountRepository stores the chart of accounts as one JSON array.
type AccountRepository struct {
	store  usecase.KeyValueStore
	key    string
	logger zerolog.Logger
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store usecase.KeyValueStore, key string, logger zerolog.Logger) *AccountRepository {
	return &AccountRepository{store: store, key: key, logger: logger}
}

// List returns the chart; an unreadable chart is treated as empty.
func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if !readOrDefault(ctx, r.store, r.logger, r.key, &accounts) {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// ListTx returns the chart as seen by tx. Read failures are returned.
func (r *AccountRepository) ListTx(ctx context.Context, tx usecase.Transaction) ([]domain.Account, error) {
	t, err := asTx(tx)
	if err != nil {
		return nil, err
	}

	var accounts []domain.Account
	if _, err := readJSON(ctx, t, r.key, &accounts); err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// SaveTx replaces the whole chart.
func (r *AccountRepository) SaveTx(_ context.Context, tx usecase.Transaction, accounts []domain.Account) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	return writeJSON(t, r.key, accounts)
}
