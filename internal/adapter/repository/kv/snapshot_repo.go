package kv

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/usecase"
)

// SnapshotRepository stores the active opening balance under one key and
// archived periods as a JSON array under another.
type SnapshotRepository struct {
	store      usecase.KeyValueStore
	key        string
	historyKey string
	logger     zerolog.Logger
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(store usecase.KeyValueStore, key, historyKey string, logger zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{store: store, key: key, historyKey: historyKey, logger: logger}
}

// Get returns the active snapshot, nil when none is stored or it cannot be read.
func (r *SnapshotRepository) Get(ctx context.Context) (*domain.OpeningBalanceSnapshot, error) {
	var s domain.OpeningBalanceSnapshot
	if !readOrDefault(ctx, r.store, r.logger, r.key, &s) {
		return nil, nil
	}
	return &s, nil
}

// GetTx returns the active snapshot as seen by tx.
func (r *SnapshotRepository) GetTx(ctx context.Context, tx usecase.Transaction) (*domain.OpeningBalanceSnapshot, error) {
	t, err := asTx(tx)
	if err != nil {
		return nil, err
	}

	var s domain.OpeningBalanceSnapshot
	found, err := readJSON(ctx, t, r.key, &s)
	if err != nil || !found {
		return nil, err
	}
	return &s, nil
}

// SaveTx replaces the active snapshot.
func (r *SnapshotRepository) SaveTx(_ context.Context, tx usecase.Transaction, snapshot *domain.OpeningBalanceSnapshot) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	return writeJSON(t, r.key, snapshot)
}

// History returns archived snapshots, oldest first.
func (r *SnapshotRepository) History(ctx context.Context) ([]*domain.OpeningBalanceSnapshot, error) {
	var history []*domain.OpeningBalanceSnapshot
	if !readOrDefault(ctx, r.store, r.logger, r.historyKey, &history) {
		return []*domain.OpeningBalanceSnapshot{}, nil
	}
	return history, nil
}

// HistoryTx returns archived snapshots as seen by tx.
func (r *SnapshotRepository) HistoryTx(ctx context.Context, tx usecase.Transaction) ([]*domain.OpeningBalanceSnapshot, error) {
	t, err := asTx(tx)
	if err != nil {
		return nil, err
	}

	var history []*domain.OpeningBalanceSnapshot
	if _, err := readJSON(ctx, t, r.historyKey, &history); err != nil {
		return nil, err
	}
	if history == nil {
		history = []*domain.OpeningBalanceSnapshot{}
	}
	return history, nil
}

// ArchiveTx appends snapshot to the history.
func (r *SnapshotRepository) ArchiveTx(ctx context.Context, tx usecase.Transaction, snapshot *domain.OpeningBalanceSnapshot) error {
	history, err := r.HistoryTx(ctx, tx)
	if err != nil {
		return err
	}

	t, _ := asTx(tx)
	return writeJSON(t, r.historyKey, append(history, snapshot))
}
