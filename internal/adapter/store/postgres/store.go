// Package postgres stores keys in a PostgreSQL kv_store table.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the subset of pgxpool.Pool the store uses.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store implements usecase.KeyValueStore on PostgreSQL.
type Store struct {
	db      querier
	retrier *Retrier
}

// NewStore creates a new Store.
func NewStore(db querier, retrier *Retrier) *Store {
	return &Store{db: db, retrier: retrier}
}

// Get returns the value of key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.retrier.Retry(ctx, func() error {
		return s.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.retrier.Retry(ctx, func() error {
		_, err := s.db.Exec(ctx, `
			INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
			key, value,
		)
		return err
	})
}

// Remove deletes key.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.retrier.Retry(ctx, func() error {
		_, err := s.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
		return err
	})
}
