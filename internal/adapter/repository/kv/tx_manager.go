package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/koperasi/ledger/internal/usecase"
)

// ErrTxClosed is returned when a committed or rolled back transaction is used.
var ErrTxClosed = errors.New("transaction already closed")

// ErrForeignTx is returned when a repository receives a transaction it did not create.
var ErrForeignTx = errors.New("transaction was not started by the key-value tx manager")

// TxManager implements usecase.TransactionManager over a store without
// native transactions. Writes are buffered and flushed on Commit.
type TxManager struct {
	store usecase.KeyValueStore
}

// NewTxManager creates a new TxManager.
func NewTxManager(store usecase.KeyValueStore) *TxManager {
	return &TxManager{store: store}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(_ context.Context) (usecase.Transaction, error) {
	return &Tx{
		store:  m.store,
		writes: make(map[string]*string),
	}, nil
}

// Tx buffers Set and Remove calls. Reads through the Tx see its own writes.
type Tx struct {
	store  usecase.KeyValueStore
	writes map[string]*string // nil value removes the key
	order  []string
	closed bool
}

func asTx(tx usecase.Transaction) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t == nil {
		return nil, ErrForeignTx
	}
	if t.closed {
		return nil, ErrTxClosed
	}
	return t, nil
}

// Get reads key, preferring a value buffered in this transaction.
func (t *Tx) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := t.writes[key]; ok {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}
	return t.store.Get(ctx, key)
}

// Set buffers a write of key.
func (t *Tx) Set(key, value string) {
	t.track(key)
	t.writes[key] = &value
}

// Remove buffers a removal of key.
func (t *Tx) Remove(key string) {
	t.track(key)
	t.writes[key] = nil
}

func (t *Tx) track(key string) {
	if _, ok := t.writes[key]; !ok {
		t.order = append(t.order, key)
	}
}

type preImage struct {
	key   string
	value string
	found bool
}

// Commit flushes buffered writes in the order they were first made. If a
// write fails, keys already written are restored to their previous values.
func (t *Tx) Commit(ctx context.Context) error {
	if t.closed {
		return ErrTxClosed
	}
	t.closed = true

	images := make([]preImage, 0, len(t.order))
	for _, key := range t.order {
		value, found, err := t.store.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("read %s before commit: %w", key, err)
		}
		images = append(images, preImage{key: key, value: value, found: found})
	}

	for i, key := range t.order {
		var err error
		if v := t.writes[key]; v != nil {
			err = t.store.Set(ctx, key, *v)
		} else {
			err = t.store.Remove(ctx, key)
		}
		if err != nil {
			if restoreErr := t.restore(ctx, images[:i]); restoreErr != nil {
				return fmt.Errorf("write %s: %w (restore failed: %v)", key, err, restoreErr)
			}
			return fmt.Errorf("write %s: %w", key, err)
		}
	}

	return nil
}

func (t *Tx) restore(ctx context.Context, images []preImage) error {
	var errs []error
	for i := len(images) - 1; i >= 0; i-- {
		img := images[i]
		var err error
		if img.found {
			err = t.store.Set(ctx, img.key, img.value)
		} else {
			err = t.store.Remove(ctx, img.key)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Rollback discards buffered writes. Rolling back a committed transaction is a no-op.
func (t *Tx) Rollback(_ context.Context) error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.writes = nil
	t.order = nil
	return nil
}
