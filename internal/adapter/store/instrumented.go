// Package store holds the key-value store drivers and shared wrappers.
package store

import (
	"context"
	"time"

	"github.com/koperasi/ledger/internal/usecase"
)

// OperationObserver receives one call per store command.
type OperationObserver interface {
	StoreOperation(op, status string, duration time.Duration)
}

// Instrumented reports every command of the wrapped store to an observer.
type Instrumented struct {
	next     usecase.KeyValueStore
	observer OperationObserver
}

// Instrument wraps next.
func Instrument(next usecase.KeyValueStore, observer OperationObserver) *Instrumented {
	return &Instrumented{next: next, observer: observer}
}

func (s *Instrumented) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.observer.StoreOperation(op, status, time.Since(start))
}

// Get reads key from the wrapped store.
func (s *Instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, found, err := s.next.Get(ctx, key)
	s.observe("get", start, err)
	return value, found, err
}

// Set writes key to the wrapped store.
func (s *Instrumented) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.observe("set", start, err)
	return err
}

// Remove deletes key from the wrapped store.
func (s *Instrumented) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Remove(ctx, key)
	s.observe("remove", start, err)
	return err
}
