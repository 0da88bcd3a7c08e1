package kv

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/usecase"
)

// JournalRepository stores the general journal as one JSON array in posting order.
type JournalRepository struct {
	store  usecase.KeyValueStore
	key    string
	logger zerolog.Logger
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(store usecase.KeyValueStore, key string, logger zerolog.Logger) *JournalRepository {
	return &JournalRepository{store: store, key: key, logger: logger}
}

// AppendTx appends journal to the general journal.
func (r *JournalRepository) AppendTx(ctx context.Context, tx usecase.Transaction, journal *domain.Journal) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}

	var journals []*domain.Journal
	if _, err := readJSON(ctx, t, r.key, &journals); err != nil {
		return err
	}
	return writeJSON(t, r.key, append(journals, journal))
}

// List returns every journal, oldest first.
func (r *JournalRepository) List(ctx context.Context) ([]*domain.Journal, error) {
	var journals []*domain.Journal
	if !readOrDefault(ctx, r.store, r.logger, r.key, &journals) {
		return []*domain.Journal{}, nil
	}
	return journals, nil
}

// GetByID returns the journal with id.
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*domain.Journal, error) {
	journals, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, j := range journals {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, domain.ErrJournalNotFound
}
