package kv

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/usecase"
)

// AuditRepository implements audit log persistence
type AuditRepository struct {
	store  usecase.KeyValueStore
	key    string
	logger zerolog.Logger
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(store usecase.KeyValueStore, key string, logger zerolog.Logger) *AuditRepository {
	return &AuditRepository{store: store, key: key, logger: logger}
}

// CreateTx appends an audit log entry
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}

	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	var logs []*domain.AuditLog
	if _, err := readJSON(ctx, t, r.key, &logs); err != nil {
		return err
	}
	return writeJSON(t, r.key, append(logs, log))
}

// List retrieves audit logs with filtering, newest first
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	var logs []*domain.AuditLog
	if !readOrDefault(ctx, r.store, r.logger, r.key, &logs) {
		return []*domain.AuditLog{}, nil
	}

	limit, offset, _ := domain.ValidatePagination(filter.Limit, filter.Offset)

	out := make([]*domain.AuditLog, 0, limit)
	skipped := 0
	for i := len(logs) - 1; i >= 0 && len(out) < limit; i-- {
		if !filter.Matches(logs[i]) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, logs[i])
	}
	return out, nil
}
