package usecase

import (
	"context"

	"github.com/koperasi/ledger/internal/domain"
)

// KeyValueStore is the single local store everything is persisted in.
// Get reports found=false when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// AccountRepository reads and writes the chart of accounts as one blob.
type AccountRepository interface {
	// List returns the chart; read failures degrade to an empty chart.
	List(ctx context.Context) ([]domain.Account, error)
	ListTx(ctx context.Context, tx Transaction) ([]domain.Account, error)
	SaveTx(ctx context.Context, tx Transaction, accounts []domain.Account) error
}

// SnapshotRepository stores the active opening balance and archived periods.
type SnapshotRepository interface {
	// Get returns the active snapshot, or nil when none exists.
	Get(ctx context.Context) (*domain.OpeningBalanceSnapshot, error)
	GetTx(ctx context.Context, tx Transaction) (*domain.OpeningBalanceSnapshot, error)
	SaveTx(ctx context.Context, tx Transaction, snapshot *domain.OpeningBalanceSnapshot) error
	History(ctx context.Context) ([]*domain.OpeningBalanceSnapshot, error)
	HistoryTx(ctx context.Context, tx Transaction) ([]*domain.OpeningBalanceSnapshot, error)
	ArchiveTx(ctx context.Context, tx Transaction, snapshot *domain.OpeningBalanceSnapshot) error
}

// JournalRepository is the general journal the engine appends to.
type JournalRepository interface {
	AppendTx(ctx context.Context, tx Transaction, journal *domain.Journal) error
	List(ctx context.Context) ([]*domain.Journal, error)
	GetByID(ctx context.Context, id string) (*domain.Journal, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction buffers writes until Commit.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdentityProvider returns the id of the user acting, used for audit metadata only.
type IdentityProvider interface {
	CurrentUserID(ctx context.Context) string
}

// MetricsRecorder receives posting outcomes.
type MetricsRecorder interface {
	JournalPosted(kind domain.JournalKind, entries int)
	ValidationFailed(stage string)
	EquationChecked(valid bool, difference float64)
}

type nopMetrics struct{}

func (nopMetrics) JournalPosted(domain.JournalKind, int) {}
func (nopMetrics) ValidationFailed(string)               {}
func (nopMetrics) EquationChecked(bool, float64)         {}
