package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/koperasi/ledger/internal/adapter/repository/kv"
	"github.com/koperasi/ledger/internal/adapter/store/memory"
	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/ledger"
	"github.com/koperasi/ledger/internal/usecase"
)

// FixedNow is the clock every fixture use case runs on.
var FixedNow = time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)

// StaticIdentity always reports the same user.
type StaticIdentity string

// CurrentUserID implements usecase.IdentityProvider.
func (s StaticIdentity) CurrentUserID(context.Context) string {
	return string(s)
}

// Ledger wires every repository and use case over one store.
type Ledger struct {
	Store     usecase.KeyValueStore
	Engine    *ledger.Engine
	TxManager *kv.TxManager
	Accounts  *kv.AccountRepository
	Snapshots *kv.SnapshotRepository
	Journals  *kv.JournalRepository
	Audits    *kv.AuditRepository

	OpeningBalance *usecase.OpeningBalanceUseCase
	AccountUC      *usecase.AccountUseCase
	JournalUC      *usecase.JournalUseCase
	Reconciliation *usecase.ReconciliationUseCase
}

// NewLedger builds a Ledger over a fresh in-memory store.
func NewLedger(t *testing.T, opts ...usecase.OpeningBalanceOption) *Ledger {
	t.Helper()
	return NewLedgerWithStore(t, memory.New(), opts...)
}

// NewLedgerWithStore builds a Ledger over store with the default keys and account map.
func NewLedgerWithStore(t *testing.T, store usecase.KeyValueStore, opts ...usecase.OpeningBalanceOption) *Ledger {
	t.Helper()

	engine, err := ledger.NewEngine(domain.DefaultAccountMap())
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	keys := kv.DefaultKeys()
	logger := zerolog.Nop()
	identity := StaticIdentity("admin")

	l := &Ledger{
		Store:     store,
		Engine:    engine,
		TxManager: kv.NewTxManager(store),
		Accounts:  kv.NewAccountRepository(store, keys.Accounts, logger),
		Snapshots: kv.NewSnapshotRepository(store, keys.Snapshot, keys.SnapshotHistory, logger),
		Journals:  kv.NewJournalRepository(store, keys.Journals, logger),
		Audits:    kv.NewAuditRepository(store, keys.Audit, logger),
	}

	base := []usecase.OpeningBalanceOption{usecase.WithClock(func() time.Time { return FixedNow })}
	l.OpeningBalance = usecase.NewOpeningBalanceUseCase(
		engine, l.TxManager, l.Accounts, l.Snapshots, l.Journals, l.Audits,
		kv.NewULIDGenerator(), identity, append(base, opts...)...,
	)
	l.AccountUC = usecase.NewAccountUseCase(engine, l.TxManager, l.Accounts, l.Audits, identity, nil)
	l.JournalUC = usecase.NewJournalUseCase(l.Journals)
	l.Reconciliation = usecase.NewReconciliationUseCase(engine, l.Accounts, l.Snapshots, l.Journals)

	return l
}

// Balance returns the stored balance of code, failing the test when it is missing.
func (l *Ledger) Balance(t *testing.T, code string) decimal.Decimal {
	t.Helper()

	accounts, err := l.Accounts.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list accounts: %v", err)
	}
	idx := domain.FindAccount(accounts, code)
	if idx < 0 {
		t.Fatalf("account %s not found", code)
	}
	return accounts[idx].Balance
}

// Create runs the create flow for s and fails the test on error.
func (l *Ledger) Create(t *testing.T, s *domain.OpeningBalanceSnapshot) *usecase.SubmitResult {
	t.Helper()

	ctx := context.Background()
	w := l.OpeningBalance.StartCreate(ctx)
	Fill(t, w, s)

	result, err := l.OpeningBalance.Submit(ctx, w)
	if err != nil {
		t.Fatalf("failed to create opening balance: %v", err)
	}
	return result
}

// Fill copies every collected field of s into the wizard.
func Fill(t *testing.T, w *usecase.Wizard, s *domain.OpeningBalanceSnapshot) {
	t.Helper()

	if err := w.Fill(s); err != nil {
		t.Fatalf("failed to fill wizard: %v", err)
	}
}

// Money parses a decimal literal, panicking on bad input.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// CashOnly is the opening balance of a koperasi that only holds cash.
func CashOnly(date, cash string) *domain.OpeningBalanceSnapshot {
	return &domain.OpeningBalanceSnapshot{
		PeriodStartDate: date,
		InitialEquity:   decimal.Zero,
		Cash:            Money(cash),
		Bank:            decimal.Zero,
	}
}

// FullSnapshot has every category funded.
func FullSnapshot(date string) *domain.OpeningBalanceSnapshot {
	return &domain.OpeningBalanceSnapshot{
		PeriodStartDate: date,
		InitialEquity:   Money("10000000"),
		Cash:            Money("12500000"),
		Bank:            Money("30000000"),
		ReceivablesFromMembers: []domain.MemberReceivable{
			{MemberRef: "AGT-001", Amount: Money("750000")},
			{MemberRef: "AGT-002", Amount: Money("1250000")},
		},
		PayablesToSuppliers: []domain.SupplierPayable{
			{SupplierRef: "SUP-01", Amount: Money("4000000")},
		},
		Inventory: []domain.InventoryLine{
			{ItemRef: "BRG-BERAS", Quantity: Money("100"), UnitCost: Money("12500")},
			{ItemRef: "BRG-GULA", Quantity: Money("40"), UnitCost: Money("16000.50")},
		},
		MemberDeposits: []domain.MemberDeposit{
			{MemberRef: "AGT-001", PrincipalDeposit: Money("100000"), MandatoryDeposit: Money("1200000"), VoluntaryDeposit: Money("500000")},
			{MemberRef: "AGT-002", PrincipalDeposit: Money("100000"), MandatoryDeposit: Money("600000")},
		},
		MemberLoans: []domain.MemberLoan{
			{MemberRef: "AGT-003", PrincipalAmount: Money("5000000"), InterestRate: Money("1.5"), TermMonths: 12, DueDate: "2025-12-31"},
		},
	}
}
