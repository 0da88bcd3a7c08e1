package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/ledger"
)

// ReconciliationUseCase compares stored balances against the journals posted
// for the active opening balance.
type ReconciliationUseCase struct {
	engine       *ledger.Engine
	accountRepo  AccountRepository
	snapshotRepo SnapshotRepository
	journalRepo  JournalRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	engine *ledger.Engine,
	accountRepo AccountRepository,
	snapshotRepo SnapshotRepository,
	journalRepo JournalRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		engine:       engine,
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
		journalRepo:  journalRepo,
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	AccountCode       string          `json:"account_code"`
	AccountName       string          `json:"account_name"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	LastChecked       time.Time       `json:"last_checked"`
}

// ReconcileAccount replays the active period's journals for one account.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, code string) (*ReconciliationResult, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	idx := domain.FindAccount(accounts, code)
	if idx < 0 {
		return nil, domain.ErrAccountNotFound
	}

	journals, err := uc.activeJournals(ctx)
	if err != nil {
		return nil, err
	}

	replayed := ledger.Replay(accounts, journals)
	return compare(accounts[idx], replayed[code], time.Now().UTC()), nil
}

// ReconcileAllAccounts reconciles every account the engine posts to.
func (uc *ReconciliationUseCase) ReconcileAllAccounts(ctx context.Context) ([]*ReconciliationResult, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	journals, err := uc.activeJournals(ctx)
	if err != nil {
		return nil, err
	}

	replayed := ledger.Replay(accounts, journals)
	codes := uc.engine.AccountMap()
	now := time.Now().UTC()

	results := make([]*ReconciliationResult, 0, len(accounts))
	for _, account := range accounts {
		if _, ok := codes.RoleOf(account.Code); !ok {
			continue
		}
		results = append(results, compare(account, replayed[account.Code], now))
	}

	return results, nil
}

func compare(account domain.Account, calculated decimal.Decimal, at time.Time) *ReconciliationResult {
	diff := account.Balance.Sub(calculated)
	return &ReconciliationResult{
		AccountCode:       account.Code,
		AccountName:       account.Name,
		RecordedBalance:   account.Balance,
		CalculatedBalance: calculated,
		Difference:        diff,
		IsReconciled:      domain.WithinTolerance(diff),
		LastChecked:       at,
	}
}

// activeJournals returns the journals posted for the active snapshot, oldest first.
func (uc *ReconciliationUseCase) activeJournals(ctx context.Context) ([]*domain.Journal, error) {
	current, err := uc.snapshotRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	all, err := uc.journalRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Journal, 0, len(all))
	for _, j := range all {
		if j.Reference == current.ID {
			out = append(out, j)
		}
	}
	return out, nil
}

// CheckLedgerConsistency verifies double-entry bookkeeping consistency
func (uc *ReconciliationUseCase) CheckLedgerConsistency(ctx context.Context) error {
	journals, err := uc.journalRepo.List(ctx)
	if err != nil {
		return err
	}

	totalDebits, totalCredits := decimal.Zero, decimal.Zero
	for _, j := range journals {
		debit, credit := j.Totals()
		totalDebits = totalDebits.Add(debit)
		totalCredits = totalCredits.Add(credit)
	}

	if !domain.WithinTolerance(totalDebits.Sub(totalCredits)) {
		return fmt.Errorf(
			"%w: debits=%s credits=%s difference=%s",
			ErrInconsistentLedger,
			totalDebits.String(),
			totalCredits.String(),
			totalDebits.Sub(totalCredits).String(),
		)
	}

	return nil
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	SnapshotID         string                  `json:"snapshot_id,omitempty"`
	TotalAccounts      int                     `json:"total_accounts"`
	ReconciledAccounts int                     `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResult `json:"discrepancies"`
	LedgerConsistent   bool                    `json:"ledger_consistent"`
	Equation           ledger.EquationResult   `json:"equation"`
	CheckedAt          time.Time               `json:"checked_at"`
}

// GenerateReconciliationReport generates a comprehensive reconciliation report
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	// Reconcile all accounts
	results, err := uc.ReconcileAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	// Check ledger consistency
	ledgerErr := uc.CheckLedgerConsistency(ctx)

	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	// Build report
	report := &ReconciliationReport{
		TotalAccounts:    len(results),
		Discrepancies:    make([]*ReconciliationResult, 0),
		LedgerConsistent: ledgerErr == nil,
		Equation:         ledger.ValidateAccountingEquation(accounts),
		CheckedAt:        time.Now().UTC(),
	}

	if current, _ := uc.snapshotRepo.Get(ctx); current != nil {
		report.SnapshotID = current.ID
	}

	for _, result := range results {
		if result.IsReconciled {
			report.ReconciledAccounts++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	return report, nil
}
