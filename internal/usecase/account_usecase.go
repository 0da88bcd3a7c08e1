package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/ledger"
)

// AccountUseCase handles chart of accounts operations.
type AccountUseCase struct {
	engine      *ledger.Engine
	txManager   TransactionManager
	accountRepo AccountRepository
	auditRepo   AuditRepository
	identity    IdentityProvider
	metrics     MetricsRecorder
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	engine *ledger.Engine,
	txManager TransactionManager,
	accountRepo AccountRepository,
	auditRepo AuditRepository,
	identity IdentityProvider,
	metrics MetricsRecorder,
) *AccountUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &AccountUseCase{
		engine:      engine,
		txManager:   txManager,
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		identity:    identity,
		metrics:     metrics,
	}
}

// SeedDefaults adds every role account missing from the chart with a zero
// balance. Existing accounts are left untouched. It returns the resulting
// chart and the number of accounts added.
func (uc *AccountUseCase) SeedDefaults(ctx context.Context) ([]domain.Account, int, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.ListTx(ctx, tx)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	added := make([]string, 0)
	for _, a := range uc.engine.AccountMap().DefaultAccounts() {
		if domain.FindAccount(accounts, a.Code) >= 0 {
			continue
		}
		accounts = append(accounts, a)
		added = append(added, a.Code)
	}

	if len(added) == 0 {
		return accounts, 0, nil
	}

	if err := uc.accountRepo.SaveTx(ctx, tx, accounts); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	if err := uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
		UserID:       uc.identity.CurrentUserID(ctx),
		Action:       domain.AuditActionAccountsSeed,
		ResourceType: "accounts",
		AfterState:   domain.JSON{"added": added},
		Status:       domain.AuditStatusSuccess,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	return accounts, len(added), nil
}

// GetAccount retrieves an account by code.
func (uc *AccountUseCase) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	idx := domain.FindAccount(accounts, code)
	if idx < 0 {
		return nil, domain.ErrAccountNotFound
	}
	account := accounts[idx]
	return &account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Type   domain.AccountType
	Limit  int
	Offset int
}

// ListAccounts lists accounts in chart order, optionally filtered by type.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]domain.Account, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)

	filtered := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if input.Type != "" && a.Type != input.Type {
			continue
		}
		filtered = append(filtered, a)
	}

	if offset >= len(filtered) {
		return []domain.Account{}, nil
	}
	end := min(offset+limit, len(filtered))
	return filtered[offset:end], nil
}

// CheckEquation reports whether the stored chart satisfies Assets = Liabilities + Equity.
func (uc *AccountUseCase) CheckEquation(ctx context.Context) (ledger.EquationResult, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return ledger.EquationResult{}, err
	}

	result := ledger.ValidateAccountingEquation(accounts)
	diff, _ := result.Difference.Float64()
	uc.metrics.EquationChecked(result.IsValid, diff)
	return result, nil
}
