package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/ledger"
	"github.com/koperasi/ledger/internal/usecase"
	"github.com/koperasi/ledger/internal/usecase/mocks"
	"github.com/koperasi/ledger/tests/testutil"
)

func TestAccountUseCase_SeedDefaults(t *testing.T) {
	l := testutil.NewLedger(t)
	ctx := context.Background()

	accounts, added, err := l.AccountUC.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(domain.Roles), added)
	assert.Len(t, accounts, len(domain.Roles))

	_, added, err = l.AccountUC.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, added)

	trail, err := l.Audits.List(ctx, domain.AuditFilter{Action: domain.AuditActionAccountsSeed})
	require.NoError(t, err)
	assert.Len(t, trail, 1)
}

func TestAccountUseCase_SeedKeepsExistingBalances(t *testing.T) {
	l := testutil.NewLedger(t)
	ctx := context.Background()

	l.Create(t, testutil.CashOnly("2025-01-01", "5000000"))

	_, added, err := l.AccountUC.SeedDefaults(ctx)
	require.NoError(t, err)
	// the cash-only opening posts to cash, equity and opening equity; the rest are created by ApplySnapshot
	assert.Zero(t, added)
	assert.True(t, l.Balance(t, "1-1000").Equal(testutil.Money("5000000")))
}

func TestAccountUseCase_GetAndList(t *testing.T) {
	l := testutil.NewLedger(t)
	ctx := context.Background()
	_, _, err := l.AccountUC.SeedDefaults(ctx)
	require.NoError(t, err)

	account, err := l.AccountUC.GetAccount(ctx, "2-2200")
	require.NoError(t, err)
	assert.Equal(t, "Simpanan Wajib", account.Name)

	_, err = l.AccountUC.GetAccount(ctx, "9-9999")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	tests := []struct {
		name  string
		input usecase.ListAccountsInput
		want  int
	}{
		{"all", usecase.ListAccountsInput{}, len(domain.Roles)},
		{"assets", usecase.ListAccountsInput{Type: domain.AccountTypeAsset}, 5},
		{"liabilities", usecase.ListAccountsInput{Type: domain.AccountTypeLiability}, 4},
		{"equity", usecase.ListAccountsInput{Type: domain.AccountTypeEquity}, 2},
		{"paged", usecase.ListAccountsInput{Limit: 3, Offset: 9}, 2},
		{"past end", usecase.ListAccountsInput{Offset: 50}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.AccountUC.ListAccounts(ctx, tt.input)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestAccountUseCase_SeedDefaultsStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	txManager := mocks.NewMockTransactionManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any()).Return(nil, errors.New("store offline"))

	engine, err := ledger.NewEngine(domain.DefaultAccountMap())
	require.NoError(t, err)

	uc := usecase.NewAccountUseCase(engine, txManager, mocks.NewMockAccountRepository(ctrl),
		mocks.NewMockAuditRepository(ctrl), testutil.StaticIdentity("admin"), nil)

	_, _, err = uc.SeedDefaults(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestAccountUseCase_CheckEquation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	metrics := mocks.NewMockMetricsRecorder(ctrl)

	repo.EXPECT().List(gomock.Any()).Return([]domain.Account{
		{Code: "1-1000", Type: domain.AccountTypeAsset, Balance: testutil.Money("100")},
		{Code: "3-1000", Type: domain.AccountTypeEquity, Balance: testutil.Money("90")},
	}, nil)
	metrics.EXPECT().EquationChecked(false, 10.0)

	engine, err := ledger.NewEngine(domain.DefaultAccountMap())
	require.NoError(t, err)

	uc := usecase.NewAccountUseCase(engine, nil, repo, nil, testutil.StaticIdentity("admin"), metrics)
	result, err := uc.CheckEquation(context.Background())
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.True(t, result.Difference.Equal(testutil.Money("10")))
}
