package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/usecase"
	"github.com/koperasi/ledger/internal/usecase/mocks"
	"github.com/koperasi/ledger/tests/testutil"
)

func TestJournalUseCase_ListJournals(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockJournalRepository(ctrl)
	repo.EXPECT().List(gomock.Any()).Return([]*domain.Journal{
		{ID: "j1", Kind: domain.JournalKindOpening, Reference: "s1"},
		{ID: "j2", Kind: domain.JournalKindCorrection, Reference: "s1"},
		{ID: "j3", Kind: domain.JournalKindOpening, Reference: "s2"},
	}, nil).AnyTimes()

	uc := usecase.NewJournalUseCase(repo)
	ctx := context.Background()

	tests := []struct {
		name  string
		input usecase.ListJournalsInput
		want  []string
	}{
		{"newest first", usecase.ListJournalsInput{}, []string{"j3", "j2", "j1"}},
		{"by kind", usecase.ListJournalsInput{Kind: domain.JournalKindOpening}, []string{"j3", "j1"}},
		{"by reference", usecase.ListJournalsInput{Reference: "s1"}, []string{"j2", "j1"}},
		{"paged", usecase.ListJournalsInput{Limit: 1, Offset: 1}, []string{"j2"}},
		{"past end", usecase.ListJournalsInput{Offset: 10}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journals, err := uc.ListJournals(ctx, tt.input)
			require.NoError(t, err)

			ids := make([]string, 0, len(journals))
			for _, j := range journals {
				ids = append(ids, j.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestJournalUseCase_CheckJournals(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockJournalRepository(ctrl)
	repo.EXPECT().List(gomock.Any()).Return([]*domain.Journal{
		{ID: "ok", Entries: []domain.JournalEntry{
			domain.DebitEntry("1-1000", testutil.Money("10")),
			domain.CreditEntry("3-9000", testutil.Money("10")),
		}},
		{ID: "bad", Entries: []domain.JournalEntry{
			domain.DebitEntry("1-1000", testutil.Money("10")),
		}},
	}, nil)

	ok, err := usecase.NewJournalUseCase(repo).CheckJournals(context.Background())
	assert.False(t, ok)
	require.ErrorIs(t, err, usecase.ErrInconsistentLedger)
	assert.Contains(t, err.Error(), "bad")
}

func TestJournalUseCase_GetJournal(t *testing.T) {
	l := testutil.NewLedger(t)
	ctx := context.Background()

	result := l.Create(t, testutil.FullSnapshot("2025-01-01"))

	j, err := l.JournalUC.GetJournal(ctx, result.Journal.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Journal.Entries, j.Entries)

	_, err = l.JournalUC.GetJournal(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrJournalNotFound)

	ok, err := l.JournalUC.CheckJournals(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}
