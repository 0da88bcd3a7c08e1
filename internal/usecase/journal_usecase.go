package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/ledger"
)

var (
	// ErrInconsistentLedger is returned when a stored journal does not balance.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)

// JournalUseCase handles general journal reads.
type JournalUseCase struct {
	journalRepo JournalRepository
}

// NewJournalUseCase creates a new JournalUseCase.
func NewJournalUseCase(journalRepo JournalRepository) *JournalUseCase {
	return &JournalUseCase{
		journalRepo: journalRepo,
	}
}

// ListJournalsInput represents input for listing journals.
type ListJournalsInput struct {
	Kind      domain.JournalKind
	Reference string
	Limit     int
	Offset    int
}

// ListJournals lists journals newest first.
func (uc *JournalUseCase) ListJournals(ctx context.Context, input ListJournalsInput) ([]*domain.Journal, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultJournalPageSize
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	journals, err := uc.journalRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Journal, 0, len(journals))
	for i := len(journals) - 1; i >= 0; i-- {
		j := journals[i]
		if input.Kind != "" && j.Kind != input.Kind {
			continue
		}
		if input.Reference != "" && j.Reference != input.Reference {
			continue
		}
		out = append(out, j)
	}

	if input.Offset >= len(out) {
		return []*domain.Journal{}, nil
	}
	end := min(input.Offset+input.Limit, len(out))
	return out[input.Offset:end], nil
}

// GetJournal retrieves a journal by ID.
func (uc *JournalUseCase) GetJournal(ctx context.Context, id string) (*domain.Journal, error) {
	return uc.journalRepo.GetByID(ctx, id)
}

// CheckJournals verifies that every stored journal balances.
func (uc *JournalUseCase) CheckJournals(ctx context.Context) (bool, error) {
	journals, err := uc.journalRepo.List(ctx)
	if err != nil {
		return false, err
	}

	unbalanced := make([]string, 0)
	for _, j := range journals {
		if !ledger.ValidateEntryBalance(j.Entries).IsValid {
			unbalanced = append(unbalanced, j.ID)
		}
	}

	if len(unbalanced) > 0 {
		return false, fmt.Errorf("%w: %s", ErrInconsistentLedger, strings.Join(unbalanced, ", "))
	}

	return true, nil
}
