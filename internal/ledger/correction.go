package ledger

import (
	"github.com/koperasi/ledger/internal/domain"
)

// correctionCategories is the order corrections are emitted in.
var correctionCategories = []domain.AccountRole{
	domain.RoleCash,
	domain.RoleBank,
	domain.RoleReceivables,
	domain.RoleInventory,
	domain.RoleLoanReceivable,
	domain.RolePayables,
	domain.RoleDepositPrincipal,
	domain.RoleDepositMandatory,
	domain.RoleDepositVoluntary,
	domain.RoleEquity,
}

// GenerateCorrectionJournal emits one balanced pair per category whose total
// moved by at least domain.Tolerance between old and updated.
//
// Direction follows the account type found in coa: an asset increase debits
// the asset, a liability or equity increase credits it, and decreases mirror
// that. The other side always goes to the opening equity account. Categories
// whose account is absent from coa are skipped, as is everything when the
// opening equity account itself is absent.
func (e *Engine) GenerateCorrectionJournal(old, updated *domain.OpeningBalanceSnapshot, coa []domain.Account) []domain.JournalEntry {
	entries := make([]domain.JournalEntry, 0)

	balancing := e.codes[domain.RoleOpeningEquity]
	if domain.FindAccount(coa, balancing) < 0 {
		return entries
	}

	oldTotals, newTotals := totalsOf(old), totalsOf(updated)

	for _, role := range correctionCategories {
		delta := newTotals.Get(role).Sub(oldTotals.Get(role))
		if domain.WithinTolerance(delta) {
			continue
		}

		code := e.codes[role]
		idx := domain.FindAccount(coa, code)
		if idx < 0 {
			continue
		}

		amount := delta.Abs()
		increase := delta.IsPositive()

		switch coa[idx].Type {
		case domain.AccountTypeAsset:
			if increase {
				entries = pair(entries, code, balancing, amount)
			} else {
				entries = pair(entries, balancing, code, amount)
			}
		case domain.AccountTypeLiability, domain.AccountTypeEquity:
			if increase {
				entries = pair(entries, balancing, code, amount)
			} else {
				entries = pair(entries, code, balancing, amount)
			}
		}
	}

	return entries
}

func totalsOf(s *domain.OpeningBalanceSnapshot) domain.SnapshotTotals {
	if s == nil {
		return domain.SnapshotTotals{}
	}
	return s.Totals()
}
