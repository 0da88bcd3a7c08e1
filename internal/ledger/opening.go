package ledger

import (
	"github.com/koperasi/ledger/internal/domain"
)

// GenerateOpeningJournal converts a snapshot into balanced opening entries.
//
// Entries come in debit-then-credit pairs in a fixed order: the equity seed
// (always posted, even at zero), cash beyond the seed, bank, receivables,
// inventory, member loans, payables, then principal, mandatory and voluntary
// deposits. Categories with a zero total are skipped.
func (e *Engine) GenerateOpeningJournal(s *domain.OpeningBalanceSnapshot) []domain.JournalEntry {
	totals := s.Totals()

	cash := e.codes[domain.RoleCash]
	equity := e.codes[domain.RoleEquity]
	balancing := e.codes[domain.RoleOpeningEquity]

	entries := make([]domain.JournalEntry, 0, 20)

	// Equity seed is kept for the audit trail of the opening act.
	entries = pair(entries, cash, equity, s.InitialEquity)

	switch extra := s.Cash.Sub(s.InitialEquity); {
	case extra.IsPositive():
		entries = pair(entries, cash, balancing, extra)
	case extra.IsNegative():
		// Seed exceeded the cash on hand; give the shortfall back.
		entries = pair(entries, balancing, cash, extra.Abs())
	}

	for _, role := range []domain.AccountRole{
		domain.RoleBank,
		domain.RoleReceivables,
		domain.RoleInventory,
		domain.RoleLoanReceivable,
	} {
		if amount := totals.Get(role); amount.IsPositive() {
			entries = pair(entries, e.codes[role], balancing, amount)
		}
	}

	for _, role := range []domain.AccountRole{
		domain.RolePayables,
		domain.RoleDepositPrincipal,
		domain.RoleDepositMandatory,
		domain.RoleDepositVoluntary,
	} {
		if amount := totals.Get(role); amount.IsPositive() {
			entries = pair(entries, balancing, e.codes[role], amount)
		}
	}

	return entries
}
