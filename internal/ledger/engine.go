package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/koperasi/ledger/internal/domain"
)

// Engine generates opening and correction journals for one account mapping.
type Engine struct {
	codes domain.AccountMap
}

// NewEngine resolves the role mapping once; codes must be distinct and non-empty.
func NewEngine(codes domain.AccountMap) (*Engine, error) {
	if err := codes.Validate(); err != nil {
		return nil, err
	}

	resolved := make(domain.AccountMap, len(codes))
	for role, code := range codes {
		resolved[role] = code
	}
	return &Engine{codes: resolved}, nil
}

// Code returns the account code mapped to role.
func (e *Engine) Code(role domain.AccountRole) string {
	return e.codes[role]
}

// AccountMap returns a copy of the resolved mapping.
func (e *Engine) AccountMap() domain.AccountMap {
	out := make(domain.AccountMap, len(e.codes))
	for role, code := range e.codes {
		out[role] = code
	}
	return out
}

// pair appends a debit-then-credit pair of equal magnitude.
func pair(entries []domain.JournalEntry, debit, credit string, amount decimal.Decimal) []domain.JournalEntry {
	return append(entries,
		domain.DebitEntry(debit, amount),
		domain.CreditEntry(credit, amount),
	)
}

// EnsureAccounts returns coa extended with any role account the entries
// reference but the chart lacks. The input slice is not modified.
func (e *Engine) EnsureAccounts(coa []domain.Account, entries []domain.JournalEntry) []domain.Account {
	out := domain.CloneAccounts(coa)
	for _, entry := range entries {
		if domain.FindAccount(out, entry.Account) >= 0 {
			continue
		}
		role, ok := e.codes.RoleOf(entry.Account)
		if !ok {
			continue
		}
		spec, _ := domain.SpecFor(role)
		out = append(out, domain.Account{
			Code:    entry.Account,
			Name:    spec.DefaultName,
			Type:    spec.Type,
			Balance: decimal.Zero,
		})
	}
	return out
}

// ApplySnapshot assigns each role account its snapshot total directly.
// Opening equity receives net assets minus initial equity so the chart
// satisfies the accounting equation. Missing role accounts are created.
func (e *Engine) ApplySnapshot(coa []domain.Account, s *domain.OpeningBalanceSnapshot) []domain.Account {
	totals := s.Totals()
	out := domain.CloneAccounts(coa)

	assign := func(role domain.AccountRole, balance decimal.Decimal) {
		code := e.codes[role]
		if idx := domain.FindAccount(out, code); idx >= 0 {
			out[idx].Balance = balance
			return
		}
		spec, _ := domain.SpecFor(role)
		out = append(out, domain.Account{Code: code, Name: spec.DefaultName, Type: spec.Type, Balance: balance})
	}

	for _, spec := range domain.Roles {
		if spec.Role == domain.RoleOpeningEquity {
			continue
		}
		assign(spec.Role, totals.Get(spec.Role))
	}
	assign(domain.RoleOpeningEquity, totals.NetAssets().Sub(totals.Get(domain.RoleEquity)))

	return out
}
