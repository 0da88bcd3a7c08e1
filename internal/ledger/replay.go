package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/koperasi/ledger/internal/domain"
)

// Replay recomputes account balances from zero by posting journals in order.
// Entries for codes missing from coa are ignored.
func Replay(coa []domain.Account, journals []*domain.Journal) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(coa))
	types := make(map[string]domain.AccountType, len(coa))
	for _, a := range coa {
		balances[a.Code] = decimal.Zero
		types[a.Code] = a.Type
	}

	for _, j := range journals {
		for _, entry := range j.Entries {
			typ, ok := types[entry.Account]
			if !ok {
				continue
			}
			acc := domain.Account{Type: typ, Balance: balances[entry.Account]}
			acc.Balance = acc.ApplyDebit(entry.Debit)
			acc.Balance = acc.ApplyCredit(entry.Credit)
			balances[entry.Account] = acc.Balance
		}
	}

	return balances
}
