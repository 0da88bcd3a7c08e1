package ledger

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/koperasi/ledger/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	engine, err := NewEngine(domain.DefaultAccountMap())
	require.NoError(t, err)
	return engine
}

func money(r *rand.Rand) decimal.Decimal {
	if r.Intn(4) == 0 {
		return decimal.Zero
	}
	// cents precision, up to 10 million
	return decimal.New(r.Int63n(1_000_000_000), -2)
}

// randomSnapshot builds a valid snapshot with a mix of empty and funded categories.
func randomSnapshot(r *rand.Rand) *domain.OpeningBalanceSnapshot {
	s := &domain.OpeningBalanceSnapshot{
		PeriodStartDate: "2025-01-01",
		InitialEquity:   money(r),
		Cash:            money(r),
		Bank:            money(r),
	}
	for i := 0; i < r.Intn(3); i++ {
		s.ReceivablesFromMembers = append(s.ReceivablesFromMembers, domain.MemberReceivable{MemberRef: "M", Amount: money(r)})
	}
	for i := 0; i < r.Intn(3); i++ {
		s.PayablesToSuppliers = append(s.PayablesToSuppliers, domain.SupplierPayable{SupplierRef: "S", Amount: money(r)})
	}
	for i := 0; i < r.Intn(3); i++ {
		s.Inventory = append(s.Inventory, domain.InventoryLine{
			ItemRef:  "BRG",
			Quantity: decimal.NewFromInt(r.Int63n(50)),
			UnitCost: money(r),
		})
	}
	for i := 0; i < r.Intn(3); i++ {
		s.MemberDeposits = append(s.MemberDeposits, domain.MemberDeposit{
			MemberRef:        "M",
			PrincipalDeposit: money(r),
			MandatoryDeposit: money(r),
			VoluntaryDeposit: money(r),
		})
	}
	for i := 0; i < r.Intn(3); i++ {
		s.MemberLoans = append(s.MemberLoans, domain.MemberLoan{
			MemberRef:       "M",
			PrincipalAmount: money(r),
			InterestRate:    decimal.New(r.Int63n(300), -2),
			TermMonths:      12,
		})
	}
	return s
}

func sumSides(entries []domain.JournalEntry) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	return debit, credit
}

func findEntries(entries []domain.JournalEntry, code string) []domain.JournalEntry {
	var out []domain.JournalEntry
	for _, e := range entries {
		if e.Account == code {
			out = append(out, e)
		}
	}
	return out
}
