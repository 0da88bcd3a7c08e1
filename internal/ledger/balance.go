package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/koperasi/ledger/internal/domain"
)

// EntryBalance is the outcome of ValidateEntryBalance.
type EntryBalance struct {
	IsValid     bool            `json:"is_valid"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Difference  decimal.Decimal `json:"difference"`
	Message     string          `json:"message"`
}

// ValidateEntryBalance checks that entries net to zero within domain.Tolerance.
// An empty list is balanced.
func ValidateEntryBalance(entries []domain.JournalEntry) EntryBalance {
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, e := range entries {
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}

	difference := totalDebit.Sub(totalCredit)
	result := EntryBalance{
		IsValid:     domain.WithinTolerance(difference),
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Difference:  difference,
	}

	if result.IsValid {
		result.Message = fmt.Sprintf("journal balanced: debit %s = credit %s", totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	} else {
		result.Message = fmt.Sprintf("journal not balanced: debit %s, credit %s, difference %s",
			totalDebit.StringFixed(2), totalCredit.StringFixed(2), difference.StringFixed(2))
	}
	return result
}

// EquationResult is the outcome of ValidateAccountingEquation.
type EquationResult struct {
	IsValid        bool            `json:"is_valid"`
	TotalAsset     decimal.Decimal `json:"total_asset"`
	TotalLiability decimal.Decimal `json:"total_liability"`
	TotalEquity    decimal.Decimal `json:"total_equity"`
	Difference     decimal.Decimal `json:"difference"`
	Message        string          `json:"message"`
}

// ValidateAccountingEquation checks Assets = Liabilities + Equity across accounts.
// Revenue and expense accounts are ignored.
func ValidateAccountingEquation(accounts []domain.Account) EquationResult {
	totalAsset, totalLiability, totalEquity := decimal.Zero, decimal.Zero, decimal.Zero
	for _, a := range accounts {
		switch a.Type {
		case domain.AccountTypeAsset:
			totalAsset = totalAsset.Add(a.Balance)
		case domain.AccountTypeLiability:
			totalLiability = totalLiability.Add(a.Balance)
		case domain.AccountTypeEquity:
			totalEquity = totalEquity.Add(a.Balance)
		}
	}

	difference := totalAsset.Sub(totalLiability.Add(totalEquity))
	result := EquationResult{
		IsValid:        domain.WithinTolerance(difference),
		TotalAsset:     totalAsset,
		TotalLiability: totalLiability,
		TotalEquity:    totalEquity,
		Difference:     difference,
	}

	if result.IsValid {
		result.Message = fmt.Sprintf("assets %s = liabilities %s + equity %s",
			totalAsset.StringFixed(2), totalLiability.StringFixed(2), totalEquity.StringFixed(2))
	} else {
		result.Message = fmt.Sprintf("assets %s != liabilities %s + equity %s (difference %s)",
			totalAsset.StringFixed(2), totalLiability.StringFixed(2), totalEquity.StringFixed(2), difference.StringFixed(2))
	}
	return result
}
