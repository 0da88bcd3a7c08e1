package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType enumerates chart of accounts categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// ParseAccountType normalises a stored or user supplied type name.
func ParseAccountType(s string) (AccountType, bool) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return t, true
	}
	return "", false
}

// IsBalanceSheet reports whether the type takes part in the accounting equation.
func (t AccountType) IsBalanceSheet() bool {
	return t == AccountTypeAsset || t == AccountTypeLiability || t == AccountTypeEquity
}

// IsDebitNormal reports whether a debit increases accounts of this type.
func (t AccountType) IsDebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Account represents a chart of accounts entry with its running balance.
type Account struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Type    AccountType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// ApplyDebit returns the balance after posting a debit of amount.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	if a.Type.IsDebitNormal() {
		return a.Balance.Add(amount)
	}
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after posting a credit of amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	if a.Type.IsDebitNormal() {
		return a.Balance.Sub(amount)
	}
	return a.Balance.Add(amount)
}

// FindAccount returns the index of the account with the given code, or -1.
func FindAccount(accounts []Account, code string) int {
	for i := range accounts {
		if accounts[i].Code == code {
			return i
		}
	}
	return -1
}

// CloneAccounts returns a copy of accounts that can be mutated freely.
func CloneAccounts(accounts []Account) []Account {
	out := make([]Account, len(accounts))
	copy(out, accounts)
	return out
}
