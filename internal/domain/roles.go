package domain

import (
	"fmt"
	"strings"
)

// AccountRole is the logical purpose an account plays in opening balance postings.
type AccountRole string

const (
	RoleCash             AccountRole = "cash"
	RoleBank             AccountRole = "bank"
	RoleReceivables      AccountRole = "receivables"
	RoleInventory        AccountRole = "inventory"
	RoleLoanReceivable   AccountRole = "loan_receivable"
	RolePayables         AccountRole = "payables"
	RoleDepositPrincipal AccountRole = "deposit_principal"
	RoleDepositMandatory AccountRole = "deposit_mandatory"
	RoleDepositVoluntary AccountRole = "deposit_voluntary"
	RoleEquity           AccountRole = "equity"
	// RoleOpeningEquity balances every opening and correction pair except the equity seed.
	RoleOpeningEquity AccountRole = "opening_equity"
)

// RoleSpec describes the account created for a role when the chart of accounts lacks it.
type RoleSpec struct {
	Role        AccountRole
	DefaultCode string
	DefaultName string
	Type        AccountType
}

// Roles lists every role in chart of accounts order.
var Roles = []RoleSpec{
	{RoleCash, "1-1000", "Kas", AccountTypeAsset},
	{RoleBank, "1-1100", "Bank", AccountTypeAsset},
	{RoleReceivables, "1-1200", "Piutang Anggota", AccountTypeAsset},
	{RoleInventory, "1-1300", "Persediaan Barang", AccountTypeAsset},
	{RoleLoanReceivable, "1-1400", "Piutang Pinjaman Anggota", AccountTypeAsset},
	{RolePayables, "2-1000", "Hutang Usaha", AccountTypeLiability},
	{RoleDepositPrincipal, "2-2100", "Simpanan Pokok", AccountTypeLiability},
	{RoleDepositMandatory, "2-2200", "Simpanan Wajib", AccountTypeLiability},
	{RoleDepositVoluntary, "2-2300", "Simpanan Sukarela", AccountTypeLiability},
	{RoleEquity, "3-1000", "Modal Koperasi", AccountTypeEquity},
	{RoleOpeningEquity, "3-9000", "Ekuitas Saldo Awal", AccountTypeEquity},
}

// SpecFor returns the RoleSpec of role.
func SpecFor(role AccountRole) (RoleSpec, bool) {
	for _, s := range Roles {
		if s.Role == role {
			return s, true
		}
	}
	return RoleSpec{}, false
}

// AccountMap resolves roles to chart of accounts codes.
type AccountMap map[AccountRole]string

// DefaultAccountMap returns the stock koperasi account codes.
func DefaultAccountMap() AccountMap {
	m := make(AccountMap, len(Roles))
	for _, s := range Roles {
		m[s.Role] = s.DefaultCode
	}
	return m
}

// Validate checks that every role is mapped to a distinct, non-empty code.
func (m AccountMap) Validate() error {
	seen := make(map[string]AccountRole, len(m))
	for _, s := range Roles {
		code := strings.TrimSpace(m[s.Role])
		if code == "" {
			return fmt.Errorf("%w: role %s has no account code", ErrInvalidAccountMap, s.Role)
		}
		if other, ok := seen[code]; ok {
			return fmt.Errorf("%w: roles %s and %s share code %s", ErrInvalidAccountMap, other, s.Role, code)
		}
		seen[code] = s.Role
	}
	return nil
}

// RoleOf returns the role mapped to code.
func (m AccountMap) RoleOf(code string) (AccountRole, bool) {
	for role, c := range m {
		if c == code {
			return role, true
		}
	}
	return "", false
}

// DefaultAccounts returns a zero-balance chart of accounts for the mapped roles.
func (m AccountMap) DefaultAccounts() []Account {
	accounts := make([]Account, 0, len(Roles))
	for _, s := range Roles {
		accounts = append(accounts, Account{Code: m[s.Role], Name: s.DefaultName, Type: s.Type})
	}
	return accounts
}
