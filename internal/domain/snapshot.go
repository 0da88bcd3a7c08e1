package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodDateLayout is the layout of period start dates and journal dates.
const PeriodDateLayout = "2006-01-02"

// MemberReceivable is an amount owed by a member at the period start.
type MemberReceivable struct {
	MemberRef string          `json:"member_ref" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"gte=0"`
}

// SupplierPayable is an amount owed to a supplier at the period start.
type SupplierPayable struct {
	SupplierRef string          `json:"supplier_ref" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
}

// InventoryLine is stock on hand valued at quantity times unit cost.
type InventoryLine struct {
	ItemRef  string          `json:"item_ref" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"gte=0"`
	UnitCost decimal.Decimal `json:"unit_cost" validate:"gte=0"`
}

// Value returns quantity × unit cost.
func (l InventoryLine) Value() decimal.Decimal {
	return l.Quantity.Mul(l.UnitCost)
}

// MemberDeposit holds the three deposit balances of a member.
type MemberDeposit struct {
	MemberRef        string          `json:"member_ref" validate:"required"`
	MandatoryDeposit decimal.Decimal `json:"mandatory_deposit" validate:"gte=0"`
	VoluntaryDeposit decimal.Decimal `json:"voluntary_deposit" validate:"gte=0"`
	PrincipalDeposit decimal.Decimal `json:"principal_deposit" validate:"gte=0"`
}

// MemberLoan is an outstanding loan granted to a member.
type MemberLoan struct {
	MemberRef       string          `json:"member_ref" validate:"required"`
	PrincipalAmount decimal.Decimal `json:"principal_amount" validate:"gte=0"`
	InterestRate    decimal.Decimal `json:"interest_rate" validate:"gte=0"`
	TermMonths      int             `json:"term_months" validate:"gte=0"`
	DueDate         string          `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// OpeningBalanceSnapshot is the set of balances an accounting period starts from.
type OpeningBalanceSnapshot struct {
	ID              string `json:"id"`
	PeriodStartDate string `json:"period_start_date" validate:"required,datetime=2006-01-02"`

	InitialEquity          decimal.Decimal    `json:"initial_equity" validate:"gte=0"`
	Cash                   decimal.Decimal    `json:"cash" validate:"gte=0"`
	Bank                   decimal.Decimal    `json:"bank" validate:"gte=0"`
	ReceivablesFromMembers []MemberReceivable `json:"receivables_from_members" validate:"dive"`
	PayablesToSuppliers    []SupplierPayable  `json:"payables_to_suppliers" validate:"dive"`
	Inventory              []InventoryLine    `json:"inventory" validate:"dive"`
	MemberDeposits         []MemberDeposit    `json:"member_deposits" validate:"dive"`
	MemberLoans            []MemberLoan       `json:"member_loans" validate:"dive"`

	Locked   bool       `json:"locked"`
	LockedBy string     `json:"locked_by,omitempty"`
	LockedAt *time.Time `json:"locked_at,omitempty"`

	Revision  int       `json:"revision"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SnapshotTotals are the per-role amounts a snapshot posts.
type SnapshotTotals map[AccountRole]decimal.Decimal

// Totals aggregates the snapshot line items by role. Opening equity is not included.
func (s *OpeningBalanceSnapshot) Totals() SnapshotTotals {
	t := SnapshotTotals{
		RoleCash:             s.Cash,
		RoleBank:             s.Bank,
		RoleReceivables:      decimal.Zero,
		RoleInventory:        decimal.Zero,
		RoleLoanReceivable:   decimal.Zero,
		RolePayables:         decimal.Zero,
		RoleDepositPrincipal: decimal.Zero,
		RoleDepositMandatory: decimal.Zero,
		RoleDepositVoluntary: decimal.Zero,
		RoleEquity:           s.InitialEquity,
	}
	for _, r := range s.ReceivablesFromMembers {
		t[RoleReceivables] = t[RoleReceivables].Add(r.Amount)
	}
	for _, l := range s.Inventory {
		t[RoleInventory] = t[RoleInventory].Add(l.Value())
	}
	for _, l := range s.MemberLoans {
		t[RoleLoanReceivable] = t[RoleLoanReceivable].Add(l.PrincipalAmount)
	}
	for _, p := range s.PayablesToSuppliers {
		t[RolePayables] = t[RolePayables].Add(p.Amount)
	}
	for _, d := range s.MemberDeposits {
		t[RoleDepositPrincipal] = t[RoleDepositPrincipal].Add(d.PrincipalDeposit)
		t[RoleDepositMandatory] = t[RoleDepositMandatory].Add(d.MandatoryDeposit)
		t[RoleDepositVoluntary] = t[RoleDepositVoluntary].Add(d.VoluntaryDeposit)
	}
	return t
}

// Get returns the total of role, zero when the role is not tracked.
func (t SnapshotTotals) Get(role AccountRole) decimal.Decimal {
	if v, ok := t[role]; ok {
		return v
	}
	return decimal.Zero
}

// NetAssets returns assets minus liabilities.
func (t SnapshotTotals) NetAssets() decimal.Decimal {
	assets := decimal.Sum(t.Get(RoleCash), t.Get(RoleBank), t.Get(RoleReceivables), t.Get(RoleInventory), t.Get(RoleLoanReceivable))
	liabilities := decimal.Sum(t.Get(RolePayables), t.Get(RoleDepositPrincipal), t.Get(RoleDepositMandatory), t.Get(RoleDepositVoluntary))
	return assets.Sub(liabilities)
}

// Clone returns a deep copy of the snapshot.
func (s *OpeningBalanceSnapshot) Clone() *OpeningBalanceSnapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.ReceivablesFromMembers = append([]MemberReceivable(nil), s.ReceivablesFromMembers...)
	c.PayablesToSuppliers = append([]SupplierPayable(nil), s.PayablesToSuppliers...)
	c.Inventory = append([]InventoryLine(nil), s.Inventory...)
	c.MemberDeposits = append([]MemberDeposit(nil), s.MemberDeposits...)
	c.MemberLoans = append([]MemberLoan(nil), s.MemberLoans...)
	if s.LockedAt != nil {
		at := *s.LockedAt
		c.LockedAt = &at
	}
	return &c
}
