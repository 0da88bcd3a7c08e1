package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func validSnapshot() *OpeningBalanceSnapshot {
	return &OpeningBalanceSnapshot{
		PeriodStartDate: "2025-01-01",
		InitialEquity:   decimal.NewFromInt(1_000_000),
		Cash:            decimal.NewFromInt(2_000_000),
	}
}

func TestValidateSnapshot_Valid(t *testing.T) {
	t.Parallel()

	if err := ValidateSnapshot(validSnapshot()).Err(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateSnapshot_ZeroIsValid(t *testing.T) {
	t.Parallel()

	s := &OpeningBalanceSnapshot{
		PeriodStartDate:        "2025-01-01",
		ReceivablesFromMembers: []MemberReceivable{{MemberRef: "M-1"}},
		Inventory:              []InventoryLine{{ItemRef: "BRG-1"}},
		MemberDeposits:         []MemberDeposit{{MemberRef: "M-1"}},
		MemberLoans:            []MemberLoan{{MemberRef: "M-1"}},
	}

	if err := ValidateSnapshot(s).Err(); err != nil {
		t.Fatalf("zero amounts must be accepted, got %v", err)
	}
}

func TestValidateSnapshot_NegativeRejected(t *testing.T) {
	t.Parallel()

	minusOne := decimal.NewFromInt(-1)
	tests := []struct {
		name   string
		mutate func(*OpeningBalanceSnapshot)
		field  string
	}{
		{"initial equity", func(s *OpeningBalanceSnapshot) { s.InitialEquity = minusOne }, "initial_equity"},
		{"cash", func(s *OpeningBalanceSnapshot) { s.Cash = minusOne }, "cash"},
		{"bank", func(s *OpeningBalanceSnapshot) { s.Bank = decimal.RequireFromString("-0.001") }, "bank"},
		{"receivable", func(s *OpeningBalanceSnapshot) {
			s.ReceivablesFromMembers = []MemberReceivable{{MemberRef: "M-1", Amount: minusOne}}
		}, "receivables_from_members[0].amount"},
		{"payable", func(s *OpeningBalanceSnapshot) {
			s.PayablesToSuppliers = []SupplierPayable{{SupplierRef: "S-1", Amount: minusOne}}
		}, "payables_to_suppliers[0].amount"},
		{"inventory cost", func(s *OpeningBalanceSnapshot) {
			s.Inventory = []InventoryLine{{ItemRef: "BRG-1", Quantity: decimal.NewFromInt(2), UnitCost: minusOne}}
		}, "inventory[0].unit_cost"},
		{"voluntary deposit", func(s *OpeningBalanceSnapshot) {
			s.MemberDeposits = []MemberDeposit{{MemberRef: "M-1", VoluntaryDeposit: minusOne}}
		}, "member_deposits[0].voluntary_deposit"},
		{"loan principal", func(s *OpeningBalanceSnapshot) {
			s.MemberLoans = []MemberLoan{{MemberRef: "M-1", PrincipalAmount: minusOne}}
		}, "member_loans[0].principal_amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			tt.mutate(s)

			ve := ValidateSnapshot(s)
			if ve.Err() == nil {
				t.Fatal("expected validation error, got nil")
			}
			if len(ve.Errors) != 1 {
				t.Fatalf("expected 1 error, got %v", ve.Messages())
			}
			if ve.Errors[0].Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, ve.Errors[0].Field)
			}
			if !strings.Contains(ve.Errors[0].Message, "must not be negative") {
				t.Errorf("expected negative message, got %q", ve.Errors[0].Message)
			}
		})
	}
}

func TestValidateSnapshot_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	s := &OpeningBalanceSnapshot{
		Cash:                   decimal.NewFromInt(-5),
		Bank:                   decimal.NewFromInt(-5),
		ReceivablesFromMembers: []MemberReceivable{{Amount: decimal.NewFromInt(10)}},
	}

	ve := ValidateSnapshot(s)
	if len(ve.Errors) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(ve.Errors), ve.Messages())
	}

	roots := map[string]bool{}
	for _, fe := range ve.Errors {
		roots[fe.Root()] = true
	}
	for _, want := range []string{"period_start_date", "cash", "bank", "receivables_from_members"} {
		if !roots[want] {
			t.Errorf("expected an error on %s, got %v", want, ve.Messages())
		}
	}
}

func TestValidateSnapshot_DateFormat(t *testing.T) {
	t.Parallel()

	s := validSnapshot()
	s.PeriodStartDate = "01/01/2025"

	ve := ValidateSnapshot(s)
	if ve.Err() == nil || !strings.Contains(ve.Error(), "YYYY-MM-DD") {
		t.Fatalf("expected date format error, got %v", ve.Err())
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	d, err := ParseAmount("   ")
	if err != nil || !d.IsZero() {
		t.Fatalf("blank input must normalise to zero, got %s, %v", d, err)
	}

	d, err = ParseAmount("1500000.50")
	if err != nil || !d.Equal(decimal.RequireFromString("1500000.5")) {
		t.Fatalf("unexpected parse result %s, %v", d, err)
	}

	if _, err := ParseAmount("abc"); err == nil {
		t.Fatal("expected error for non numeric input")
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	limit, offset, _ := ValidatePagination(0, -10)
	if limit != 50 || offset != 0 {
		t.Fatalf("expected defaults, got limit=%d offset=%d", limit, offset)
	}

	limit, _, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Fatalf("expected max page size, got %d", limit)
	}
}
