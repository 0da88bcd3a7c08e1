package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tolerance is the largest difference still treated as zero when comparing amounts.
var Tolerance = decimal.New(1, -2)

// WithinTolerance reports whether |amount| is below Tolerance.
func WithinTolerance(amount decimal.Decimal) bool {
	return amount.Abs().LessThan(Tolerance)
}

// JournalEntry is one side of a double-entry posting.
type JournalEntry struct {
	Account string          `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// DebitEntry builds an entry debiting account by amount.
func DebitEntry(account string, amount decimal.Decimal) JournalEntry {
	return JournalEntry{Account: account, Debit: amount, Credit: decimal.Zero}
}

// CreditEntry builds an entry crediting account by amount.
func CreditEntry(account string, amount decimal.Decimal) JournalEntry {
	return JournalEntry{Account: account, Debit: decimal.Zero, Credit: amount}
}

// JournalKind tells opening journals apart from corrections.
type JournalKind string

const (
	JournalKindOpening    JournalKind = "opening"
	JournalKindCorrection JournalKind = "correction"
)

// Journal is a posted batch of entries as handed to the general journal.
type Journal struct {
	ID          string         `json:"id"`
	Kind        JournalKind    `json:"kind"`
	Description string         `json:"description"`
	Date        string         `json:"date"`
	Reference   string         `json:"reference,omitempty"`
	Entries     []JournalEntry `json:"entries"`
	CreatedBy   string         `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Totals returns the debit and credit sums of the journal entries.
func (j *Journal) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, e := range j.Entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	return debit, credit
}
