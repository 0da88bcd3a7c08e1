package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/ledger"
	"github.com/koperasi/ledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		Code:    a.Code,
		Name:    a.Name,
		Type:    string(a.Type),
		Balance: a.Balance,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i := range accounts {
		result[i] = AccountFromDomain(&accounts[i])
	}
	return result
}

// ListAccountsResponse represents a list of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// EquationResponse reports the accounting equation health indicator.
type EquationResponse struct {
	Balanced       bool            `json:"balanced"`
	TotalAsset     decimal.Decimal `json:"total_asset"`
	TotalLiability decimal.Decimal `json:"total_liability"`
	TotalEquity    decimal.Decimal `json:"total_equity"`
	Difference     decimal.Decimal `json:"difference"`
	Message        string          `json:"message"`
}

// EquationFromResult converts an equation check to response.
func EquationFromResult(r ledger.EquationResult) *EquationResponse {
	return &EquationResponse{
		Balanced:       r.IsValid,
		TotalAsset:     r.TotalAsset,
		TotalLiability: r.TotalLiability,
		TotalEquity:    r.TotalEquity,
		Difference:     r.Difference,
		Message:        r.Message,
	}
}

// SnapshotResponse represents an opening balance in API responses.
type SnapshotResponse struct {
	*domain.OpeningBalanceSnapshot

	Totals    map[domain.AccountRole]decimal.Decimal `json:"totals"`
	NetAssets decimal.Decimal                        `json:"net_assets"`
}

// SnapshotFromDomain converts a snapshot to response.
func SnapshotFromDomain(s *domain.OpeningBalanceSnapshot) *SnapshotResponse {
	totals := s.Totals()
	return &SnapshotResponse{
		OpeningBalanceSnapshot: s,
		Totals:                 totals,
		NetAssets:              totals.NetAssets(),
	}
}

// SnapshotsFromDomain converts snapshots to responses.
func SnapshotsFromDomain(snapshots []*domain.OpeningBalanceSnapshot) []*SnapshotResponse {
	result := make([]*SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		result[i] = SnapshotFromDomain(s)
	}
	return result
}

// HistoryResponse represents archived opening balances.
type HistoryResponse struct {
	Snapshots []*SnapshotResponse `json:"snapshots"`
	Total     int64               `json:"total"`
}

// EntryResponse represents a journal line in API responses.
type EntryResponse struct {
	Account string          `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// JournalResponse represents a journal in API responses.
type JournalResponse struct {
	ID          string           `json:"id"`
	Kind        string           `json:"kind"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
	Reference   string           `json:"reference,omitempty"`
	Entries     []*EntryResponse `json:"entries"`
	TotalDebit  decimal.Decimal  `json:"total_debit"`
	TotalCredit decimal.Decimal  `json:"total_credit"`
	CreatedBy   string           `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
}

// JournalFromDomain converts domain journal to response.
func JournalFromDomain(j *domain.Journal) *JournalResponse {
	entries := make([]*EntryResponse, len(j.Entries))
	for i, e := range j.Entries {
		entries[i] = &EntryResponse{Account: e.Account, Debit: e.Debit, Credit: e.Credit}
	}
	debit, credit := j.Totals()

	return &JournalResponse{
		ID:          j.ID,
		Kind:        string(j.Kind),
		Description: j.Description,
		Date:        j.Date,
		Reference:   j.Reference,
		Entries:     entries,
		TotalDebit:  debit,
		TotalCredit: credit,
		CreatedBy:   j.CreatedBy,
		CreatedAt:   j.CreatedAt,
	}
}

// JournalsFromDomain converts domain journals to responses.
func JournalsFromDomain(journals []*domain.Journal) []*JournalResponse {
	result := make([]*JournalResponse, len(journals))
	for i, j := range journals {
		result[i] = JournalFromDomain(j)
	}
	return result
}

// ListJournalsResponse represents a page of journals.
type ListJournalsResponse struct {
	Journals []*JournalResponse `json:"journals"`
	Total    int64              `json:"total"`
}

// ListAuditLogsResponse represents a page of audit logs.
type ListAuditLogsResponse struct {
	AuditLogs []*domain.AuditLog `json:"audit_logs"`
	Total     int64              `json:"total"`
}

// ReconciliationResponse represents a reconciliation report.
type ReconciliationResponse struct {
	SnapshotID         string                          `json:"snapshot_id,omitempty"`
	TotalAccounts      int                             `json:"total_accounts"`
	ReconciledAccounts int                             `json:"reconciled_accounts"`
	Discrepancies      []*usecase.ReconciliationResult `json:"discrepancies"`
	LedgerConsistent   bool                            `json:"ledger_consistent"`
	Equation           *EquationResponse               `json:"equation"`
	CheckedAt          time.Time                       `json:"checked_at"`
}

// ReconciliationFromReport converts a report to response.
func ReconciliationFromReport(r *usecase.ReconciliationReport) *ReconciliationResponse {
	discrepancies := r.Discrepancies
	if discrepancies == nil {
		discrepancies = []*usecase.ReconciliationResult{}
	}
	return &ReconciliationResponse{
		SnapshotID:         r.SnapshotID,
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		LedgerConsistent:   r.LedgerConsistent,
		Equation:           EquationFromResult(r.Equation),
		CheckedAt:          r.CheckedAt,
	}
}
