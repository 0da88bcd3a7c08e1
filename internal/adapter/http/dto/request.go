package dto

import (
	"fmt"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/usecase"
)

// ListAccountsRequest holds the account list query parameters.
type ListAccountsRequest struct {
	Type   string
	Limit  int
	Offset int
}

// ToUseCaseInput converts to use case input.
func (r *ListAccountsRequest) ToUseCaseInput() (usecase.ListAccountsInput, error) {
	input := usecase.ListAccountsInput{Limit: r.Limit, Offset: r.Offset}
	if r.Type == "" {
		return input, nil
	}

	t, ok := domain.ParseAccountType(r.Type)
	if !ok {
		return input, fmt.Errorf("unknown account type %q", r.Type)
	}
	input.Type = t
	return input, nil
}

// ListJournalsRequest holds the journal list query parameters.
type ListJournalsRequest struct {
	Kind      string
	Reference string
	Limit     int
	Offset    int
}

// ToUseCaseInput converts to use case input.
func (r *ListJournalsRequest) ToUseCaseInput() (usecase.ListJournalsInput, error) {
	input := usecase.ListJournalsInput{
		Reference: r.Reference,
		Limit:     r.Limit,
		Offset:    r.Offset,
	}

	switch kind := domain.JournalKind(r.Kind); kind {
	case "":
	case domain.JournalKindOpening, domain.JournalKindCorrection:
		input.Kind = kind
	default:
		return input, fmt.Errorf("unknown journal kind %q", r.Kind)
	}
	return input, nil
}

// ListAuditLogsRequest holds the audit trail query parameters.
type ListAuditLogsRequest struct {
	UserID string
	Action string
	Limit  int
	Offset int
}

// ToFilter converts to an audit filter.
func (r *ListAuditLogsRequest) ToFilter() domain.AuditFilter {
	return domain.AuditFilter{
		UserID: r.UserID,
		Action: domain.AuditAction(r.Action),
		Limit:  r.Limit,
		Offset: r.Offset,
	}
}
