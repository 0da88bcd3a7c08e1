package dto

import (
	"testing"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/usecase"
)

func TestListAccountsRequest_ToUseCaseInput(t *testing.T) {
	tests := []struct {
		name        string
		request     *ListAccountsRequest
		want        usecase.ListAccountsInput
		expectError bool
	}{
		{
			name:    "no type filter",
			request: &ListAccountsRequest{Limit: 10, Offset: 5},
			want:    usecase.ListAccountsInput{Limit: 10, Offset: 5},
		},
		{
			name:    "type is normalised",
			request: &ListAccountsRequest{Type: "asset"},
			want:    usecase.ListAccountsInput{Type: domain.AccountTypeAsset},
		},
		{
			name:        "unknown type",
			request:     &ListAccountsRequest{Type: "cashflow"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.request.ToUseCaseInput()
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestListJournalsRequest_ToUseCaseInput(t *testing.T) {
	got, err := (&ListJournalsRequest{Kind: "correction", Reference: "01HX", Limit: 20}).ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := usecase.ListJournalsInput{Kind: domain.JournalKindCorrection, Reference: "01HX", Limit: 20}
	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}

	if _, err := (&ListJournalsRequest{Kind: "adjustment"}).ToUseCaseInput(); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestListAuditLogsRequest_ToFilter(t *testing.T) {
	got := (&ListAuditLogsRequest{UserID: "admin", Action: "opening_balance.lock", Limit: 5}).ToFilter()
	want := domain.AuditFilter{UserID: "admin", Action: domain.AuditActionOpeningBalanceLock, Limit: 5}
	if got != want {
		t.Fatalf("ToFilter() = %+v, want %+v", got, want)
	}
}
