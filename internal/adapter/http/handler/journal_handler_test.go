package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/koperasi/ledger/internal/adapter/http/dto"
	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/usecase"
)

type journalServiceStub struct {
	journals []*domain.Journal
	input    usecase.ListJournalsInput
	checkErr error
}

func (s *journalServiceStub) ListJournals(_ context.Context, input usecase.ListJournalsInput) ([]*domain.Journal, error) {
	s.input = input
	return s.journals, nil
}

func (s *journalServiceStub) GetJournal(_ context.Context, id string) (*domain.Journal, error) {
	for _, j := range s.journals {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, domain.ErrJournalNotFound
}

func (s *journalServiceStub) CheckJournals(context.Context) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	return true, nil
}

func openingJournal() *domain.Journal {
	return &domain.Journal{
		ID:   "01HXJRNL",
		Kind: domain.JournalKindOpening,
		Date: "2025-01-01",
		Entries: []domain.JournalEntry{
			domain.DebitEntry("1-1000", decimal.NewFromInt(5000000)),
			domain.CreditEntry("3-9000", decimal.NewFromInt(5000000)),
		},
	}
}

func TestJournalHandler_List(t *testing.T) {
	stub := &journalServiceStub{journals: []*domain.Journal{openingJournal()}}
	handler := NewJournalHandler(stub)

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/journals?kind=opening", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.input.Kind != domain.JournalKindOpening || stub.input.Limit != usecase.DefaultJournalPageSize {
		t.Fatalf("unexpected input: %+v", stub.input)
	}

	var resp dto.ListJournalsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Journals[0].Entries) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestJournalHandler_List_InvalidKind(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{})

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/journals?kind=closing", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestJournalHandler_Get(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{journals: []*domain.Journal{openingJournal()}})

	rec := httptest.NewRecorder()
	handler.Get(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/journals/01HXJRNL", nil), "id", "01HXJRNL"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Get(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/journals/missing", nil), "id", "missing"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestJournalHandler_Check(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{})

	rec := httptest.NewRecorder()
	handler.Check(rec, httptest.NewRequest(http.MethodGet, "/journals/check", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	handler = NewJournalHandler(&journalServiceStub{checkErr: fmt.Errorf("%w: j1", usecase.ErrInconsistentLedger)})
	rec = httptest.NewRecorder()
	handler.Check(rec, httptest.NewRequest(http.MethodGet, "/journals/check", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
