package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/koperasi/ledger/internal/adapter/http/dto"
	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/usecase"
)

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	ListJournals(ctx context.Context, input usecase.ListJournalsInput) ([]*domain.Journal, error)
	GetJournal(ctx context.Context, id string) (*domain.Journal, error)
	CheckJournals(ctx context.Context) (bool, error)
}

// JournalHandler serves the general journal.
type JournalHandler struct {
	journalUC JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUC JournalService) *JournalHandler {
	return &JournalHandler{journalUC: journalUC}
}

// List lists journals, newest first.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	req := dto.ListJournalsRequest{
		Kind:      r.URL.Query().Get("kind"),
		Reference: r.URL.Query().Get("reference"),
		Limit:     parseIntQuery(r, "limit", usecase.DefaultJournalPageSize),
		Offset:    parseIntQuery(r, "offset", 0),
	}
	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	journals, err := h.journalUC.ListJournals(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to list journals", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListJournalsResponse{
		Journals: dto.JournalsFromDomain(journals),
		Total:    int64(len(journals)),
	})
}

// Get retrieves a journal by ID.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing journal ID", "")
		return
	}

	journal, err := h.journalUC.GetJournal(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get journal", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalFromDomain(journal))
}

// Check reports whether every stored journal balances.
func (h *JournalHandler) Check(w http.ResponseWriter, r *http.Request) {
	consistent, err := h.journalUC.CheckJournals(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"status":     "inconsistent",
				"consistent": false,
				"message":    err.Error(),
			})
			return
		}
		writeDomainError(w, "failed to check journals", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "consistent",
		"consistent": consistent,
	})
}
