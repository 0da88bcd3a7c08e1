package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/koperasi/ledger/internal/adapter/http/dto"
	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/ledger"
	"github.com/koperasi/ledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	GetAccount(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]domain.Account, error)
	CheckEquation(ctx context.Context) (ledger.EquationResult, error)
}

// AccountHandler handles chart of accounts HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Get retrieves an account by code.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing account code", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), code)
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts in chart order.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	req := dto.ListAccountsRequest{
		Type:   r.URL.Query().Get("type"),
		Limit:  parseIntQuery(r, "limit", 100),
		Offset: parseIntQuery(r, "offset", 0),
	}
	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	accounts, err := h.accountUC.ListAccounts(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// Equation reports whether assets equal liabilities plus equity.
func (h *AccountHandler) Equation(w http.ResponseWriter, r *http.Request) {
	result, err := h.accountUC.CheckEquation(r.Context())
	if err != nil {
		writeDomainError(w, "failed to check accounting equation", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EquationFromResult(result))
}
