package handler

import (
	"context"
	"net/http"

	"github.com/koperasi/ledger/internal/adapter/http/dto"
	"github.com/koperasi/ledger/internal/domain"
)

// OpeningBalanceService defines the behavior needed by OpeningBalanceHandler.
type OpeningBalanceService interface {
	Current(ctx context.Context) (*domain.OpeningBalanceSnapshot, error)
	History(ctx context.Context) ([]*domain.OpeningBalanceSnapshot, error)
	Lock(ctx context.Context) (*domain.OpeningBalanceSnapshot, error)
	Unlock(ctx context.Context) (*domain.OpeningBalanceSnapshot, error)
	AuditTrail(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// OpeningBalanceHandler serves the active opening balance and its history.
type OpeningBalanceHandler struct {
	openingUC OpeningBalanceService
}

// NewOpeningBalanceHandler creates a new OpeningBalanceHandler.
func NewOpeningBalanceHandler(openingUC OpeningBalanceService) *OpeningBalanceHandler {
	return &OpeningBalanceHandler{openingUC: openingUC}
}

// Current returns the active opening balance.
func (h *OpeningBalanceHandler) Current(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.openingUC.Current(r.Context())
	if err != nil {
		writeDomainError(w, "failed to get opening balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SnapshotFromDomain(snapshot))
}

// History lists archived opening balances.
func (h *OpeningBalanceHandler) History(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.openingUC.History(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list opening balance history", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryResponse{
		Snapshots: dto.SnapshotsFromDomain(snapshots),
		Total:     int64(len(snapshots)),
	})
}

// Lock marks the active opening balance as locked.
func (h *OpeningBalanceHandler) Lock(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.openingUC.Lock(r.Context())
	if err != nil {
		writeDomainError(w, "failed to lock opening balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SnapshotFromDomain(snapshot))
}

// Unlock clears the lock of the active opening balance.
func (h *OpeningBalanceHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.openingUC.Unlock(r.Context())
	if err != nil {
		writeDomainError(w, "failed to unlock opening balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SnapshotFromDomain(snapshot))
}

// Audit lists opening balance audit logs, newest first.
func (h *OpeningBalanceHandler) Audit(w http.ResponseWriter, r *http.Request) {
	req := dto.ListAuditLogsRequest{
		UserID: r.URL.Query().Get("user_id"),
		Action: r.URL.Query().Get("action"),
		Limit:  parseIntQuery(r, "limit", 50),
		Offset: parseIntQuery(r, "offset", 0),
	}

	logs, err := h.openingUC.AuditTrail(r.Context(), req.ToFilter())
	if err != nil {
		writeDomainError(w, "failed to list audit logs", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAuditLogsResponse{
		AuditLogs: logs,
		Total:     int64(len(logs)),
	})
}
