package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/koperasi/ledger/internal/adapter/http/dto"
	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/usecase"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes err with the status mapDomainError picks. Field
// errors are listed individually.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	resp := dto.ErrorResponse{Error: message, Message: err.Error()}
	if ve, ok := domain.AsValidationError(err); ok {
		resp.Fields = ve.Errors
	}
	writeJSON(w, mapDomainError(err), resp)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrJournalNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSnapshotExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSnapshotStale):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnlockRequired):
		return http.StatusConflict
	case errors.Is(err, domain.ErrWizardClosed):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrInconsistentLedger):
		return http.StatusConflict
	case errors.Is(err, domain.ErrReasonRequired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnbalancedJournal):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAccountingEquation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}

	if _, ok := domain.AsValidationError(err); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
