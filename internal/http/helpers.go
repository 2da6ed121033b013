package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Rhymond/go-money"

	"noteup/internal/backup"
	"noteup/internal/core"
	"noteup/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps the error taxonomy onto HTTP statuses: validation
// problems are 422, stale ids 404, storage write refusals a distinct 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *backup.ValidationError
	var werr *storage.WriteError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, struct {
			Error  string         `json:"error"`
			Issues []backup.Issue `json:"issues"`
		}{"invalid backup file", verr.Issues})
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrMissingDate),
		errors.Is(err, core.ErrNoteTooLong):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &werr):
		slog.Error("Ledger write failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to persist ledger")
	default:
		slog.Error("Unexpected error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// displayAmount renders a minor-unit amount in its tagged currency for
// table display. The core only ever hands out raw numbers; formatting is a
// presentation concern and stops here.
func displayAmount(amount int64, currency string) string {
	if currency == "" {
		return strconv.FormatInt(amount, 10)
	}
	return money.New(amount, currency).Display()
}
