package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"restaurant-pos/internal/microservices/order/factory"
	"restaurant-pos/internal/microservices/order/ledger"
	"restaurant-pos/internal/microservices/order/service"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeProblem writes a simplified RFC 7807 problem document.
func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	var (
		verr *factory.ValidationError
		merr *ledger.MenuLookupError
	)
	switch {
	case errors.As(err, &verr):
		writeProblem(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, service.ErrTableOutOfRange),
		errors.Is(err, service.ErrInvalidPaymentMethod):
		writeProblem(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, service.ErrUnknownItem):
		writeProblem(w, http.StatusUnprocessableEntity, "unknown_item", err.Error())
	case errors.As(err, &merr):
		writeProblem(w, http.StatusUnprocessableEntity, "menu_lookup_failed", err.Error())
	case errors.Is(err, ledger.ErrTerminalStatus):
		writeProblem(w, http.StatusConflict, "terminal_status", err.Error())
	case errors.Is(err, ledger.ErrStaleState):
		writeProblem(w, http.StatusConflict, "stale_settlement", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
