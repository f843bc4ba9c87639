package http

import (
	"encoding/json"
	"net/http"

	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeValidation          = "validation_failed"
	codeInvalidPurity       = "invalid_purity"
	codeUnknownCurrency     = "unknown_currency"
	codeInsufficientStock   = "insufficient_stock"
	codeInsufficientBalance = "insufficient_balance"
	codeInvalidState        = "invalid_state"
	codeItemNotFound        = "item_not_found"
	codeBookingNotFound     = "booking_not_found"
	codeUserNotFound        = "user_not_found"
	codeSKUConflict         = "sku_conflict"
	codeForbidden           = "forbidden"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeServiceError maps domain sentinels onto HTTP status plus machine
// codes. Anything unrecognized is a 500 without the underlying detail.
func writeServiceError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrValidation, domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
	case domain.ErrInvalidPurity:
		writeError(w, http.StatusBadRequest, codeInvalidPurity, err.Error())
	case domain.ErrUnknownCurrency:
		writeError(w, http.StatusBadRequest, codeUnknownCurrency, err.Error())
	case domain.ErrItemNotFound:
		writeError(w, http.StatusNotFound, codeItemNotFound, err.Error())
	case domain.ErrBookingNotFound:
		writeError(w, http.StatusNotFound, codeBookingNotFound, err.Error())
	case domain.ErrUserNotFound:
		writeError(w, http.StatusNotFound, codeUserNotFound, err.Error())
	case domain.ErrInsufficientStock:
		writeError(w, http.StatusConflict, codeInsufficientStock, err.Error())
	case domain.ErrInsufficientBalance:
		writeError(w, http.StatusConflict, codeInsufficientBalance, err.Error())
	case domain.ErrInvalidState:
		writeError(w, http.StatusConflict, codeInvalidState, err.Error())
	case domain.ErrSKUConflict:
		writeError(w, http.StatusConflict, codeSKUConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
