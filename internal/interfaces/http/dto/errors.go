package dto

import (
	"net/http"
	"strings"
)

// Error codes raised by the HTTP layer itself. Domain errors carry their own
// codes (NOT_FOUND, INSUFFICIENT_STOCK, ...) and are mapped below.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// NUMBER_CONFLICT and CONCURRENCY_CONFLICT only reach a client when the
// bounded retry inside the service gave up, so they surface as 409.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	"NOT_FOUND": http.StatusNotFound,

	"NUMBER_CONFLICT":      http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"USERNAME_TAKEN":       http.StatusConflict,

	"INSUFFICIENT_STOCK":   http.StatusUnprocessableEntity,
	"MISSING_COUNTERPARTY": http.StatusUnprocessableEntity,
	"OUTSTANDING_BALANCE":  http.StatusUnprocessableEntity,

	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,

	// A partially seeded chart or an entry that does not balance is a
	// server-side defect, not a client error.
	"MISSING_ACCOUNT":  http.StatusInternalServerError,
	"IMBALANCED_ENTRY": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unmapped INVALID_* codes are client mistakes; anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
