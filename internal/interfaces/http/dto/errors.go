package dto

import "net/http"

// Error codes returned by the API. The period and store codes are part of
// the aggregation engine's error taxonomy and are surfaced verbatim so
// clients can match on them.
const (
	// ErrCodeInvalidPeriod is returned when an explicit period has start after end
	ErrCodeInvalidPeriod = "INVALID_PERIOD"
	// ErrCodeStoreUnavailable is returned when a ledger store query failed
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"

	// ErrCodeUnauthorized is returned when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is returned when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeTokenExpired is returned when the auth token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	// ErrCodeInvalidToken is returned when the auth token is invalid
	ErrCodeInvalidToken = "INVALID_TOKEN"

	// ErrCodeNotFound is returned when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeBadRequest is returned for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidInput is returned for invalid input data
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeInternal is returned for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInvalidPeriod:    http.StatusBadRequest,
	ErrCodeStoreUnavailable: http.StatusServiceUnavailable,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeInvalidToken: http.StatusUnauthorized,

	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
