package dto

import (
	"net/http"
	"strings"
)

// Error codes carried in the envelope. Domain errors keep their own code.
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeAlreadyExists     = "ALREADY_EXISTS"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeInvalidState      = "INVALID_STATE"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeMixedStores       = "MIXED_STORES"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeInvalidCredential = "INVALID_CREDENTIALS"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeConflict          = "CONCURRENCY_CONFLICT"
	ErrCodeRateLimited       = "RATE_LIMIT_EXCEEDED"
	ErrCodeBadGateway        = "GATEWAY_ERROR"
	ErrCodeNotConfigured     = "NOT_CONFIGURED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound: http.StatusNotFound,

	// duplicates and stock shortages answer 400, as storefront clients expect
	ErrCodeAlreadyExists:     http.StatusBadRequest,
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidState:      http.StatusBadRequest,
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeInsufficientStock: http.StatusBadRequest,
	ErrCodeMixedStores:       http.StatusBadRequest,

	ErrCodeUnauthorized:      http.StatusUnauthorized,
	ErrCodeInvalidCredential: http.StatusUnauthorized,
	ErrCodeForbidden:         http.StatusForbidden,
	ErrCodeConflict:          http.StatusConflict,
	ErrCodeRateLimited:       http.StatusTooManyRequests,

	ErrCodeBadGateway:    http.StatusBadGateway,
	ErrCodeNotConfigured: http.StatusServiceUnavailable,
	ErrCodeInternal:      http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code. Unlisted
// INVALID_* codes are validation failures; anything else is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
