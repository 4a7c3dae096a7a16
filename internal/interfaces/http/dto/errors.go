package dto

import (
	"net/http"
	"strings"
)

// Error codes exposed over the API, format ERR_<DESCRIPTION>.
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeValidation = "ERR_VALIDATION"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeBusinessRule      = "ERR_BUSINESS_RULE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"

	ErrCodeBadRequest = "ERR_BAD_REQUEST"

	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps API error codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,

	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting
// to 500 for codes that are not in the table.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping translates domain error codes emitted by
// aggregates into the API error code namespace.
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                   ErrCodeNotFound,
	"PRODUCT_NOT_FOUND":           ErrCodeNotFound,
	"ALREADY_EXISTS":              ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT":        ErrCodeConcurrencyConflict,
	"INSUFFICIENT_STOCK":          ErrCodeInsufficientStock,
	"UNAUTHORIZED":                ErrCodeUnauthorized,
	"INVALID_CREDENTIALS":         ErrCodeUnauthorized,
	"INVALID_TOKEN":               ErrCodeTokenInvalid,
	"TOKEN_REVOKED":               ErrCodeTokenInvalid,
	"MAX_REFRESH_EXCEEDED":        ErrCodeTokenInvalid,
	"FORBIDDEN":                   ErrCodeForbidden,
	"ACCOUNT_DEACTIVATED":         ErrCodeForbidden,
	"INVALID_APPROVER":            ErrCodeForbidden,
	"INVALID_STATE":               ErrCodeInvalidState,
	"INVALID_STATUS":              ErrCodeInvalidState,
	"INVALID_STATE_TRANSITION":    ErrCodeInvalidState,
	"ORDER_NOT_CONFIRMED":         ErrCodeInvalidState,
	"ORDER_NOT_OPEN":              ErrCodeInvalidState,
	"ALREADY_DISCONTINUED":        ErrCodeInvalidState,
	"OVER_RECEIPT":                ErrCodeBusinessRule,
	"RECEIPT_EXCEEDS_OUTSTANDING": ErrCodeBusinessRule,
	"UNKNOWN_ORDER_LINE":          ErrCodeBusinessRule,
	"PRODUCT_INACTIVE":            ErrCodeBusinessRule,
	"SUPPLIER_INACTIVE":           ErrCodeBusinessRule,
	"CUSTOMER_INACTIVE":           ErrCodeBusinessRule,
	"BAD_REQUEST":                 ErrCodeBadRequest,
	"INTERNAL_ERROR":              ErrCodeInternal,
	"PASSWORD_HASH_ERROR":         ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unlisted INVALID_* and EMPTY_* codes are all treated as validation
// failures; anything else passes through unchanged.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	if strings.HasPrefix(code, "INVALID_") || strings.HasPrefix(code, "EMPTY_") {
		return ErrCodeValidation
	}
	return code
}
