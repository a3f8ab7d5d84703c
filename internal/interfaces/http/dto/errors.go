package dto

import "net/http"

// Error codes shared between domain errors and HTTP responses.
// Domain errors carry these codes directly; the handler layer only maps
// them to status codes.
const (
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used for field-level validation failures
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeUnauthorized is used when authentication is missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeTokenExpired is used when the bearer token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	// ErrCodeForbidden is used when the caller lacks the required role
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource does not exist
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAlreadyExists is used for duplicate resources
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodePaymentError is used for gateway failures and rejected signatures
	ErrCodePaymentError = "PAYMENT_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,

	ErrCodeAlreadyExists: http.StatusConflict,
	"INVALID_STATE":      http.StatusConflict,

	// Gateway failures and signature mismatches
	ErrCodePaymentError: http.StatusUnprocessableEntity,

	// Login failures
	"INVALID_CREDENTIALS": http.StatusUnauthorized,

	// Checkout rejections are client errors
	"INVALID_INPUT":      http.StatusBadRequest,
	"INSUFFICIENT_STOCK": http.StatusBadRequest,
	"EMPTY_CART":         http.StatusBadRequest,
	"INVALID_QUANTITY":   http.StatusBadRequest,
	"INVALID_NAME":       http.StatusBadRequest,
	"INVALID_PRICE":      http.StatusBadRequest,
	"INVALID_STOCK":      http.StatusBadRequest,
	"INVALID_CATEGORY":   http.StatusBadRequest,
	"INVALID_STATUS":     http.StatusBadRequest,
	"INVALID_TOTAL":      http.StatusBadRequest,
	"INVALID_EMAIL":      http.StatusBadRequest,
	"INVALID_PASSWORD":   http.StatusBadRequest,
	"INVALID_ROLE":       http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
