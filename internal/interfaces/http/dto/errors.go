package dto

import "net/http"

// Transport-level error codes. Domain errors keep the codes their
// package assigns; these cover failures that never reach the domain.
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. The domain
// codes come from the shared errors package; keeping the mapping here
// keeps HTTP concerns out of the domain layer.
var ErrorCodeHTTPStatus = map[string]int{
	// Transport errors
	ErrCodeUnknown:     http.StatusInternalServerError,
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	// Missing resources -> 404 Not Found
	"NOT_FOUND":                 http.StatusNotFound,
	"PRODUCT_NOT_FOUND":         http.StatusNotFound,
	"BASKET_NOT_FOUND":          http.StatusNotFound,
	"ITEM_NOT_FOUND":            http.StatusNotFound,
	"ORDER_NOT_FOUND":           http.StatusNotFound,
	"DELIVERY_METHOD_NOT_FOUND": http.StatusNotFound,

	// Stock contention -> 409 Conflict
	"OUT_OF_STOCK": http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	"EMPTY_BASKET":  http.StatusUnprocessableEntity,
	"INVALID_STATE": http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	"INVALID_INPUT":   http.StatusBadRequest,
	"INVALID_ID":      http.StatusBadRequest,
	"INVALID_ADDRESS": http.StatusBadRequest,
	"INVALID_BUYER":   http.StatusBadRequest,

	// Commit produced no rows -> 500 Internal Server Error
	"PERSISTENCE_FAILED": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
