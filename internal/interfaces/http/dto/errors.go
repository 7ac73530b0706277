package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeConflict     = "CONFLICT"
	ErrCodePayloadLarge = "PAYLOAD_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Domain codes
// not listed here fall through to 400: they only ever originate from
// rejected input.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodePayloadLarge: http.StatusRequestEntityTooLarge,

	// Resource errors
	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,

	// Business rule violations that are not plain input mistakes
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"PRODUCT_INACTIVE":   http.StatusUnprocessableEntity,
	"PRODUCT_REFERENCED": http.StatusConflict,

	// Input errors
	"INVALID_INPUT":             http.StatusBadRequest,
	"INVALID_NAME":              http.StatusBadRequest,
	"INVALID_PRICE":             http.StatusBadRequest,
	"INVALID_STOCK":             http.StatusBadRequest,
	"INVALID_STATUS":            http.StatusBadRequest,
	"INVALID_QTY":               http.StatusBadRequest,
	"INVALID_PRODUCT":           http.StatusBadRequest,
	"INVALID_CATEGORY":          http.StatusBadRequest,
	"INVALID_CUSTOMER":          http.StatusBadRequest,
	"INVALID_SHIPPING":          http.StatusBadRequest,
	"INVALID_SHIPPING_METHOD":   http.StatusBadRequest,
	"INVALID_SHIPPING_FEE":      http.StatusBadRequest,
	"DUPLICATE_SHIPPING_METHOD": http.StatusBadRequest,
	"EMPTY_CART":                http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 400 Bad Request.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
