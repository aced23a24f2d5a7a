package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeEmptyInput is used when a label has no content to render
	ErrCodeEmptyInput = "ERR_EMPTY_INPUT"
	// ErrCodeRequestTooLarge is used when the request body exceeds the limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Rendering error codes
const (
	// ErrCodeRenderFailed is used when a layout cannot be rasterized
	ErrCodeRenderFailed = "ERR_RENDER_FAILED"
	// ErrCodeElementFailed is used when a canvas element cannot be drawn
	ErrCodeElementFailed = "ERR_ELEMENT_FAILED"
	// ErrCodeInvalidElement is used when a canvas element spec is malformed
	ErrCodeInvalidElement = "ERR_INVALID_ELEMENT"
)

// Printer error codes
const (
	// ErrCodePrinterNotReady is used when no initialized printer is available
	ErrCodePrinterNotReady = "ERR_PRINTER_NOT_READY"
	// ErrCodePrinterOffline is used when the device cannot be reached
	ErrCodePrinterOffline = "ERR_PRINTER_OFFLINE"
	// ErrCodeUnsupportedTape is used when the loaded tape width is unknown
	ErrCodeUnsupportedTape = "ERR_UNSUPPORTED_TAPE"
	// ErrCodePrintFailed is used when the device rejects or aborts a job
	ErrCodePrintFailed = "ERR_PRINT_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation and input errors -> 400 Bad Request
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeEmptyInput:   http.StatusBadRequest,

	// Oversized payloads -> 413 Request Entity Too Large
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Resource errors
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	// Rendering errors -> 422 Unprocessable Entity
	ErrCodeRenderFailed:   http.StatusUnprocessableEntity,
	ErrCodeElementFailed:  http.StatusUnprocessableEntity,
	ErrCodeInvalidElement: http.StatusUnprocessableEntity,

	// Printer errors
	ErrCodePrinterNotReady: http.StatusServiceUnavailable,
	ErrCodePrinterOffline:  http.StatusServiceUnavailable,
	ErrCodeUnsupportedTape: http.StatusServiceUnavailable,
	ErrCodePrintFailed:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps internal error codes to the standardized codes
// Domain, render and printer errors carry bare codes without the ERR_ prefix
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_CABLE_TYPE":   ErrCodeInvalidInput,
	"INVALID_DEVICE_NAME":  ErrCodeInvalidInput,
	"INVALID_WARNING_TEXT": ErrCodeInvalidInput,
	"INVALID_TEXT":         ErrCodeInvalidInput,
	"INVALID_FONT_SIZE":    ErrCodeInvalidInput,
	"INVALID_MARGIN":       ErrCodeInvalidInput,
	"INVALID_CANVAS":       ErrCodeInvalidInput,
	"INVALID_KIND":         ErrCodeInvalidInput,
	"INVALID_RASTER":       ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"EMPTY_INPUT":          ErrCodeEmptyInput,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,
	"RENDER_FAILED":        ErrCodeRenderFailed,
	"ELEMENT_FAILED":       ErrCodeElementFailed,
	"INVALID_ELEMENT":      ErrCodeInvalidElement,
	"PRINTER_NOT_READY":    ErrCodePrinterNotReady,
	"PRINTER_OFFLINE":      ErrCodePrinterOffline,
	"UNSUPPORTED_TAPE":     ErrCodeUnsupportedTape,
	"PRINT_FAILED":         ErrCodePrintFailed,
}

// NormalizeErrorCode converts an internal error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
