package dto

import "net/http"

// Error codes shared between the domain layer and the HTTP surface
const (
	// ErrCodeValidation is used for invalid input
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeConflict is used when a resource already exists
	ErrCodeConflict = "CONFLICT"
	// ErrCodePreconditionFailed is used when a required prior step has not happened
	ErrCodePreconditionFailed = "PRECONDITION_FAILED"
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodePersistence is used when a store write fails
	ErrCodePersistence = "PERSISTENCE_ERROR"
	// ErrCodeExternalSystem is used when the external store API fails
	ErrCodeExternalSystem = "EXTERNAL_SYSTEM_ERROR"
	// ErrCodeBadRequest is used for malformed request bodies
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for unexpected errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodePreconditionFailed: http.StatusPreconditionFailed,
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodePersistence:        http.StatusInternalServerError,
	ErrCodeExternalSystem:     http.StatusBadGateway,
	ErrCodeInternal:           http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
