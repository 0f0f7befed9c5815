package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code, so errors.Is works against the
// sentinels below regardless of the message carried
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrValidation         = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrConflict           = NewDomainError("CONFLICT", "Resource conflicts with existing state")
	ErrPreconditionFailed = NewDomainError("PRECONDITION_FAILED", "Business precondition not satisfied")
	ErrInvalidState       = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrPersistence        = NewDomainError("PERSISTENCE_ERROR", "Store write failed")
	ErrExternalSystem     = NewDomainError("EXTERNAL_SYSTEM_ERROR", "External system call failed")
)
