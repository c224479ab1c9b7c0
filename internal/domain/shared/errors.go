package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a domain error for invalid input rejected
// before any transaction or mutation takes place
func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
	}
}

// Error codes shared across contexts
const (
	CodeValidation             = "VALIDATION_ERROR"
	CodeNotFound               = "NOT_FOUND"
	CodeConcurrencyConflict    = "CONCURRENCY_CONFLICT"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeProductNotFound        = "PRODUCT_NOT_FOUND"
)

// Common domain errors
var (
	ErrNotFound = NewDomainError(CodeNotFound, "Resource not found")

	// ErrConcurrencyConflict is retryable: the caller may re-run the whole
	// operation. Raised on lock-wait timeout or a failed version check.
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
)

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == CodeValidation
}

// IsConflict reports whether err is a retryable concurrency conflict
func IsConflict(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == CodeConcurrencyConflict
}
