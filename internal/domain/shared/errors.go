package shared

import "errors"

// DomainError is an expected failure with a stable machine-readable code.
// The HTTP layer maps Code to a status; Message is safe to show to clients.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinels returned by repositories and the checkout guard
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrDuplicateCheckout = NewDomainError("DUPLICATE_CHECKOUT", "A checkout for these cart items is already in progress")
)

func NewValidationError(message string) *DomainError {
	return NewDomainError("VALIDATION_ERROR", message)
}

// NewPersistenceError hides a store failure behind a generic INTERNAL_ERROR.
// Callers log the cause before returning it.
func NewPersistenceError(message string) *DomainError {
	return NewDomainError("INTERNAL_ERROR", message)
}

// IsNotFound reports whether err is, or wraps, a NOT_FOUND domain error
func IsNotFound(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == ErrNotFound.Code
}
