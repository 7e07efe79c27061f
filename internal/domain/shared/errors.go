package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so callers
// can match on the sentinels below with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns a copy of the error carrying an extra detail entry
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{Code: e.Code, Message: e.Message, Details: details}
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
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrValidation          = NewDomainError("VALIDATION_ERROR", "Validation failed")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrDuplicateRequest    = NewDomainError("DUPLICATE_REQUEST", "An identical request is already being processed")
)

// NewNotFoundError builds a NOT_FOUND error naming the missing resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(ErrNotFound.Code, fmt.Sprintf("%s not found", resource))
}

// NewInsufficientStockError reports that a product cannot supply the requested quantity
func NewInsufficientStockError(productName string, requested, available int) *DomainError {
	err := NewDomainError(
		ErrInsufficientStock.Code,
		fmt.Sprintf("Only %d unit(s) of %s available", available, productName),
	)
	err.Details = map[string]any{
		"product":   productName,
		"requested": requested,
		"available": available,
	}
	return err
}

// ValidationError collects field-level validation failures
type ValidationError struct {
	*DomainError
	Fields map[string]string `json:"fields"`
}

// NewValidationError creates a ValidationError with the given code and message.
// The code defaults to VALIDATION_ERROR.
func NewValidationError(code, message string) *ValidationError {
	if code == "" {
		code = ErrValidation.Code
	}
	return &ValidationError{
		DomainError: NewDomainError(code, message),
		Fields:      make(map[string]string),
	}
}

// AddField records a failure for a field and returns the receiver
func (e *ValidationError) AddField(field, message string) *ValidationError {
	e.Fields[field] = message
	return e
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Unwrap exposes the embedded DomainError to errors.As
func (e *ValidationError) Unwrap() error {
	return e.DomainError
}

// IsValidationCode reports whether code belongs to the validation family
func IsValidationCode(code string) bool {
	switch code {
	case ErrValidation.Code, ErrInvalidInput.Code,
		"INVALID_PHONE", "INVALID_RATING", "INVALID_QUANTITY", "INVALID_PRICE",
		"INVALID_EMAIL", "INVALID_SLUG", "INVALID_NAME", "INVALID_CART_OWNER", "EMPTY_CART":
		return true
	}
	return false
}
