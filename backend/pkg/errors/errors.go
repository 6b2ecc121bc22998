package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents a missing or empty required field
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound represents a referenced entity that does not exist
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeSelfReference represents a friend operation on identical ids
	ErrorTypeSelfReference ErrorType = "self_reference"
	// ErrorTypeUnavailable represents a store failure (connectivity, transient errors)
	ErrorTypeUnavailable ErrorType = "unavailable"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Domain Errors

// ErrValidation is returned when a required field is missing or empty
type ErrValidation struct {
	*BaseError
	Field string
}

func NewValidation(field string) *ErrValidation {
	return &ErrValidation{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("field '%s' is required", field), nil),
		Field:     field,
	}
}

// ErrNotFound is returned when a referenced entity does not exist
type ErrNotFound struct {
	*BaseError
	Kind string
	ID   string
}

func NewNotFound(kind, id string) *ErrNotFound {
	return &ErrNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("%s not found: %s", kind, id), nil),
		Kind:      kind,
		ID:        id,
	}
}

// ErrSelfReference is returned when a user is asked to befriend themselves
type ErrSelfReference struct {
	*BaseError
	UserID string
}

func NewSelfReference(userID string) *ErrSelfReference {
	return &ErrSelfReference{
		BaseError: NewBaseError(ErrorTypeSelfReference, fmt.Sprintf("user cannot befriend themselves: %s", userID), nil),
		UserID:    userID,
	}
}

// ErrUnavailable is returned when the graph store cannot complete a transaction
type ErrUnavailable struct {
	*BaseError
	Operation string
}

func NewUnavailable(operation string, err error) *ErrUnavailable {
	return &ErrUnavailable{
		BaseError: NewBaseError(ErrorTypeUnavailable, fmt.Sprintf("graph store unavailable: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// TypeOf returns the category of the first typed error in err's chain, or ""
func TypeOf(err error) ErrorType {
	var typed interface{ errorType() ErrorType }
	if stderrors.As(err, &typed) {
		return typed.errorType()
	}
	return ""
}

func (e *BaseError) errorType() ErrorType { return e.Type }

// MessageOf returns the client-safe message of the first typed error in
// err's chain, falling back to err.Error()
func MessageOf(err error) string {
	var typed interface{ message() string }
	if stderrors.As(err, &typed) {
		return typed.message()
	}
	return err.Error()
}

func (e *BaseError) message() string { return e.Message }

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	return err != nil && TypeOf(err) == errType
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool { return IsErrorType(err, ErrorTypeValidation) }

// IsNotFound reports whether err is a missing-entity failure
func IsNotFound(err error) bool { return IsErrorType(err, ErrorTypeNotFound) }

// IsSelfReference reports whether err is a self-friendship failure
func IsSelfReference(err error) bool { return IsErrorType(err, ErrorTypeSelfReference) }

// IsUnavailable reports whether err is a store availability failure
func IsUnavailable(err error) bool { return IsErrorType(err, ErrorTypeUnavailable) }

// IsRetryable checks if an error is retryable. Only store availability
// failures qualify; the engine itself never retries.
func IsRetryable(err error) bool {
	return IsUnavailable(err)
}
