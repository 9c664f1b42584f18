// Package errors provides a lightweight structured error type (CompilerError)
// for category-based classification in the CLI and HTTP adapters.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a compiler error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// I/O and output errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRender     ErrorCategory = "render"
	CategoryCache      ErrorCategory = "cache"

	// Runtime and infrastructure errors
	CategoryServer   ErrorCategory = "server"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// CompilerError is a structured error with category, severity, and context
type CompilerError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for CompilerError
type ContextFields map[string]any

// Error implements the error interface
func (e *CompilerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *CompilerError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *CompilerError) WithContext(key string, value any) *CompilerError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// WithSeverity overrides the severity of the error
func (e *CompilerError) WithSeverity(severity ErrorSeverity) *CompilerError {
	e.Severity = severity
	return e
}

// New creates a new CompilerError
func New(category ErrorCategory, severity ErrorSeverity, message string) *CompilerError {
	return &CompilerError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new CompilerError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *CompilerError {
	return &CompilerError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// WrapError wraps an existing error with a new CompilerError at error severity
func WrapError(err error, category ErrorCategory, message string) *CompilerError {
	return Wrap(err, category, SeverityError, message)
}

// As extracts a CompilerError from anywhere in err's chain.
func As(err error) (*CompilerError, bool) {
	var ce *CompilerError
	if stdErrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if ce, ok := As(err); ok {
		return ce.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a CompilerError
func GetCategory(err error) ErrorCategory {
	if ce, ok := As(err); ok {
		return ce.Category
	}
	return CategoryInternal
}
