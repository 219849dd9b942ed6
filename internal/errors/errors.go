// Package errors provides a lightweight structured error type (KssgError)
// for category-based classification in the CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a kssg error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Build and processing errors
	CategoryTemplate   ErrorCategory = "template"
	CategoryBuild      ErrorCategory = "build"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
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

// KssgError is a structured error with category and context
type KssgError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for KssgError
type ContextFields map[string]any

// Error implements the error interface
func (e *KssgError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *KssgError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *KssgError) WithContext(key string, value any) *KssgError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new KssgError
func New(category ErrorCategory, severity ErrorSeverity, message string) *KssgError {
	return &KssgError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new KssgError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *KssgError {
	return &KssgError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the outermost KssgError in err's chain.
func As(err error) (*KssgError, bool) {
	var ke *KssgError
	if stdErrors.As(err, &ke) {
		return ke, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if ke, ok := As(err); ok {
		return ke.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a KssgError
func GetCategory(err error) ErrorCategory {
	if ke, ok := As(err); ok {
		return ke.Category
	}
	return CategoryInternal
}
