// Package errors provides a lightweight structured error type (DocPackError)
// for category-based classification and retry semantics in the fetch client,
// generator, and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a DocPack error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// External system integration errors
	CategoryNetwork ErrorCategory = "network"
	CategoryDecode  ErrorCategory = "decode"

	// Generation errors
	CategoryRender     ErrorCategory = "render"
	CategoryArchive    ErrorCategory = "archive"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
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

// DocPackError is a structured error with category, retryability, and context
type DocPackError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocPackError
type ContextFields map[string]any

// Error implements the error interface
func (e *DocPackError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *DocPackError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DocPackError) WithContext(key string, value any) *DocPackError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DocPackError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocPackError {
	return &DocPackError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: false,
	}
}

// Wrap creates a new DocPackError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocPackError {
	return &DocPackError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}

// WrapRetryable creates a new retryable DocPackError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocPackError {
	return &DocPackError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// IsCategory checks if an error belongs to a specific category.
// It unwraps nested errors so wrapped DocPackErrors are still classified.
func IsCategory(err error, category ErrorCategory) bool {
	var dpe *DocPackError
	if as(err, &dpe) {
		return dpe.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	var dpe *DocPackError
	if as(err, &dpe) {
		return dpe.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal
// if no DocPackError is found in the chain.
func GetCategory(err error) ErrorCategory {
	var dpe *DocPackError
	if as(err, &dpe) {
		return dpe.Category
	}
	return CategoryInternal
}
