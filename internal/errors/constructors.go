package errors

import stderrors "errors"

// as is a small indirection over errors.As so the package name stays free.
func as(err error, target **DocPackError) bool {
	return stderrors.As(err, target)
}

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *DocPackError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *DocPackError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// InvalidFormat reports a format string referencing an unknown placeholder.
func InvalidFormat(format, placeholder string) *DocPackError {
	return New(CategoryValidation, SeverityFatal, "invalid placeholder in format string").
		WithContext("format", format).
		WithContext("placeholder", placeholder)
}

// Fetch errors

func FetchFailed(url string, cause error) *DocPackError {
	return Wrap(cause, CategoryNetwork, SeverityFatal, "fetch failed").
		WithContext("url", url)
}

func FetchTransient(url string, cause error) *DocPackError {
	return WrapRetryable(cause, CategoryNetwork, SeverityWarning, "transient fetch failure").
		WithContext("url", url)
}

// DecodeFailed reports a malformed upstream JSON document.
func DecodeFailed(resource string, cause error) *DocPackError {
	return Wrap(cause, CategoryDecode, SeverityFatal, "malformed resource").
		WithContext("resource", resource)
}

// MissingField reports a required field absent from an upstream JSON document.
func MissingField(resource, field string) *DocPackError {
	return New(CategoryDecode, SeverityFatal, "required field missing").
		WithContext("resource", resource).
		WithContext("field", field)
}

// Generation errors

func RenderFailed(path string, cause error) *DocPackError {
	return Wrap(cause, CategoryRender, SeverityFatal, "page render failed").
		WithContext("path", path)
}

func ArchiveFailed(operation string, cause error) *DocPackError {
	return Wrap(cause, CategoryArchive, SeverityFatal, "archive operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *DocPackError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
