// Package errors provides a lightweight structured error type
// (NavBuilderError) for category-based classification in the CLI.
package errors

import "fmt"

// ErrorCategory classifies a NavBuilderError for exit codes and display.
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Pipeline errors
	CategoryContent    ErrorCategory = "content"
	CategoryResolve    ErrorCategory = "resolve"
	CategoryFileSystem ErrorCategory = "filesystem"

	// External system integration errors
	CategoryGit     ErrorCategory = "git"
	CategoryStorage ErrorCategory = "storage"
	CategoryEvents  ErrorCategory = "events"

	// Runtime and infrastructure errors
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

// NavBuilderError is a structured error with category and context fields.
type NavBuilderError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for NavBuilderError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *NavBuilderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap supports errors.Is/As chains through the cause.
func (e *NavBuilderError) Unwrap() error { return e.Cause }

// WithContext adds a context field to the error.
func (e *NavBuilderError) WithContext(key string, value any) *NavBuilderError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a NavBuilderError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *NavBuilderError {
	return &NavBuilderError{Category: category, Severity: severity, Message: message}
}

// Wrap creates a NavBuilderError wrapping an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *NavBuilderError {
	return &NavBuilderError{Category: category, Severity: severity, Message: message, Cause: err}
}

// GetCategory extracts the category from an error, defaulting to
// CategoryInternal for unclassified errors.
func GetCategory(err error) ErrorCategory {
	if nbe, ok := err.(*NavBuilderError); ok {
		return nbe.Category
	}
	return CategoryInternal
}

// Convenience constructors for common patterns.

func ConfigNotFound(path string) *NavBuilderError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *NavBuilderError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

func DiscoveryError(cause error) *NavBuilderError {
	return Wrap(cause, CategoryContent, SeverityFatal, "content discovery failed")
}

func ResolveError(cause error) *NavBuilderError {
	return Wrap(cause, CategoryResolve, SeverityFatal, "navigation resolution failed")
}

func EmitError(cause error) *NavBuilderError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "writing output artifacts failed")
}

func GitSourceError(repo string, cause error) *NavBuilderError {
	return Wrap(cause, CategoryGit, SeverityFatal, "content repository sync failed").
		WithContext("repository", repo)
}

func StorageError(operation string, cause error) *NavBuilderError {
	return Wrap(cause, CategoryStorage, SeverityError, "history store operation failed").
		WithContext("operation", operation)
}

func EventsError(cause error) *NavBuilderError {
	return Wrap(cause, CategoryEvents, SeverityWarning, "event publishing failed")
}

func InternalError(message string, cause error) *NavBuilderError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
