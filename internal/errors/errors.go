// Package errors provides a lightweight structured error type (BuildError)
// for category-based classification and exit-code propagation in the CLI.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of a polydocs error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig    ErrorCategory = "config"
	CategorySelection ErrorCategory = "selection"

	// External system integration errors
	CategoryTool ErrorCategory = "tool"

	// Merge and processing errors
	CategoryMerge       ErrorCategory = "merge"
	CategoryPostProcess ErrorCategory = "postprocess"
	CategoryFileSystem  ErrorCategory = "filesystem"
	CategoryLint        ErrorCategory = "lint"

	// Runtime and infrastructure errors
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// BuildError is a structured error with category, exit code, and context
type BuildError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	// ExitCode, when non-zero, is propagated verbatim as the process exit
	// code (external tool failures carry the tool's code).
	ExitCode int           `json:"exit_code,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BuildError
type ContextFields map[string]any

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *BuildError) WithContext(key string, value any) *BuildError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// WithExitCode sets the process exit code carried by this error.
func (e *BuildError) WithExitCode(code int) *BuildError {
	e.ExitCode = code
	return e
}

// New creates a new BuildError
func New(category ErrorCategory, severity ErrorSeverity, message string) *BuildError {
	return &BuildError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BuildError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BuildError {
	return &BuildError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal
// if not a BuildError
func GetCategory(err error) ErrorCategory {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Category
	}
	return CategoryInternal
}

// ExitCode extracts the process exit code an error should terminate with.
// External tool failures carry their own code; everything else maps to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var be *BuildError
	if errors.As(err, &be) && be.ExitCode != 0 {
		return be.ExitCode
	}
	return 1
}
