package errors

import (
	stderrors "errors"
	"fmt"
)

// DaylogError is the structured error type for daylog.
// It carries enough context for the diagnostic sink and for CLI presentation.
type DaylogError struct {
	// Code is the unique error code (e.g., "ERR_201_DIR_CREATE").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *DaylogError) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *DaylogError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with DaylogError.
func (e *DaylogError) Is(target error) bool {
	if t, ok := target.(*DaylogError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *DaylogError) WithDetail(key, value string) *DaylogError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *DaylogError) WithSuggestion(suggestion string) *DaylogError {
	e.Suggestion = suggestion
	return e
}

// New creates a new DaylogError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *DaylogError {
	return &DaylogError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a DaylogError from an existing error.
// The error's message becomes the DaylogError message.
func Wrap(code string, err error) *DaylogError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *DaylogError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(code, message string) *DaylogError {
	return New(code, message, nil)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *DaylogError {
	return New(ErrCodeInternal, message, cause)
}

// GetCode extracts the error code from a DaylogError anywhere in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var de *DaylogError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ""
}

// GetCategory extracts the category from a DaylogError.
// Returns empty string if not a DaylogError.
func GetCategory(err error) Category {
	var de *DaylogError
	if stderrors.As(err, &de) {
		return de.Category
	}
	return ""
}
