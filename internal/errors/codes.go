// Package errors provides structured error handling for daylog.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (directory, file)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and directory I/O errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityError indicates the operation failed.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeDirCreate  = "ERR_201_DIR_CREATE"
	ErrCodeFileOpen   = "ERR_202_FILE_OPEN"
	ErrCodeFileWrite  = "ERR_203_FILE_WRITE"
	ErrCodeFileDelete = "ERR_204_FILE_DELETE"
	ErrCodeDirRead    = "ERR_205_DIR_READ"

	// Validation errors (400-499)
	ErrCodeInvalidLevel   = "ERR_401_INVALID_LEVEL"
	ErrCodeInvalidPattern = "ERR_402_INVALID_PATTERN"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Numeric portion, e.g. "201" from "ERR_201_DIR_CREATE"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// Retention cleanup failures only degrade the pass, they never stop a write.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeFileDelete, ErrCodeDirRead:
		return SeverityWarning
	default:
		return SeverityError
	}
}
