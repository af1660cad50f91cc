package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound  ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid   ErrorCode = "CONFIG-002"
	ErrCodeConfigUnmarshal ErrorCode = "CONFIG-003"

	// Rule errors (RULE-001 to RULE-099)
	ErrCodeRuleInvalidSeverity ErrorCode = "RULE-001"
	ErrCodeRuleUnknownType     ErrorCode = "RULE-002"
	ErrCodeRuleEmptyFilter     ErrorCode = "RULE-003"

	// Signal input errors (SIGNAL-001 to SIGNAL-099)
	ErrCodeSignalsNotFound  ErrorCode = "SIGNAL-001"
	ErrCodeSignalsUnmarshal ErrorCode = "SIGNAL-002"
	ErrCodeSignalMalformed  ErrorCode = "SIGNAL-003"

	// Aggregation errors (AGG-001 to AGG-099)
	ErrCodeUnknownStrategy ErrorCode = "AGG-001"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
)

// DriftError represents an enhanced error with code, suggestions, and documentation
type DriftError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *DriftError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *DriftError) Unwrap() error {
	return e.Cause
}

// New creates a new DriftError
func New(code ErrorCode, message string) *DriftError {
	return &DriftError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new DriftError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *DriftError {
	return &DriftError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *DriftError) WithSuggestion(suggestion string) *DriftError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *DriftError) WithSuggestions(suggestions ...string) *DriftError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *DriftError) WithDocs(url string) *DriftError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewConfigNotFoundError creates a config file not found error
func NewConfigNotFoundError(path string) *DriftError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithSuggestion("Create a .dsdrift.yaml in the project root").
		WithSuggestion("Pass an explicit path with --config").
		WithDocs("https://github.com/felixgeelhaar/dsdrift#configuration")
}

// NewConfigInvalidError creates a config validation error
func NewConfigInvalidError(details string) *DriftError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", details)).
		WithSuggestion("Check severity values: info, warning, critical").
		WithSuggestion("Check strategy names: value, suggestion, path, entity").
		WithDocs("https://github.com/felixgeelhaar/dsdrift#configuration")
}

// NewSignalsNotFoundError creates a signals input not found error
func NewSignalsNotFoundError(path string) *DriftError {
	return New(ErrCodeSignalsNotFound, fmt.Sprintf("signals file not found: %s", path)).
		WithSuggestion("Run your scanner first and point --signals at its output").
		WithSuggestion("Check if the file path is correct")
}

// NewSignalsUnmarshalError creates a signals parse error
func NewSignalsUnmarshalError(path string, cause error) *DriftError {
	return Wrap(ErrCodeSignalsUnmarshal, fmt.Sprintf("failed to parse signals file: %s", path), cause).
		WithSuggestion("The file must be a JSON array of drift signals").
		WithSuggestion("Re-run the scanner to regenerate the file")
}

// NewSignalMalformedError creates a malformed signal record error
func NewSignalMalformedError(index int, details string) *DriftError {
	return New(ErrCodeSignalMalformed, fmt.Sprintf("malformed signal at index %d: %s", index, details)).
		WithSuggestion("Every signal needs a type, a severity, and a source location")
}

// NewUnknownStrategyError creates an unknown aggregation strategy error
func NewUnknownStrategyError(name string) *DriftError {
	return New(ErrCodeUnknownStrategy, fmt.Sprintf("unknown aggregation strategy: %s", name)).
		WithSuggestion("Use one of: value, suggestion, path, entity").
		WithDocs("https://github.com/felixgeelhaar/dsdrift#aggregation")
}

// NewFileWriteError creates a file write error
func NewFileWriteError(path string, cause error) *DriftError {
	return Wrap(ErrCodeFileWriteFailed, fmt.Sprintf("failed to write file: %s", path), cause).
		WithSuggestion("Check directory permissions")
}
