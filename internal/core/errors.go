package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Universe errors. A universe failure is fatal for the whole run.
	ErrSourceUnavailable = &Error{Code: "SOURCE_UNAVAILABLE", Message: "universe source unavailable"}
	ErrUnknownIndex      = &Error{Code: "UNKNOWN_INDEX", Message: "unknown index"}

	// Fetch errors. Per-symbol failures are isolated and skipped.
	ErrFetchFailed    = &Error{Code: "FETCH_FAILED", Message: "metrics fetch failed"}
	ErrSymbolNotFound = &Error{Code: "SYMBOL_NOT_FOUND", Message: "symbol not found"}

	// NoMatches is a normal terminal outcome, not a crash.
	ErrNoMatches = &Error{Code: "NO_MATCHES", Message: "no stocks matched the screening criteria"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// Export errors
	ErrExportFailed = &Error{Code: "EXPORT_FAILED", Message: "result export failed"}

	// Notifier errors
	ErrNotifierFailed = &Error{Code: "NOTIFIER_FAILED", Message: "notifier failed"}

	// LLM errors
	ErrLLMFailed = &Error{Code: "LLM_FAILED", Message: "LLM request failed"}
)
