package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeNotLoggedIn    ErrorCode = "AUTH-001"
	ErrCodeLoginFailed    ErrorCode = "AUTH-002"
	ErrCodeSessionExpired ErrorCode = "AUTH-003"
	ErrCodeAccessDenied   ErrorCode = "AUTH-004"
	ErrCodeSessionStore   ErrorCode = "AUTH-005"

	// Backend API errors (API-001 to API-099)
	ErrCodeAPIRequest     ErrorCode = "API-001"
	ErrCodeAPIUnreachable ErrorCode = "API-002"
	ErrCodeAPITimeout     ErrorCode = "API-003"
	ErrCodeAPIValidation  ErrorCode = "API-004"
	ErrCodeAPIResponse    ErrorCode = "API-005"

	// Configuration errors (CFG-001 to CFG-099)
	ErrCodeConfigLoad    ErrorCode = "CFG-001"
	ErrCodeConfigInvalid ErrorCode = "CFG-002"

	// Input errors (INPUT-001 to INPUT-099)
	ErrCodeInputRequired ErrorCode = "INPUT-001"
	ErrCodeInputInvalid  ErrorCode = "INPUT-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
)

// OMSError is an error with a stable code, recovery suggestions and an
// optional documentation link.
type OMSError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *OMSError) Error() string {
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
func (e *OMSError) Unwrap() error {
	return e.Cause
}

// Category returns the code prefix, e.g. "AUTH"
func (e *OMSError) Category() string {
	code := string(e.Code)
	if i := strings.IndexByte(code, '-'); i > 0 {
		return code[:i]
	}
	return code
}

// New creates a new OMSError
func New(code ErrorCode, message string) *OMSError {
	return &OMSError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new OMSError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *OMSError {
	return &OMSError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *OMSError) WithSuggestion(suggestion string) *OMSError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *OMSError) WithSuggestions(suggestions ...string) *OMSError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *OMSError) WithDocs(url string) *OMSError {
	e.DocsURL = url
	return e
}

// NewNotLoggedInError is returned when a command needs a session and none is stored
func NewNotLoggedInError() *OMSError {
	return New(ErrCodeNotLoggedIn, "not logged in").
		WithSuggestion("Run 'omsctl auth login' to sign in").
		WithSuggestion("Check that OMS_HOME points at the directory holding session.json")
}

// NewLoginFailedError wraps the message shown for a failed login
func NewLoginFailedError(message string) *OMSError {
	return New(ErrCodeLoginFailed, message).
		WithSuggestion("Check your email and password").
		WithSuggestion("Run 'omsctl auth status' to see which server you are talking to")
}

// NewSessionExpiredError is returned when the backend refused the refresh token
func NewSessionExpiredError(cause error) *OMSError {
	return Wrap(ErrCodeSessionExpired, "session expired", cause).
		WithSuggestion("Run 'omsctl auth login' to sign in again")
}

// NewAccessDeniedError is returned when the backend refuses an action for
// the current role
func NewAccessDeniedError(message string, cause error) *OMSError {
	return Wrap(ErrCodeAccessDenied, message, cause).
		WithSuggestion("Ask a manager to perform this action").
		WithSuggestion("Run 'omsctl dashboard' to see what your role can do")
}

// NewAPIUnreachableError is returned when the backend cannot be reached
func NewAPIUnreachableError(baseURL string, cause error) *OMSError {
	return Wrap(ErrCodeAPIUnreachable, fmt.Sprintf("cannot reach OMS backend at %s", baseURL), cause).
		WithSuggestion("Check server status").
		WithSuggestion("Set OMS_API_BASE_URL or --api-url to the correct backend")
}

// NewInputRequiredError creates a missing-field error
func NewInputRequiredError(field string) *OMSError {
	return New(ErrCodeInputRequired, fmt.Sprintf("%s is required", field)).
		WithSuggestion(fmt.Sprintf("Pass --%s or run interactively", strings.ReplaceAll(field, "_", "-")))
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(key string, details string) *OMSError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration for %s: %s", key, details)).
		WithSuggestion("Check ~/.omsctl/config.yaml and OMS_* environment variables")
}
