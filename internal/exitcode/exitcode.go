package exitcode

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/felixgeelhaar/omsctl/internal/auth"
	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/platform"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// BackendError indicates the backend refused the request
	BackendError = 3

	// Aborted indicates the user cancelled an interactive form
	Aborted = 4

	// AuthError indicates an authentication or authorization failure
	AuthError = 5

	// NetworkError indicates a network connectivity issue
	NetworkError = 6
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to an exit code. Typed errors are checked
// first; cobra's flag errors are only recognizable by their text.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if errors.Is(err, views.ErrAborted) || errors.Is(err, context.Canceled) {
		return Aborted
	}
	if errors.Is(err, auth.ErrNoSession) || errors.Is(err, auth.ErrRefreshRejected) || errors.Is(err, platform.ErrNoAccessToken) {
		return AuthError
	}

	var omsErr *omserrors.OMSError
	if errors.As(err, &omsErr) {
		switch omsErr.Category() {
		case "AUTH":
			return AuthError
		case "INPUT", "CFG":
			return UsageError
		}
		if omsErr.Code == omserrors.ErrCodeAPIUnreachable || omsErr.Code == omserrors.ErrCodeAPITimeout {
			return NetworkError
		}
	}

	var transportErr *platform.TransportError
	if errors.As(err, &transportErr) {
		return NetworkError
	}

	var apiErr *platform.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsAuth() {
			return AuthError
		}
		return BackendError
	}

	if omsErr != nil && omsErr.Category() == "API" {
		return BackendError
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "unknown command") ||
		strings.Contains(errMsg, "invalid argument") || strings.Contains(errMsg, "required flag") ||
		strings.Contains(errMsg, "accepts ") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags, arguments or configuration)"
	case BackendError:
		return "Backend rejected the request"
	case Aborted:
		return "Aborted by user"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	default:
		return "Unknown error"
	}
}
