package exitcode

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/felixgeelhaar/omsctl/internal/auth"
	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/platform"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", Success, 0},
		{"GeneralError", GeneralError, 1},
		{"UsageError", UsageError, 2},
		{"BackendError", BackendError, 3},
		{"Aborted", Aborted, 4},
		{"AuthError", AuthError, 5},
		{"NetworkError", NetworkError, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("Exit code %s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestDetermineExitCode(t *testing.T) {
	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error returns success",
			err:      nil,
			expected: Success,
		},
		{
			name:     "aborted form",
			err:      fmt.Errorf("login: %w", views.ErrAborted),
			expected: Aborted,
		},
		{
			name:     "interrupted context",
			err:      context.Canceled,
			expected: Aborted,
		},
		{
			name:     "no session",
			err:      auth.ErrNoSession,
			expected: AuthError,
		},
		{
			name:     "refresh rejected",
			err:      fmt.Errorf("%w: backend returned 401", auth.ErrRefreshRejected),
			expected: AuthError,
		},
		{
			name:     "not logged in",
			err:      omserrors.NewNotLoggedInError(),
			expected: AuthError,
		},
		{
			name:     "access denied",
			err:      omserrors.NewAccessDeniedError("You do not have permission to perform this action.", errors.New("403")),
			expected: AuthError,
		},
		{
			name:     "missing input",
			err:      omserrors.NewInputRequiredError("reason"),
			expected: UsageError,
		},
		{
			name:     "bad config",
			err:      omserrors.NewConfigInvalidError("api.timeout", "must be positive"),
			expected: UsageError,
		},
		{
			name:     "unreachable backend",
			err:      omserrors.NewAPIUnreachableError("http://localhost:8000/api/", dialErr),
			expected: NetworkError,
		},
		{
			name:     "transport error",
			err:      fmt.Errorf("load: %w", &platform.TransportError{Method: "GET", Path: "staff/", Err: dialErr}),
			expected: NetworkError,
		},
		{
			name:     "backend 401",
			err:      &platform.APIError{StatusCode: 401, Detail: "Given token not valid"},
			expected: AuthError,
		},
		{
			name:     "backend 403",
			err:      &platform.APIError{StatusCode: 403, Detail: "You do not have permission"},
			expected: AuthError,
		},
		{
			name:     "backend validation",
			err:      &platform.APIError{StatusCode: 400, Fields: map[string][]string{"reason": {"This field is required."}}},
			expected: BackendError,
		},
		{
			name:     "wrapped api code",
			err:      omserrors.Wrap(omserrors.ErrCodeAPIRequest, "override failed", errors.New("boom")),
			expected: BackendError,
		},
		{
			name:     "cobra unknown flag",
			err:      errors.New("unknown flag: --foo"),
			expected: UsageError,
		},
		{
			name:     "cobra arg count",
			err:      errors.New("accepts 1 arg(s), received 0"),
			expected: UsageError,
		},
		{
			name:     "generic error",
			err:      errors.New("something went wrong"),
			expected: GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.expected {
				t.Errorf("DetermineExitCode(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	for code := Success; code <= NetworkError; code++ {
		if desc := GetExitCodeDescription(code); desc == "Unknown error" {
			t.Errorf("code %d has no description", code)
		}
	}
	if GetExitCodeDescription(99) != "Unknown error" {
		t.Error("unexpected description for unknown code")
	}
}
