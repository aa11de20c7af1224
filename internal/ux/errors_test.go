package ux

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"
	"testing"

	"github.com/felixgeelhaar/omsctl/internal/auth"
	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/platform"
)

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

func TestEnhanceError(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	tests := []struct {
		name           string
		err            error
		wantNil        bool
		wantCode       omserrors.ErrorCode
		wantSuggestion string
	}{
		{
			name:    "nil error returns nil",
			err:     nil,
			wantNil: true,
		},
		{
			name:           "no session",
			err:            fmt.Errorf("dashboard: %w", auth.ErrNoSession),
			wantCode:       omserrors.ErrCodeNotLoggedIn,
			wantSuggestion: "omsctl auth login",
		},
		{
			name:           "refresh rejected",
			err:            fmt.Errorf("%w: backend returned 401", auth.ErrRefreshRejected),
			wantCode:       omserrors.ErrCodeSessionExpired,
			wantSuggestion: "sign in again",
		},
		{
			name:           "backend down",
			err:            &platform.TransportError{Method: "GET", Path: "staff/", Err: refused},
			wantCode:       omserrors.ErrCodeAPIUnreachable,
			wantSuggestion: "OMS_API_BASE_URL",
		},
		{
			name:           "timeout",
			err:            &platform.TransportError{Method: "GET", Path: "staff/", Err: timeoutErr{}},
			wantCode:       omserrors.ErrCodeAPITimeout,
			wantSuggestion: "api.timeout",
		},
		{
			name:           "deadline",
			err:            context.DeadlineExceeded,
			wantCode:       omserrors.ErrCodeAPITimeout,
			wantSuggestion: "api.timeout",
		},
		{
			name:           "unauthorized",
			err:            &platform.APIError{StatusCode: 401, Detail: "Given token not valid for any token type"},
			wantCode:       omserrors.ErrCodeSessionExpired,
			wantSuggestion: "omsctl auth login",
		},
		{
			name:           "forbidden",
			err:            &platform.APIError{StatusCode: 403, Detail: "You do not have permission to perform this action."},
			wantCode:       omserrors.ErrCodeAccessDenied,
			wantSuggestion: "omsctl dashboard",
		},
		{
			name:           "validation",
			err:            &platform.APIError{StatusCode: 400, Fields: map[string][]string{"reason": {"This field is required."}}},
			wantCode:       omserrors.ErrCodeAPIValidation,
			wantSuggestion: "fields",
		},
		{
			name:           "server error",
			err:            &platform.APIError{StatusCode: 500, Raw: []byte("<html>")},
			wantCode:       omserrors.ErrCodeAPIRequest,
			wantSuggestion: "server status",
		},
		{
			name:     "token missing in response",
			err:      platform.ErrNoAccessToken,
			wantCode: omserrors.ErrCodeAPIResponse,
		},
		{
			name:           "permission",
			err:            &fs.PathError{Op: "open", Path: "/root/.omsctl/session.json", Err: fs.ErrPermission},
			wantCode:       omserrors.ErrCodeFileWriteFailed,
			wantSuggestion: "OMS_HOME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EnhanceError(tt.err)
			if tt.wantNil {
				if result != nil {
					t.Errorf("EnhanceError() = %v, want nil", result)
				}
				return
			}

			var omsErr *omserrors.OMSError
			if !errors.As(result, &omsErr) {
				t.Fatalf("EnhanceError() = %T, want *OMSError", result)
			}
			if omsErr.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", omsErr.Code, tt.wantCode)
			}
			if tt.wantSuggestion != "" && !strings.Contains(result.Error(), tt.wantSuggestion) {
				t.Errorf("EnhanceError() = %q, want suggestion containing %q", result.Error(), tt.wantSuggestion)
			}
		})
	}
}

func TestEnhanceError_PassThrough(t *testing.T) {
	orig := omserrors.NewInputRequiredError("reason")
	if got := EnhanceError(orig); got != error(orig) {
		t.Errorf("OMSError should pass through unchanged, got %v", got)
	}

	plain := errors.New("something went wrong")
	if got := EnhanceError(plain); got != plain {
		t.Errorf("unknown error should pass through unchanged, got %v", got)
	}
}

func TestEnhanceError_PreservesErrorChain(t *testing.T) {
	apiErr := &platform.APIError{StatusCode: 403, Detail: "denied"}
	result := FormatError(apiErr, "override")

	var target *platform.APIError
	if !errors.As(result, &target) {
		t.Fatal("errors.As should find the APIError through the enhanced error")
	}
	if !strings.HasPrefix(result.Error(), "override: ") {
		t.Errorf("FormatError should prefix context, got %q", result.Error())
	}
	if FormatError(nil, "x") != nil {
		t.Error("FormatError(nil) should be nil")
	}
}
