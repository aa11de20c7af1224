package ux

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/felixgeelhaar/omsctl/internal/auth"
	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/platform"
)

// EnhanceError turns the errors a command can return into an OMSError
// carrying recovery suggestions. OMSErrors and unknown errors pass through.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}

	var omsErr *omserrors.OMSError
	if errors.As(err, &omsErr) {
		return err
	}

	switch {
	case errors.Is(err, auth.ErrNoSession):
		return omserrors.NewNotLoggedInError()
	case errors.Is(err, auth.ErrRefreshRejected):
		return omserrors.NewSessionExpiredError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return omserrors.Wrap(omserrors.ErrCodeAPITimeout, "request timed out", err).
			WithSuggestion("Raise api.timeout in config.yaml or OMS_API_TIMEOUT")
	}

	var transportErr *platform.TransportError
	if errors.As(err, &transportErr) {
		if transportErr.Timeout() {
			return omserrors.Wrap(omserrors.ErrCodeAPITimeout,
				fmt.Sprintf("%s %s timed out", transportErr.Method, transportErr.Path), transportErr.Err).
				WithSuggestion("Check server status").
				WithSuggestion("Raise api.timeout in config.yaml or OMS_API_TIMEOUT")
		}
		return omserrors.Wrap(omserrors.ErrCodeAPIUnreachable, "cannot reach OMS backend", transportErr.Err).
			WithSuggestion("Check server status").
			WithSuggestion("Set OMS_API_BASE_URL or --api-url to the correct backend")
	}

	var apiErr *platform.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 401:
			return omserrors.Wrap(omserrors.ErrCodeSessionExpired, apiErr.Summary(), err).
				WithSuggestion("Run 'omsctl auth login' to sign in again")
		case apiErr.StatusCode == 403:
			return omserrors.NewAccessDeniedError(apiErr.Summary(), err)
		case apiErr.IsValidation():
			return omserrors.Wrap(omserrors.ErrCodeAPIValidation, apiErr.Summary(), err).
				WithSuggestion("Correct the highlighted fields and try again")
		default:
			return omserrors.Wrap(omserrors.ErrCodeAPIRequest, apiErr.Summary(), err).
				WithSuggestion("Check server status")
		}
	}

	if errors.Is(err, platform.ErrNoAccessToken) {
		return omserrors.Wrap(omserrors.ErrCodeAPIResponse, "backend returned no access token", err).
			WithSuggestion("Check that --api-url points at the OMS backend")
	}

	if errors.Is(err, fs.ErrPermission) {
		return omserrors.Wrap(omserrors.ErrCodeFileWriteFailed, "permission denied", err).
			WithSuggestion("Check permissions on OMS_HOME (default ~/.omsctl)")
	}
	if errors.Is(err, os.ErrNotExist) {
		return omserrors.Wrap(omserrors.ErrCodeFileNotFound, "file not found", err)
	}

	return err
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}
