package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	"github.com/felixgeelhaar/omsctl/internal/session"
)

// ErrNoAccessToken is returned when a 2xx token response carries no access token
var ErrNoAccessToken = errors.New("token response has no access token")

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the token pair plus every other field of the payload,
// which the backend uses to describe the user.
type LoginResponse struct {
	Access  string
	Refresh string
	Profile session.UserProfile
}

// ObtainToken exchanges credentials for a token pair. The request is sent
// without a bearer token.
func (c *Client) ObtainToken(ctx context.Context, email, password string) (*LoginResponse, error) {
	var raw json.RawMessage
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "token/",
		body:   LoginRequest{Email: email, Password: password},
		public: true,
	}, &raw)
	if err != nil {
		return nil, err
	}
	return splitTokenPayload(raw)
}

// splitTokenPayload separates access and refresh from the profile fields
func splitTokenPayload(raw []byte) (*LoginResponse, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	var resp LoginResponse
	for key, dst := range map[string]*string{"access": &resp.Access, "refresh": &resp.Refresh} {
		v, ok := fields[key]
		if !ok || string(v) == "null" {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return nil, fmt.Errorf("failed to decode %q in token response: %w", key, err)
		}
	}
	if resp.Access == "" {
		return nil, ErrNoAccessToken
	}
	delete(fields, "access")
	delete(fields, "refresh")

	profile, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(profile, &resp.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode user profile: %w", err)
	}
	return &resp, nil
}

// RefreshResponse is the result of a refresh exchange. Refresh is only set
// when the backend rotates refresh tokens.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// RefreshToken exchanges a refresh token for a new access token
func (c *Client) RefreshToken(ctx context.Context, refresh string) (*RefreshResponse, error) {
	var resp RefreshResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "token/refresh/",
		body:   map[string]string{"refresh": refresh},
		public: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Access == "" {
		return nil, ErrNoAccessToken
	}
	return &resp, nil
}

// RegistrationRequest is the body of POST users/register/
type RegistrationRequest struct {
	Email            string      `json:"email"`
	Password         string      `json:"password"`
	FirstName        string      `json:"first_name"`
	LastName         string      `json:"last_name"`
	RoleKey          domain.Role `json:"role_key"`
	ReportingManager domain.ID   `json:"reporting_manager,omitempty"`
}

// RegisterUser creates an account. Requires a manager's bearer token.
func (c *Client) RegisterUser(ctx context.Context, req RegistrationRequest) (*Employee, error) {
	var created Employee
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "users/register/",
		body:   req,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}
