// Package session holds the authenticated session and the stores that
// persist it between runs.
package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/felixgeelhaar/omsctl/internal/domain"
)

// UserProfile is the snapshot of the signed-in user captured at login.
// It is never refreshed while the session lives.
type UserProfile struct {
	ID             domain.ID   `json:"id" yaml:"id"`
	Email          string      `json:"email" yaml:"email"`
	FirstName      string      `json:"first_name" yaml:"first_name"`
	LastName       string      `json:"last_name" yaml:"last_name"`
	Role           domain.Role `json:"role" yaml:"role"`
	PTOBalanceDays domain.Days `json:"pto_balance_days" yaml:"pto_balance_days"`
}

// UnmarshalJSON accepts the role under either "role" (token payload)
// or "role_key" (user listings).
func (p *UserProfile) UnmarshalJSON(data []byte) error {
	type plain UserProfile
	aux := struct {
		*plain
		RoleKey domain.Role `json:"role_key"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.Role == "" {
		p.Role = aux.RoleKey
	}
	return nil
}

// FullName joins first and last name
func (p UserProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// IsZero reports whether the profile carries no identity at all
func (p UserProfile) IsZero() bool {
	return p.ID.IsZero() && p.Email == "" && p.Role == ""
}

// Session is the credential pair plus the profile it was issued for.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         UserProfile
}

// Valid reports whether all three parts are present
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.RefreshToken != "" && !s.User.IsZero()
}

// AccessExpiresAt reads the exp claim of the access token without verifying
// the signature. The backend remains the authority on expiry.
func (s Session) AccessExpiresAt() (time.Time, bool) {
	return TokenExpiry(s.AccessToken)
}

// TokenExpiry extracts the exp claim from a JWT without verification
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// String avoids leaking tokens through %v
func (s Session) String() string {
	return fmt.Sprintf("Session{user=%s role=%s}", s.User.Email, s.User.Role)
}
