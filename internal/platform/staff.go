package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/felixgeelhaar/omsctl/internal/domain"
)

// StatusUnavailable is the only status a manager override may set
const StatusUnavailable = "Unavailable"

// Employee is a user as listed by the backend
type Employee struct {
	ID               domain.ID   `json:"id" yaml:"id"`
	Email            string      `json:"email" yaml:"email"`
	FirstName        string      `json:"first_name" yaml:"first_name"`
	LastName         string      `json:"last_name" yaml:"last_name"`
	Role             domain.Role `json:"role_key" yaml:"role_key"`
	ReportingManager domain.ID   `json:"reporting_manager,omitempty" yaml:"reporting_manager,omitempty"`
	PTOBalanceDays   domain.Days `json:"pto_balance_days,omitempty" yaml:"pto_balance_days,omitempty"`
}

// UnmarshalJSON accepts the role under "role_key" or "role"
func (e *Employee) UnmarshalJSON(data []byte) error {
	type plain Employee
	aux := struct {
		*plain
		AltRole domain.Role `json:"role"`
	}{plain: (*plain)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if e.Role == "" {
		e.Role = aux.AltRole
	}
	return nil
}

// DisplayName is "First Last (Role)", the label used in pickers
func (e Employee) DisplayName() string {
	name := strings.TrimSpace(e.FirstName + " " + e.LastName)
	if name == "" {
		name = e.Email
	}
	return name + " (" + string(e.Role) + ")"
}

// Employees lists every user. The backend may or may not paginate this view.
func (c *Client) Employees(ctx context.Context) ([]Employee, error) {
	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: "users/employee-list/"}, &raw); err != nil {
		return nil, err
	}
	return decodeList[Employee](raw)
}

// StatusOverride is the body of POST managers/status/override/
type StatusOverride struct {
	UserID       domain.ID `json:"user_id"`
	NewStatus    string    `json:"new_status"`
	StatusReason string    `json:"status_reason"`
}

// OverrideStatus marks an employee unavailable and records the reason in the audit log
func (c *Client) OverrideStatus(ctx context.Context, userID domain.ID, reason string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "managers/status/override/",
		body: StatusOverride{
			UserID:       userID,
			NewStatus:    StatusUnavailable,
			StatusReason: reason,
		},
	}, nil)
}
