package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/felixgeelhaar/omsctl/internal/domain"
)

// Decision is a manager's verdict on a time-off request
type Decision string

const (
	DecisionApproved Decision = "Approved"
	DecisionRejected Decision = "Rejected"
)

// Past is the uppercase past-tense label used in confirmations
func (d Decision) Past() string {
	switch d {
	case DecisionApproved:
		return "APPROVED"
	case DecisionRejected:
		return "REJECTED"
	default:
		return string(d)
	}
}

// TimeOffRequest is a leave request as the backend returns it
type TimeOffRequest struct {
	ID          domain.ID   `json:"id" yaml:"id"`
	User        string      `json:"user" yaml:"user"`
	StartDate   string      `json:"start_date" yaml:"start_date"`
	EndDate     string      `json:"end_date" yaml:"end_date"`
	RequestDays domain.Days `json:"request_days" yaml:"request_days"`
	Reason      string      `json:"reason" yaml:"reason"`
	Status      string      `json:"status,omitempty" yaml:"status,omitempty"`
}

// UnmarshalJSON accepts the user as an id or an email
func (r *TimeOffRequest) UnmarshalJSON(data []byte) error {
	type plain TimeOffRequest
	aux := struct {
		*plain
		User domain.ID `json:"user"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.User = aux.User.String()
	return nil
}

// NewTimeOffRequest is the body of POST hr/time-off/
type NewTimeOffRequest struct {
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	RequestDays domain.Days `json:"request_days"`
	Reason      string      `json:"reason"`
}

// CreateTimeOffRequest submits a leave request for the caller
func (c *Client) CreateTimeOffRequest(ctx context.Context, req NewTimeOffRequest) error {
	return c.do(ctx, request{method: http.MethodPost, path: "hr/time-off/", body: req}, nil)
}

// PendingTimeOffRequests lists requests awaiting the caller's decision
func (c *Client) PendingTimeOffRequests(ctx context.Context) ([]TimeOffRequest, error) {
	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: "hr/time-off/"}, &raw); err != nil {
		return nil, err
	}
	return decodeList[TimeOffRequest](raw)
}

// DecideTimeOffRequest approves or rejects a request
func (c *Client) DecideTimeOffRequest(ctx context.Context, id domain.ID, decision Decision) error {
	path := fmt.Sprintf("hr/time-off/%s/approve/", url.PathEscape(id.String()))
	return c.do(ctx, request{
		method: http.MethodPatch,
		path:   path,
		body:   map[string]string{"status": string(decision)},
	}, nil)
}
