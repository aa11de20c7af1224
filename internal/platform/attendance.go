package platform

import (
	"context"
	"net/http"
)

// AttendanceStatus is the caller's current clock state
type AttendanceStatus struct {
	IsClockedIn bool `json:"is_clocked_in" yaml:"is_clocked_in"`
}

// AttendanceStatus reads whether the caller is clocked in
func (c *Client) AttendanceStatus(ctx context.Context) (*AttendanceStatus, error) {
	var status AttendanceStatus
	if err := c.do(ctx, request{method: http.MethodGet, path: "attendance/"}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ClockIn opens an attendance record
func (c *Client) ClockIn(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodPost, path: "attendance/"}, nil)
}

// ClockOut closes the open attendance record
func (c *Client) ClockOut(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodPut, path: "attendance/"}, nil)
}
