package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/felixgeelhaar/omsctl/internal/domain"
)

// KPIs are the management indicators computed by the backend
type KPIs struct {
	AverageCycleTimeMinutes    float64 `json:"average_cycle_time_minutes" yaml:"average_cycle_time_minutes"`
	ProtocolAdherencePercent   float64 `json:"protocol_adherence_percent" yaml:"protocol_adherence_percent"`
	SalesPlanningAdherenceRate float64 `json:"sales_planning_adherence_rate" yaml:"sales_planning_adherence_rate"`
}

// StatusAuditEntry records one staff status change
type StatusAuditEntry struct {
	ID             domain.ID `json:"id" yaml:"id"`
	ChangeTime     time.Time `json:"change_time" yaml:"change_time"`
	UserEmail      string    `json:"user_email" yaml:"user_email"`
	ChangedByEmail string    `json:"changed_by_email" yaml:"changed_by_email"`
	OldStatus      string    `json:"old_status" yaml:"old_status"`
	NewStatus      string    `json:"new_status" yaml:"new_status"`
	StatusReason   string    `json:"status_reason" yaml:"status_reason"`
}

// GPSPoint is one location fix reported by field staff
type GPSPoint struct {
	ID         domain.ID `json:"id" yaml:"id"`
	UserEmail  string    `json:"user_email" yaml:"user_email"`
	Latitude   float64   `json:"latitude" yaml:"latitude"`
	Longitude  float64   `json:"longitude" yaml:"longitude"`
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
}

// KPIs fetches the management indicators
func (c *Client) KPIs(ctx context.Context) (*KPIs, error) {
	var kpis KPIs
	if err := c.do(ctx, request{method: http.MethodGet, path: "analytics/kpis/"}, &kpis); err != nil {
		return nil, err
	}
	return &kpis, nil
}

// StatusAuditLog lists staff status changes, newest first as the backend orders them
func (c *Client) StatusAuditLog(ctx context.Context) ([]StatusAuditEntry, error) {
	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: "audit/status/"}, &raw); err != nil {
		return nil, err
	}
	return decodeList[StatusAuditEntry](raw)
}

// GPSHistory lists recorded location fixes
func (c *Client) GPSHistory(ctx context.Context) ([]GPSPoint, error) {
	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: "audit/gps/"}, &raw); err != nil {
		return nil, err
	}
	return decodeList[GPSPoint](raw)
}
