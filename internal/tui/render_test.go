package tui

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	"github.com/felixgeelhaar/omsctl/internal/platform"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

func TestRenderer_Message(t *testing.T) {
	r := NewRenderer()
	assert.Empty(t, r.Message(views.Message{}))
	assert.Contains(t, r.Message(views.Message{Kind: views.KindError, Text: "Action failed."}), "Action failed.")
	assert.Contains(t, r.Message(views.Message{Kind: views.KindSuccess, Text: "Done"}), "Done")
}

func TestRenderer_KPICards(t *testing.T) {
	r := NewRenderer()
	assert.Empty(t, r.KPICards(nil))

	out := r.KPICards([]views.KPICard{
		{Label: "Average Cycle Time", Value: "42.5 min", Caption: "Order Creation to Delivery"},
		{Label: "Protocol Adherence %", Value: "97.0%", Caption: "QC Photo compliance for store orders"},
	})
	for _, want := range []string{"Average Cycle Time", "42.5 min", "Protocol Adherence %", "97.0%"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderer_AuditLog(t *testing.T) {
	r := NewRenderer()
	assert.Contains(t, r.AuditLog(nil), "No status changes recorded.")

	out := r.AuditLog([]platform.StatusAuditEntry{{
		ChangeTime:     time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		UserEmail:      "rep@oms.test",
		ChangedByEmail: "em@oms.test",
		OldStatus:      "Available",
		NewStatus:      "Unavailable",
		StatusReason:   "Sent home",
	}})
	assert.Contains(t, out, "Staff Status Audit Log")
	assert.Contains(t, out, "Available → Unavailable")
	assert.Contains(t, out, "Sent home")
}

func TestRenderer_GPS(t *testing.T) {
	r := NewRenderer()
	assert.Contains(t, r.GPS(nil), "No location fixes recorded.")

	out := r.GPS([]platform.GPSPoint{{UserEmail: "rep@oms.test", Latitude: 51.5, Longitude: -0.1275}})
	for _, want := range []string{"Latitude", "rep@oms.test", "51.50000", "-0.12750"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderer_Employees(t *testing.T) {
	r := NewRenderer()
	assert.Contains(t, r.Employees(nil), "No staff found.")

	out := r.Employees([]platform.Employee{{
		ID: "7", FirstName: "Sam", LastName: "Rivera", Email: "rep@oms.test", Role: domain.RoleSalesRep,
	}})
	for _, want := range []string{"Email", "Sam Rivera (Sales Rep)", "rep@oms.test"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderer_Table(t *testing.T) {
	r := Renderer{styles: Styles{Key: lipgloss.NewStyle()}}
	out := r.table([][]string{{"ID", "Name"}, {"1", "Sam Rep"}, {"22", "Lou"}})
	assert.Equal(t, "ID  Name\n1   Sam Rep\n22  Lou", out)
}
