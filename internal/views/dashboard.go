package views

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	"github.com/felixgeelhaar/omsctl/internal/platform"
)

const msgManagementLoadFailed = "Failed to load management data. Access denied or API error."

// Section is one block of the dashboard
type Section string

const (
	SectionKPIs       Section = "kpis"
	SectionAuditLog   Section = "audit_log"
	SectionApprovals  Section = "approvals"
	SectionOverride   Section = "override"
	SectionAttendance Section = "attendance"
	SectionTimeOff    Section = "time_off"
)

// sectionOrder maps each section to the capability that shows it
var sectionOrder = []struct {
	section    Section
	capability domain.Capability
}{
	{SectionKPIs, domain.CapViewAnalytics},
	{SectionAuditLog, domain.CapViewAnalytics},
	{SectionApprovals, domain.CapApproveTimeOff},
	{SectionOverride, domain.CapOverrideStatus},
	{SectionAttendance, domain.CapTrackAttendance},
	{SectionTimeOff, domain.CapRequestTimeOff},
}

// KPICard is one indicator as displayed
type KPICard struct {
	Label   string
	Value   string
	Caption string
}

// DashboardView is the landing screen. What it shows depends on the
// capabilities of the signed-in role.
type DashboardView struct {
	api     API
	session Session

	kpis     *platform.KPIs
	auditLog []platform.StatusAuditEntry
	message  Message
}

// NewDashboardView creates the dashboard
func NewDashboardView(api API, s Session) *DashboardView {
	return &DashboardView{api: api, session: s}
}

// Message returns the last outcome
func (v *DashboardView) Message() Message {
	return v.message
}

// Greeting is the dashboard title line
func (v *DashboardView) Greeting() string {
	user, _ := v.session.User()
	return fmt.Sprintf("Welcome, %s! | %s Dashboard", user.FirstName, user.Role)
}

// PortalTitle heads the execution tools
func (v *DashboardView) PortalTitle() string {
	user, _ := v.session.User()
	return fmt.Sprintf("%s Execution Portal", user.Role)
}

// Sections lists the blocks the current role sees, in display order
func (v *DashboardView) Sections() []Section {
	var out []Section
	for _, s := range sectionOrder {
		if v.session.Can(s.capability) {
			out = append(out, s.section)
		}
	}
	return out
}

// Has reports whether section is shown
func (v *DashboardView) Has(section Section) bool {
	for _, s := range v.Sections() {
		if s == section {
			return true
		}
	}
	return false
}

// Load fetches the management data when the role may see it. The KPIs and
// the audit log are fetched concurrently; either failing fails both.
func (v *DashboardView) Load(ctx context.Context) Message {
	v.kpis, v.auditLog = nil, nil
	v.message = Message{}

	if !v.session.Can(domain.CapViewAnalytics) {
		return v.message
	}

	var (
		kpis     *platform.KPIs
		auditLog []platform.StatusAuditEntry
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		kpis, err = v.api.KPIs(ctx)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		auditLog, err = v.api.StatusAuditLog(ctx)
		return err
	})
	if err := p.Wait(); err != nil {
		v.message = failure(msgManagementLoadFailed)
		return v.message
	}

	v.kpis = kpis
	v.auditLog = auditLog
	return v.message
}

// KPIs returns the loaded indicators, or nil
func (v *DashboardView) KPIs() *platform.KPIs {
	return v.kpis
}

// AuditLog returns the loaded status changes
func (v *DashboardView) AuditLog() []platform.StatusAuditEntry {
	return v.auditLog
}

// KPICards formats the indicators for display
func (v *DashboardView) KPICards() []KPICard {
	if v.kpis == nil {
		return nil
	}
	return []KPICard{
		{Label: "Average Cycle Time", Value: fmt.Sprintf("%.1f min", v.kpis.AverageCycleTimeMinutes), Caption: "Order Creation to Delivery"},
		{Label: "Protocol Adherence %", Value: fmt.Sprintf("%.1f%%", v.kpis.ProtocolAdherencePercent), Caption: "QC Photo compliance for store orders"},
		{Label: "Sales Adherence Rate", Value: fmt.Sprintf("%.1f%%", v.kpis.SalesPlanningAdherenceRate), Caption: "Planned vs. Missed Visits"},
	}
}
