package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/omsctl/internal/platform"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

// Renderer turns view state into terminal text
type Renderer struct {
	styles Styles
}

// NewRenderer creates a renderer with the default styles
func NewRenderer() Renderer {
	return Renderer{styles: DefaultStyles()}
}

// Styles returns the styles in use
func (r Renderer) Styles() Styles {
	return r.styles
}

// Message renders a banner, or "" when there is nothing to show
func (r Renderer) Message(m views.Message) string {
	if m.IsZero() {
		return ""
	}
	return r.styles.Message(m)
}

// KPICards renders the indicators side by side
func (r Renderer) KPICards(cards []views.KPICard) string {
	if len(cards) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(cards))
	for _, c := range cards {
		body := lipgloss.JoinVertical(lipgloss.Left,
			c.Label,
			r.styles.CardValue.Render(c.Value),
			r.styles.Muted.Render(c.Caption),
		)
		blocks = append(blocks, r.styles.Card.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// AuditLog renders the status change table
func (r Renderer) AuditLog(entries []platform.StatusAuditEntry) string {
	var b strings.Builder
	b.WriteString(r.styles.Status.Render("Staff Status Audit Log"))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(r.styles.Muted.Render("No status changes recorded."))
		return b.String()
	}

	rows := [][]string{{"Time", "User", "Override By", "Status Change", "Reason"}}
	for _, e := range entries {
		rows = append(rows, []string{
			e.ChangeTime.Local().Format("15:04:05"),
			e.UserEmail,
			e.ChangedByEmail,
			e.OldStatus + " → " + e.NewStatus,
			e.StatusReason,
		})
	}
	b.WriteString(r.table(rows))
	return b.String()
}

// Approvals renders the pending request table
func (r Renderer) Approvals(v *views.ApprovalsView) string {
	var b strings.Builder
	b.WriteString(r.styles.Status.Render(v.Title()))
	b.WriteString("\n")
	if len(v.Requests()) == 0 {
		b.WriteString(views.EmptyApprovalsText)
		return b.String()
	}

	rows := [][]string{{"ID", "Employee (ID)", "Dates", "Days", "Reason"}}
	for _, req := range v.Requests() {
		rows = append(rows, []string{
			req.ID.String(),
			req.User,
			req.StartDate + " to " + req.EndDate,
			req.RequestDays.String(),
			req.Reason,
		})
	}
	b.WriteString(r.table(rows))
	return b.String()
}

// Employees renders a staff list
func (r Renderer) Employees(list []platform.Employee) string {
	if len(list) == 0 {
		return r.styles.Muted.Render("No staff found.")
	}
	rows := [][]string{{"ID", "Name", "Email"}}
	for _, e := range list {
		rows = append(rows, []string{e.ID.String(), e.DisplayName(), e.Email})
	}
	return r.table(rows)
}

// GPS renders recorded location fixes
func (r Renderer) GPS(points []platform.GPSPoint) string {
	if len(points) == 0 {
		return r.styles.Muted.Render("No location fixes recorded.")
	}
	rows := [][]string{{"Time", "User", "Latitude", "Longitude"}}
	for _, p := range points {
		rows = append(rows, []string{
			p.RecordedAt.Local().Format("2006-01-02 15:04"),
			p.UserEmail,
			strconv.FormatFloat(p.Latitude, 'f', 5, 64),
			strconv.FormatFloat(p.Longitude, 'f', 5, 64),
		})
	}
	return r.table(rows)
}

// Attendance renders the clock state
func (r Renderer) Attendance(v *views.AttendanceView) string {
	style := r.styles.Error
	if v.ClockedIn() {
		style = r.styles.Success
	}
	return "Status: " + style.Render(v.StatusLabel())
}

// Dashboard renders the sections the role may see. Sections that need their
// own data (approvals, attendance) are summarized with the command to open.
func (r Renderer) Dashboard(v *views.DashboardView) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(v.Greeting()))
	b.WriteString("\n")

	if msg := r.Message(v.Message()); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n\n")
	}

	execution := v.Has(views.SectionAttendance) || v.Has(views.SectionTimeOff)
	if execution {
		b.WriteString(r.styles.Subtitle.Render(v.PortalTitle()))
		b.WriteString("\n")
	}

	for _, s := range v.Sections() {
		switch s {
		case views.SectionKPIs:
			if cards := r.KPICards(v.KPICards()); cards != "" {
				b.WriteString(cards)
				b.WriteString("\n\n")
			}
		case views.SectionAuditLog:
			if v.KPIs() != nil {
				b.WriteString(r.AuditLog(v.AuditLog()))
				b.WriteString("\n\n")
			}
		case views.SectionApprovals:
			b.WriteString(r.hint("Pending time off approvals", "omsctl timeoff pending"))
		case views.SectionOverride:
			b.WriteString(r.hint("Staff status override", "omsctl staff override"))
		case views.SectionAttendance:
			b.WriteString(r.hint("Clock in / clock out", "omsctl attendance toggle"))
		case views.SectionTimeOff:
			b.WriteString(r.hint("Submit a time off request", "omsctl timeoff request"))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r Renderer) hint(label, command string) string {
	return fmt.Sprintf("• %s  %s\n", label, r.styles.Muted.Render(command))
}

// table lays out rows with padded columns; the first row is the header
func (r Renderer) table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for n, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		line := strings.TrimRight(strings.Join(cells, "  "), " ")
		if n == 0 {
			line = r.styles.Key.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
