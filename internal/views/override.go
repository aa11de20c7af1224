package views

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	"github.com/felixgeelhaar/omsctl/internal/platform"
)

const (
	msgOverrideLoadFailed = "Failed to load employee list. Check backend logs for /api/users/employee-list/."
	msgOverrideDone       = "Successfully set employee status to UNAVAILABLE and logged audit trail."
	msgOverrideFailed     = "Override failed."
	msgReasonRequired     = "A reason is mandatory for a status override."
	msgNoEmployee         = "Select an employee."
)

// OverrideView marks an execution-level employee unavailable with an
// audited reason
type OverrideView struct {
	api       API
	session   Session
	employees []platform.Employee
	message   Message

	Selected domain.ID
	Reason   string
}

// NewOverrideView creates the status override screen
func NewOverrideView(api API, s Session) *OverrideView {
	return &OverrideView{api: api, session: s}
}

// Message returns the last outcome
func (v *OverrideView) Message() Message {
	return v.message
}

// Employees returns the staff that may be overridden
func (v *OverrideView) Employees() []platform.Employee {
	return v.employees
}

// Header describes the tool for the signed-in manager
func (v *OverrideView) Header() string {
	user, _ := v.session.User()
	return "Role: " + user.Role.String() + " | Use this to log mandatory audits for status changes."
}

// Load fetches the staff list, keeps execution roles only and selects the
// first one unless a selection is already made
func (v *OverrideView) Load(ctx context.Context) Message {
	all, err := v.api.Employees(ctx)
	if err != nil {
		v.employees = nil
		v.message = failure(msgOverrideLoadFailed)
		return v.message
	}

	staff := make([]platform.Employee, 0, len(all))
	for _, e := range all {
		if e.Role.IsExecution() {
			staff = append(staff, e)
		}
	}
	v.employees = staff

	if v.Selected.IsZero() && len(staff) > 0 {
		v.Selected = staff[0].ID
	}
	v.message = Message{}
	return v.message
}

// Submit records the override for Selected
func (v *OverrideView) Submit(ctx context.Context) Message {
	if v.Selected.IsZero() {
		v.message = failure(msgNoEmployee)
		return v.message
	}
	reason := strings.TrimSpace(v.Reason)
	if reason == "" {
		v.message = failure(msgReasonRequired)
		return v.message
	}

	if err := v.api.OverrideStatus(ctx, v.Selected, reason); err != nil {
		v.message = failure(platform.Message(err, msgOverrideFailed, "status_reason", platform.DetailKey))
		return v.message
	}

	v.Reason = ""
	v.message = success(msgOverrideDone)
	return v.message
}

// Run loads the staff, asks who and why, then submits
func (v *OverrideView) Run(ctx context.Context, p Prompter) (Message, error) {
	if msg := v.Load(ctx); msg.IsError() {
		return msg, nil
	}
	if len(v.employees) == 0 {
		return info("No staff available for override."), nil
	}

	choices := make([]Choice, 0, len(v.employees))
	for _, e := range v.employees {
		choices = append(choices, Choice{Label: e.DisplayName(), Value: e.ID.String()})
	}
	picked, err := p.Select("Select Employee", choices, v.Selected.String())
	if err != nil {
		return Message{}, err
	}
	v.Selected = domain.ID(picked)

	if v.Reason == "" {
		v.Reason, err = p.String(Prompt{
			Message:     "Mandatory Reason for Override",
			Placeholder: "E.g., Sent home due to illness, Safety violation, Training...",
			Required:    true,
			Multiline:   true,
		})
		if err != nil {
			return Message{}, err
		}
	}
	return v.Submit(ctx), nil
}
