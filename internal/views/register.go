package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/omsctl/internal/auth"
	"github.com/felixgeelhaar/omsctl/internal/domain"
)

// DefaultRegistrationRole is preselected in the role picker
const DefaultRegistrationRole = domain.RoleSalesRep

// RegisterView lets a manager create accounts
type RegisterView struct {
	session Session
	message Message

	// Form holds the pending account; ReportingManager defaults to the
	// signed-in manager and survives a successful submit.
	Form auth.RegistrationForm
}

// NewRegisterView creates the registration screen
func NewRegisterView(s Session) *RegisterView {
	v := &RegisterView{session: s}
	if user, ok := s.User(); ok {
		v.Form.ReportingManager = user.ID
	}
	v.reset()
	return v
}

func (v *RegisterView) reset() {
	v.Form = auth.RegistrationForm{
		Role:             DefaultRegistrationRole,
		ReportingManager: v.Form.ReportingManager,
	}
}

// Message returns the last outcome
func (v *RegisterView) Message() Message {
	return v.message
}

// Roles returns every role a new account may get
func (v *RegisterView) Roles() []domain.Role {
	return domain.AllRoles()
}

// ManagerNote describes the reporting manager that will be recorded
func (v *RegisterView) ManagerNote() string {
	return fmt.Sprintf("Reporting Manager (Default: Your ID): %s", v.Form.ReportingManager)
}

func (v *RegisterView) missingField() string {
	switch {
	case strings.TrimSpace(v.Form.Email) == "":
		return "email"
	case v.Form.Password == "":
		return "password"
	case strings.TrimSpace(v.Form.FirstName) == "":
		return "first name"
	case strings.TrimSpace(v.Form.LastName) == "":
		return "last name"
	case v.Form.Role == "":
		return "role"
	}
	return ""
}

// Submit registers the account in Form
func (v *RegisterView) Submit(ctx context.Context) Message {
	if field := v.missingField(); field != "" {
		v.message = failure(fmt.Sprintf("Error: %s is required.", field))
		return v.message
	}

	res := v.session.RegisterUser(ctx, v.Form)
	if !res.Success {
		v.message = failure("Error: " + res.Message)
		return v.message
	}

	v.reset()
	v.message = success(res.Message)
	return v.message
}

// Run prompts for every field of Form that is still empty
func (v *RegisterView) Run(ctx context.Context, p Prompter) (Message, error) {
	fields := []struct {
		value  *string
		prompt Prompt
	}{
		{&v.Form.Email, Prompt{Message: "Email", Required: true}},
		{&v.Form.Password, Prompt{Message: "Password", Required: true, Secret: true}},
		{&v.Form.FirstName, Prompt{Message: "First Name", Required: true}},
		{&v.Form.LastName, Prompt{Message: "Last Name", Required: true}},
	}
	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		value, err := p.String(f.prompt)
		if err != nil {
			return Message{}, err
		}
		*f.value = value
	}

	choices := make([]Choice, 0, len(v.Roles()))
	for _, r := range v.Roles() {
		choices = append(choices, Choice{Label: r.String(), Value: r.String()})
	}
	role, err := p.Select("Role", choices, v.Form.Role.String())
	if err != nil {
		return Message{}, err
	}
	v.Form.Role = domain.Role(role)

	return v.Submit(ctx), nil
}
