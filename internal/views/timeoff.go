package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	"github.com/felixgeelhaar/omsctl/internal/platform"
)

// DateLayout is the date format the backend expects
const DateLayout = "2006-01-02"

const (
	msgTimeOffSubmitted = "Time Off Request submitted successfully!"
	msgTimeOffFailed    = "Submission failed."
)

// TimeOffForm is a leave request as typed by the user
type TimeOffForm struct {
	StartDate string
	EndDate   string
	Days      string
	Reason    string
}

// TimeOffView submits leave requests
type TimeOffView struct {
	api     API
	session Session
	message Message

	Form TimeOffForm
}

// NewTimeOffView creates the time-off screen
func NewTimeOffView(api API, s Session) *TimeOffView {
	return &TimeOffView{api: api, session: s}
}

// Message returns the last outcome
func (v *TimeOffView) Message() Message {
	return v.message
}

// BalanceText shows the caller's remaining PTO
func (v *TimeOffView) BalanceText() string {
	user, _ := v.session.User()
	return fmt.Sprintf("Available PTO: %s days", user.PTOBalanceDays)
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}

func validateDays(value string) error {
	days, err := domain.ParseDays(value)
	if err != nil {
		return err
	}
	return days.ValidateRequest()
}

// Validate checks the form before anything is sent
func (f TimeOffForm) Validate() (platform.NewTimeOffRequest, error) {
	start, err := parseDate("start date", f.StartDate)
	if err != nil {
		return platform.NewTimeOffRequest{}, err
	}
	end, err := parseDate("end date", f.EndDate)
	if err != nil {
		return platform.NewTimeOffRequest{}, err
	}
	if end.Before(start) {
		return platform.NewTimeOffRequest{}, errors.New("end date must not be before start date")
	}
	days, err := domain.ParseDays(f.Days)
	if err != nil {
		return platform.NewTimeOffRequest{}, err
	}
	if err := days.ValidateRequest(); err != nil {
		return platform.NewTimeOffRequest{}, err
	}
	reason := strings.TrimSpace(f.Reason)
	if reason == "" {
		return platform.NewTimeOffRequest{}, errors.New("reason is required")
	}

	return platform.NewTimeOffRequest{
		StartDate:   start.Format(DateLayout),
		EndDate:     end.Format(DateLayout),
		RequestDays: days,
		Reason:      reason,
	}, nil
}

// Submit sends Form. A rejected form is never sent.
func (v *TimeOffView) Submit(ctx context.Context) Message {
	req, err := v.Form.Validate()
	if err != nil {
		v.message = failure(capitalize(err.Error()) + ".")
		return v.message
	}

	if err := v.api.CreateTimeOffRequest(ctx, req); err != nil {
		v.message = failure(platform.Message(err, msgTimeOffFailed, platform.DetailKey, "request_days"))
		return v.message
	}

	v.Form = TimeOffForm{}
	v.message = success(msgTimeOffSubmitted)
	return v.message
}

// Run prompts for the empty fields of Form and submits
func (v *TimeOffView) Run(ctx context.Context, p Prompter) (Message, error) {
	validDate := func(field string) func(string) error {
		return func(s string) error {
			_, err := parseDate(field, s)
			return err
		}
	}
	fields := []struct {
		value  *string
		prompt Prompt
	}{
		{&v.Form.StartDate, Prompt{Message: "Start Date", Placeholder: DateLayout, Required: true, Validate: validDate("start date")}},
		{&v.Form.EndDate, Prompt{Message: "End Date", Placeholder: DateLayout, Required: true, Validate: validDate("end date")}},
		{&v.Form.Days, Prompt{Message: "Days Requested", Placeholder: "0.5", Required: true, Validate: validateDays}},
		{&v.Form.Reason, Prompt{Message: "Reason", Required: true, Multiline: true}},
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
	return v.Submit(ctx), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
