package views

import (
	"context"

	"github.com/felixgeelhaar/omsctl/internal/platform"
)

const (
	msgAttendanceLoadFailed = "Failed to load status."
	msgClockedIn            = "Clocked In successfully. Start tracking tasks."
	msgClockedOut           = "Clocked Out successfully."
	msgActionFailed         = "Action failed."
)

// AttendanceView shows and toggles the caller's clock-in state
type AttendanceView struct {
	api       API
	clockedIn bool
	message   Message
}

// NewAttendanceView creates the attendance screen. The state starts as
// clocked out until Load succeeds.
func NewAttendanceView(api API) *AttendanceView {
	return &AttendanceView{api: api}
}

// Message returns the last outcome
func (v *AttendanceView) Message() Message {
	return v.message
}

// ClockedIn reports the last known state
func (v *AttendanceView) ClockedIn() bool {
	return v.clockedIn
}

// StatusLabel is the state as shown to the user
func (v *AttendanceView) StatusLabel() string {
	if v.clockedIn {
		return "CLOCK IN ACTIVE"
	}
	return "CLOCKED OUT"
}

// ActionLabel names what Toggle will do
func (v *AttendanceView) ActionLabel() string {
	if v.clockedIn {
		return "CLOCK OUT"
	}
	return "CLOCK IN"
}

// Load fetches the current state
func (v *AttendanceView) Load(ctx context.Context) Message {
	status, err := v.api.AttendanceStatus(ctx)
	if err != nil {
		v.message = failure(msgAttendanceLoadFailed)
		return v.message
	}
	v.clockedIn = status.IsClockedIn
	v.message = Message{}
	return v.message
}

// ClockIn starts a shift
func (v *AttendanceView) ClockIn(ctx context.Context) Message {
	if err := v.api.ClockIn(ctx); err != nil {
		v.message = failure(platform.Message(err, msgActionFailed, platform.DetailKey))
		return v.message
	}
	v.clockedIn = true
	v.message = success(msgClockedIn)
	return v.message
}

// ClockOut ends a shift
func (v *AttendanceView) ClockOut(ctx context.Context) Message {
	if err := v.api.ClockOut(ctx); err != nil {
		v.message = failure(platform.Message(err, msgActionFailed, platform.DetailKey))
		return v.message
	}
	v.clockedIn = false
	v.message = success(msgClockedOut)
	return v.message
}

// Toggle clocks out when clocked in and the other way round
func (v *AttendanceView) Toggle(ctx context.Context) Message {
	if v.clockedIn {
		return v.ClockOut(ctx)
	}
	return v.ClockIn(ctx)
}

// Run loads the state and asks whether to toggle it
func (v *AttendanceView) Run(ctx context.Context, p Prompter) (Message, error) {
	if msg := v.Load(ctx); msg.IsError() {
		return msg, nil
	}

	ok, err := p.Confirm("Status: "+v.StatusLabel()+". "+v.ActionLabel()+" now?", true)
	if err != nil {
		return Message{}, err
	}
	if !ok {
		return info("Status: " + v.StatusLabel()), nil
	}
	return v.Toggle(ctx), nil
}
