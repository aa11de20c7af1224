package views

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	"github.com/felixgeelhaar/omsctl/internal/platform"
)

const (
	msgApprovalsLoadFailed = "Failed to load pending requests."
	// EmptyApprovalsText is shown when nothing awaits a decision
	EmptyApprovalsText = "No requests awaiting your approval."
)

// ApprovalsView lists pending leave requests and records decisions
type ApprovalsView struct {
	api      API
	requests []platform.TimeOffRequest
	message  Message
}

// NewApprovalsView creates the approvals screen
func NewApprovalsView(api API) *ApprovalsView {
	return &ApprovalsView{api: api}
}

// Message returns the last outcome
func (v *ApprovalsView) Message() Message {
	return v.message
}

// Requests returns the loaded requests
func (v *ApprovalsView) Requests() []platform.TimeOffRequest {
	return v.requests
}

// Title is the list heading with its count
func (v *ApprovalsView) Title() string {
	return fmt.Sprintf("Pending Time Off Requests (%d)", len(v.requests))
}

// Load fetches the pending requests
func (v *ApprovalsView) Load(ctx context.Context) Message {
	if err := v.reload(ctx); err != nil {
		v.message = failure(msgApprovalsLoadFailed)
	}
	return v.message
}

func (v *ApprovalsView) reload(ctx context.Context) error {
	requests, err := v.api.PendingTimeOffRequests(ctx)
	if err != nil {
		return err
	}
	v.requests = requests
	return nil
}

// Decide approves or rejects request id and reloads the list. A failed
// reload replaces the confirmation.
func (v *ApprovalsView) Decide(ctx context.Context, id domain.ID, decision platform.Decision) Message {
	if err := v.api.DecideTimeOffRequest(ctx, id, decision); err != nil {
		v.message = failure(platform.Message(err, msgActionFailed, platform.DetailKey))
		return v.message
	}

	v.message = success(fmt.Sprintf("Request %s %s.", id, decision.Past()))
	if err := v.reload(ctx); err != nil {
		v.message = failure(msgApprovalsLoadFailed)
	}
	return v.message
}

// RequestLabel is the one-line summary used in pickers and tables
func RequestLabel(r platform.TimeOffRequest) string {
	return fmt.Sprintf("#%s %s: %s to %s (%s days) %s", r.ID, r.User, r.StartDate, r.EndDate, r.RequestDays, r.Reason)
}

const doneChoice = "done"

// Run loops over the pending list until the user is done
func (v *ApprovalsView) Run(ctx context.Context, p Prompter) (Message, error) {
	if msg := v.Load(ctx); msg.IsError() {
		return msg, nil
	}

	last := Message{}
	for len(v.requests) > 0 {
		choices := make([]Choice, 0, len(v.requests)+1)
		for _, r := range v.requests {
			choices = append(choices, Choice{Label: RequestLabel(r), Value: r.ID.String()})
		}
		choices = append(choices, Choice{Label: "Done", Value: doneChoice})

		picked, err := p.Select(v.Title(), choices, choices[0].Value)
		if err != nil {
			return Message{}, err
		}
		if picked == doneChoice {
			return last, nil
		}

		verdict, err := p.Select("Decision", []Choice{
			{Label: "Approve", Value: string(platform.DecisionApproved)},
			{Label: "Reject", Value: string(platform.DecisionRejected)},
		}, string(platform.DecisionApproved))
		if err != nil {
			return Message{}, err
		}

		last = v.Decide(ctx, domain.ID(picked), platform.Decision(verdict))
		if last.IsError() {
			return last, nil
		}
	}

	if last.IsZero() {
		return info(EmptyApprovalsText), nil
	}
	return last, nil
}
