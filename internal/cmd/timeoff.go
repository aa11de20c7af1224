package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/platform"
	"github.com/felixgeelhaar/omsctl/internal/router"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

func (c *cli) newTimeOffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "timeoff",
		Aliases: []string{"time-off", "pto"},
		Short:   "Request time off and review requests",
		Long: `Field staff request leave; managers approve or reject pending requests.

Examples:
  # Request a day and a half
  omsctl timeoff request --start 2025-03-03 --end 2025-03-04 --days 1.5 --reason "Family visit"

  # Review pending requests as a manager
  omsctl timeoff pending
  omsctl timeoff approve 42`,
	}
	cmd.AddCommand(
		c.newTimeOffRequestCmd(),
		c.newTimeOffPendingCmd(),
		c.newTimeOffDecisionCmd(platform.DecisionApproved),
		c.newTimeOffDecisionCmd(platform.DecisionRejected),
		c.newTimeOffReviewCmd(),
	)
	return cmd
}

func (c *cli) newTimeOffRequestCmd() *cobra.Command {
	var form views.TimeOffForm

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Submit a leave request",
		Long: `Submit a leave request. Dates use YYYY-MM-DD; days go in half-day steps
and must be at least 0.5. Missing fields are prompted for on a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := c.enter(cmd, router.PathTimeOffNew); !ok || err != nil {
				return err
			}

			v := views.NewTimeOffView(c.app.Client, c.app.Gate)
			v.Form = form

			if c.interactive() {
				c.screen(cmd, v.BalanceText())
				msg, err := v.Run(cmd.Context(), c.app.Prompter)
				if err != nil {
					return err
				}
				return c.report(cmd, msg, omserrors.ErrCodeAPIValidation)
			}

			if _, err := v.Form.Validate(); err != nil {
				return omserrors.Wrap(omserrors.ErrCodeInputInvalid, "invalid time-off request", err).
					WithSuggestion("Pass --start, --end, --days and --reason")
			}
			return c.report(cmd, v.Submit(cmd.Context()), omserrors.ErrCodeAPIValidation)
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.StartDate, "start", "", "first day of leave (YYYY-MM-DD)")
	f.StringVar(&form.EndDate, "end", "", "last day of leave (YYYY-MM-DD)")
	f.StringVar(&form.Days, "days", "", "days requested, e.g. 0.5 or 2")
	f.StringVar(&form.Reason, "reason", "", "reason for the request")
	return cmd
}

type pendingDoc struct {
	Count    int                       `json:"count" yaml:"count"`
	Requests []platform.TimeOffRequest `json:"requests" yaml:"requests"`
}

func (c *cli) newTimeOffPendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List requests awaiting a decision (managers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := c.enter(cmd, router.PathTimeOffPending); !ok || err != nil {
				return err
			}
			v := views.NewApprovalsView(c.app.Client)
			if msg := v.Load(cmd.Context()); msg.IsError() {
				return loadFailed(msg)
			}
			requests := v.Requests()
			if requests == nil {
				requests = []platform.TimeOffRequest{}
			}
			return c.emit(cmd, pendingDoc{Count: len(requests), Requests: requests}, c.app.Renderer.Approvals(v))
		},
	}
}

func (c *cli) newTimeOffDecisionCmd(decision platform.Decision) *cobra.Command {
	use, short := "approve", "Approve a pending request"
	if decision == platform.DecisionRejected {
		use, short = "reject", "Reject a pending request"
	}

	return &cobra.Command{
		Use:   use + " <request-id>",
		Short: short + " (managers)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := c.enter(cmd, router.PathTimeOffPending); !ok || err != nil {
				return err
			}
			id := domain.ID(args[0])
			if id.IsZero() {
				return omserrors.NewInputRequiredError("request_id")
			}
			v := views.NewApprovalsView(c.app.Client)
			return c.report(cmd, v.Decide(cmd.Context(), id, decision), omserrors.ErrCodeAPIRequest)
		},
	}
}

func (c *cli) newTimeOffReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Walk through pending requests interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := c.enter(cmd, router.PathTimeOffPending); !ok || err != nil {
				return err
			}
			if !c.interactive() {
				return omserrors.New(omserrors.ErrCodeInputRequired, "review needs a terminal").
					WithSuggestion("Use 'omsctl timeoff approve <id>' or 'omsctl timeoff reject <id>' in scripts")
			}
			msg, err := views.NewApprovalsView(c.app.Client).Run(cmd.Context(), c.app.Prompter)
			if err != nil {
				return err
			}
			return c.report(cmd, msg, omserrors.ErrCodeAPIRequest)
		},
	}
}
