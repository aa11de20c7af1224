package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/platform"
	"github.com/felixgeelhaar/omsctl/internal/router"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

func (c *cli) newStaffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "List staff and override their status (managers)",
		Long: `List the staff known to the backend and mark field staff unavailable.

Every override is recorded in the status audit log with your reason.

Examples:
  omsctl staff list
  omsctl staff override --user 7 --reason "Sent home due to illness"`,
	}
	cmd.AddCommand(c.newStaffListCmd(), c.newStaffOverrideCmd())
	return cmd
}

func (c *cli) newStaffListCmd() *cobra.Command {
	var execution bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List staff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := c.enter(cmd, router.PathStaffOverride); !ok || err != nil {
				return err
			}

			var employees []platform.Employee
			if execution {
				v := views.NewOverrideView(c.app.Client, c.app.Gate)
				if msg := v.Load(cmd.Context()); msg.IsError() {
					return loadFailed(msg)
				}
				employees = v.Employees()
			} else {
				var err error
				if employees, err = c.app.Client.Employees(cmd.Context()); err != nil {
					return err
				}
			}
			if employees == nil {
				employees = []platform.Employee{}
			}
			return c.emit(cmd, employees, c.app.Renderer.Employees(employees))
		},
	}
	cmd.Flags().BoolVar(&execution, "execution", false, "only staff whose status can be overridden")
	return cmd
}

func (c *cli) newStaffOverrideCmd() *cobra.Command {
	var user, reason string

	cmd := &cobra.Command{
		Use:   "override",
		Short: "Mark a field employee unavailable",
		Long: `Set an execution-level employee's status to UNAVAILABLE.

A reason is mandatory and ends up in the audit log. On a terminal the
employee and reason are prompted for when not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := c.enter(cmd, router.PathStaffOverride); !ok || err != nil {
				return err
			}

			v := views.NewOverrideView(c.app.Client, c.app.Gate)
			if user != "" {
				v.Selected = domain.ID(user)
			}
			v.Reason = reason

			if c.interactive() && (user == "" || strings.TrimSpace(reason) == "") {
				c.screen(cmd, v.Header())
				msg, err := v.Run(cmd.Context(), c.app.Prompter)
				if err != nil {
					return err
				}
				return c.report(cmd, msg, omserrors.ErrCodeAPIValidation)
			}

			if user == "" {
				return omserrors.NewInputRequiredError("user")
			}
			if strings.TrimSpace(reason) == "" {
				return omserrors.NewInputRequiredError("reason")
			}
			if msg := v.Load(cmd.Context()); msg.IsError() {
				return loadFailed(msg)
			}
			if !overridable(v.Employees(), v.Selected) {
				return omserrors.New(omserrors.ErrCodeInputInvalid,
					fmt.Sprintf("employee %s cannot be overridden", v.Selected)).
					WithSuggestion("Run 'omsctl staff list --execution' to see who can be")
			}
			return c.report(cmd, v.Submit(cmd.Context()), omserrors.ErrCodeAPIValidation)
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "ID of the employee to mark unavailable")
	cmd.Flags().StringVar(&reason, "reason", "", "mandatory reason for the audit log")
	return cmd
}

func overridable(staff []platform.Employee, id domain.ID) bool {
	for _, e := range staff {
		if e.ID == id {
			return true
		}
	}
	return false
}
