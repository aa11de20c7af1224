package cmd

import (
	"github.com/spf13/cobra"

	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/router"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

type attendanceDoc struct {
	ClockedIn bool   `json:"clocked_in" yaml:"clocked_in"`
	Status    string `json:"status" yaml:"status"`
}

func (c *cli) newAttendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Clock in and out (field staff)",
		Long: `Check your attendance status and clock in or out.

Examples:
  omsctl attendance status
  omsctl attendance toggle`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show whether you are clocked in",
			Args:  cobra.NoArgs,
			RunE: c.attendance(func(cmd *cobra.Command, v *views.AttendanceView) error {
				if msg := v.Load(cmd.Context()); msg.IsError() {
					return loadFailed(msg)
				}
				doc := attendanceDoc{ClockedIn: v.ClockedIn(), Status: v.StatusLabel()}
				return c.emit(cmd, doc, c.app.Renderer.Attendance(v))
			}),
		},
		&cobra.Command{
			Use:   "in",
			Short: "Clock in",
			Args:  cobra.NoArgs,
			RunE: c.attendance(func(cmd *cobra.Command, v *views.AttendanceView) error {
				return c.report(cmd, v.ClockIn(cmd.Context()), omserrors.ErrCodeAPIRequest)
			}),
		},
		&cobra.Command{
			Use:   "out",
			Short: "Clock out",
			Args:  cobra.NoArgs,
			RunE: c.attendance(func(cmd *cobra.Command, v *views.AttendanceView) error {
				return c.report(cmd, v.ClockOut(cmd.Context()), omserrors.ErrCodeAPIRequest)
			}),
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Clock in when out, out when in",
			Args:  cobra.NoArgs,
			RunE: c.attendance(func(cmd *cobra.Command, v *views.AttendanceView) error {
				if msg := v.Load(cmd.Context()); msg.IsError() {
					return loadFailed(msg)
				}
				return c.report(cmd, v.Toggle(cmd.Context()), omserrors.ErrCodeAPIRequest)
			}),
		},
	)
	return cmd
}

// attendance runs fn on the attendance page once the guard lets us in
func (c *cli) attendance(fn func(*cobra.Command, *views.AttendanceView) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if ok, err := c.enter(cmd, router.PathAttendance); !ok || err != nil {
			return err
		}
		return fn(cmd, views.NewAttendanceView(c.app.Client))
	}
}
