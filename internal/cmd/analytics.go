package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/omsctl/internal/platform"
	"github.com/felixgeelhaar/omsctl/internal/router"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

func (c *cli) newAnalyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Operational KPIs, status audit log and GPS history (managers)",
		Long: `Read the analytics the backend computes for management.

Examples:
  omsctl analytics kpis
  omsctl analytics audit -o json
  omsctl analytics gps`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "kpis",
			Short: "Show cycle time, protocol adherence and sales planning adherence",
			Args:  cobra.NoArgs,
			RunE: c.analytics(func(cmd *cobra.Command) error {
				v := views.NewDashboardView(c.app.Client, c.app.Gate)
				if msg := v.Load(cmd.Context()); v.KPIs() == nil {
					return loadFailed(msg)
				}
				return c.emit(cmd, v.KPIs(), c.app.Renderer.KPICards(v.KPICards()))
			}),
		},
		&cobra.Command{
			Use:   "audit",
			Short: "Show the status change audit log",
			Args:  cobra.NoArgs,
			RunE: c.analytics(func(cmd *cobra.Command) error {
				entries, err := c.app.Client.StatusAuditLog(cmd.Context())
				if err != nil {
					return err
				}
				if entries == nil {
					entries = []platform.StatusAuditEntry{}
				}
				return c.emit(cmd, entries, c.app.Renderer.AuditLog(entries))
			}),
		},
		&cobra.Command{
			Use:   "gps",
			Short: "Show recorded location fixes of field staff",
			Args:  cobra.NoArgs,
			RunE: c.analytics(func(cmd *cobra.Command) error {
				points, err := c.app.Client.GPSHistory(cmd.Context())
				if err != nil {
					return err
				}
				if points == nil {
					points = []platform.GPSPoint{}
				}
				return c.emit(cmd, points, c.app.Renderer.GPS(points))
			}),
		},
	)
	return cmd
}

func (c *cli) analytics(fn func(*cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if ok, err := c.enter(cmd, router.PathAnalytics); !ok || err != nil {
			return err
		}
		return fn(cmd)
	}
}
