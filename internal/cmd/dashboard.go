package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/omsctl/internal/platform"
	"github.com/felixgeelhaar/omsctl/internal/router"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

type dashboardDoc struct {
	Greeting string                      `json:"greeting" yaml:"greeting"`
	Portal   string                      `json:"portal" yaml:"portal"`
	Sections []views.Section             `json:"sections" yaml:"sections"`
	KPIs     *platform.KPIs              `json:"kpis,omitempty" yaml:"kpis,omitempty"`
	AuditLog []platform.StatusAuditEntry `json:"audit_log,omitempty" yaml:"audit_log,omitempty"`
	Message  *views.Message              `json:"message,omitempty" yaml:"message,omitempty"`
}

func (c *cli) newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the home page for your role",
		Long: `Show the greeting and the sections your role can use.

Managers also get the KPI cards and the status change audit log. A section
that fails to load is reported on the page; the rest is still shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := c.enter(cmd, router.PathDashboard); !ok || err != nil {
				return err
			}
			return c.showDashboard(cmd)
		},
	}
}

// showDashboard renders the landing page. A section that fails to load is
// reported on the page, not as a command failure.
func (c *cli) showDashboard(cmd *cobra.Command) error {
	v := views.NewDashboardView(c.app.Client, c.app.Gate)
	msg := v.Load(cmd.Context())

	doc := dashboardDoc{
		Greeting: v.Greeting(),
		Portal:   v.PortalTitle(),
		Sections: v.Sections(),
		KPIs:     v.KPIs(),
		AuditLog: v.AuditLog(),
	}
	if !msg.IsZero() {
		doc.Message = &msg
	}
	return c.emit(cmd, doc, c.app.Renderer.Dashboard(v))
}
