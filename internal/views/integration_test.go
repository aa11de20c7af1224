package views_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/omsctl/internal/auth"
	"github.com/felixgeelhaar/omsctl/internal/domain"
	"github.com/felixgeelhaar/omsctl/internal/platform"
	"github.com/felixgeelhaar/omsctl/internal/platform/platformtest"
	"github.com/felixgeelhaar/omsctl/internal/router"
	"github.com/felixgeelhaar/omsctl/internal/session"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

func backend(t *testing.T) (*platformtest.Server, *platform.Client, *auth.Gate) {
	t.Helper()
	srv := platformtest.New(t)
	srv.AddUser(platformtest.User{Email: "em@oms.test", Password: "pw", FirstName: "Erin", Role: domain.RoleEmployeeManager})
	srv.AddUser(platformtest.User{Email: "rep@oms.test", Password: "pw", FirstName: "Sam", LastName: "Rep", Role: domain.RoleSalesRep})
	srv.AddUser(platformtest.User{Email: "lab@oms.test", Password: "pw", FirstName: "Lou", LastName: "Lab", Role: domain.RoleLabPersonnel})

	client := platform.NewClient(srv.URL())
	gate := auth.NewGate(session.NewMemoryStore(), client)
	client.SetCredentials(gate)
	return srv, client, gate
}

func TestOverrideView_EnvelopeAndBareListsAgree(t *testing.T) {
	ctx := context.Background()
	srv, client, gate := backend(t)
	require.True(t, gate.Login(ctx, "em@oms.test", "pw").Success)

	bare := views.NewOverrideView(client, gate)
	require.True(t, bare.Load(ctx).IsZero())

	srv.SetEnvelopeEmployees(true)
	wrapped := views.NewOverrideView(client, gate)
	require.True(t, wrapped.Load(ctx).IsZero())

	assert.Equal(t, bare.Employees(), wrapped.Employees())
	assert.Len(t, bare.Employees(), 2)
	assert.Equal(t, bare.Selected, wrapped.Selected)
}

func TestOverrideView_Backend(t *testing.T) {
	ctx := context.Background()
	srv, client, gate := backend(t)
	require.True(t, gate.Login(ctx, "em@oms.test", "pw").Success)

	v := views.NewOverrideView(client, gate)
	require.True(t, v.Load(ctx).IsZero())

	v.Reason = "Training"
	msg := v.Submit(ctx)
	require.Equal(t, views.KindSuccess, msg.Kind, msg.Text)
	assert.Equal(t, 1, srv.AuditLen())

	dash := views.NewDashboardView(client, gate)
	require.True(t, dash.Load(ctx).IsZero())
	assert.Len(t, dash.AuditLog(), 1)
	assert.Len(t, dash.KPICards(), 3)
}

func TestTimeOffAndApprovals_Backend(t *testing.T) {
	ctx := context.Background()
	_, client, gate := backend(t)

	require.True(t, gate.Login(ctx, "rep@oms.test", "pw").Success)
	req := views.NewTimeOffView(client, gate)
	req.Form = views.TimeOffForm{StartDate: "2026-05-04", EndDate: "2026-05-05", Days: "2", Reason: "Wedding"}
	require.Equal(t, views.KindSuccess, req.Submit(ctx).Kind)

	req.Form = views.TimeOffForm{StartDate: "2026-06-01", EndDate: "2026-06-30", Days: "20", Reason: "Travel"}
	assert.Equal(t, "Insufficient PTO balance.", req.Submit(ctx).Text)

	gate.Logout()
	require.True(t, gate.Login(ctx, "em@oms.test", "pw").Success)

	approvals := views.NewApprovalsView(client)
	require.True(t, approvals.Load(ctx).IsZero())
	require.Len(t, approvals.Requests(), 1)

	id := approvals.Requests()[0].ID
	msg := approvals.Decide(ctx, id, platform.DecisionApproved)
	assert.Equal(t, "Request "+id.String()+" APPROVED.", msg.Text)
	assert.Empty(t, approvals.Requests())
}

func TestNavBar(t *testing.T) {
	ctx := context.Background()
	_, _, gate := backend(t)
	nav := views.NewNavBar(gate, router.NewGuard(gate))

	assert.Equal(t, "OMS/WMS", nav.Title())
	assert.Empty(t, nav.Links())

	require.True(t, gate.Login(ctx, "rep@oms.test", "pw").Success)
	assert.Equal(t, "OMS/WMS | Sales Rep", nav.Title())
	for _, l := range nav.Links() {
		assert.NotEqual(t, router.PathRegister, l.Path)
	}
}
