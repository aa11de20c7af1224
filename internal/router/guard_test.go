package router

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	"github.com/felixgeelhaar/omsctl/internal/metrics"
)

// rolePrincipal is a session with a fixed role; the zero value has no session
type rolePrincipal struct {
	role domain.Role
}

func (p rolePrincipal) IsAuthenticated() bool { return p.role != "" }

func (p rolePrincipal) Can(c domain.Capability) bool {
	return p.IsAuthenticated() && p.role.Grants(c)
}

func TestResolve(t *testing.T) {
	guest := rolePrincipal{}
	rep := rolePrincipal{role: domain.RoleSalesRep}
	hlm := rolePrincipal{role: domain.RoleHighLevelManager}
	em := rolePrincipal{role: domain.RoleEmployeeManager}

	tests := []struct {
		name      string
		principal Principal
		path      string
		want      string
		state     State
	}{
		{"guest opens login", guest, "/login", PathLogin, Unauthenticated},
		{"guest root goes to login", guest, "/", PathLogin, Unauthenticated},
		{"guest protected goes to login", guest, "/dashboard", PathLogin, Unauthenticated},
		{"guest role-gated goes to login", guest, "/register", PathLogin, Unauthenticated},
		{"guest unknown goes to login", guest, "/nowhere", PathLogin, Unauthenticated},
		{"session root goes to dashboard", rep, "/", PathDashboard, Authenticated},
		{"session login goes to dashboard", rep, "/login", PathDashboard, Authenticated},
		{"session unknown goes to dashboard", rep, "/nowhere", PathDashboard, Authenticated},
		{"sales rep cannot register", rep, "/register", PathDashboard, Unauthorized},
		{"sales rep tracks attendance", rep, "/attendance", PathAttendance, Authenticated},
		{"sales rep cannot approve", rep, "/time-off/pending", PathDashboard, Unauthorized},
		{"high-level manager registers", hlm, "/register", PathRegister, Authenticated},
		{"high-level manager cannot approve", hlm, "/time-off/pending", PathDashboard, Unauthorized},
		{"employee manager cannot register", em, "/register", PathDashboard, Unauthorized},
		{"employee manager approves", em, "/time-off/pending", PathTimeOffPending, Authenticated},
		{"manager cannot clock in", em, "/attendance", PathDashboard, Unauthorized},
		{"trailing slash", hlm, "/analytics/", PathAnalytics, Authenticated},
		{"empty path", hlm, "", PathDashboard, Authenticated},
		{"missing leading slash", rep, "time-off/new", PathTimeOffNew, Authenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewGuard(tt.principal).Resolve(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Route.Path)
			assert.Equal(t, tt.state, d.State)
		})
	}
}

func TestResolve_Hops(t *testing.T) {
	d, err := NewGuard(rolePrincipal{}).Resolve("/unknown")
	require.NoError(t, err)
	assert.Equal(t, []string{PathRoot, PathLogin}, d.Hops)
	assert.True(t, d.Redirected())

	d, err = NewGuard(rolePrincipal{}).Resolve("/login")
	require.NoError(t, err)
	assert.False(t, d.Redirected())
}

// switchingPrincipal answers from a pointer so tests can change the session
// between navigations
type switchingPrincipal struct {
	role *domain.Role
}

func (p switchingPrincipal) IsAuthenticated() bool { return *p.role != "" }
func (p switchingPrincipal) Can(c domain.Capability) bool {
	return p.IsAuthenticated() && p.role.Grants(c)
}

func TestResolve_NoCachingBetweenNavigations(t *testing.T) {
	role := domain.RoleHighLevelManager
	guard := NewGuard(switchingPrincipal{role: &role})

	d, err := guard.Resolve(PathRegister)
	require.NoError(t, err)
	assert.Equal(t, PathRegister, d.Route.Path)

	role = ""
	d, err = guard.Resolve(PathRegister)
	require.NoError(t, err)
	assert.Equal(t, PathLogin, d.Route.Path)
}

func TestResolve_Metrics(t *testing.T) {
	_, m := metrics.NewRegistry()
	guard := NewGuard(rolePrincipal{role: domain.RoleSalesRep}, WithMetrics(m))

	_, err := guard.Resolve(PathRegister)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GuardRedirects.WithLabelValues(PathRegister, PathDashboard, "unauthorized")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Navigations.WithLabelValues(PathDashboard)))
}

func TestVisible(t *testing.T) {
	paths := func(rs []Route) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Path)
		}
		return out
	}

	assert.Empty(t, NewGuard(rolePrincipal{}).Visible())
	assert.Equal(t,
		[]string{PathDashboard, PathAttendance, PathTimeOffNew},
		paths(NewGuard(rolePrincipal{role: domain.RoleDeliveryPersonnel}).Visible()))
	assert.Equal(t,
		[]string{PathDashboard, PathRegister, PathTimeOffPending, PathStaffOverride, PathAnalytics},
		paths(NewGuard(rolePrincipal{role: domain.RoleMiddleLevelManager}).Visible()))
}

func TestLookup(t *testing.T) {
	r, ok := Lookup("/staff/override/")
	require.True(t, ok)
	assert.Equal(t, domain.CapOverrideStatus, r.Capability)
	assert.True(t, r.Protected())

	_, ok = Lookup("/admin")
	assert.False(t, ok)

	r, _ = Lookup("/login")
	assert.False(t, r.Protected())
}

func TestResolve_NeverShowsForbiddenRoute(t *testing.T) {
	var paths []string
	for _, r := range Routes() {
		paths = append(paths, r.Path)
	}
	paths = append(paths, "/unknown", "")
	roles := append([]domain.Role{""}, domain.AllRoles()...)

	rapid.Check(t, func(t *rapid.T) {
		role := rapid.SampledFrom(roles).Draw(t, "role")
		path := rapid.SampledFrom(paths).Draw(t, "path")
		p := rolePrincipal{role: role}

		d, err := NewGuard(p).Resolve(path)
		if err != nil {
			t.Fatalf("resolve %q: %v", path, err)
		}

		shown := d.Route
		if shown.Access == AccessRedirect {
			t.Fatalf("redirect route %q was shown", shown.Path)
		}
		if shown.Protected() && !p.IsAuthenticated() {
			t.Fatalf("protected %q shown without a session", shown.Path)
		}
		if shown.Access == AccessGuest && p.IsAuthenticated() {
			t.Fatalf("guest route shown to %q", role)
		}
		if shown.Capability != "" && !p.Can(shown.Capability) {
			t.Fatalf("%q shown to %q without %s", shown.Path, role, shown.Capability)
		}
	})
}
