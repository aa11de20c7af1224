package router

import (
	"strings"

	"github.com/felixgeelhaar/omsctl/internal/domain"
)

// Paths known to the client
const (
	PathRoot           = "/"
	PathLogin          = "/login"
	PathDashboard      = "/dashboard"
	PathRegister       = "/register"
	PathAttendance     = "/attendance"
	PathTimeOffNew     = "/time-off/new"
	PathTimeOffPending = "/time-off/pending"
	PathStaffOverride  = "/staff/override"
	PathAnalytics      = "/analytics"
)

// Access is who may open a route
type Access int

const (
	// AccessGuest is for routes only shown without a session
	AccessGuest Access = iota
	// AccessAuthenticated requires a session
	AccessAuthenticated
	// AccessRedirect routes never render; they resolve to another path
	AccessRedirect
)

// Route is one entry of the route table.
//
// Capability is required in addition to a session; empty means any
// authenticated user.
type Route struct {
	Path       string
	Title      string
	Access     Access
	Capability domain.Capability
}

// Protected reports whether the route needs a session
func (r Route) Protected() bool {
	return r.Access == AccessAuthenticated
}

var routes = []Route{
	{Path: PathRoot, Access: AccessRedirect},
	{Path: PathLogin, Title: "Login", Access: AccessGuest},
	{Path: PathDashboard, Title: "Dashboard", Access: AccessAuthenticated},
	{Path: PathRegister, Title: "Register User", Access: AccessAuthenticated, Capability: domain.CapRegisterUsers},
	{Path: PathAttendance, Title: "Attendance", Access: AccessAuthenticated, Capability: domain.CapTrackAttendance},
	{Path: PathTimeOffNew, Title: "Request Time Off", Access: AccessAuthenticated, Capability: domain.CapRequestTimeOff},
	{Path: PathTimeOffPending, Title: "Pending Approvals", Access: AccessAuthenticated, Capability: domain.CapApproveTimeOff},
	{Path: PathStaffOverride, Title: "Status Override", Access: AccessAuthenticated, Capability: domain.CapOverrideStatus},
	{Path: PathAnalytics, Title: "Analytics", Access: AccessAuthenticated, Capability: domain.CapViewAnalytics},
}

// Routes returns the route table in menu order
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup finds the route for path. Trailing slashes are ignored.
func Lookup(path string) (Route, bool) {
	path = normalize(path)
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return PathRoot
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = PathRoot
		}
	}
	return path
}
