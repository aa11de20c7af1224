// Package router decides, per navigation, whether the requested screen is
// shown or which screen is shown instead.
package router

import (
	"fmt"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	"github.com/felixgeelhaar/omsctl/internal/log"
	"github.com/felixgeelhaar/omsctl/internal/metrics"
)

// maxHops bounds redirect chains
const maxHops = 8

// State is the access state of a navigation
type State int

const (
	Unauthenticated State = iota
	Authenticated
	Unauthorized
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Unauthorized:
		return "unauthorized"
	default:
		return "unauthenticated"
	}
}

// Principal is the view of the session the guard needs
type Principal interface {
	IsAuthenticated() bool
	Can(c domain.Capability) bool
}

// Decision is the outcome of resolving a path
type Decision struct {
	Requested string

	// State is the access state of the requested path
	State State

	// Route is the route actually shown
	Route Route

	// Hops lists every path visited after Requested
	Hops []string
}

// Redirected reports whether the shown route differs from the requested path
func (d Decision) Redirected() bool {
	return len(d.Hops) > 0
}

// Guard resolves navigations against the current session. It holds no
// state between navigations.
type Guard struct {
	principal Principal
	logger    *log.Logger
	metrics   *metrics.Metrics
}

// Option configures a Guard
type Option func(*Guard)

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithMetrics counts navigations and redirects
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Guard) {
		g.metrics = m
	}
}

// NewGuard creates a guard over principal
func NewGuard(principal Principal, opts ...Option) *Guard {
	g := &Guard{principal: principal, logger: log.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Resolve follows redirects from path to the route that is actually shown
func (g *Guard) Resolve(path string) (Decision, error) {
	d := Decision{Requested: path}
	current := normalize(path)

	for hop := 0; hop <= maxHops; hop++ {
		route, state, next, reason := g.step(current)
		if hop == 0 {
			d.State = state
		}
		if next == "" {
			d.Route = route
			g.metrics.RecordNavigation(route.Path)
			if d.Redirected() {
				g.logger.Debug("router.resolved", "requested", path, "shown", route.Path, "hops", len(d.Hops))
			}
			return d, nil
		}

		g.metrics.RecordRedirect(current, next, reason)
		d.Hops = append(d.Hops, next)
		current = next
	}

	return d, fmt.Errorf("redirect loop resolving %q: %v", path, d.Hops)
}

// step evaluates one path. A non-empty next means redirect.
func (g *Guard) step(path string) (route Route, state State, next, reason string) {
	authed := g.principal.IsAuthenticated()
	state = Unauthenticated
	if authed {
		state = Authenticated
	}

	route, ok := Lookup(path)
	if !ok {
		return Route{}, state, PathRoot, "unknown"
	}

	switch route.Access {
	case AccessRedirect:
		if authed {
			return route, state, PathDashboard, "root"
		}
		return route, state, PathLogin, "root"
	case AccessGuest:
		if authed {
			return route, state, PathDashboard, "guest_only"
		}
	case AccessAuthenticated:
		if !authed {
			return route, state, PathLogin, "unauthenticated"
		}
		if route.Capability != "" && !g.principal.Can(route.Capability) {
			return route, Unauthorized, PathDashboard, "unauthorized"
		}
	}

	return route, state, "", ""
}

// Visible returns the authenticated routes the principal may open, in menu
// order. Used to build navigation.
func (g *Guard) Visible() []Route {
	if !g.principal.IsAuthenticated() {
		return nil
	}
	var out []Route
	for _, r := range routes {
		if r.Access != AccessAuthenticated {
			continue
		}
		if r.Capability == "" || g.principal.Can(r.Capability) {
			out = append(out, r)
		}
	}
	return out
}
