// Package auth implements the session gate: the only component that creates,
// refreshes and destroys the client session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	"github.com/felixgeelhaar/omsctl/internal/log"
	"github.com/felixgeelhaar/omsctl/internal/metrics"
	"github.com/felixgeelhaar/omsctl/internal/platform"
	"github.com/felixgeelhaar/omsctl/internal/session"
)

// API is the subset of the backend the gate talks to
type API interface {
	ObtainToken(ctx context.Context, email, password string) (*platform.LoginResponse, error)
	RefreshToken(ctx context.Context, refresh string) (*platform.RefreshResponse, error)
	RegisterUser(ctx context.Context, req platform.RegistrationRequest) (*platform.Employee, error)
}

// RegistrationForm is the data a manager enters to create an account
type RegistrationForm struct {
	Email            string
	Password         string
	FirstName        string
	LastName         string
	Role             domain.Role
	ReportingManager domain.ID
}

// Status is a snapshot for display
type Status struct {
	Authenticated   bool
	User            session.UserProfile
	AccessExpiresAt time.Time
	HasExpiry       bool
}

// Gate owns the session.
//
// isAuthenticated, user present and access token present always agree:
// the in-memory session is either nil or complete. Every mutation writes
// the store first and then swaps the in-memory session.
type Gate struct {
	mu      sync.RWMutex
	current *session.Session

	// refreshMu serializes refresh exchanges
	refreshMu sync.Mutex

	store   session.Store
	api     API
	logger  *log.Logger
	metrics *metrics.Metrics
}

// Option configures a Gate
type Option func(*Gate)

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithMetrics records login, refresh and logout outcomes
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

// NewGate creates a gate with no session. Call Restore to pick up a
// persisted one.
func NewGate(store session.Store, api API, opts ...Option) *Gate {
	g := &Gate{
		store:  store,
		api:    api,
		logger: log.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Restore loads the persisted session. An unreadable or incomplete store,
// or a stored role outside the known set, counts as no session.
func (g *Gate) Restore() bool {
	sess, found, err := g.store.Load()
	if err != nil {
		g.logger.WithError(err).Warn("session.restore_failed")
		return false
	}
	if !found {
		return false
	}
	if err := sess.User.Role.Validate(); err != nil {
		g.logger.WithError(err).Warn("session.restore_unknown_role")
		return false
	}

	g.mu.Lock()
	g.current = &sess
	g.mu.Unlock()

	g.logger.Debug("session.restored", "email", sess.User.Email, "role", sess.User.Role)
	return true
}

// Login exchanges credentials for a session
func (g *Gate) Login(ctx context.Context, email, password string) Result {
	resp, err := g.api.ObtainToken(ctx, email, password)
	if err != nil {
		g.metrics.RecordLogin(false)
		g.logger.WithError(err).DebugContext(ctx, "session.login_failed", "email", email)
		return fail(platform.Message(err, MsgLoginFailed, platform.DetailKey))
	}

	if err := resp.Profile.Role.Validate(); err != nil {
		g.metrics.RecordLogin(false)
		g.logger.WithError(err).WarnContext(ctx, "session.login_unknown_role", "email", email)
		return fail(unknownRoleMessage(string(resp.Profile.Role)))
	}

	sess := session.Session{
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
		User:         resp.Profile,
	}
	if !sess.Valid() {
		g.metrics.RecordLogin(false)
		g.logger.WarnContext(ctx, "session.login_incomplete", "email", email)
		return fail(MsgLoginFailed)
	}

	if err := g.store.Save(sess); err != nil {
		g.metrics.RecordLogin(false)
		g.logger.WithError(err).ErrorContext(ctx, "session.save_failed")
		return fail(MsgLoginFailed)
	}

	g.mu.Lock()
	g.current = &sess
	g.mu.Unlock()

	g.metrics.RecordLogin(true)
	g.logger.InfoContext(ctx, "session.login", "email", sess.User.Email, "role", sess.User.Role)
	return ok("")
}

// Logout ends the session. Memory is cleared even if the store fails.
func (g *Gate) Logout() {
	g.endSession("logout")
}

func (g *Gate) endSession(reason string) {
	g.mu.Lock()
	if err := g.store.Clear(); err != nil {
		g.logger.WithError(err).Error("session.clear_failed")
	}
	g.current = nil
	g.mu.Unlock()

	g.metrics.RecordLogout()
	g.logger.Info("session.ended", "reason", reason)
}

// RegisterUser creates an account with the current manager's credentials.
// Without a token no request is made.
func (g *Gate) RegisterUser(ctx context.Context, form RegistrationForm) Result {
	if g.AccessToken() == "" {
		return fail(MsgTokenMissing)
	}

	_, err := g.api.RegisterUser(ctx, platform.RegistrationRequest{
		Email:            form.Email,
		Password:         form.Password,
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		RoleKey:          form.Role,
		ReportingManager: form.ReportingManager,
	})
	if err != nil {
		g.logger.WithError(err).DebugContext(ctx, "session.register_failed", "email", form.Email)
		return fail(platform.Message(err, MsgRegistrationFailed, platform.DetailKey, "email", "role_key"))
	}
	return ok(MsgRegistered)
}

// IsAuthenticated reports whether a session is held
func (g *Gate) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current != nil
}

// User returns the profile of the current session
func (g *Gate) User() (session.UserProfile, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.current == nil {
		return session.UserProfile{}, false
	}
	return g.current.User, true
}

// HasRole reports whether the current user's role is among roles.
// False without a session, and for an empty role list.
func (g *Gate) HasRole(roles ...domain.Role) bool {
	user, ok := g.User()
	return ok && user.Role.In(roles...)
}

// IsManager reports whether the current user is in the manager partition
func (g *Gate) IsManager() bool {
	user, ok := g.User()
	return ok && user.Role.IsManager()
}

// Can reports whether the current user holds capability c
func (g *Gate) Can(c domain.Capability) bool {
	user, ok := g.User()
	return ok && user.Role.Grants(c)
}

// AccessToken returns the current bearer token, or "" without a session
func (g *Gate) AccessToken() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.current == nil {
		return ""
	}
	return g.current.AccessToken
}

// RefreshAccess exchanges the refresh token for a new access token.
// A refusal from the backend ends the session; a transport failure keeps it.
func (g *Gate) RefreshAccess(ctx context.Context, rejected string) error {
	g.refreshMu.Lock()
	defer g.refreshMu.Unlock()

	g.mu.RLock()
	cur := g.current
	g.mu.RUnlock()

	if cur == nil {
		return ErrNoSession
	}
	if rejected != "" && cur.AccessToken != rejected {
		// refreshed by a concurrent request
		return nil
	}

	resp, err := g.api.RefreshToken(ctx, cur.RefreshToken)
	if err != nil {
		g.metrics.RecordRefresh(false)
		var apiErr *platform.APIError
		if errors.As(err, &apiErr) || errors.Is(err, platform.ErrNoAccessToken) {
			g.logger.WithError(err).WarnContext(ctx, "session.refresh_rejected")
			g.endSession("refresh rejected")
			return fmt.Errorf("%w: %v", ErrRefreshRejected, err)
		}
		return fmt.Errorf("refresh failed: %w", err)
	}

	next := *cur
	next.AccessToken = resp.Access
	if resp.Refresh != "" {
		next.RefreshToken = resp.Refresh
	}
	g.mu.Lock()
	if g.current != cur {
		// logged out or replaced while the exchange was in flight
		g.mu.Unlock()
		g.logger.DebugContext(ctx, "session.refresh_discarded")
		return ErrNoSession
	}
	if err := g.store.Save(next); err != nil {
		g.logger.WithError(err).WarnContext(ctx, "session.save_failed")
	}
	g.current = &next
	g.mu.Unlock()

	g.metrics.RecordRefresh(true)
	g.logger.DebugContext(ctx, "session.refreshed")
	return nil
}

// Status returns a display snapshot of the session
func (g *Gate) Status() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.current == nil {
		return Status{}
	}
	st := Status{Authenticated: true, User: g.current.User}
	st.AccessExpiresAt, st.HasExpiry = g.current.AccessExpiresAt()
	return st
}

var _ platform.Credentials = (*Gate)(nil)
