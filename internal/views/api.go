package views

import (
	"context"

	"github.com/felixgeelhaar/omsctl/internal/auth"
	"github.com/felixgeelhaar/omsctl/internal/domain"
	"github.com/felixgeelhaar/omsctl/internal/platform"
	"github.com/felixgeelhaar/omsctl/internal/session"
)

//go:generate mockgen -destination=mocks/mock_views.go -package=mocks github.com/felixgeelhaar/omsctl/internal/views API,Session

// API is the part of the backend the feature views use
type API interface {
	AttendanceStatus(ctx context.Context) (*platform.AttendanceStatus, error)
	ClockIn(ctx context.Context) error
	ClockOut(ctx context.Context) error

	CreateTimeOffRequest(ctx context.Context, req platform.NewTimeOffRequest) error
	PendingTimeOffRequests(ctx context.Context) ([]platform.TimeOffRequest, error)
	DecideTimeOffRequest(ctx context.Context, id domain.ID, decision platform.Decision) error

	Employees(ctx context.Context) ([]platform.Employee, error)
	OverrideStatus(ctx context.Context, userID domain.ID, reason string) error

	KPIs(ctx context.Context) (*platform.KPIs, error)
	StatusAuditLog(ctx context.Context) ([]platform.StatusAuditEntry, error)
}

// Session is the part of the session gate the views use
type Session interface {
	Login(ctx context.Context, email, password string) auth.Result
	RegisterUser(ctx context.Context, form auth.RegistrationForm) auth.Result
	User() (session.UserProfile, bool)
	Can(c domain.Capability) bool
}

var (
	_ API     = (*platform.Client)(nil)
	_ Session = (*auth.Gate)(nil)
)
