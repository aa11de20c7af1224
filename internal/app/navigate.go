package app

import (
	"context"
	"fmt"

	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/router"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

// Enter resolves path through the guard and returns the route to show.
// A redirect to the login screen runs the login form when the client is
// interactive, then resolves path again. A route the role lacks quietly
// becomes the dashboard; callers compare the returned path with the one
// they asked for.
func (a *App) Enter(ctx context.Context, path string) (router.Route, error) {
	d, err := a.Guard.Resolve(path)
	if err != nil {
		return router.Route{}, err
	}
	if !d.Redirected() {
		return d.Route, nil
	}

	route, known := router.Lookup(path)
	switch {
	case !known:
		return router.Route{}, omserrors.New(omserrors.ErrCodeInputInvalid, fmt.Sprintf("unknown page %q", path))
	case d.Route.Path == router.PathLogin:
		if !a.Interactive() {
			return router.Route{}, omserrors.NewNotLoggedInError()
		}
		msg, err := views.NewLoginView(a.Gate).Run(ctx, a.Prompter, "", "")
		if err != nil {
			return router.Route{}, err
		}
		if msg.IsError() {
			return router.Route{}, omserrors.NewLoginFailedError(msg.Text)
		}
		a.println(a.Renderer.Message(msg))
		return a.Enter(ctx, path)
	case d.State == router.Unauthorized:
		user, _ := a.Gate.User()
		a.Logger.Info("router.downgraded", "requested", route.Path, "shown", d.Route.Path, "role", user.Role.String())
		return d.Route, nil
	default:
		// guest-only or redirect-only route
		return d.Route, nil
	}
}

// Open shows the screen for path interactively and returns its outcome.
// Redirects are followed: the screen shown is the one the guard picks.
func (a *App) Open(ctx context.Context, path string) (views.Message, error) {
	d, err := a.Guard.Resolve(path)
	if err != nil {
		return views.Message{}, err
	}
	if !a.Interactive() {
		return views.Message{}, fmt.Errorf("cannot open %s without a terminal", d.Route.Path)
	}

	switch d.Route.Path {
	case router.PathLogin:
		return views.NewLoginView(a.Gate).Run(ctx, a.Prompter, "", "")

	case router.PathDashboard:
		v := views.NewDashboardView(a.Client, a.Gate)
		v.Load(ctx)
		a.println(a.Renderer.Dashboard(v))
		return views.Message{}, nil

	case router.PathRegister:
		v := views.NewRegisterView(a.Gate)
		a.println(v.ManagerNote())
		return v.Run(ctx, a.Prompter)

	case router.PathAttendance:
		return views.NewAttendanceView(a.Client).Run(ctx, a.Prompter)

	case router.PathTimeOffNew:
		v := views.NewTimeOffView(a.Client, a.Gate)
		a.println(v.BalanceText())
		return v.Run(ctx, a.Prompter)

	case router.PathTimeOffPending:
		return views.NewApprovalsView(a.Client).Run(ctx, a.Prompter)

	case router.PathStaffOverride:
		v := views.NewOverrideView(a.Client, a.Gate)
		a.println(v.Header())
		return v.Run(ctx, a.Prompter)

	case router.PathAnalytics:
		v := views.NewDashboardView(a.Client, a.Gate)
		msg := v.Load(ctx)
		if !msg.IsError() {
			a.println(a.Renderer.KPICards(v.KPICards()))
			a.println(a.Renderer.AuditLog(v.AuditLog()))
		}
		return msg, nil
	}

	return views.Message{}, fmt.Errorf("no screen for %s", d.Route.Path)
}

func (a *App) println(s string) {
	if s == "" {
		return
	}
	fmt.Fprintln(a.out, s)
}
