package app

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/omsctl/internal/router"
	"github.com/felixgeelhaar/omsctl/internal/tui"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

// MsgLoggedOut is shown after leaving through the menu
const MsgLoggedOut = "Logged out."

// RunUI is the interactive navigator: the login screen until a session
// exists, then the home menu of the routes the role may open. It returns
// when the user quits or aborts a form.
func (a *App) RunUI(ctx context.Context) error {
	notice := views.Message{}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !a.Gate.IsAuthenticated() {
			a.println(a.Renderer.Message(notice))
			msg, err := a.Open(ctx, router.PathLogin)
			if err != nil {
				return quietAbort(err)
			}
			notice = msg
			continue
		}

		nav := views.NewNavBar(a.Gate, a.Guard)
		choice, err := a.runMenu(tui.NewMenuModel(nav.Title(), nav.Links(), a.dashboardLoader(ctx), notice))
		if err != nil {
			return err
		}

		switch choice {
		case tui.ActionQuit, "":
			return nil
		case tui.ActionLogout:
			a.Gate.Logout()
			notice = views.Message{Kind: views.KindInfo, Text: MsgLoggedOut}
			continue
		}

		notice, err = a.Open(ctx, choice)
		if err != nil {
			if errors.Is(err, views.ErrAborted) {
				notice = views.Message{}
				continue
			}
			return err
		}
	}
}

func (a *App) dashboardLoader(ctx context.Context) tui.Loader {
	return func() (string, views.Message) {
		v := views.NewDashboardView(a.Client, a.Gate)
		v.Load(ctx)
		return a.Renderer.Dashboard(v), views.Message{}
	}
}

func quietAbort(err error) error {
	if errors.Is(err, views.ErrAborted) {
		return nil
	}
	return err
}
