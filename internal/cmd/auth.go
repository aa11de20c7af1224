package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/omsctl/internal/app"
	"github.com/felixgeelhaar/omsctl/internal/domain"
	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/router"
	"github.com/felixgeelhaar/omsctl/internal/session"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

const (
	msgAlreadyLoggedIn = "Already logged in as %s (%s). Run 'omsctl auth logout' to switch accounts."
	msgNotLoggedIn     = "Not logged in."
)

func (c *cli) newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, sign out and manage accounts",
		Long: `Manage the session stored in $OMS_HOME/session.json.

The session holds an access token, a refresh token and your profile. Expired
access tokens are refreshed automatically; when the refresh token is refused
the session ends and you must sign in again.`,
	}
	cmd.AddCommand(
		c.newAuthLoginCmd(),
		c.newAuthLogoutCmd(),
		c.newAuthStatusCmd(),
		c.newAuthRegisterCmd(),
	)
	return cmd
}

func (c *cli) newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the OMS backend",
		Long: `Exchange your email and password for a session.

Missing credentials are prompted for on a terminal. With --no-input both
flags are required.

Examples:
  # Sign in interactively
  omsctl auth login

  # Sign in from a script
  omsctl auth login --no-input --email rep@example.com --password "$OMS_PASSWORD"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			route, err := a.Enter(cmd.Context(), router.PathLogin)
			if err != nil {
				return err
			}
			if route.Path != router.PathLogin {
				user, _ := a.Gate.User()
				return c.report(cmd, views.Message{
					Kind: views.KindInfo,
					Text: fmt.Sprintf(msgAlreadyLoggedIn, user.Email, user.Role),
				}, "")
			}

			v := views.NewLoginView(a.Gate)
			var msg views.Message
			if c.interactive() {
				msg, err = v.Run(cmd.Context(), a.Prompter, email, password)
				if err != nil {
					return err
				}
			} else {
				if strings.TrimSpace(email) == "" {
					return omserrors.NewInputRequiredError("email")
				}
				if password == "" {
					return omserrors.NewInputRequiredError("password")
				}
				msg = v.Submit(cmd.Context(), email, password)
			}

			if msg.IsError() {
				return omserrors.NewLoginFailedError(msg.Text)
			}
			return c.report(cmd, msg, omserrors.ErrCodeLoginFailed)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func (c *cli) newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and delete the stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// a stored session Restore refused still gets deleted
			wasIn := c.app.Gate.IsAuthenticated()
			c.app.Gate.Logout()
			if !wasIn {
				return c.report(cmd, views.Message{Kind: views.KindInfo, Text: msgNotLoggedIn}, "")
			}
			return c.report(cmd, views.Message{Kind: views.KindSuccess, Text: app.MsgLoggedOut}, "")
		},
	}
}

// authStatus is the machine-readable form of 'auth status'
type authStatus struct {
	Authenticated   bool                 `json:"authenticated" yaml:"authenticated"`
	Server          string               `json:"server" yaml:"server"`
	User            *session.UserProfile `json:"user,omitempty" yaml:"user,omitempty"`
	AccessExpiresAt *time.Time           `json:"access_expires_at,omitempty" yaml:"access_expires_at,omitempty"`
	Pages           []string             `json:"pages,omitempty" yaml:"pages,omitempty"`
}

func (c *cli) newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show who is signed in",
		Long: `Show the signed-in user, their role and the pages that role may open.

The access token expiry is read from the token itself and is informational;
the backend decides when a token is no longer accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			st := a.Gate.Status()
			out := authStatus{
				Authenticated: st.Authenticated,
				Server:        a.Client.BaseURL(),
			}
			if !st.Authenticated {
				return c.emit(cmd, out, fmt.Sprintf("%s\nServer: %s", msgNotLoggedIn, out.Server))
			}

			user := st.User
			out.User = &user
			if st.HasExpiry {
				exp := st.AccessExpiresAt
				out.AccessExpiresAt = &exp
			}
			for _, r := range a.Guard.Visible() {
				out.Pages = append(out.Pages, r.Path)
			}
			return c.emit(cmd, out, statusText(out, user))
		},
	}
}

func statusText(out authStatus, user session.UserProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Logged in as %s (%s)\n", user.Email, user.Role)
	fmt.Fprintf(&b, "Name:        %s %s\n", user.FirstName, user.LastName)
	if user.Role.IsExecution() {
		fmt.Fprintf(&b, "PTO balance: %s days\n", user.PTOBalanceDays)
	}
	if out.AccessExpiresAt != nil {
		fmt.Fprintf(&b, "Access token expires: %s\n", out.AccessExpiresAt.Local().Format(time.RFC1123))
	}
	fmt.Fprintf(&b, "Server:      %s\n", out.Server)
	fmt.Fprintf(&b, "Pages:       %s", strings.Join(out.Pages, ", "))
	return b.String()
}

func (c *cli) newAuthRegisterCmd() *cobra.Command {
	var (
		email, password     string
		firstName, lastName string
		role, manager       string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (High and Middle Level Managers)",
		Long: `Create an account that reports to you, or to --manager.

Roles: ` + roleList() + `

Examples:
  # Fill in the form interactively
  omsctl auth register

  # Register a sales rep from a script
  omsctl auth register --no-input --email new@example.com --password s3cret \
    --first-name Ana --last-name Lopez --role "Sales Rep"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			if ok, err := c.enter(cmd, router.PathRegister); !ok || err != nil {
				return err
			}

			v := views.NewRegisterView(a.Gate)
			v.Form.Email = email
			v.Form.Password = password
			v.Form.FirstName = firstName
			v.Form.LastName = lastName
			if role != "" {
				r, err := domain.ParseRole(role)
				if err != nil {
					return omserrors.Wrap(omserrors.ErrCodeInputInvalid, "invalid --role", err).
						WithSuggestion("Use one of: " + roleList())
				}
				v.Form.Role = r
			}
			if manager != "" {
				v.Form.ReportingManager = domain.ID(manager)
			}

			var msg views.Message
			if c.interactive() {
				c.screen(cmd, v.ManagerNote())
				var err error
				if msg, err = v.Run(cmd.Context(), a.Prompter); err != nil {
					return err
				}
			} else {
				msg = v.Submit(cmd.Context())
			}
			return c.report(cmd, msg, omserrors.ErrCodeAPIValidation)
		},
	}

	f := cmd.Flags()
	f.StringVar(&email, "email", "", "email of the new account")
	f.StringVar(&password, "password", "", "initial password")
	f.StringVar(&firstName, "first-name", "", "first name")
	f.StringVar(&lastName, "last-name", "", "last name")
	f.StringVar(&role, "role", "", "role of the new account (default \"Sales Rep\")")
	f.StringVar(&manager, "manager", "", "reporting manager ID (default: your ID)")
	return cmd
}

func roleList() string {
	roles := domain.AllRoles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = fmt.Sprintf("%q", r.String())
	}
	return strings.Join(names, ", ")
}
