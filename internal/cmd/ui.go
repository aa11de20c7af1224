package cmd

import (
	"github.com/spf13/cobra"

	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
)

func (c *cli) newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive navigator",
		Long: `Open the interactive navigator: sign in, then move between the pages
your role may use from the home menu. Logging out returns to the sign-in
form; q or esc leaves the navigator and keeps the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.interactive() {
				return omserrors.New(omserrors.ErrCodeInputRequired, "the navigator needs a terminal").
					WithSuggestion("Drop --no-input, or call pages directly, e.g. 'omsctl dashboard'")
			}
			return c.app.RunUI(cmd.Context())
		},
	}
}
