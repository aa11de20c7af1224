package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/omsctl/internal/config"
	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/ux"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

func (c *cli) format() string {
	if c.cfg != nil {
		return c.cfg.Output.Format
	}
	if c.flags != nil && c.flags.Output != "" {
		return c.flags.Output
	}
	return config.OutputText
}

// emit prints data in the configured format; text prints the rendering
func (c *cli) emit(cmd *cobra.Command, data interface{}, text string) error {
	f, err := ux.NewFormatter(c.format(), &ux.FormatterOptions{Writer: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	return f.Format(ux.Document{Data: data, Text: text})
}

// report prints a view outcome. Failures become errors with code so the
// process exits non-zero.
func (c *cli) report(cmd *cobra.Command, msg views.Message, code omserrors.ErrorCode) error {
	if msg.IsError() {
		return omserrors.New(code, msg.Text)
	}
	if msg.IsZero() {
		return nil
	}
	return c.emit(cmd, msg, c.app.Renderer.Message(msg))
}

// loadFailed turns a failed page load into an error
func loadFailed(msg views.Message) error {
	return omserrors.New(omserrors.ErrCodeAPIRequest, msg.Text).
		WithSuggestion("Check server status")
}

// enter reports whether the command may show path. When the guard sends
// the user elsewhere the dashboard is shown instead and the command stops
// without an error.
func (c *cli) enter(cmd *cobra.Command, path string) (bool, error) {
	route, err := c.app.Enter(cmd.Context(), path)
	if err != nil {
		return false, err
	}
	if route.Path == path {
		return true, nil
	}
	return false, c.showDashboard(cmd)
}

// interactive reports whether forms may prompt for missing input
func (c *cli) interactive() bool {
	return c.app != nil && c.app.Interactive()
}

// screen prints a line of context ahead of a form, text output only
func (c *cli) screen(cmd *cobra.Command, text string) {
	if c.format() != config.OutputText || text == "" {
		return
	}
	cmd.Println(text)
}
