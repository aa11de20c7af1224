// Package cmd implements the omsctl command tree.
package cmd

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/omsctl/internal/app"
	"github.com/felixgeelhaar/omsctl/internal/config"
	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/tui"
	"github.com/felixgeelhaar/omsctl/internal/ux"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

// Command annotations that skip parts of the setup
const (
	annotationNoConfig = "omsctl/no-config"
	annotationNoApp    = "omsctl/no-app"
)

// Options are the process resources the command tree uses. Zero values
// mean the real process: OS filesystem, stdio and terminal detection.
type Options struct {
	Fs         afero.Fs
	Out        io.Writer
	Err        io.Writer
	LogOutput  io.Writer
	HTTPClient *http.Client

	// Prompter answers forms. When nil a huh prompter is used if the
	// process runs on a terminal.
	Prompter views.Prompter
	// IsTerminal reports whether prompting is possible
	IsTerminal func() bool
	// RunMenu replaces the bubbletea home menu
	RunMenu func(tui.MenuModel) (string, error)
	// DotEnv files loaded before the configuration. Nil means ".env".
	DotEnv []string
}

type cli struct {
	opts    Options
	flags   *CommandContext
	cfg     *config.Config
	app     *app.App
	started time.Time
}

func newCLI(opts Options) *cli {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.IsTerminal == nil {
		opts.IsTerminal = tui.ShouldPrompt
	}
	return &cli{opts: opts}
}

// NewRootCmd builds the command tree
func NewRootCmd(opts Options) *cobra.Command {
	return newCLI(opts).rootCmd()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "omsctl",
		Short: "Role-based client for the OMS/WMS backend",
		Long: `omsctl signs you in to the OMS/WMS backend and opens the pages your
role may use: attendance and time off for field staff, approvals, staff
status overrides, registration and analytics for managers.

Run 'omsctl ui' for the interactive navigator, or call pages directly
from scripts with --no-input.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default is $OMS_HOME/config.yaml)")
	pf.String("api-url", "", "OMS backend base URL (overrides api.base_url)")
	pf.String("log-level", "", "diagnostics level: debug, info, warn, error")
	pf.StringP("output", "o", "", "output format: text, json, yaml")
	pf.Bool("no-input", false, "never prompt; fail when input is missing")

	root.SetOut(c.opts.Out)
	root.SetErr(c.opts.Err)

	root.AddCommand(
		c.newAuthCmd(),
		c.newDashboardCmd(),
		c.newAttendanceCmd(),
		c.newTimeOffCmd(),
		c.newStaffCmd(),
		c.newAnalyticsCmd(),
		c.newExportCmd(),
		c.newUICmd(),
		c.newConfigCmd(),
		c.newVersionCmd(),
	)
	return root
}

// setup loads configuration and wires the client for the command about to run
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	c.started = time.Now()
	if hasAnnotation(cmd, annotationNoConfig) {
		return nil
	}

	flags, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	c.flags = flags

	cfg, err := config.Load(config.Options{
		ConfigFile: flags.ConfigFile,
		DotEnv:     c.opts.DotEnv,
		Fs:         c.opts.Fs,
	})
	if err != nil {
		return err
	}
	flags.Apply(cfg)
	c.cfg = cfg

	if hasAnnotation(cmd, annotationNoApp) {
		return cfg.Validate()
	}

	a, err := app.New(cfg, c.appOptions(cmd)...)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

func (c *cli) appOptions(cmd *cobra.Command) []app.Option {
	opts := []app.Option{
		app.WithFs(c.opts.Fs),
		app.WithOutput(cmd.OutOrStdout()),
	}
	if c.opts.HTTPClient != nil {
		opts = append(opts, app.WithHTTPClient(c.opts.HTTPClient))
	}
	if c.opts.LogOutput != nil {
		opts = append(opts, app.WithLogOutput(c.opts.LogOutput))
	}
	if c.opts.RunMenu != nil {
		opts = append(opts, app.WithMenuRunner(c.opts.RunMenu))
	}
	if p := c.prompter(); p != nil {
		opts = append(opts, app.WithPrompter(p))
	}
	return opts
}

func (c *cli) prompter() views.Prompter {
	if c.flags != nil && c.flags.NoInput {
		return nil
	}
	if c.opts.Prompter != nil {
		return c.opts.Prompter
	}
	if !c.opts.IsTerminal() {
		return nil
	}
	return tui.HuhPrompter{Accessible: os.Getenv("ACCESSIBLE") != ""}
}

// finish records the outcome, releases the client and turns err into a
// coded error with suggestions
func (c *cli) finish(cmd *cobra.Command, err error) error {
	err = ux.EnhanceError(err)
	if c.app == nil {
		return err
	}

	name := commandName(cmd)
	c.app.Metrics.RecordCommand(name, err == nil, time.Since(c.started))
	var omsErr *omserrors.OMSError
	if errors.As(err, &omsErr) {
		c.app.Metrics.RecordError(string(omsErr.Code), "cmd")
	}
	if err != nil {
		c.app.Logger.WithError(err).Debug("command.failed", "command", name)
	}

	if cerr := c.app.Close(); cerr != nil && err == nil {
		return cerr
	}
	return err
}

// Run executes the command line args
func Run(ctx context.Context, args []string, opts Options) error {
	c := newCLI(opts)
	root := c.rootCmd()
	root.SetArgs(args)
	cmd, err := root.ExecuteContextC(ctx)
	return c.finish(cmd, err)
}

// ExecuteContext runs omsctl with the process arguments
func ExecuteContext(ctx context.Context) error {
	return Run(ctx, os.Args[1:], Options{})
}

func hasAnnotation(cmd *cobra.Command, key string) bool {
	for cur := cmd; cur != nil; cur = cur.Parent() {
		if _, ok := cur.Annotations[key]; ok {
			return true
		}
		switch cur.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

func commandName(cmd *cobra.Command) string {
	if cmd == nil {
		return "omsctl"
	}
	path := strings.TrimPrefix(cmd.CommandPath(), "omsctl")
	if path = strings.TrimSpace(path); path == "" {
		return "omsctl"
	}
	return path
}
