// Package app assembles the client: configuration, logging, the session
// store, the request pipeline, the session gate and the router guard.
package app

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"github.com/felixgeelhaar/omsctl/internal/auth"
	"github.com/felixgeelhaar/omsctl/internal/config"
	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/log"
	"github.com/felixgeelhaar/omsctl/internal/metrics"
	"github.com/felixgeelhaar/omsctl/internal/platform"
	"github.com/felixgeelhaar/omsctl/internal/router"
	"github.com/felixgeelhaar/omsctl/internal/security"
	"github.com/felixgeelhaar/omsctl/internal/session"
	"github.com/felixgeelhaar/omsctl/internal/tui"
	"github.com/felixgeelhaar/omsctl/internal/version"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

// App is one running client. Build it with New and release it with Close.
type App struct {
	Config   *config.Config
	Logger   *log.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Store  session.Store
	Client *platform.Client
	Gate   *auth.Gate
	Guard  *router.Guard

	Renderer tui.Renderer

	// Prompter is nil when the client must not ask questions
	Prompter views.Prompter

	out     io.Writer
	runMenu func(tui.MenuModel) (string, error)
}

type settings struct {
	fs         afero.Fs
	httpClient *http.Client
	logOutput  io.Writer
	prompter   views.Prompter
	out        io.Writer
	runMenu    func(tui.MenuModel) (string, error)
}

// Option configures New
type Option func(*settings)

// WithFs sets the filesystem holding the session file
func WithFs(fs afero.Fs) Option {
	return func(s *settings) {
		s.fs = fs
	}
}

// WithHTTPClient replaces the HTTP client of the request pipeline
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) {
		s.httpClient = hc
	}
}

// WithLogOutput sends diagnostics to w instead of stderr or the log file
func WithLogOutput(w io.Writer) Option {
	return func(s *settings) {
		s.logOutput = w
	}
}

// WithPrompter enables interactive forms
func WithPrompter(p views.Prompter) Option {
	return func(s *settings) {
		s.prompter = p
	}
}

// WithOutput sets where screens are printed
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
	}
}

// WithMenuRunner replaces the bubbletea program that shows the home menu
func WithMenuRunner(run func(tui.MenuModel) (string, error)) Option {
	return func(s *settings) {
		s.runMenu = run
	}
}

// New wires the client from cfg and restores any persisted session
func New(cfg *config.Config, opts ...Option) (*App, error) {
	st := settings{
		fs:  afero.NewOsFs(),
		out: os.Stdout,
		runMenu: func(m tui.MenuModel) (string, error) {
			return tui.RunMenu(m)
		},
	}
	for _, opt := range opts {
		opt(&st)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Log, st.logOutput)
	registry, m := metrics.NewRegistry()

	store, err := newStore(cfg.Session, st.fs)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	clientOpts := []platform.Option{
		platform.WithTimeout(cfg.API.Timeout),
		platform.WithLogger(logger.WithGroup("api")),
		platform.WithMetrics(m),
		platform.WithUserAgent(version.GetInfo().UserAgent()),
	}
	if st.httpClient != nil {
		clientOpts = append([]platform.Option{platform.WithHTTPClient(st.httpClient)}, clientOpts...)
	}
	client := platform.NewClient(cfg.API.BaseURL, clientOpts...)

	gate := auth.NewGate(store, client, auth.WithLogger(logger), auth.WithMetrics(m))
	client.SetCredentials(gate)
	gate.Restore()

	guard := router.NewGuard(gate, router.WithLogger(logger), router.WithMetrics(m))

	logger.Debug("app.ready", "api", client.BaseURL(), "authenticated", gate.IsAuthenticated())

	return &App{
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		Metrics:  m,
		Store:    store,
		Client:   client,
		Gate:     gate,
		Guard:    guard,
		Renderer: tui.NewRenderer(),
		Prompter: st.prompter,
		out:      st.out,
		runMenu:  st.runMenu,
	}, nil
}

func newLogger(cfg config.LogConfig, w io.Writer) *log.Logger {
	lc := log.DefaultConfig()
	lc.Level = log.ParseLevel(cfg.Level)
	lc.Format = log.ParseFormat(cfg.Format)
	lc.ServiceVersion = version.GetInfo().Short()
	switch {
	case w != nil:
		lc.Output = log.NewOutput(w)
	case cfg.File != "":
		lc.Output = log.OutputFile(cfg.File, log.DefaultFileOptions())
	}
	if lc.Level == log.LevelDebug {
		lc.AddSource = true
	}
	return log.New(lc)
}

func newStore(cfg config.SessionConfig, fs afero.Fs) (session.Store, error) {
	opts := []session.FileOption{session.WithFs(fs)}
	if cfg.Passphrase != "" {
		sealer, err := security.NewSealer(cfg.Passphrase)
		if err != nil {
			return nil, omserrors.Wrap(omserrors.ErrCodeConfigInvalid, "cannot use session.passphrase", err)
		}
		opts = append(opts, session.WithSealer(sealer))
	}
	return session.NewFileStore(cfg.Path, opts...), nil
}

// Interactive reports whether forms may prompt
func (a *App) Interactive() bool {
	return a.Prompter != nil
}

// Close writes the metrics textfile, if configured, and releases the log file
func (a *App) Close() error {
	var errs []error
	if err := metrics.WriteTextfile(a.Config.Metrics.Textfile, a.Registry); err != nil {
		a.Logger.WithError(err).Warn("metrics.textfile_failed")
		errs = append(errs, err)
	}
	if err := a.Logger.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
