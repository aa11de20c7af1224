package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/platform/platformtest"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

const omsHome = "/home/oms/.omsctl"

type harness struct {
	srv *platformtest.Server
	fs  afero.Fs

	rep, em, mlm platformtest.User
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("OMS_HOME", omsHome)

	srv := platformtest.New(t)
	return &harness{
		srv: srv,
		fs:  afero.NewMemMapFs(),
		rep: srv.AddUser(platformtest.User{Email: "rep@oms.test", Password: "pw", FirstName: "Sam", LastName: "Rep", Role: domain.RoleSalesRep}),
		em:  srv.AddUser(platformtest.User{Email: "em@oms.test", Password: "pw", FirstName: "Eve", LastName: "Boss", Role: domain.RoleEmployeeManager}),
		mlm: srv.AddUser(platformtest.User{Email: "mlm@oms.test", Password: "pw", FirstName: "Max", LastName: "Mid", Role: domain.RoleMiddleLevelManager}),
	}
}

// run executes omsctl against the fake backend. A nil prompter means
// no terminal.
func (h *harness) run(t *testing.T, p views.Prompter, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	opts := Options{
		Fs:         h.fs,
		Out:        &out,
		Err:        &out,
		LogOutput:  io.Discard,
		DotEnv:     []string{},
		IsTerminal: func() bool { return false },
		Prompter:   p,
	}
	err := Run(context.Background(), append(args, "--api-url", h.srv.URL()), opts)
	return out.String(), err
}

func (h *harness) login(t *testing.T, email string) {
	t.Helper()
	_, err := h.run(t, nil, "auth", "login", "--email", email, "--password", "pw")
	require.NoError(t, err)
}

func requireCode(t *testing.T, err error, code omserrors.ErrorCode) {
	t.Helper()
	var omsErr *omserrors.OMSError
	require.True(t, errors.As(err, &omsErr), "expected an OMSError, got %v", err)
	assert.Equal(t, code, omsErr.Code, omsErr.Error())
}

func decodeJSON(t *testing.T, out string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

// TestRootSubcommands tests that every command group is registered
func TestRootSubcommands(t *testing.T) {
	root := NewRootCmd(Options{})

	want := map[string][]string{
		"auth":       {"login", "logout", "status", "register"},
		"dashboard":  nil,
		"attendance": {"status", "in", "out", "toggle"},
		"timeoff":    {"request", "pending", "approve", "reject", "review"},
		"staff":      {"list", "override"},
		"analytics":  {"kpis", "audit", "gps"},
		"export":     {"audit", "employees", "kpis", "gps", "all"},
		"ui":         nil,
		"config":     {"show", "path"},
		"version":    nil,
	}

	for name, subs := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not found", name)
			continue
		}
		for _, sub := range subs {
			if findSub(cmd, sub) == nil {
				t.Errorf("subcommand %q not found in %s", sub, name)
			}
		}
	}
}

func findSub(parent *cobra.Command, name string) *cobra.Command {
	for _, c := range parent.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// TestRootPersistentFlags tests the global flags
func TestRootPersistentFlags(t *testing.T) {
	root := NewRootCmd(Options{})
	for _, name := range []string{"config", "api-url", "log-level", "output", "no-input"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q not found", name)
		}
	}
	if root.PersistentFlags().ShorthandLookup("o") == nil {
		t.Error("output flag should have shorthand -o")
	}
}

func TestTimeOffDecisionArgs(t *testing.T) {
	root := NewRootCmd(Options{})
	approve, _, err := root.Find([]string{"timeoff", "approve"})
	require.NoError(t, err)

	assert.Error(t, approve.Args(approve, []string{}))
	assert.NoError(t, approve.Args(approve, []string{"42"}))
	assert.Error(t, approve.Args(approve, []string{"1", "2"}))
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, nil, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "omsctl "), out)

	out, err = h.run(t, nil, "version", "--json")
	require.NoError(t, err)
	var info struct {
		Version  string `json:"version"`
		Platform string `json:"platform"`
	}
	decodeJSON(t, out, &info)
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.Platform)

	exists, err := afero.DirExists(h.fs, omsHome)
	require.NoError(t, err)
	assert.False(t, exists, "version must not touch OMS_HOME")
}

func TestConfigShow_MasksPassphrase(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.fs, omsHome+"/config.yaml", []byte(`
session:
  passphrase: hunter2
log:
  level: error
`), 0o600))

	out, err := h.run(t, nil, "config", "show", "-o", "json")
	require.NoError(t, err)

	var cfg struct {
		API     map[string]interface{} `json:"API"`
		Session struct {
			Passphrase string `json:"Passphrase"`
			Path       string `json:"Path"`
		} `json:"Session"`
		Log struct {
			Level string `json:"Level"`
		} `json:"Log"`
	}
	decodeJSON(t, out, &cfg)
	assert.Equal(t, "********", cfg.Session.Passphrase)
	assert.Equal(t, omsHome+"/session.json", cfg.Session.Path)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.NotContains(t, out, "hunter2")
}

func TestConfigShow_YAMLText(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, nil, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "base_url: "+h.srv.URL())
	assert.Contains(t, out, "format: text")
}

func TestConfigPath(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, nil, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, omsHome+"/config.yaml")
	assert.Contains(t, out, omsHome+"/session.json")
}

func TestInvalidOutputFormat(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, nil, "dashboard", "-o", "xml")
	requireCode(t, err, omserrors.ErrCodeConfigInvalid)
}

func TestUnreachableBackend(t *testing.T) {
	h := newHarness(t)
	var out bytes.Buffer
	err := Run(context.Background(),
		[]string{"auth", "login", "--email", "rep@oms.test", "--password", "pw", "--api-url", "http://127.0.0.1:1/api/"},
		Options{Fs: h.fs, Out: &out, Err: &out, LogOutput: io.Discard, DotEnv: []string{}, IsTerminal: func() bool { return false }})
	requireCode(t, err, omserrors.ErrCodeLoginFailed)
	assert.Contains(t, err.Error(), "Check server status")
}

func TestCommandName(t *testing.T) {
	root := NewRootCmd(Options{})
	toggle, _, err := root.Find([]string{"attendance", "toggle"})
	require.NoError(t, err)

	assert.Equal(t, "attendance toggle", commandName(toggle))
	assert.Equal(t, "omsctl", commandName(root))
	assert.Equal(t, "omsctl", commandName(nil))
}
