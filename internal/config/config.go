// Package config handles application configuration using Viper.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/platform"
)

// EnvPrefix is the prefix of every environment override, e.g. OMS_API_BASE_URL
const EnvPrefix = "OMS"

// HomeEnv points at the directory holding config.yaml and session.json
const HomeEnv = "OMS_HOME"

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds the application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// APIConfig locates the backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// SessionConfig controls the persisted session.
type SessionConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
	// Passphrase seals the session file when set
	Passphrase string `mapstructure:"passphrase" yaml:"passphrase,omitempty"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file,omitempty"`
}

// OutputConfig controls command output.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" yaml:"textfile,omitempty"`
}

// Options tune where Load looks
type Options struct {
	// ConfigFile is an explicit config path, e.g. from --config
	ConfigFile string
	// DotEnv files are loaded into the environment first. Missing files are skipped.
	DotEnv []string
	// Fs is the filesystem config files are read from
	Fs afero.Fs
}

// Home returns the omsctl directory: $OMS_HOME or ~/.omsctl
func Home() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return expandHome(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".omsctl"
	}
	return filepath.Join(home, ".omsctl")
}

// Load reads configuration from .env, the config file and the environment.
func Load(opts Options) (*Config, error) {
	dotenv := opts.DotEnv
	if dotenv == nil {
		dotenv = []string{".env"}
	}
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, omserrors.Wrap(omserrors.ErrCodeConfigLoad, "cannot read "+path, err)
		}
	}

	v := viper.New()
	if opts.Fs != nil {
		v.SetFs(opts.Fs)
	}

	home := Home()
	setDefaults(v, home)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.AddConfigPath(home)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is OK, we'll use defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, omserrors.Wrap(omserrors.ErrCodeConfigLoad, "cannot read configuration", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, omserrors.Wrap(omserrors.ErrCodeConfigLoad, "cannot decode configuration", err)
	}

	cfg.Session.Path = expandHome(cfg.Session.Path)
	cfg.Log.File = expandHome(cfg.Log.File)
	cfg.Metrics.Textfile = expandHome(cfg.Metrics.Textfile)

	return &cfg, nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("api.base_url", platform.DefaultBaseURL)
	v.SetDefault("api.timeout", platform.DefaultTimeout)
	v.SetDefault("session.path", filepath.Join(home, "session.json"))
	v.SetDefault("session.passphrase", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("output.format", OutputText)
	v.SetDefault("metrics.textfile", "")
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Validate checks values that would otherwise fail later and obscurely
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return omserrors.NewConfigInvalidError("api.base_url", fmt.Sprintf("%q is not an http(s) URL", c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		return omserrors.NewConfigInvalidError("api.timeout", "must be positive")
	}
	if c.Session.Path == "" {
		return omserrors.NewConfigInvalidError("session.path", "must not be empty")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return omserrors.NewConfigInvalidError("log.level", fmt.Sprintf("unknown level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return omserrors.NewConfigInvalidError("log.format", fmt.Sprintf("unknown format %q", c.Log.Format))
	}
	switch c.Output.Format {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return omserrors.NewConfigInvalidError("output.format", fmt.Sprintf("unknown format %q", c.Output.Format))
	}
	return nil
}

// Redacted returns a copy safe to print
func (c Config) Redacted() Config {
	if c.Session.Passphrase != "" {
		c.Session.Passphrase = "********"
	}
	return c
}
