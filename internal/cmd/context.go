package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/omsctl/internal/config"
)

// CommandContext holds the global flags of one invocation. Commands read it
// instead of package variables so trees built in tests do not share state.
type CommandContext struct {
	ConfigFile string
	APIURL     string
	LogLevel   string
	Output     string
	NoInput    bool
}

// NewCommandContext extracts the persistent flags from cmd
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	apiURL, err := cmd.Flags().GetString("api-url")
	if err != nil {
		return nil, err
	}

	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noInput, err := cmd.Flags().GetBool("no-input")
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		ConfigFile: configFile,
		APIURL:     apiURL,
		LogLevel:   logLevel,
		Output:     output,
		NoInput:    noInput,
	}, nil
}

// Apply lets flags that were set win over the loaded configuration
func (c *CommandContext) Apply(cfg *config.Config) {
	if c.APIURL != "" {
		cfg.API.BaseURL = c.APIURL
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.Output != "" {
		cfg.Output.Format = c.Output
	}
}
