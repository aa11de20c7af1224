package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/omsctl/internal/config"
)

func (c *cli) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
		Long: `Inspect the configuration omsctl runs with.

Values come from, in increasing priority: built-in defaults,
$OMS_HOME/config.yaml (or --config), .env, OMS_* environment variables
and global flags.

Examples:
  omsctl config show
  OMS_API_BASE_URL=https://oms.example.com/api/ omsctl config show -o json`,
		Annotations: map[string]string{annotationNoApp: "true"},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration; secrets are masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			redacted := c.cfg.Redacted()
			text, err := yaml.Marshal(redacted)
			if err != nil {
				return err
			}
			return c.emit(cmd, redacted, strings.TrimRight(string(text), "\n"))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print where configuration and the session are read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := c.flags.ConfigFile
			if file == "" {
				file = filepath.Join(config.Home(), "config.yaml")
			}
			paths := map[string]string{
				"config":  file,
				"session": c.cfg.Session.Path,
			}
			return c.emit(cmd, paths, "config:  "+paths["config"]+"\nsession: "+paths["session"])
		},
	})
	return cmd
}
