package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/omsctl/internal/ux"
	"github.com/felixgeelhaar/omsctl/internal/version"
)

func (c *cli) newVersionCmd() *cobra.Command {
	var verbose, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print version information including version number, git commit,
build date, Go version, and platform.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()

			format, _ := cmd.Flags().GetString("output")
			if asJSON {
				format = ux.FormatJSON
			}
			if format != "" && format != ux.FormatText {
				f, err := ux.NewFormatter(format, &ux.FormatterOptions{Writer: cmd.OutOrStdout()})
				if err != nil {
					return err
				}
				return f.Format(info)
			}

			if verbose {
				cmd.Println(info.String())
				return nil
			}
			cmd.Printf("omsctl %s\n", info.Short())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed version information")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output version information as JSON")
	return cmd
}
