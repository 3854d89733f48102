package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCommand prints the effective configuration as TOML.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after the config file and ALGOTRACE_* environment
variables have been applied. The output is valid TOML and can be saved as
the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if c.configPath != "" {
				fmt.Fprintf(out, "# %s\n", c.configPath)
			}
			return c.Config.Encode(out)
		},
	}
}
