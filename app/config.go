package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
)

func init() { //nolint: gochecknoinits
	configCmd.Flags().BoolVar(&asJSON, "json", false, "Print the configuration as JSON")

	rootCmd.AddCommand(configCmd)
}

var (
	asJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			dump := config.DumpConfig
			if asJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(&c)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err
		},
	}
)
