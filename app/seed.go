package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/daemon"
)

func init() { //nolint: gochecknoinits
	seedCmd.Flags().BoolVar(&reset, "reset", false, "Remove all collections and the audit log before seeding")

	rootCmd.AddCommand(seedCmd)
}

var (
	reset bool

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Write the default users, roles and permissions for absent collections",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			seeded, err := daemon.Seed(&cfg, reset)
			if err != nil {
				return err
			}

			log.Info().Strs("keys", seeded).Bool("reset", reset).Msg("seed finished")

			return nil
		},
	}
)
