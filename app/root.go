// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/logger"
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "Directory holding main.toml")
}

var (
	configPath string // Directory of the configuration file

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "gorbac-admin",
		Short: "GoRBAC-Admin is a web dashboard for users, roles and permissions",
		Long: `GoRBAC-Admin is a web dashboard for managing users, roles and permissions
with an audit log of every change, kept in sqlite, mysql, postgres or redis.`,
		Args: cobra.OnlyValidArgs,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration and initializes the global logger.
func loadConfig() error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	return logger.Init(cfg.Log)
}
