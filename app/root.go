// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/GoACL-Admin/GoACL-Admin/internal/config"
	"github.com/GoACL-Admin/GoACL-Admin/internal/logger"
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "Directory holding main.toml")
}

var (
	configPath string // Path to the configuration directory

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "goacl-admin",
		Short: "GoACL-Admin is a multi-tenant access control backend",
		Long: `GoACL-Admin manages namespaces, users, roles and resources
and the bindings between them behind a token protected REST API.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration and initialises logging.
func loadConfig(devMode bool) error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	if devMode {
		cfg.DevMode = true
	}

	return logger.Init(cfg.Log)
}
