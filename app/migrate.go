package app

import (
	"github.com/spf13/cobra"

	"github.com/GoACL-Admin/GoACL-Admin/internal/daemon"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and seed it",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfig(false)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := daemon.Prepare(cmd.Context(), &cfg)

		return err
	},
}
