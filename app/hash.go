package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoACL-Admin/GoACL-Admin/internal/auth"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(hashCmd)
}

var hashCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the argon2id hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)

		return err
	},
}
