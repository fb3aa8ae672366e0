package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmcleod/authgate/internal/password"
)

var hashCmd = &cobra.Command{
	Use:   "hash <password>",
	Short: "Print the Argon2id hash of a password",
	Long: `Hashes a password with the same Argon2id parameters the server
uses, for provisioning accounts directly in the credential store.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := password.Hash(args[0], password.DefaultParams())
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}
