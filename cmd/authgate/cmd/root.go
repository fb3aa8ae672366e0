package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "authgate",
	Short: "Authgate is a session-based authentication gateway",
	Long: `A small authentication gateway: a form login validated against a
pluggable credential store, with a signed session cookie guarding a
protected page.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
