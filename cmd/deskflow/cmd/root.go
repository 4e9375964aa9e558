package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deskflow",
	Short: "deskflow api server: accounts, tokens and address books",
	Long: `deskflow api server
Issues and verifies session tokens, enforces per-role access rules and
stores accounts with their address books for a remote-access deployment.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(apiCmd())
}
