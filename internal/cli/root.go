// Package cli implements the pumppoints command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "pumppoints",
	Short: "Loyalty-program backend for a gas station chain",
	Long: `pumppoints is the loyalty-program backend for a gas station chain:
it records fuel purchases, accrues and redeems loyalty points, manages the
reward catalog, and reports dividends and fuel-type statistics.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default $PUMPPOINTS_HOME/config.toml)")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(os.Stdout, "pumppoints 0.1.0")
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
