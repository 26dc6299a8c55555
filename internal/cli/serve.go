package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pumppoints/pumppoints/internal/daemon"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the loyalty backend HTTP server",
	Long: `Open the store, apply migrations, and serve the loyalty API until
interrupted. Configuration is read from --config, $PUMPPOINTS_HOME/config.toml,
or built-in defaults.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return daemon.Run(cfg)
}
