package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pumppoints/pumppoints/internal/daemon"
	"github.com/pumppoints/pumppoints/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the fuel-type reference data",
	Long: `Insert the station's fuel types into the store. Safe to run
repeatedly: existing rows are left untouched.`,
	RunE: runSeed,
}

// Fuel types sold across the chain's stations.
var fuelTypes = []string{
	"Diesel",
	"Diesel B7",
	"Gasohol 91",
	"Gasohol 95",
	"Gasohol E20",
	"Premium Gasohol 95",
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	db, err := sqlite.Open(cfg.DB.Path, cfg.BusyTimeout())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	for _, name := range fuelTypes {
		if err := db.InsertFuelType(ctx, name); err != nil {
			return fmt.Errorf("seed fuel type %q: %w", name, err)
		}
	}

	fmt.Fprintf(os.Stdout, "Seeded %d fuel types into %s\n", len(fuelTypes), cfg.DB.Path)
	return nil
}
