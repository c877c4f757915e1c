package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/config"
)

// NewSeedCmd applies the schema and loads the restaurant catalog without
// starting the API server.
func NewSeedCmd() *cobra.Command {
	var seedFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Initialize the database and load the restaurant catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if seedFile != "" {
				cfg.CatalogSeedPath = seedFile
			}

			storage, err := openStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer storage.Close()

			logger.Info("catalog seeded")
			return nil
		},
	}

	cmd.Flags().StringVar(&seedFile, "file", "", "path to a YAML catalog seed file (defaults to the built-in catalog)")
	return cmd
}
