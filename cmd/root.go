package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bps-nganjuk/tagmap/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tagmap",
	Short: "Wilkerstat tagging aggregation and mapping",
	Long:  "Resolves village names in wilkerstat tagging extracts against the authoritative registry, aggregates per-village counts and coverage, and renders choropleth maps of Kabupaten Nganjuk.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
