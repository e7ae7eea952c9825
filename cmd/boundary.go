package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bps-nganjuk/tagmap/internal/geo"
)

var boundaryOut string

var boundaryCmd = &cobra.Command{
	Use:   "boundary",
	Short: "Boundary layer operations",
}

var boundaryFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Resolve the sub-district boundary layer and write it as GeoJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		col, source, err := boundaryChain(cfg).Resolve(cmd.Context())
		if err != nil {
			return err
		}

		data, err := geo.MarshalGeoJSON(col)
		if err != nil {
			return err
		}
		if err := os.WriteFile(boundaryOut, data, 0o644); err != nil {
			return eris.Wrapf(err, "write %s", boundaryOut)
		}

		zap.L().Info("boundary written",
			zap.String("source", source),
			zap.String("path", boundaryOut),
			zap.Int("features", len(col.Features)),
		)
		return nil
	},
}

func init() {
	boundaryFetchCmd.Flags().StringVar(&boundaryOut, "out", "boundary.geojson", "output GeoJSON path")
	boundaryCmd.AddCommand(boundaryFetchCmd)
	rootCmd.AddCommand(boundaryCmd)
}
