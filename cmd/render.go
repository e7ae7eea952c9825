package main

import (
	"image/png"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bps-nganjuk/tagmap/internal/render"
	"github.com/bps-nganjuk/tagmap/internal/viewport"
)

var (
	renderRowsPath     string
	renderRegistryPath string
	renderOut          string
	renderZoom         float64
	renderNoLabels     bool
	renderNoLegend     bool
	renderNoBoundary   bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the choropleth map to a PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rows, reg, err := loadInputs(ctx, renderRowsPath, renderRegistryPath)
		if err != nil {
			return err
		}

		eng := newEngine(cfg)
		eng.SetRegistry(reg)
		eng.SetRows(rows)

		if !renderNoBoundary {
			col, source, err := boundaryChain(cfg).Resolve(ctx)
			if err != nil {
				return err
			}
			zap.L().Info("boundary resolved", zap.String("source", source))
			eng.OnBoundaryAvailable(col)
		}

		img := eng.RenderFrameAt(viewport.State{Zoom: viewport.ClampZoom(renderZoom)}, render.Options{
			ShowLabels: !renderNoLabels,
			ShowLegend: !renderNoLegend,
		})

		f, err := os.Create(renderOut)
		if err != nil {
			return eris.Wrapf(err, "create %s", renderOut)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			return eris.Wrap(err, "encode png")
		}

		zap.L().Info("map rendered",
			zap.String("path", renderOut),
			zap.Int("points", len(eng.Result().Points)),
		)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderRowsPath, "rows", "", "tagging extract (xlsx or csv)")
	renderCmd.Flags().StringVar(&renderRegistryPath, "registry", "", "authoritative village registry")
	renderCmd.Flags().StringVar(&renderOut, "out", "map.png", "output PNG path")
	renderCmd.Flags().Float64Var(&renderZoom, "zoom", 1, "target zoom level")
	renderCmd.Flags().BoolVar(&renderNoLabels, "no-labels", false, "skip sub-district labels")
	renderCmd.Flags().BoolVar(&renderNoLegend, "no-legend", false, "skip the legend")
	renderCmd.Flags().BoolVar(&renderNoBoundary, "no-boundary", false, "render points only, without boundary polygons")
	_ = renderCmd.MarkFlagRequired("rows")
	rootCmd.AddCommand(renderCmd)
}
