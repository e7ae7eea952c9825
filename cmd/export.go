package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bps-nganjuk/tagmap/internal/export"
)

var (
	exportRowsPath     string
	exportRegistryPath string
	exportOut          string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export operations",
}

var exportCorrectedCmd = &cobra.Command{
	Use:   "corrected",
	Short: "Write the extract back out with canonical village names",
	Long:  "Rows carrying a full administrative code get their village and sub-district columns replaced with the registry's canonical names; everything else passes through unchanged.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, reg, err := loadInputs(cmd.Context(), exportRowsPath, exportRegistryPath)
		if err != nil {
			return err
		}

		corrected, changed := export.CorrectRows(rows, reg)
		if err := export.WriteRows(exportOut, corrected); err != nil {
			return err
		}

		zap.L().Info("corrected export written",
			zap.String("path", exportOut),
			zap.Int("rows", len(corrected)),
			zap.Int("changed", changed),
		)
		return nil
	},
}

func init() {
	exportCorrectedCmd.Flags().StringVar(&exportRowsPath, "rows", "", "tagging extract (xlsx or csv)")
	exportCorrectedCmd.Flags().StringVar(&exportRegistryPath, "registry", "", "authoritative village registry")
	exportCorrectedCmd.Flags().StringVar(&exportOut, "out", "corrected.xlsx", "output xlsx path")
	_ = exportCorrectedCmd.MarkFlagRequired("rows")
	_ = exportCorrectedCmd.MarkFlagRequired("registry")
	exportCmd.AddCommand(exportCorrectedCmd)
	rootCmd.AddCommand(exportCmd)
}
