package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bps-nganjuk/tagmap/internal/aggregate"
	"github.com/bps-nganjuk/tagmap/internal/export"
	"github.com/bps-nganjuk/tagmap/internal/store"
)

var (
	aggRowsPath     string
	aggRegistryPath string
	aggFilter       string
	aggOrder        string
	aggOut          string
	aggLimit        int
	aggSave         bool
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Aggregate a tagging extract into per-village counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rows, reg, err := loadInputs(ctx, aggRowsPath, aggRegistryPath)
		if err != nil {
			return err
		}
		zap.L().Info("inputs loaded",
			zap.Int("rows", len(rows)),
			zap.Int("registry", reg.Len()),
		)

		eng := newEngine(cfg)
		eng.SetRegistry(reg)
		eng.SetRows(rows)
		eng.SetFilter(aggFilter)

		result := eng.Result()
		stats := eng.Summary()
		ranked := eng.Ranked(aggregate.Order(aggOrder))
		zero := eng.ZeroCount()

		fmt.Printf("Rows in district: %d\n", result.TotalRows)
		fmt.Printf("Villages tagged:  %d\n", stats.Villages)
		fmt.Printf("Total taggings:   %d\n", stats.TotalCount)
		fmt.Printf("Mean per village: %.2f\n", stats.MeanCount)
		fmt.Printf("Busiest village:  %d taggings\n", stats.MaxCount)
		fmt.Printf("Not yet tagged:   %d registry villages\n\n", len(zero))

		limit := aggLimit
		if limit <= 0 || limit > len(ranked) {
			limit = len(ranked)
		}
		for _, row := range ranked[:limit] {
			pct := "-"
			if row.Percentage != nil {
				pct = fmt.Sprintf("%.2f%%", *row.Percentage)
			}
			fmt.Printf("%4d  %-20s %-24s %6d  %s\n",
				row.Rank, row.SubDistrict, row.Village, row.Count, pct)
		}

		if aggOut != "" {
			if err := export.WriteRanked(aggOut, ranked, zero); err != nil {
				return err
			}
		}

		if aggSave {
			db, err := store.NewSQLite(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.Migrate(ctx); err != nil {
				return err
			}
			run, err := db.SaveRun(ctx, store.Run{
				SourceFile:   aggRowsPath,
				DistrictCode: cfg.District.Code,
				TotalRows:    result.TotalRows,
				Villages:     stats.Villages,
				Points:       len(result.Points),
				Ranked:       ranked,
			})
			if err != nil {
				return eris.Wrap(err, "save run")
			}
			zap.L().Info("run saved", zap.String("id", run.ID))
		}

		return nil
	},
}

func init() {
	aggregateCmd.Flags().StringVar(&aggRowsPath, "rows", "", "tagging extract (xlsx or csv)")
	aggregateCmd.Flags().StringVar(&aggRegistryPath, "registry", "", "authoritative village registry (xlsx or csv)")
	aggregateCmd.Flags().StringVar(&aggFilter, "filter", "", "village name filter")
	aggregateCmd.Flags().StringVar(&aggOrder, "order", "desc", "rank order: desc or asc")
	aggregateCmd.Flags().StringVar(&aggOut, "out", "", "write ranked table to this xlsx file")
	aggregateCmd.Flags().IntVar(&aggLimit, "limit", 20, "rows to print (0 = all)")
	aggregateCmd.Flags().BoolVar(&aggSave, "save", false, "persist the run to the history database")
	_ = aggregateCmd.MarkFlagRequired("rows")
	rootCmd.AddCommand(aggregateCmd)
}
