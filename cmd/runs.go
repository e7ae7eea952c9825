package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bps-nganjuk/tagmap/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted aggregation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Migrate(cmd.Context()); err != nil {
			return err
		}

		runs, err := db.ListRuns(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		for _, run := range runs {
			fmt.Printf("%s  %s  rows=%d villages=%d points=%d  %s\n",
				run.CreatedAt.Format("2006-01-02 15:04"), run.ID,
				run.TotalRows, run.Villages, run.Points, run.SourceFile)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}
