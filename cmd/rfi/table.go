package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/retainops/rfi/internal/episode"
	"github.com/retainops/rfi/internal/formatter"
	"github.com/retainops/rfi/internal/rfi"
)

var tableCmd = &cobra.Command{
	Use:   "table <matrix.csv> <user-id>",
	Short: "Show one user's RFI table",
	Long: `Build and display a single user's RFI table.

Rows group resolved inactivity episodes by duration (I) with their count
(F) and most recent occurrence (R); an open-ended trailing gap appears as
its own row with R=0 and zero relevance. Rows are sorted by ascending R.

Examples:
  rfi table matrix.csv 42
  rfi table matrix.csv 42 -o json`,
	Args: cobra.ExactArgs(2),
	RunE: runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := readMatrixFile(args[0])
	if err != nil {
		return err
	}
	id, err := parseUserID(args[1], m)
	if err != nil {
		return err
	}

	runner := runnerFromConfig(cfg)
	table := rfi.Build(episode.Segment(m.Row(id)), runner.RFI)

	if cfg.Output == "json" {
		return formatter.JSON(os.Stdout, table.Rows)
	}
	return formatter.RFITable(os.Stdout, table)
}
