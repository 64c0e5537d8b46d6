package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retainops/rfi/internal/formatter"
	"github.com/retainops/rfi/internal/matrix"
)

var ingestOut string

var ingestCmd = &cobra.Command{
	Use:   "ingest <events.csv>",
	Short: "Pivot a raw event log into an activity matrix",
	Long: `Clean a raw event log and pivot it into a binary activity matrix.

The input CSV needs ID_Cust and Date columns, one row per customer event.
Duplicate (customer, day) pairs are dropped, and the matrix covers every
calendar day from the earliest to the latest event. Rows are ordered by
customer id.

Examples:
  rfi ingest events.csv --out matrix.csv
  rfi ingest events.csv -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&ingestOut, "out", "", "Write the pivoted matrix to a CSV file")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open events: %w", err)
	}
	defer f.Close()

	res, err := matrix.IngestEvents(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	if ingestOut != "" {
		if err := writeFile(ingestOut, func(out *os.File) error {
			return matrix.WriteCSV(out, res.Matrix, res.Days)
		}); err != nil {
			return fmt.Errorf("write matrix: %w", err)
		}
		VerbosePrintf("wrote %s\n", ingestOut)
	}

	s := res.Stats
	if cfg.Output == "json" {
		return formatter.JSON(os.Stdout, s)
	}
	fmt.Printf("events: %d in, %d kept (%.1f%% duplicates removed)\n", s.RowsIn, s.RowsOut, s.ReductionPct)
	fmt.Printf("range: %s to %s (%d distinct active days)\n", s.FirstDay, s.LastDay, s.UniqueDays)
	fmt.Printf("matrix: %d users x %d days\n", res.Matrix.Users(), res.Matrix.Days())
	return nil
}
