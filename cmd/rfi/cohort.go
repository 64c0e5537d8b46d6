package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retainops/rfi/internal/formatter"
	"github.com/retainops/rfi/internal/matrix"
)

var (
	cohortDropoutStreak int
	cohortOut           string
)

var cohortCmd = &cobra.Command{
	Use:   "cohort <matrix.csv>",
	Short: "Filter dropout and fully-active clients",
	Long: `Classify clients by their longest inactivity streak and filter
out the ones that carry no scoring signal.

Clients whose longest streak reaches the dropout threshold (default 120
days) have effectively churned; clients with no inactive day at all have
nothing to score. Both classes are removed from the analysis cohort.

Examples:
  rfi cohort matrix.csv
  rfi cohort matrix.csv --dropout-streak 90 --out filtered.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runCohort,
}

func init() {
	rootCmd.AddCommand(cohortCmd)
	cohortCmd.Flags().IntVar(&cohortDropoutStreak, "dropout-streak", 0, "Dropout streak threshold in days (default from config: 120)")
	cohortCmd.Flags().StringVar(&cohortOut, "out", "", "Write the filtered matrix to a CSV file")
}

func runCohort(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := readMatrixFile(args[0])
	if err != nil {
		return err
	}

	threshold := cfg.Cohort.DropoutStreak
	if cohortDropoutStreak > 0 {
		threshold = cohortDropoutStreak
	}

	filtered, stats := matrix.Cohort(m, threshold)

	if cohortOut != "" {
		if err := writeFile(cohortOut, func(out *os.File) error {
			return matrix.WriteCSV(out, filtered, nil)
		}); err != nil {
			return fmt.Errorf("write filtered matrix: %w", err)
		}
		VerbosePrintf("wrote %s\n", cohortOut)
	}

	if cfg.Output == "json" {
		return formatter.JSON(os.Stdout, stats)
	}
	fmt.Printf("clients: %d total\n", stats.Total)
	fmt.Printf("  dropout (streak >= %d): %d\n", threshold, stats.Dropout)
	fmt.Printf("  fully active:           %d\n", stats.FullyActive)
	fmt.Printf("  kept for analysis:      %d\n", stats.Kept)
	return nil
}
