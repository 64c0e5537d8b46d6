package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/retainops/rfi/internal/batch"
	"github.com/retainops/rfi/internal/formatter"
)

var (
	analyzeObservationDays int
	analyzeConcurrency     int
	analyzeFeaturesOut     string
	analyzeDormancyOut     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <matrix.csv>",
	Short: "Score every user of an activity matrix",
	Long: `Run the full scoring pipeline over a pivoted activity matrix.

Each row is one user, each column one calendar day, cells 0/1. Every user
is scored independently: the eleven-feature fingerprint over the full
sequence, and the dormancy score over the first N observation days
(default 180). A failing row is reported and defaulted to zeros without
aborting the batch.

Examples:
  rfi analyze matrix.csv
  rfi analyze matrix.csv --observation-days 180 -o json
  rfi analyze matrix.csv --features-out features.csv --dormancy-out dormancy.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntVar(&analyzeObservationDays, "observation-days", 0, "Dormancy observation window in days (default from config: 180)")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 0, "Worker count (default: number of CPUs)")
	analyzeCmd.Flags().StringVar(&analyzeFeaturesOut, "features-out", "", "Write the feature table to a CSV file")
	analyzeCmd.Flags().StringVar(&analyzeDormancyOut, "dormancy-out", "", "Write the dormancy table to a CSV file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, err := readMatrixFile(args[0])
	if err != nil {
		return err
	}
	VerbosePrintf("loaded matrix: %d users x %d days\n", m.Users(), m.Days())

	runner := runnerFromConfig(cfg)
	if analyzeObservationDays > 0 {
		runner.ObservationDays = analyzeObservationDays
	}
	if analyzeConcurrency > 0 {
		runner.Concurrency = analyzeConcurrency
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := runner.Run(ctx, m)

	if analyzeFeaturesOut != "" {
		if err := writeFile(analyzeFeaturesOut, func(f *os.File) error {
			return formatter.FeaturesCSV(f, res.Outcomes)
		}); err != nil {
			return fmt.Errorf("write features: %w", err)
		}
	}
	if analyzeDormancyOut != "" {
		if err := writeFile(analyzeDormancyOut, func(f *os.File) error {
			return formatter.DormancyCSV(f, res.Outcomes)
		}); err != nil {
			return fmt.Errorf("write dormancy: %w", err)
		}
	}

	switch cfg.Output {
	case "json":
		return formatter.JSON(os.Stdout, struct {
			Summary  batch.Summary   `json:"summary"`
			Outcomes []batch.Outcome `json:"outcomes"`
		}{res.Summary, res.Outcomes})
	case "jsonl":
		return formatter.JSONL(os.Stdout, res)
	default:
		formatter.Summary(os.Stdout, res)
		fmt.Println()
		if err := formatter.FeatureTable(os.Stdout, res.Outcomes); err != nil {
			return err
		}
		fmt.Println()
		return formatter.DormancyTable(os.Stdout, res.Outcomes)
	}
}
