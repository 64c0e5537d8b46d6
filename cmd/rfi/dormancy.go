package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retainops/rfi/internal/formatter"
)

var dormancyObservationDays int

var dormancyCmd = &cobra.Command{
	Use:   "dormancy <matrix.csv> <user-id>",
	Short: "Show one user's dormancy score",
	Long: `Compute a single user's dormancy score.

Dormancy is the relevance-weighted average inactivity duration over the
observation window (default: the first 180 days of the matrix), rounded
to the nearest whole day. Users with no resolved, recent inactivity
episodes score 0.

Examples:
  rfi dormancy matrix.csv 42
  rfi dormancy matrix.csv 42 --observation-days 90`,
	Args: cobra.ExactArgs(2),
	RunE: runDormancy,
}

func init() {
	rootCmd.AddCommand(dormancyCmd)
	dormancyCmd.Flags().IntVar(&dormancyObservationDays, "observation-days", 0, "Observation window in days (default from config: 180)")
}

func runDormancy(cmd *cobra.Command, args []string) error {
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
	if dormancyObservationDays > 0 {
		runner.ObservationDays = dormancyObservationDays
	}

	_, dormancy, err := runner.ScoreUser(m.Row(id))
	if err != nil {
		return fmt.Errorf("score user %d: %w", id, err)
	}

	if cfg.Output == "json" {
		return formatter.JSON(os.Stdout, map[string]int{"user_id": id, "dormancy": dormancy})
	}
	fmt.Printf("user %d dormancy: %d\n", id, dormancy)
	return nil
}
