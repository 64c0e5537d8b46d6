package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/retainops/rfi/internal/batch"
	"github.com/retainops/rfi/internal/config"
	"github.com/retainops/rfi/internal/feature"
	"github.com/retainops/rfi/internal/matrix"
	"github.com/retainops/rfi/internal/rfi"
)

// runnerFromConfig maps resolved configuration onto a batch runner.
func runnerFromConfig(cfg *config.Config) batch.Runner {
	return batch.Runner{
		RFI: rfi.Params{
			DecayK:        cfg.Analysis.DecayK,
			RecencyCutoff: cfg.Analysis.RecencyCutoff,
		},
		Feature:         feature.Params{RecentWindow: cfg.Analysis.RecentWindow},
		ObservationDays: cfg.Analysis.ObservationDays,
		Concurrency:     cfg.Concurrency,
	}
}

// readMatrixFile loads and validates a pivoted matrix CSV.
func readMatrixFile(path string) (matrix.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open matrix: %w", err)
	}
	defer f.Close()
	m, err := matrix.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// parseUserID parses and range-checks a user id argument.
func parseUserID(arg string, m matrix.Matrix) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("user id %q is not a number", arg)
	}
	if id < 0 || id >= m.Users() {
		return 0, fmt.Errorf("user id %d out of range (matrix has %d users)", id, m.Users())
	}
	return id, nil
}

// writeFile creates path and hands it to write, closing on the way out.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
