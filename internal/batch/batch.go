// Package batch applies the scoring pipeline to every user of an activity
// matrix independently. Per-user failures are isolated: a failing row
// produces a zero-valued defaulted outcome carrying its failure reason,
// and the rest of the batch is unaffected.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/retainops/rfi/internal/episode"
	"github.com/retainops/rfi/internal/feature"
	"github.com/retainops/rfi/internal/matrix"
	"github.com/retainops/rfi/internal/rfi"
	"github.com/retainops/rfi/internal/worker"
)

// Outcome is one user's scoring result. A failed outcome keeps its
// zero-valued defaults and records why it failed; the reason is reported,
// never silently dropped.
type Outcome struct {
	UserID   int            `json:"user_id"`
	Features feature.Vector `json:"features"`
	Dormancy int            `json:"dormancy"`
	Failed   bool           `json:"failed,omitempty"`
	Reason   string         `json:"reason,omitempty"`
}

// Summary describes one batch run.
type Summary struct {
	RunID           string        `json:"run_id"`
	Users           int           `json:"users"`
	Failed          int           `json:"failed"`
	ObservationDays int           `json:"observation_days"`
	Elapsed         time.Duration `json:"elapsed"`
}

// Result is the full output of a batch run, one outcome per input row in
// input order.
type Result struct {
	Summary  Summary
	Outcomes []Outcome
}

// Runner scores every user of a matrix. The zero value is not usable;
// construct with NewRunner.
type Runner struct {
	// RFI holds the relevance-weighting constants.
	RFI rfi.Params
	// Feature holds the feature-extraction constants.
	Feature feature.Params
	// ObservationDays restricts the dormancy computation to the first N
	// columns. Features always use the full sequence.
	ObservationDays int
	// Concurrency bounds the worker fan-out; <= 0 means NumCPU.
	Concurrency int
}

// DefaultObservationDays is the dormancy observation sub-window.
const DefaultObservationDays = 180

// NewRunner returns a runner with production defaults.
func NewRunner() Runner {
	return Runner{
		RFI:             rfi.DefaultParams(),
		Feature:         feature.DefaultParams(),
		ObservationDays: DefaultObservationDays,
	}
}

// ScoreUser runs the full pipeline on a single row: features over the
// whole sequence, dormancy over the first ObservationDays columns. The
// row must be binary.
func (r Runner) ScoreUser(row []int8) (feature.Vector, int, error) {
	if err := matrix.ValidateRow(row); err != nil {
		return feature.Vector{}, 0, err
	}

	seg := episode.Segment(row)
	table := rfi.Build(seg, r.RFI)
	vec := feature.Extract(seg, table, r.Feature).Round()

	obs := row
	if r.ObservationDays > 0 {
		obs = matrix.First(row, r.ObservationDays)
	}
	dormancy := rfi.Build(episode.Segment(obs), r.RFI).Dormancy()

	return vec, dormancy, nil
}

// Run scores every user of m. Outcomes preserve input row order and are
// produced for every user regardless of individual failures. Cancellation
// is honored between users; cancelled users are reported as failed with
// the context error as reason.
func (r Runner) Run(ctx context.Context, m matrix.Matrix) Result {
	start := time.Now()

	ids := make([]int, m.Users())
	for i := range ids {
		ids[i] = i
	}

	type scored struct {
		vec      feature.Vector
		dormancy int
	}
	pool := worker.NewPool[int, scored](r.Concurrency)
	results := pool.Process(ctx, ids, func(id int) (out scored, err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("user %d: panic: %v", id, p)
				out = scored{}
			}
		}()
		vec, dormancy, err := r.ScoreUser(m.Row(id))
		if err != nil {
			return scored{}, fmt.Errorf("user %d: %w", id, err)
		}
		return scored{vec: vec, dormancy: dormancy}, nil
	})

	outcomes := make([]Outcome, len(results))
	var failed int
	for i, res := range results {
		outcomes[i] = Outcome{
			UserID:   i,
			Features: res.Value.vec,
			Dormancy: res.Value.dormancy,
		}
		if res.Err != nil {
			failed++
			outcomes[i].Failed = true
			outcomes[i].Reason = res.Err.Error()
		}
	}

	return Result{
		Summary: Summary{
			RunID:           uuid.NewString(),
			Users:           len(outcomes),
			Failed:          failed,
			ObservationDays: r.ObservationDays,
			Elapsed:         time.Since(start),
		},
		Outcomes: outcomes,
	}
}
