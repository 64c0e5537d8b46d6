package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/retainops/rfi/internal/batch"
	"github.com/retainops/rfi/internal/feature"
	"github.com/retainops/rfi/internal/rfi"
)

// DormancyColumn is the historical export column name for the
// 180-day dormancy score.
const DormancyColumn = "6_months_dormancy"

// FeatureTable renders the batch feature table.
func FeatureTable(w io.Writer, outcomes []batch.Outcome) error {
	t := NewTable(w, append([]string{"User"}, feature.Names()...)...)
	for _, o := range outcomes {
		t.AddRow(append([]string{strconv.Itoa(o.UserID)}, featureCells(o.Features)...)...)
	}
	return t.Render()
}

// DormancyTable renders the batch dormancy table.
func DormancyTable(w io.Writer, outcomes []batch.Outcome) error {
	t := NewTable(w, "User", "Dormancy")
	for _, o := range outcomes {
		t.AddRow(strconv.Itoa(o.UserID), strconv.Itoa(o.Dormancy))
	}
	return t.Render()
}

// RFITable renders one user's RFI table.
func RFITable(w io.Writer, table rfi.Table) error {
	t := NewTable(w, "R", "F", "I", "Relevance")
	for _, r := range table.Rows {
		t.AddRow(strconv.Itoa(r.R), strconv.Itoa(r.F), strconv.Itoa(r.I), f2(r.Relevance))
	}
	return t.Render()
}

// Summary renders a batch summary line, listing per-user failures when
// present.
func Summary(w io.Writer, res batch.Result) {
	s := res.Summary
	fmt.Fprintf(w, "run %s: %d users scored, %d failed, observation window %d days (%s)\n",
		s.RunID, s.Users, s.Failed, s.ObservationDays, s.Elapsed.Round(time.Millisecond))
	for _, o := range res.Outcomes {
		if o.Failed {
			fmt.Fprintf(w, "  user %d defaulted: %s\n", o.UserID, o.Reason)
		}
	}
}

// JSON pretty-prints any value.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// JSONL writes one JSON line per outcome, each stamped with the run id.
func JSONL(w io.Writer, res batch.Result) error {
	enc := json.NewEncoder(w)
	for _, o := range res.Outcomes {
		line := struct {
			RunID string `json:"run_id"`
			batch.Outcome
		}{RunID: res.Summary.RunID, Outcome: o}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	return nil
}

// FeaturesCSV writes the feature table in the export shape the downstream
// pipeline consumes: user_id plus the eleven display columns.
func FeaturesCSV(w io.Writer, outcomes []batch.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"user_id"}, feature.Names()...)); err != nil {
		return err
	}
	for _, o := range outcomes {
		rec := append([]string{strconv.Itoa(o.UserID)}, featureCells(o.Features)...)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DormancyCSV writes the dormancy export table.
func DormancyCSV(w io.Writer, outcomes []batch.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"user_id", DormancyColumn}); err != nil {
		return err
	}
	for _, o := range outcomes {
		if err := cw.Write([]string{strconv.Itoa(o.UserID), strconv.Itoa(o.Dormancy)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// featureCells renders a vector in canonical column order. Integer-typed
// features print as integers, the rest with two decimals.
func featureCells(v feature.Vector) []string {
	return []string{
		f2(v.ActivityRatio),
		strconv.Itoa(v.NumEpisodes),
		f2(v.AvgRecency),
		strconv.Itoa(v.MinRecency),
		f2(v.AvgRelevance),
		f2(v.MaxRelevance),
		f2(v.PeriodicityScore),
		f2(v.InactivityLinearity),
		f2(v.ActivityVariability),
		f2(v.InactivityGrowthRate),
		f2(v.RecentActivityDensity),
	}
}

func f2(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
