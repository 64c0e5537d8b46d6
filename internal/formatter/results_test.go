package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/retainops/rfi/internal/batch"
	"github.com/retainops/rfi/internal/feature"
	"github.com/retainops/rfi/internal/rfi"
)

func sampleOutcomes() []batch.Outcome {
	return []batch.Outcome{
		{UserID: 0, Features: feature.Vector{ActivityRatio: 1}, Dormancy: 0},
		{UserID: 1, Features: feature.Vector{ActivityRatio: 0.56, NumEpisodes: 4, AvgRecency: 2, MinRecency: 2}, Dormancy: 4},
	}
}

func TestFeatureTable(t *testing.T) {
	var buf bytes.Buffer
	if err := FeatureTable(&buf, sampleOutcomes()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Activity Ratio") {
		t.Errorf("missing header in:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Header, separator, two data rows.
	if len(lines) != 4 {
		t.Errorf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[3], "0.56") {
		t.Errorf("row formatting wrong: %q", lines[3])
	}
}

func TestDormancyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := DormancyTable(&buf, sampleOutcomes()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "4") {
		t.Errorf("missing dormancy value:\n%s", buf.String())
	}
}

func TestRFITable(t *testing.T) {
	var buf bytes.Buffer
	table := rfi.Table{Rows: []rfi.Row{{R: 7, F: 1, I: 5, Relevance: 4.55}}}
	if err := RFITable(&buf, table); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Relevance") || !strings.Contains(out, "4.55") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestFeaturesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := FeaturesCSV(&buf, sampleOutcomes()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "user_id,Activity Ratio,") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "1,0.56,4,2.00,2,") {
		t.Errorf("row = %q", lines[2])
	}
}

func TestDormancyCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := DormancyCSV(&buf, sampleOutcomes()); err != nil {
		t.Fatal(err)
	}
	want := "user_id," + DormancyColumn + "\n0,0\n1,4\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestJSONL(t *testing.T) {
	var buf bytes.Buffer
	res := batch.Result{
		Summary:  batch.Summary{RunID: "run-1", Users: 2},
		Outcomes: sampleOutcomes(),
	}
	if err := JSONL(&buf, res); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	var first struct {
		RunID  string `json:"run_id"`
		UserID int    `json:"user_id"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if first.RunID != "run-1" || first.UserID != 0 {
		t.Errorf("first line = %+v", first)
	}
}

func TestSummaryReportsFailures(t *testing.T) {
	var buf bytes.Buffer
	res := batch.Result{
		Summary: batch.Summary{RunID: "run-2", Users: 2, Failed: 1},
		Outcomes: []batch.Outcome{
			{UserID: 0},
			{UserID: 1, Failed: true, Reason: "user 1: cell value not binary"},
		},
	}
	Summary(&buf, res)
	out := buf.String()
	if !strings.Contains(out, "1 failed") {
		t.Errorf("summary missing failure count:\n%s", out)
	}
	if !strings.Contains(out, "user 1 defaulted") {
		t.Errorf("summary missing failure detail:\n%s", out)
	}
}
