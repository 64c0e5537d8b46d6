// Package rfi builds the Recency-Frequency-Inactivity table for one user
// and derives the dormancy score from it. Resolved episodes are grouped by
// duration; the ongoing episode, when present, contributes exactly one
// extra row with recency 0 and therefore zero relevance.
package rfi

import (
	"math"
	"sort"

	"github.com/retainops/rfi/internal/episode"
	"github.com/retainops/rfi/internal/stats"
)

// Row is one line of the RFI table.
type Row struct {
	// R is the recency in days of the most recent episode in the group.
	R int
	// F is how many episodes share duration I.
	F int
	// I is the inactivity duration in days.
	I int
	// Relevance is the decayed weight of the group, rounded to 2 decimals.
	Relevance float64
}

// Table is a user's RFI table, sorted by ascending recency.
type Table struct {
	Rows []Row
}

// Empty reports whether the table has no rows (no inactivity at all).
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// NumEpisodes returns the total episode count, ongoing included.
func (t Table) NumEpisodes() int {
	var n int
	for _, r := range t.Rows {
		n += r.F
	}
	return n
}

// Params holds the relevance-weighting tunables.
type Params struct {
	// DecayK is the exponential decay constant applied to sqrt(R+1).
	DecayK float64
	// RecencyCutoff excludes episodes at least this many days old:
	// rows with R >= RecencyCutoff always score zero relevance.
	RecencyCutoff int
}

// DefaultParams returns the production weighting constants.
func DefaultParams() Params {
	return Params{DecayK: 1.0 / 30, RecencyCutoff: 90}
}

// Build aggregates a segmentation into an RFI table. Resolved episodes are
// keyed by duration with F counting the group and R taking the minimum
// recency; the ongoing episode appends one row with F=1, R=0. Each row is
// scored with relevance = I * F * exp(-k*sqrt(R+1)), hard-cut to zero for
// R >= cutoff and for the ongoing row (R == 0).
func Build(seg episode.Segmentation, p Params) Table {
	type group struct {
		f int
		r int
	}
	byDuration := make(map[int]*group)
	var durations []int
	for _, e := range seg.Episodes {
		rec := seg.Recency(e)
		g, ok := byDuration[e.Duration]
		if !ok {
			byDuration[e.Duration] = &group{f: 1, r: rec}
			durations = append(durations, e.Duration)
			continue
		}
		g.f++
		if rec < g.r {
			g.r = rec
		}
	}

	rows := make([]Row, 0, len(durations)+1)
	for _, d := range durations {
		g := byDuration[d]
		rows = append(rows, Row{R: g.r, F: g.f, I: d})
	}
	if seg.Ongoing != nil {
		rows = append(rows, Row{R: 0, F: 1, I: seg.Ongoing.Duration})
	}

	for i := range rows {
		rows[i].Relevance = p.relevance(rows[i])
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].R < rows[j].R })
	return Table{Rows: rows}
}

// relevance scores a single row. Both indicator terms are hard cutoffs:
// very old episodes (R >= cutoff) and the ongoing row (R == 0) are
// excluded from the dormancy estimate.
func (p Params) relevance(r Row) float64 {
	if r.R >= p.RecencyCutoff || r.R == 0 {
		return 0
	}
	w := float64(r.I) * float64(r.F) * math.Exp(-p.DecayK*math.Sqrt(float64(r.R)+1))
	return stats.Round2(w)
}

// Dormancy returns the relevance-weighted average inactivity duration,
// rounded to the nearest integer. A table with no rows, or whose relevance
// weights sum to zero, scores 0: the estimate only fires when at least one
// resolved, recent-but-not-ongoing episode exists.
func (t Table) Dormancy() int {
	if t.Empty() {
		return 0
	}
	values := make([]float64, len(t.Rows))
	weights := make([]float64, len(t.Rows))
	var total float64
	for i, r := range t.Rows {
		values[i] = float64(r.I)
		weights[i] = r.Relevance
		total += r.Relevance
	}
	if total <= 0 {
		return 0
	}
	return int(math.Round(stats.WeightedMean(values, weights)))
}
