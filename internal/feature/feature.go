// Package feature computes the fixed eleven-feature behavioral fingerprint
// for one user from the raw observation window, the per-episode
// segmentation, and the aggregated RFI table.
package feature

import (
	"github.com/retainops/rfi/internal/episode"
	"github.com/retainops/rfi/internal/rfi"
	"github.com/retainops/rfi/internal/stats"
)

// Vector is one user's feature fingerprint. Field order is the canonical
// export order and must not change.
type Vector struct {
	ActivityRatio         float64 `json:"activity_ratio"`
	NumEpisodes           int     `json:"num_episodes"`
	AvgRecency            float64 `json:"avg_recency"`
	MinRecency            int     `json:"min_recency"`
	AvgRelevance          float64 `json:"avg_relevance"`
	MaxRelevance          float64 `json:"max_relevance"`
	PeriodicityScore      float64 `json:"activity_periodicity_score"`
	InactivityLinearity   float64 `json:"inactivity_linearity"`
	ActivityVariability   float64 `json:"activity_variability"`
	InactivityGrowthRate  float64 `json:"inactivity_growth_rate"`
	RecentActivityDensity float64 `json:"recent_activity_density"`
}

// Names returns the export column names in canonical order.
func Names() []string {
	return []string{
		"Activity Ratio",
		"Number of Inactivity Episodes",
		"Average Recency",
		"Minimum Recency",
		"Average Relevance",
		"Maximum Relevance",
		"Activity Periodicity Score",
		"Inactivity Linearity",
		"Activity Variability",
		"Inactivity Growth Rate",
		"Recent Activity Density",
	}
}

// Round returns a copy with every float feature rounded to 2 decimals.
// Integer-typed features are untouched.
func (v Vector) Round() Vector {
	v.ActivityRatio = stats.Round2(v.ActivityRatio)
	v.AvgRecency = stats.Round2(v.AvgRecency)
	v.AvgRelevance = stats.Round2(v.AvgRelevance)
	v.MaxRelevance = stats.Round2(v.MaxRelevance)
	v.PeriodicityScore = stats.Round2(v.PeriodicityScore)
	v.InactivityLinearity = stats.Round2(v.InactivityLinearity)
	v.ActivityVariability = stats.Round2(v.ActivityVariability)
	v.InactivityGrowthRate = stats.Round2(v.InactivityGrowthRate)
	v.RecentActivityDensity = stats.Round2(v.RecentActivityDensity)
	return v
}

// Params holds the feature tunables.
type Params struct {
	// RecentWindow is the trailing span, in days, of the recent activity
	// density feature.
	RecentWindow int
}

// DefaultParams returns the production feature constants.
func DefaultParams() Params {
	return Params{RecentWindow: 30}
}

// periodicityMaxLag bounds the autocorrelation lags summed into the
// periodicity score.
const periodicityMaxLag = 29

// Extract computes the feature vector. When the RFI table is empty (no
// inactivity at all) only the activity ratio is computed and every other
// feature is forced to 0 — the growth-rate default of 1 included.
func Extract(seg episode.Segmentation, table rfi.Table, p Params) Vector {
	v := Vector{ActivityRatio: activityRatio(seg.Window)}
	if table.Empty() {
		return v
	}

	v.NumEpisodes = table.NumEpisodes()
	v.AvgRecency, v.MinRecency = recencyStats(table)
	v.AvgRelevance, v.MaxRelevance = relevanceStats(table)
	v.PeriodicityScore = periodicityScore(seg.Window)
	v.InactivityLinearity = inactivityLinearity(seg)
	v.ActivityVariability = activityVariability(seg.Window)
	v.InactivityGrowthRate = inactivityGrowthRate(seg.Episodes)
	v.RecentActivityDensity = recentDensity(seg.Window, p.RecentWindow)
	return v
}

func activityRatio(window []int8) float64 {
	if len(window) == 0 {
		return 0
	}
	var active int
	for _, d := range window {
		active += int(d)
	}
	return float64(active) / float64(len(window))
}

func recencyStats(table rfi.Table) (avg float64, min int) {
	rs := make([]float64, len(table.Rows))
	min = table.Rows[0].R
	for i, r := range table.Rows {
		rs[i] = float64(r.R)
		if r.R < min {
			min = r.R
		}
	}
	return stats.Mean(rs), min
}

func relevanceStats(table rfi.Table) (avg, max float64) {
	ws := make([]float64, len(table.Rows))
	for i, r := range table.Rows {
		ws[i] = r.Relevance
		if r.Relevance > max {
			max = r.Relevance
		}
	}
	return stats.Mean(ws), max
}

// periodicityScore sums the max-normalized autocorrelation over lags
// 1..min(29, len-1) and averages by the lag count. Windows of 7 days or
// fewer carry too little signal and score 0, as does a window with no
// active days at all (the normalization peak would be zero).
func periodicityScore(window []int8) float64 {
	if len(window) <= 7 {
		return 0
	}
	ac := stats.Autocorrelation(window)
	peak := ac[0]
	for _, v := range ac {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		return 0
	}
	maxLag := periodicityMaxLag
	if n := len(ac) - 1; n < maxLag {
		maxLag = n
	}
	var sum float64
	for lag := 1; lag <= maxLag; lag++ {
		sum += ac[lag] / peak
	}
	return sum / float64(maxLag)
}

// inactivityLinearity is the R² of per-episode duration regressed on
// per-episode recency, over resolved episodes only. Fewer than two
// episodes give no trend to fit.
func inactivityLinearity(seg episode.Segmentation) float64 {
	if len(seg.Episodes) < 2 {
		return 0
	}
	recencies := make([]float64, len(seg.Episodes))
	durations := make([]float64, len(seg.Episodes))
	for i, e := range seg.Episodes {
		recencies[i] = float64(seg.Recency(e))
		durations[i] = float64(e.Duration)
	}
	return stats.RSquared(recencies, durations)
}

func activityVariability(window []int8) float64 {
	var active []int
	for i, d := range window {
		if d == 1 {
			active = append(active, i)
		}
	}
	if len(active) < 2 {
		return 0
	}
	gaps := make([]float64, len(active)-1)
	for i := 1; i < len(active); i++ {
		gaps[i-1] = float64(active[i] - active[i-1])
	}
	return stats.StdDev(gaps)
}

// inactivityGrowthRate averages the duration ratio of consecutive resolved
// episodes. With fewer than two episodes the rate defaults to 1 (flat),
// not 0: a lone gap is no evidence of growth or shrinkage.
func inactivityGrowthRate(episodes []episode.Episode) float64 {
	if len(episodes) < 2 {
		return 1
	}
	ratios := make([]float64, 0, len(episodes)-1)
	for i := 1; i < len(episodes); i++ {
		prev := episodes[i-1].Duration
		if prev == 0 {
			ratios = append(ratios, 1)
			continue
		}
		ratios = append(ratios, float64(episodes[i].Duration)/float64(prev))
	}
	return stats.Mean(ratios)
}

func recentDensity(window []int8, recentWindow int) float64 {
	if len(window) == 0 || recentWindow <= 0 {
		return 0
	}
	span := recentWindow
	if len(window) < span {
		span = len(window)
	}
	var active int
	for _, d := range window[len(window)-span:] {
		active += int(d)
	}
	return float64(active) / float64(span)
}
