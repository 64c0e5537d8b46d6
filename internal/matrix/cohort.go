package matrix

// LongestStreak returns the length of the longest run of consecutive
// inactive days anywhere in the row. Unlike episode segmentation, the
// whole row is scanned with no reference-day handling.
func LongestStreak(row []int8) int {
	var longest, run int
	for _, d := range row {
		if d == 0 {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	return longest
}

// CohortStats summarizes a cohort filtering pass.
type CohortStats struct {
	Total       int   `json:"total_clients"`
	Dropout     int   `json:"dropout_clients"`
	FullyActive int   `json:"fully_active_clients"`
	Kept        int   `json:"kept_clients"`
	KeptIDs     []int `json:"-"`
	Streaks     []int `json:"-"`
}

// Cohort removes rows that carry no scoring signal: dropout clients whose
// longest inactivity streak reaches dropoutStreak days, and fully active
// clients with no inactivity at all. KeptIDs maps the filtered rows back
// to their original 0-based ids.
func Cohort(m Matrix, dropoutStreak int) (Matrix, CohortStats) {
	stats := CohortStats{Total: m.Users(), Streaks: make([]int, m.Users())}
	var kept Matrix
	for i, row := range m {
		streak := LongestStreak(row)
		stats.Streaks[i] = streak
		switch {
		case streak >= dropoutStreak:
			stats.Dropout++
		case streak == 0:
			stats.FullyActive++
		default:
			kept = append(kept, row)
			stats.KeptIDs = append(stats.KeptIDs, i)
		}
	}
	stats.Kept = len(kept)
	return kept, stats
}
