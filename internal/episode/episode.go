// Package episode segments a user's binary daily-activity sequence into
// maximal runs of inactive days. The most recent day acts as a reference:
// when it is inactive, the trailing run is still open and is reported
// separately as the ongoing episode rather than as a resolved one.
package episode

// Episode is a maximal run of consecutive inactive days inside the
// observation window.
type Episode struct {
	// Start is the 0-based index of the first inactive day.
	Start int
	// Duration is the number of consecutive inactive days (>= 1).
	Duration int
}

// End returns the index of the episode's last inactive day.
func (e Episode) End() int {
	return e.Start + e.Duration - 1
}

// Segmentation is the result of splitting one activity sequence.
type Segmentation struct {
	// Episodes holds the resolved episodes, ordered by start index.
	Episodes []Episode
	// Ongoing is the trailing episode still open on the reference day,
	// or nil when the user was active that day. At most one exists.
	Ongoing *Episode
	// Window is the observation window the episodes were scanned over.
	// When the reference day is inactive it carries one synthetic
	// trailing 0 so the open gap is visible to the scanner.
	Window []int8
	// Reference is the activity value of the most recent day.
	Reference int8
}

// Recency returns the number of days elapsed since e ended, measured back
// from the end of the observation window. The synthetic extension day is
// not counted.
func (s Segmentation) Recency(e Episode) int {
	ext := 0
	if s.Reference == 0 {
		ext = 1
	}
	return len(s.Window) - e.End() - ext
}

// Segment splits seq into resolved inactivity episodes and an optional
// ongoing one. The last element of seq is the reference day; the prefix is
// the observation window. An empty sequence yields an empty segmentation.
func Segment(seq []int8) Segmentation {
	if len(seq) == 0 {
		return Segmentation{}
	}

	reference := seq[len(seq)-1]
	window := make([]int8, 0, len(seq))
	window = append(window, seq[:len(seq)-1]...)
	if reference == 0 {
		// Today is also inactive: fold it into the window so a
		// currently-open gap reaches the scanner.
		window = append(window, 0)
	}

	var episodes []Episode
	for i := 0; i < len(window); {
		if window[i] != 0 {
			i++
			continue
		}
		start := i
		for i < len(window) && window[i] == 0 {
			i++
		}
		episodes = append(episodes, Episode{Start: start, Duration: i - start})
	}

	seg := Segmentation{Episodes: episodes, Window: window, Reference: reference}
	if n := len(episodes); n > 0 && reference == 0 && episodes[n-1].End() == len(window)-1 {
		last := episodes[n-1]
		seg.Ongoing = &last
		seg.Episodes = episodes[:n-1]
	}
	return seg
}
