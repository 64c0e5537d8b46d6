package episode

import (
	"reflect"
	"testing"
)

func TestSegmentEmpty(t *testing.T) {
	seg := Segment(nil)
	if len(seg.Episodes) != 0 || seg.Ongoing != nil || len(seg.Window) != 0 {
		t.Errorf("expected empty segmentation, got %+v", seg)
	}
}

func TestSegmentAllActive(t *testing.T) {
	seg := Segment([]int8{1, 1, 1, 1, 1})
	if len(seg.Episodes) != 0 {
		t.Errorf("expected no episodes, got %v", seg.Episodes)
	}
	if seg.Ongoing != nil {
		t.Errorf("expected no ongoing episode, got %+v", seg.Ongoing)
	}
	if len(seg.Window) != 4 {
		t.Errorf("window length = %d, want 4", len(seg.Window))
	}
	if seg.Reference != 1 {
		t.Errorf("reference = %d, want 1", seg.Reference)
	}
}

func TestSegmentAllInactive(t *testing.T) {
	seg := Segment([]int8{0, 0, 0, 0, 0})
	if len(seg.Episodes) != 0 {
		t.Errorf("expected no resolved episodes, got %v", seg.Episodes)
	}
	if seg.Ongoing == nil {
		t.Fatal("expected an ongoing episode")
	}
	// Window is extended by one synthetic day, so the open gap spans it all.
	if seg.Ongoing.Duration != 5 || seg.Ongoing.Start != 0 {
		t.Errorf("ongoing = %+v, want {Start:0 Duration:5}", seg.Ongoing)
	}
	if len(seg.Window) != 5 {
		t.Errorf("window length = %d, want 5", len(seg.Window))
	}
}

func TestSegmentResolvedEpisodes(t *testing.T) {
	// window: 1,0,0,0,1,0,0,1,1 / reference active
	seg := Segment([]int8{1, 0, 0, 0, 1, 0, 0, 1, 1, 1})
	want := []Episode{{Start: 1, Duration: 3}, {Start: 5, Duration: 2}}
	if !reflect.DeepEqual(seg.Episodes, want) {
		t.Errorf("episodes = %v, want %v", seg.Episodes, want)
	}
	if seg.Ongoing != nil {
		t.Errorf("expected no ongoing episode, got %+v", seg.Ongoing)
	}
}

func TestSegmentOngoingSplit(t *testing.T) {
	// Trailing zeros with an inactive reference day become the ongoing
	// episode, extended by the synthetic day.
	seg := Segment([]int8{0, 1, 0, 0})
	want := []Episode{{Start: 0, Duration: 1}}
	if !reflect.DeepEqual(seg.Episodes, want) {
		t.Errorf("episodes = %v, want %v", seg.Episodes, want)
	}
	if seg.Ongoing == nil {
		t.Fatal("expected an ongoing episode")
	}
	if seg.Ongoing.Start != 2 || seg.Ongoing.Duration != 2 {
		t.Errorf("ongoing = %+v, want {Start:2 Duration:2}", seg.Ongoing)
	}
}

func TestSegmentTrailingZerosActiveReference(t *testing.T) {
	// Reference day active: the trailing run is resolved, not ongoing.
	seg := Segment([]int8{1, 0, 0, 1})
	want := []Episode{{Start: 1, Duration: 2}}
	if !reflect.DeepEqual(seg.Episodes, want) {
		t.Errorf("episodes = %v, want %v", seg.Episodes, want)
	}
	if seg.Ongoing != nil {
		t.Errorf("expected no ongoing episode, got %+v", seg.Ongoing)
	}
	if len(seg.Window) != 3 {
		t.Errorf("window length = %d, want 3 (no extension)", len(seg.Window))
	}
}

func TestSegmentPartition(t *testing.T) {
	// Episode durations plus active days must partition the window.
	seqs := [][]int8{
		{1, 0, 0, 1, 0, 1, 1, 0, 0, 0},
		{0, 0, 1, 1, 1},
		{1, 1, 1, 0},
		{0},
		{1},
	}
	for _, seq := range seqs {
		seg := Segment(seq)
		var inactive int
		for _, e := range seg.Episodes {
			inactive += e.Duration
		}
		if seg.Ongoing != nil {
			inactive += seg.Ongoing.Duration
		}
		var active int
		for _, d := range seg.Window {
			active += int(d)
		}
		if active+inactive != len(seg.Window) {
			t.Errorf("seq %v: active %d + inactive %d != window %d", seq, active, inactive, len(seg.Window))
		}
	}
}

func TestRecency(t *testing.T) {
	tests := []struct {
		name string
		seq  []int8
		ep   Episode
		want int
	}{
		{
			name: "active reference",
			// window len 4, episode ends at index 1
			seq:  []int8{0, 0, 1, 1, 1},
			ep:   Episode{Start: 0, Duration: 2},
			want: 3,
		},
		{
			name: "inactive reference discounts the synthetic day",
			// window extended to len 5, episode ends at index 1
			seq:  []int8{0, 0, 1, 1, 0},
			ep:   Episode{Start: 0, Duration: 2},
			want: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := Segment(tt.seq)
			if got := seg.Recency(tt.ep); got != tt.want {
				t.Errorf("Recency = %d, want %d", got, tt.want)
			}
		})
	}
}
