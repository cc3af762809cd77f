package schedule

import (
	"math"
	"sort"
)

const (
	// fullWidthPct is the horizontal span available to a day column,
	// leaving a 4-point margin of the full 100.
	fullWidthPct = 96.0
	// maxEqualColumns is the largest cluster that still divides the width
	// evenly. Bigger clusters switch to the cascading layout.
	maxEqualColumns = 3
	// minCascadeWidthPct is the floor card width in the cascading layout.
	minCascadeWidthPct = 35.0
)

// Lane is the derived placement of one activity within a rendered day: which
// column it occupies, how many columns its cluster has, and the fractional
// width and horizontal offset (in percent of the day column). Lanes are
// recomputed on every render and never persisted.
type Lane struct {
	ColumnIndex int     `json:"column_index"`
	ColumnCount int     `json:"column_count"`
	WidthPct    float64 `json:"width_pct"`
	LeftPct     float64 `json:"left_pct"`
}

// Placement pairs an activity with its computed lane.
type Placement struct {
	Activity *Activity `json:"activity"`
	Lane     Lane      `json:"lane"`
}

// LayoutDay assigns a lane to every activity of one calendar day so that
// concurrent activities render side by side. The input order is preserved in
// the result.
//
// Activities are processed in start-time order (stable on ties). Overlapping
// runs form clusters: a cluster closes once an activity starts at or after
// the latest end seen so far. Within a cluster, each activity goes into the
// first column that is free by its start time, or opens a new column.
// Clusters of up to three columns split the width evenly; wider clusters
// fan out into fixed-width overlapping cards so cards never become slivers.
func LayoutDay(activities []*Activity) ([]Placement, error) {
	type item struct {
		act        *Activity
		start, end int
		pos        int // index in the caller's slice
	}

	items := make([]*item, len(activities))
	for i, a := range activities {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		start, err := a.StartMinutes()
		if err != nil {
			return nil, err
		}
		items[i] = &item{act: a, start: start, end: start + a.DurationMinutes, pos: i}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].start < items[j].start })

	out := make([]Placement, len(activities))
	var columns [][]*item

	finalize := func() {
		n := len(columns)
		if n == 0 {
			return
		}
		if n <= maxEqualColumns {
			for ci, col := range columns {
				lane := Lane{
					ColumnIndex: ci,
					ColumnCount: n,
					WidthPct:    round2(fullWidthPct / float64(n)),
					LeftPct:     round2(float64(ci) * fullWidthPct / float64(n)),
				}
				for _, it := range col {
					out[it.pos] = Placement{Activity: it.act, Lane: lane}
				}
			}
			return
		}
		// Dense cluster: fixed-width cards fanned across the column.
		minWidth := math.Max(minCascadeWidthPct, fullWidthPct/math.Min(float64(n), maxEqualColumns))
		step := (fullWidthPct - minWidth) / float64(n-1)
		for ci, col := range columns {
			lane := Lane{
				ColumnIndex: ci,
				ColumnCount: n,
				WidthPct:    round2(minWidth),
				LeftPct:     round2(float64(ci) * step),
			}
			for _, it := range col {
				out[it.pos] = Placement{Activity: it.act, Lane: lane}
			}
		}
	}

	lastEventEnding := -1
	for _, it := range items {
		if lastEventEnding >= 0 && it.start >= lastEventEnding {
			// Every open column ended before this activity: the cluster
			// is complete and this activity starts a new one.
			finalize()
			columns = nil
			lastEventEnding = -1
		}

		placed := false
		for ci, col := range columns {
			if col[len(col)-1].end <= it.start {
				columns[ci] = append(col, it)
				placed = true
				break
			}
		}
		if !placed {
			columns = append(columns, []*item{it})
		}

		if it.end > lastEventEnding {
			lastEventEnding = it.end
		}
	}
	finalize()

	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
