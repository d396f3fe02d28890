package schedule

import (
	"sort"
	"time"

	"tableflip.dev/agenda/pkg/timeutil"
)

// Geometry configures the rendered track scale.
type Geometry struct {
	PixelsPerMinute float64
}

// DefaultGeometry returns the fixed scale used by every surface unless
// overridden by configuration.
func DefaultGeometry() Geometry {
	return Geometry{PixelsPerMinute: DefaultPixelsPerMinute}
}

// Layout resolves every task's interval against date and assigns the full
// rendering geometry: vertical position from minutes since midnight, and
// horizontal column/width from overlap packing. The input slice is read as a
// snapshot; Layout returns fresh copies and never mutates the given tasks or
// their Original back-references. It never fails: malformed entries degrade
// to zero-size geometry.
func Layout(date time.Time, tasks []*ScheduledTask, geo Geometry) []*ScheduledTask {
	if geo.PixelsPerMinute <= 0 {
		geo.PixelsPerMinute = DefaultPixelsPerMinute
	}

	out := make([]*ScheduledTask, 0, len(tasks))
	for _, t := range tasks {
		if t == nil {
			continue
		}
		cp := *t
		start, end, ok := cp.ResolveInterval(date)
		cp.StartDateTime = start
		cp.EndDateTime = end
		cp.Invalid = !ok
		out = append(out, &cp)
	}

	pack(out)

	midnight := timeutil.OnDate(date, 0)
	for _, t := range out {
		if t.Invalid {
			t.Top = 0
			t.Height = 0
			continue
		}
		t.Top = t.StartDateTime.Sub(midnight).Minutes() * geo.PixelsPerMinute
		t.Height = t.EndDateTime.Sub(t.StartDateTime).Minutes() * geo.PixelsPerMinute
	}
	return out
}

// pack assigns Column, MaxColumns, Left, and Width over resolved intervals.
//
// Columns are assigned first-fit: tasks are taken in start order (stable, so
// ties keep their input order) and each is placed in the leftmost column
// whose previous occupant has already ended. MaxColumns is the task's own
// maximum concurrent-overlap count, computed per intersecting pair: the
// overlap window of the pair is intersected against the full set and the
// largest such count wins. A task with no intersecting partner gets 1.
func pack(tasks []*ScheduledTask) {
	ordered := make([]*ScheduledTask, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartDateTime.Before(ordered[j].StartDateTime)
	})

	// columnEnds[i] tracks the end instant of the last task placed in column i.
	var columnEnds []time.Time
	for _, t := range ordered {
		placed := false
		for i, end := range columnEnds {
			if !end.After(t.StartDateTime) {
				t.Column = i
				columnEnds[i] = t.EndDateTime
				placed = true
				break
			}
		}
		if !placed {
			t.Column = len(columnEnds)
			columnEnds = append(columnEnds, t.EndDateTime)
		}
	}

	for _, t := range ordered {
		t.MaxColumns = maxOverlapsAtAnyPoint(t, ordered)
		t.Width = 100 / float64(t.MaxColumns)
		t.Left = float64(t.Column) * t.Width
	}
}

func maxOverlapsAtAnyPoint(t *ScheduledTask, all []*ScheduledTask) int {
	max := 1
	for _, other := range all {
		if other == t || !t.Overlaps(other) {
			continue
		}
		windowStart := laterOf(t.StartDateTime, other.StartDateTime)
		windowEnd := earlierOf(t.EndDateTime, other.EndDateTime)

		count := 0
		for _, candidate := range all {
			if candidate.StartDateTime.Before(windowEnd) && windowStart.Before(candidate.EndDateTime) {
				count++
			}
		}
		if count > max {
			max = count
		}
	}
	return max
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
