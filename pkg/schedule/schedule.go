// Package schedule is the day-schedule layout engine: it resolves scheduled
// tasks into absolute intervals, packs temporally overlapping tasks into
// side-by-side columns, classifies background time blocks, and mediates
// drag-style reschedules. Everything here is pure computation; rendering and
// persistence stay with the callers.
package schedule

import (
	"time"

	"tableflip.dev/agenda/pkg/task"
	"tableflip.dev/agenda/pkg/timeutil"
)

const (
	// DefaultDurationMinutes is applied when a task carries no usable
	// estimate.
	DefaultDurationMinutes = timeutil.DefaultEstimateMinutes

	// DefaultPixelsPerMinute fixes the vertical scale of the rendered track.
	DefaultPixelsPerMinute = 1.0
)

// ScheduledTask is one calendar entry of a day. The entry has its own ID,
// distinct from the originating task's, since the same task could appear once
// per day.
type ScheduledTask struct {
	ID          string `json:"id"`
	TaskID      string `json:"taskId"`
	Content     string `json:"content"`
	Description string `json:"description,omitempty"`

	// Start is the wall-clock "HH:mm" at which execution is scheduled.
	Start string `json:"start"`

	// EstimatedDurationMinutes derives the end instant; absent or invalid
	// values fall back to DefaultDurationMinutes.
	EstimatedDurationMinutes int `json:"estimatedDurationMinutes,omitempty"`

	// Priority uses the source's inverted ordinal: 4 is most urgent.
	Priority int           `json:"priority,omitempty"`
	Category task.Category `json:"category,omitempty"`

	// Original is a read-only back-reference to the source task. The layout
	// engine never mutates it.
	Original *task.Task `json:"-"`

	// Computed geometry, filled by Layout. Not persisted.
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	Invalid       bool      `json:"invalid,omitempty"`
	Top           float64   `json:"top"`
	Height        float64   `json:"height"`
	Left          float64   `json:"left"`
	Width         float64   `json:"width"`
	Column        int       `json:"column"`
	MaxColumns    int       `json:"maxColumns"`
}

// DaySchedule is the per-render aggregate for one calendar day. It is derived
// fresh from upstream data on every render and never persisted itself.
type DaySchedule struct {
	Date           time.Time        `json:"date"`
	TimeBlocks     []TimeBlock      `json:"timeBlocks,omitempty"`
	ScheduledTasks []*ScheduledTask `json:"scheduledTasks,omitempty"`
}

// FromTask derives a calendar entry from a source task. The entry keeps a
// back-reference and never owns the task.
func FromTask(t *task.Task) (*ScheduledTask, bool) {
	clock, ok := t.StartClock()
	if !ok {
		return nil, false
	}
	return &ScheduledTask{
		ID:                       t.ID + "@" + clock,
		TaskID:                   t.ID,
		Content:                  t.Content,
		Description:              t.Description,
		Start:                    clock,
		EstimatedDurationMinutes: t.DurationMinutes,
		Priority:                 t.NormalizedPriority(),
		Category:                 t.Category(),
		Original:                 t,
	}, true
}

// EffectiveDuration returns the duration used for layout: the estimate when
// positive, the default otherwise.
func (s *ScheduledTask) EffectiveDuration() time.Duration {
	minutes := s.EstimatedDurationMinutes
	if minutes <= 0 {
		minutes = DefaultDurationMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// ResolveInterval anchors the task's "HH:mm" start to the given date and
// derives the end instant from the effective duration. An unparseable start
// yields a degenerate zero-length interval at midnight, flagged invalid; the
// task stays in every list but renders with zero height.
func (s *ScheduledTask) ResolveInterval(date time.Time) (start, end time.Time, ok bool) {
	start, err := timeutil.ParseClockOn(date, s.Start)
	if err != nil {
		midnight := timeutil.OnDate(date, 0)
		return midnight, midnight, false
	}
	return start, start.Add(s.EffectiveDuration()), true
}

// Overlaps reports whether the two resolved intervals intersect. Intervals
// are half-open, so back-to-back tasks do not overlap, and zero-length
// (invalid) intervals never overlap anything.
func (s *ScheduledTask) Overlaps(o *ScheduledTask) bool {
	return s.StartDateTime.Before(o.EndDateTime) && o.StartDateTime.Before(s.EndDateTime)
}
