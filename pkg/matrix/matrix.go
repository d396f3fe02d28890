// Package matrix classifies tasks into Eisenhower quadrants and turns the
// result into the ranking snapshot consumed by the focus queue.
package matrix

import (
	"time"

	"tableflip.dev/agenda/pkg/task"
)

// Quadrant identifies one cell of the matrix, in working order: do first,
// schedule, delegate, drop.
type Quadrant int

const (
	QuadrantUrgentImportant Quadrant = 1
	QuadrantImportant       Quadrant = 2
	QuadrantUrgent          Quadrant = 3
	QuadrantNeither         Quadrant = 4
)

func (q Quadrant) String() string {
	switch q {
	case QuadrantUrgentImportant:
		return "urgent and important"
	case QuadrantImportant:
		return "important, not urgent"
	case QuadrantUrgent:
		return "urgent, not important"
	default:
		return "neither"
	}
}

// ImportantLabel marks a task as important regardless of its priority.
const ImportantLabel = "importante"

// UrgencyWindow is how close a due date or deadline must be for a task to
// count as urgent.
const UrgencyWindow = 24 * time.Hour

// Result is the persisted outcome of a matrix run.
type Result struct {
	GeneratedAt task.Timestamp          `json:"generatedAt"`
	Quadrants   map[Quadrant][]*task.Task `json:"quadrants"`
}

// Classify places one task. A task is urgent when it is overdue or falls due
// (or hits its deadline) within the urgency window, or carries the source's
// most urgent priority. A task is important when its priority is high or it
// carries the important label.
func Classify(t *task.Task, now time.Time) Quadrant {
	urgent := isUrgent(t, now)
	important := isImportant(t)
	switch {
	case urgent && important:
		return QuadrantUrgentImportant
	case important:
		return QuadrantImportant
	case urgent:
		return QuadrantUrgent
	default:
		return QuadrantNeither
	}
}

func isUrgent(t *task.Task, now time.Time) bool {
	if t.NormalizedPriority() == task.PriorityHighest {
		return true
	}
	horizon := now.Add(UrgencyWindow)
	if t.Due != nil && !t.Due.Date.IsZero() && t.Due.Date.Before(horizon) {
		return true
	}
	if !t.Deadline.IsZero() && t.Deadline.Before(horizon) {
		return true
	}
	return false
}

func isImportant(t *task.Task) bool {
	return t.NormalizedPriority() >= 3 || t.HasLabel(ImportantLabel)
}

// Build classifies every task and assembles the full matrix.
func Build(tasks []*task.Task, now time.Time) Result {
	r := Result{
		GeneratedAt: task.Timestamp{Time: now},
		Quadrants:   make(map[Quadrant][]*task.Task, 4),
	}
	for _, t := range tasks {
		if t == nil || t.Completed {
			continue
		}
		q := Classify(t, now)
		r.Quadrants[q] = append(r.Quadrants[q], t)
	}
	for q := range r.Quadrants {
		task.SortStable(r.Quadrants[q])
	}
	return r
}

// Ranking flattens the matrix in quadrant order into the ordered task list
// stored as the focus ranking snapshot.
func (r Result) Ranking() []*task.Task {
	ranking := make([]*task.Task, 0)
	for _, q := range []Quadrant{QuadrantUrgentImportant, QuadrantImportant, QuadrantUrgent, QuadrantNeither} {
		ranking = append(ranking, r.Quadrants[q]...)
	}
	return ranking
}
