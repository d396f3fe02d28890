package task

import (
	"sort"
	"strings"
	"time"
)

// Category splits tasks between personal and professional life areas. The
// wire values follow the task source's label conventions.
type Category string

const (
	CategoryPersonal     Category = "pessoal"
	CategoryProfessional Category = "profissional"
)

// Priority bounds. The ordinal is inverted from the common convention: 4 is
// the most urgent ("P1") and 1 the least ("P4").
const (
	PriorityLowest  = 1
	PriorityHighest = 4
)

func New(content string) *Task {
	return &Task{
		Content:  content,
		Priority: PriorityLowest,
	}
}

type Task struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Description string    `json:"description,omitempty"`
	ProjectID   string    `json:"projectId,omitempty"`
	Priority    int       `json:"priority,omitempty"`
	Labels      []string  `json:"labels,omitempty"`
	Due         *Due      `json:"due,omitempty"`
	Deadline    Timestamp `json:"deadline,omitempty"`
	Completed   bool      `json:"completed,omitempty"`
	Created     Timestamp `json:"created,omitempty"`

	// DurationMinutes is the estimated effort, zero when the source carries
	// none.
	DurationMinutes int `json:"durationMinutes,omitempty"`
}

// Due is the scheduled occurrence of a task. Date is always set; HasTime
// reports whether a wall-clock time component was provided.
type Due struct {
	Date    Timestamp `json:"date"`
	HasTime bool      `json:"hasTime,omitempty"`
	Text    string    `json:"text,omitempty"`
}

// Category derives the life area from the task's labels. Tasks without a
// personal label default to professional.
func (t *Task) Category() Category {
	for _, l := range t.Labels {
		if strings.EqualFold(strings.TrimSpace(l), string(CategoryPersonal)) {
			return CategoryPersonal
		}
	}
	return CategoryProfessional
}

// HasLabel reports whether the task carries the given label, ignoring case.
func (t *Task) HasLabel(name string) bool {
	for _, l := range t.Labels {
		if strings.EqualFold(strings.TrimSpace(l), name) {
			return true
		}
	}
	return false
}

// NormalizedPriority clamps the priority into the 1..4 range.
func (t *Task) NormalizedPriority() int {
	if t.Priority < PriorityLowest {
		return PriorityLowest
	}
	if t.Priority > PriorityHighest {
		return PriorityHighest
	}
	return t.Priority
}

// StartClock returns the "HH:mm" start time from the due field, when the due
// carries a time component.
func (t *Task) StartClock() (string, bool) {
	if t.Due == nil || !t.Due.HasTime || t.Due.Date.IsZero() {
		return "", false
	}
	return t.Due.Date.Local().Format("15:04"), true
}

// Less orders two tasks by priority descending then due ascending; tasks
// without a due date sort last. It is the shared sort key of the focus queue
// and the listing surfaces.
func Less(a, b *Task) bool {
	ap, bp := a.NormalizedPriority(), b.NormalizedPriority()
	if ap != bp {
		return ap > bp
	}
	ad, aok := dueInstant(a)
	bd, bok := dueInstant(b)
	switch {
	case aok && bok:
		if !ad.Equal(bd) {
			return ad.Before(bd)
		}
	case aok:
		return true
	case bok:
		return false
	}
	return false
}

// SortStable sorts tasks in place by the shared urgency key, keeping the
// input order for full ties.
func SortStable(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return Less(tasks[i], tasks[j])
	})
}

func dueInstant(t *Task) (time.Time, bool) {
	if t.Due == nil || t.Due.Date.IsZero() {
		return time.Time{}, false
	}
	return t.Due.Date.Time, true
}
