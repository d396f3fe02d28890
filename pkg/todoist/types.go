package todoist

import (
	"fmt"
	"os"

	"tableflip.dev/agenda/pkg/task"
)

// Wire shapes of the v2 REST API. Only the fields the planner reads are
// declared.

type apiTask struct {
	ID          string       `json:"id"`
	Content     string       `json:"content"`
	Description string       `json:"description"`
	ProjectID   string       `json:"project_id"`
	Priority    int          `json:"priority"`
	Labels      []string     `json:"labels"`
	IsCompleted bool         `json:"is_completed"`
	CreatedAt   string       `json:"created_at"`
	Due         *apiDue      `json:"due"`
	Deadline    *apiDeadline `json:"deadline"`
	Duration    *apiDuration `json:"duration"`
}

type apiDue struct {
	Date        string `json:"date"`
	Datetime    string `json:"datetime"`
	String      string `json:"string"`
	IsRecurring bool   `json:"is_recurring"`
}

type apiDeadline struct {
	Date string `json:"date"`
}

type apiDuration struct {
	Amount int    `json:"amount"`
	Unit   string `json:"unit"`
}

// toTask maps a wire task to the domain model. Unparseable timestamps on
// individual fields degrade to their zero values with a stderr warning; the
// task itself is never dropped.
func (a apiTask) toTask() *task.Task {
	t := &task.Task{
		ID:          a.ID,
		Content:     a.Content,
		Description: a.Description,
		ProjectID:   a.ProjectID,
		Priority:    a.Priority,
		Labels:      a.Labels,
		Completed:   a.IsCompleted,
	}

	if a.CreatedAt != "" {
		if created, err := task.ParseTime(a.CreatedAt); err == nil {
			t.Created = task.Timestamp{Time: created}
		} else {
			warnField(a.ID, "created_at", err)
		}
	}

	if a.Due != nil {
		raw := a.Due.Datetime
		hasTime := raw != ""
		if raw == "" {
			raw = a.Due.Date
		}
		if raw != "" {
			if due, err := task.ParseTime(raw); err == nil {
				t.Due = &task.Due{
					Date:    task.Timestamp{Time: due},
					HasTime: hasTime,
					Text:    a.Due.String,
				}
			} else {
				warnField(a.ID, "due", err)
			}
		}
	}

	if a.Deadline != nil && a.Deadline.Date != "" {
		if deadline, err := task.ParseTime(a.Deadline.Date); err == nil {
			t.Deadline = task.Timestamp{Time: deadline}
		} else {
			warnField(a.ID, "deadline", err)
		}
	}

	if a.Duration != nil && a.Duration.Amount > 0 {
		switch a.Duration.Unit {
		case "day":
			t.DurationMinutes = a.Duration.Amount * 24 * 60
		default:
			t.DurationMinutes = a.Duration.Amount
		}
	}

	return t
}

func warnField(id, field string, err error) {
	fmt.Fprintf(os.Stderr, "todoist: task %s: bad %s: %v\n", id, field, err)
}
