package triage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/agenda/pkg/task"
)

// SomedayLabel parks a task for a later review pass.
const SomedayLabel = "algum-dia"

// Decision is the outcome of looking at one inbox task.
type Decision string

const (
	DecisionDoNow    Decision = "do-now"
	DecisionSchedule Decision = "schedule"
	DecisionSomeday  Decision = "someday"
	DecisionDelete   Decision = "delete"
	DecisionKeep     Decision = "keep"
)

// Scheduling carries the extra answers a schedule decision needs.
type Scheduling struct {
	Date            time.Time
	Start           string // "HH:mm"
	DurationMinutes int
}

// Actions are the side effects a decision can trigger. The caller wires
// them to whatever task source it holds.
type Actions struct {
	Complete func(ctx context.Context, id string) error
	Schedule func(ctx context.Context, id string, date time.Time, start string) error
	Update   func(ctx context.Context, id string, fields map[string]any) error
	Delete   func(ctx context.Context, id string) error
}

var errNoAction = errors.New("triage: decision has no wired action")

// Apply carries out a decision for one task.
func Apply(ctx context.Context, a Actions, t *task.Task, d Decision, s Scheduling) error {
	if t == nil {
		return errors.New("triage: no task")
	}

	switch d {
	case DecisionDoNow:
		if a.Complete == nil {
			return errNoAction
		}
		return a.Complete(ctx, t.ID)

	case DecisionSchedule:
		if a.Schedule == nil {
			return errNoAction
		}
		if err := a.Schedule(ctx, t.ID, s.Date, s.Start); err != nil {
			return err
		}
		if s.DurationMinutes > 0 && a.Update != nil {
			fields := map[string]any{
				"duration":      s.DurationMinutes,
				"duration_unit": "minute",
			}
			if err := a.Update(ctx, t.ID, fields); err != nil {
				return fmt.Errorf("triage: scheduled but could not set duration: %w", err)
			}
		}
		return nil

	case DecisionSomeday:
		if a.Update == nil {
			return errNoAction
		}
		if t.HasLabel(SomedayLabel) {
			return nil
		}
		labels := append(append([]string{}, t.Labels...), SomedayLabel)
		return a.Update(ctx, t.ID, map[string]any{"labels": labels})

	case DecisionDelete:
		if a.Delete == nil {
			return errNoAction
		}
		return a.Delete(ctx, t.ID)

	case DecisionKeep:
		return nil
	}
	return fmt.Errorf("triage: unknown decision %q", d)
}

// Inbox filters the triage candidates out of a task list: incomplete tasks
// with no due date that are not already parked.
func Inbox(tasks []*task.Task) []*task.Task {
	var out []*task.Task
	for _, t := range tasks {
		if t == nil || t.Completed {
			continue
		}
		if t.Due != nil {
			continue
		}
		if t.HasLabel(SomedayLabel) {
			continue
		}
		out = append(out, t)
	}
	return out
}
