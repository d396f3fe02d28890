package triage

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/task"
)

type recorder struct {
	completed []string
	scheduled []string
	updated   map[string]map[string]any
	deleted   []string
}

func (r *recorder) actions() Actions {
	if r.updated == nil {
		r.updated = map[string]map[string]any{}
	}
	return Actions{
		Complete: func(ctx context.Context, id string) error {
			r.completed = append(r.completed, id)
			return nil
		},
		Schedule: func(ctx context.Context, id string, date time.Time, start string) error {
			r.scheduled = append(r.scheduled, id+"@"+start)
			return nil
		},
		Update: func(ctx context.Context, id string, fields map[string]any) error {
			r.updated[id] = fields
			return nil
		},
		Delete: func(ctx context.Context, id string) error {
			r.deleted = append(r.deleted, id)
			return nil
		},
	}
}

func TestApplyDoNow(t *testing.T) {
	r := &recorder{}
	err := Apply(context.Background(), r.actions(), &task.Task{ID: "1"}, DecisionDoNow, Scheduling{})
	if err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	if len(r.completed) != 1 || r.completed[0] != "1" {
		t.Fatalf("completed = %v, want [1]", r.completed)
	}
}

func TestApplyScheduleWithDuration(t *testing.T) {
	r := &recorder{}
	s := Scheduling{
		Date:            time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local),
		Start:           "09:30",
		DurationMinutes: 45,
	}
	if err := Apply(context.Background(), r.actions(), &task.Task{ID: "2"}, DecisionSchedule, s); err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	if len(r.scheduled) != 1 || r.scheduled[0] != "2@09:30" {
		t.Fatalf("scheduled = %v", r.scheduled)
	}
	fields, ok := r.updated["2"]
	if !ok {
		t.Fatal("expected a duration update")
	}
	if fields["duration"] != 45 || fields["duration_unit"] != "minute" {
		t.Fatalf("duration fields = %v", fields)
	}
}

func TestApplySomedayAddsLabelOnce(t *testing.T) {
	r := &recorder{}
	tk := &task.Task{ID: "3", Labels: []string{"pessoal"}}
	if err := Apply(context.Background(), r.actions(), tk, DecisionSomeday, Scheduling{}); err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	labels, ok := r.updated["3"]["labels"].([]string)
	if !ok || len(labels) != 2 || labels[1] != SomedayLabel {
		t.Fatalf("labels = %v", r.updated["3"])
	}

	parked := &task.Task{ID: "4", Labels: []string{SomedayLabel}}
	if err := Apply(context.Background(), r.actions(), parked, DecisionSomeday, Scheduling{}); err != nil {
		t.Fatalf("Apply() on parked task = %v", err)
	}
	if _, reupdated := r.updated["4"]; reupdated {
		t.Fatal("already parked task should not be updated again")
	}
}

func TestApplyDelete(t *testing.T) {
	r := &recorder{}
	if err := Apply(context.Background(), r.actions(), &task.Task{ID: "5"}, DecisionDelete, Scheduling{}); err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	if len(r.deleted) != 1 || r.deleted[0] != "5" {
		t.Fatalf("deleted = %v", r.deleted)
	}
}

func TestApplyMissingAction(t *testing.T) {
	err := Apply(context.Background(), Actions{}, &task.Task{ID: "6"}, DecisionDelete, Scheduling{})
	if err == nil {
		t.Fatal("expected an error with no wired delete action")
	}
}

func TestInbox(t *testing.T) {
	due := &task.Due{Text: "today"}
	tasks := []*task.Task{
		{ID: "a"},
		{ID: "b", Due: due},
		{ID: "c", Completed: true},
		{ID: "d", Labels: []string{SomedayLabel}},
		nil,
		{ID: "e"},
	}
	got := Inbox(tasks)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "e" {
		t.Fatalf("Inbox() = %v", got)
	}
}
