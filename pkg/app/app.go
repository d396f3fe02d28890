// Package app provides the high-level planner operations shared by the CLI
// runners and the TUI: assembling day schedules, rescheduling, building the
// focus queue, and managing workflow snapshots.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"tableflip.dev/agenda/pkg/focus"
	"tableflip.dev/agenda/pkg/matrix"
	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/task"
	"tableflip.dev/agenda/pkg/timeutil"
)

// TaskSource is the remote task store the planner reads from and writes to.
type TaskSource interface {
	Tasks(ctx context.Context, filter string) ([]*task.Task, error)
	Reschedule(ctx context.Context, id string, due time.Time) error
	Close(ctx context.Context, id string) error
	Reopen(ctx context.Context, id string) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// Service wires the task source, the snapshot store, and the layout engine.
type Service struct {
	Source    TaskSource
	Snapshots store.Snapshots
	Geometry  schedule.Geometry
}

var (
	errNoSource    = errors.New("app: no task source configured")
	errNoSnapshots = errors.New("app: no snapshot store configured")
)

const dayFilterLayout = "2006-01-02"

// Day fetches the date's tasks and time blocks and lays out the full day
// schedule. Tasks whose due date carries no time component are left off the
// track; they still show up in plain listings.
func (s *Service) Day(ctx context.Context, date time.Time) (*schedule.DaySchedule, error) {
	if s.Source == nil {
		return nil, errNoSource
	}

	filter := "due: " + date.Format(dayFilterLayout)
	tasks, err := s.Source.Tasks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("app: fetch day tasks: %w", err)
	}

	entries := make([]*schedule.ScheduledTask, 0, len(tasks))
	for _, t := range tasks {
		if entry, ok := schedule.FromTask(t); ok {
			entries = append(entries, entry)
		}
	}

	blocks, err := s.TimeBlocks()
	if err != nil {
		fmt.Fprintf(os.Stderr, "app: time blocks unavailable: %v\n", err)
		blocks = nil
	}

	return &schedule.DaySchedule{
		Date:           timeutil.OnDate(date, 0),
		TimeBlocks:     blocks,
		ScheduledTasks: schedule.Layout(date, entries, s.Geometry),
	}, nil
}

// Dragger builds a drag controller whose drops persist through the task
// source, anchored to the given date.
func (s *Service) Dragger(date time.Time) *schedule.DragController {
	return &schedule.DragController{
		Persist: func(ctx context.Context, taskID, newStart string) error {
			return s.Move(ctx, taskID, date, newStart)
		},
	}
}

// Move reschedules a task to the "HH:mm" slot on the given date.
func (s *Service) Move(ctx context.Context, taskID string, date time.Time, newStart string) error {
	if s.Source == nil {
		return errNoSource
	}
	due, err := timeutil.ParseClockOn(date, newStart)
	if err != nil {
		return fmt.Errorf("app: move task %s: %w", taskID, err)
	}
	return s.Source.Reschedule(ctx, taskID, due)
}

// FocusPolicy assembles the three-source ordering policy. An empty filter
// falls back to the stored focus filter snapshot, when present.
func (s *Service) FocusPolicy(filter string) (*focus.Policy, error) {
	if s.Source == nil {
		return nil, errNoSource
	}

	if filter == "" && s.Snapshots != nil {
		var stored string
		if found, err := s.Snapshots.Load(store.KeyFocusFilter, &stored); err != nil {
			fmt.Fprintf(os.Stderr, "app: stored focus filter unavailable: %v\n", err)
		} else if found {
			filter = stored
		}
	}

	p := &focus.Policy{
		Backlog: func(ctx context.Context) ([]*task.Task, error) {
			return s.Source.Tasks(ctx, "")
		},
	}
	if filter != "" {
		query := filter
		p.Filter = func(ctx context.Context) ([]*task.Task, error) {
			return s.Source.Tasks(ctx, query)
		}
	}
	if s.Snapshots != nil {
		p.Ranking = func(context.Context) ([]*task.Task, error) {
			var ranking []*task.Task
			found, err := s.Snapshots.Load(store.KeyRanking, &ranking)
			if err != nil {
				return nil, err
			}
			if !found {
				return nil, nil
			}
			return ranking, nil
		}
	}
	return p, nil
}

// SaveFocusFilter stores the filter used by subsequent focus sessions.
func (s *Service) SaveFocusFilter(filter string) error {
	if s.Snapshots == nil {
		return errNoSnapshots
	}
	return s.Snapshots.Save(store.KeyFocusFilter, filter)
}

// BuildMatrix classifies the whole backlog and persists both the matrix and
// its flattened ranking for the focus queue.
func (s *Service) BuildMatrix(ctx context.Context, now time.Time) (matrix.Result, error) {
	if s.Source == nil {
		return matrix.Result{}, errNoSource
	}
	tasks, err := s.Source.Tasks(ctx, "")
	if err != nil {
		return matrix.Result{}, fmt.Errorf("app: fetch backlog: %w", err)
	}

	result := matrix.Build(tasks, now)
	if s.Snapshots != nil {
		if err := s.Snapshots.Save(store.KeyMatrix, result); err != nil {
			return result, err
		}
		if err := s.Snapshots.Save(store.KeyRanking, result.Ranking()); err != nil {
			return result, err
		}
	}
	return result, nil
}

// TimeBlocks loads the configured day blocks. A missing or unreadable
// snapshot yields no blocks.
func (s *Service) TimeBlocks() ([]schedule.TimeBlock, error) {
	if s.Snapshots == nil {
		return nil, nil
	}
	var blocks []schedule.TimeBlock
	found, err := s.Snapshots.Load(store.KeyTimeBlocks, &blocks)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return blocks, nil
}

// SetTimeBlocks validates and stores the day's block configuration.
// Overlapping or malformed blocks are rejected up front so classification
// stays unambiguous.
func (s *Service) SetTimeBlocks(blocks []schedule.TimeBlock) error {
	if s.Snapshots == nil {
		return errNoSnapshots
	}
	if err := schedule.ValidateBlocks(blocks); err != nil {
		return err
	}
	return s.Snapshots.Save(store.KeyTimeBlocks, blocks)
}

// Tasks lists tasks through the source, passing the filter query through
// opaquely.
func (s *Service) Tasks(ctx context.Context, filter string) ([]*task.Task, error) {
	if s.Source == nil {
		return nil, errNoSource
	}
	return s.Source.Tasks(ctx, filter)
}

// Complete closes a task at the source.
func (s *Service) Complete(ctx context.Context, id string) error {
	if s.Source == nil {
		return errNoSource
	}
	return s.Source.Close(ctx, id)
}
