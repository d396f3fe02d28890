package move

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/schedule"
)

// Move drags a task to a new 15-minute slot from the command line. It goes
// through the same drag controller the TUI uses, so the semantics are
// identical: the target slot is accepted as-is and conflicts surface on the
// next day render.
type Move struct {
	TaskID   string
	NewStart string
	Date     time.Time
	Service  *app.Service
}

func (n *Move) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not move, no service")
	}
	if n.Date.IsZero() {
		n.Date = time.Now()
	}

	subject := n.findScheduled(ctx)
	controller := n.Service.Dragger(n.Date)
	controller.BeginDrag(subject)
	if err := controller.CompleteDrop(ctx, subject, n.NewStart); err != nil {
		return fmt.Errorf("move %s to %s: %w", n.TaskID, n.NewStart, err)
	}

	fmt.Printf("moved %s to %s\n", n.TaskID, n.NewStart)
	return nil
}

// findScheduled locates the task's calendar entry for the day so the drop
// carries its full metadata. A task not on the day's schedule yet still
// moves; it just drops as a bare entry.
func (n *Move) findScheduled(ctx context.Context) *schedule.ScheduledTask {
	day, err := n.Service.Day(ctx, n.Date)
	if err == nil {
		for _, entry := range day.ScheduledTasks {
			if entry.TaskID == n.TaskID {
				return entry
			}
		}
	}
	return &schedule.ScheduledTask{ID: n.TaskID, TaskID: n.TaskID}
}
