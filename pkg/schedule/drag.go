package schedule

import (
	"context"
	"errors"
)

// PersistFunc stores a task's new start time in the external task source.
// Implementations are asynchronous at the caller's discretion; a failure is
// surfaced to the user, never rolled back locally.
type PersistFunc func(ctx context.Context, taskID, newStart string) error

// DragController mediates moving a scheduled task to a new 15-minute slot.
// It is deliberately UI-agnostic: pointer, keyboard, or CLI bindings all go
// through BeginDrag/CompleteDrop. The controller imposes no validation on the
// target slot; conflicts surface visually through the packer afterwards.
type DragController struct {
	Persist PersistFunc

	dragging *ScheduledTask
}

// ErrNoPersistence is returned when no persistence callback was supplied.
var ErrNoPersistence = errors.New("schedule: drag controller has no persistence callback")

// BeginDrag marks the task as the current drag subject. Only one task is
// dragged at a time; starting a new drag replaces the previous one.
func (c *DragController) BeginDrag(t *ScheduledTask) {
	c.dragging = t
}

// Dragging returns the task currently being dragged, if any.
func (c *DragController) Dragging() (*ScheduledTask, bool) {
	return c.dragging, c.dragging != nil
}

// CancelDrag abandons the current drag without persisting anything.
func (c *DragController) CancelDrag() {
	c.dragging = nil
}

// CompleteDrop persists the dragged task's new "HH:mm" start. The day
// schedule itself is not mutated here; callers re-fetch and re-derive the
// day's layout once the external source confirms the update. The task's
// identity is preserved; only its start (and derivatively its end) changes.
func (c *DragController) CompleteDrop(ctx context.Context, t *ScheduledTask, newStart string) error {
	c.dragging = nil
	if c.Persist == nil {
		return ErrNoPersistence
	}
	if t == nil {
		return errors.New("schedule: no task to drop")
	}
	return c.Persist(ctx, t.TaskID, newStart)
}
