package focus

import (
	"context"

	"tableflip.dev/agenda/pkg/task"
)

// State is the focus workflow phase.
type State string

const (
	StateInitial  State = "initial"
	StateFocusing State = "focusing"
	StateFinished State = "finished"
)

// Session walks a queue one task at a time. Completing or skipping the
// current task removes it; the session finishes when the queue drains. A
// finished session only leaves that state through a new Load.
type Session struct {
	state State
	queue []*task.Task
}

func NewSession() *Session {
	return &Session{state: StateInitial}
}

// Load builds a fresh queue from the policy and resets the workflow: the
// session moves to focusing when the queue has at least one task, straight to
// finished otherwise.
func (s *Session) Load(ctx context.Context, p *Policy) {
	s.queue = p.BuildQueue(ctx)
	if len(s.queue) == 0 {
		s.state = StateFinished
		return
	}
	s.state = StateFocusing
}

func (s *Session) State() State {
	return s.state
}

// Current returns the head of the queue.
func (s *Session) Current() (*task.Task, bool) {
	if s.state != StateFocusing || len(s.queue) == 0 {
		return nil, false
	}
	return s.queue[0], true
}

// Remaining returns the number of queued tasks, including the current one.
func (s *Session) Remaining() int {
	return len(s.queue)
}

// Complete removes the current task as done.
func (s *Session) Complete() (*task.Task, bool) {
	return s.pop()
}

// Skip removes the current task without completing it.
func (s *Session) Skip() (*task.Task, bool) {
	return s.pop()
}

func (s *Session) pop() (*task.Task, bool) {
	if s.state != StateFocusing || len(s.queue) == 0 {
		return nil, false
	}
	head := s.queue[0]
	s.queue = s.queue[1:]
	if len(s.queue) == 0 {
		s.state = StateFinished
	}
	return head, true
}
