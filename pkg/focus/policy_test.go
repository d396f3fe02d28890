package focus

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/task"
)

func fixed(tasks ...*task.Task) Source {
	return func(_ context.Context) ([]*task.Task, error) {
		return tasks, nil
	}
}

func failing(err error) Source {
	return func(_ context.Context) ([]*task.Task, error) {
		return nil, err
	}
}

func mk(id string, priority int) *task.Task {
	return &task.Task{ID: id, Content: id, Priority: priority}
}

func queueIDs(queue []*task.Task) []string {
	ids := make([]string, len(queue))
	for i, t := range queue {
		ids[i] = t.ID
	}
	return ids
}

func assertOrder(t *testing.T, got []*task.Task, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected queue %v, got %v", want, queueIDs(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %v", i, id, queueIDs(got))
		}
	}
}

func TestBuildQueuePrecedenceAndDedup(t *testing.T) {
	// The worked example: filter [T2(P2), T1(P4)], ranking [T1, T3(P1)],
	// backlog [T1, T2, T3, T4(P1)].
	t1 := mk("t1", 4)
	t2 := mk("t2", 2)
	t3 := mk("t3", 1)
	t4 := mk("t4", 1)

	p := &Policy{
		Filter:  fixed(t2, t1),
		Ranking: fixed(t1, t3),
		Backlog: fixed(t1, t2, t3, t4),
		Warn:    func(string, ...any) {},
	}
	assertOrder(t, p.BuildQueue(context.Background()), "t1", "t2", "t3", "t4")
}

func TestBuildQueueSortsWithinSourceByDue(t *testing.T) {
	day := time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)
	due := func(h int) *task.Due {
		return &task.Due{Date: task.Timestamp{Time: day.Add(time.Duration(h) * time.Hour)}, HasTime: true}
	}
	late := &task.Task{ID: "late", Priority: 3, Due: due(16)}
	early := &task.Task{ID: "early", Priority: 3, Due: due(8)}
	undated := &task.Task{ID: "undated", Priority: 3}

	p := &Policy{Backlog: fixed(late, undated, early)}
	assertOrder(t, p.BuildQueue(context.Background()), "early", "late", "undated")
}

func TestBuildQueueFailedSourceContributesNothing(t *testing.T) {
	var warned bool
	p := &Policy{
		Filter:  failing(errors.New("bad filter")),
		Backlog: fixed(mk("t1", 1)),
		Warn:    func(string, ...any) { warned = true },
	}
	assertOrder(t, p.BuildQueue(context.Background()), "t1")
	if !warned {
		t.Fatalf("expected recoverable warning for failed source")
	}
}

func TestBuildQueueNilAndEmptySources(t *testing.T) {
	p := &Policy{Ranking: fixed()}
	if got := p.BuildQueue(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty queue, got %v", queueIDs(got))
	}
}

func TestBuildQueueDoesNotMutateSources(t *testing.T) {
	backlog := []*task.Task{mk("b", 1), mk("a", 4)}
	p := &Policy{Backlog: fixed(backlog...)}
	p.BuildQueue(context.Background())
	if backlog[0].ID != "b" || backlog[1].ID != "a" {
		t.Fatalf("source slice was reordered: %v", queueIDs(backlog))
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()
	if s.State() != StateInitial {
		t.Fatalf("expected initial state, got %s", s.State())
	}

	p := &Policy{Backlog: fixed(mk("t1", 4), mk("t2", 1))}
	s.Load(context.Background(), p)
	if s.State() != StateFocusing {
		t.Fatalf("expected focusing, got %s", s.State())
	}

	current, ok := s.Current()
	if !ok || current.ID != "t1" {
		t.Fatalf("expected t1 current, got %v ok=%v", current, ok)
	}

	if done, ok := s.Complete(); !ok || done.ID != "t1" {
		t.Fatalf("expected to complete t1")
	}
	if s.State() != StateFocusing || s.Remaining() != 1 {
		t.Fatalf("expected one task left, state=%s remaining=%d", s.State(), s.Remaining())
	}

	if skipped, ok := s.Skip(); !ok || skipped.ID != "t2" {
		t.Fatalf("expected to skip t2")
	}
	if s.State() != StateFinished {
		t.Fatalf("expected finished after queue drained, got %s", s.State())
	}
	if _, ok := s.Current(); ok {
		t.Fatalf("finished session has no current task")
	}
	if _, ok := s.Complete(); ok {
		t.Fatalf("finished session cannot complete")
	}
}

func TestSessionEmptyQueueFinishesImmediately(t *testing.T) {
	s := NewSession()
	s.Load(context.Background(), &Policy{})
	if s.State() != StateFinished {
		t.Fatalf("expected finished for empty queue, got %s", s.State())
	}
}

func TestSessionReload(t *testing.T) {
	s := NewSession()
	s.Load(context.Background(), &Policy{})
	if s.State() != StateFinished {
		t.Fatalf("expected finished")
	}
	s.Load(context.Background(), &Policy{Backlog: fixed(mk("t1", 1))})
	if s.State() != StateFocusing {
		t.Fatalf("reload should leave finished state, got %s", s.State())
	}
}
