package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/task"
)

type memorySource struct {
	mu      sync.Mutex
	tasks   map[string]*task.Task
	byQuery map[string][]string
	moves   []string
	closed  []string
}

func newMemorySource(tasks ...*task.Task) *memorySource {
	ms := &memorySource{
		tasks:   make(map[string]*task.Task),
		byQuery: make(map[string][]string),
	}
	for _, t := range tasks {
		ms.tasks[t.ID] = t
	}
	return ms
}

func (m *memorySource) match(query string, ids ...string) {
	m.byQuery[query] = ids
}

func (m *memorySource) Tasks(_ context.Context, filter string) ([]*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if filter == "" {
		out := make([]*task.Task, 0, len(m.tasks))
		for _, t := range m.tasks {
			out = append(out, t)
		}
		return out, nil
	}
	ids, ok := m.byQuery[filter]
	if !ok {
		return nil, nil
	}
	out := make([]*task.Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := m.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memorySource) Reschedule(_ context.Context, id string, due time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return errors.New("task not found")
	}
	t.Due = &task.Due{Date: task.Timestamp{Time: due}, HasTime: true}
	m.moves = append(m.moves, fmt.Sprintf("%s@%s", id, due.Format("15:04")))
	return nil
}

func (m *memorySource) Close(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = append(m.closed, id)
	return nil
}

func (m *memorySource) Reopen(context.Context, string) error             { return nil }
func (m *memorySource) Update(context.Context, string, map[string]any) error { return nil }
func (m *memorySource) Delete(context.Context, string) error             { return nil }

type memorySnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{data: make(map[string][]byte)}
}

func (m *memorySnapshots) Load(key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *memorySnapshots) Save(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memorySnapshots) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memorySnapshots) Keys(context.Context) []string { return nil }

func (m *memorySnapshots) Watch(context.Context) (<-chan store.Event, error) {
	return nil, errors.New("not supported")
}

var testDate = time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)

func timedTask(id string, priority int, clock string, minutes int) *task.Task {
	due, err := time.Parse("2006-01-02 15:04", "2025-05-05 "+clock)
	if err != nil {
		panic(err)
	}
	return &task.Task{
		ID:              id,
		Content:         id,
		Priority:        priority,
		Due:             &task.Due{Date: task.Timestamp{Time: due}, HasTime: true},
		DurationMinutes: minutes,
	}
}

func TestDayLaysOutTimedTasks(t *testing.T) {
	src := newMemorySource(
		timedTask("a", 4, "09:00", 60),
		timedTask("b", 2, "09:30", 30),
		&task.Task{ID: "undated", Content: "undated", Priority: 1},
	)
	src.match("due: 2025-05-05", "a", "b", "undated")

	svc := &Service{Source: src, Snapshots: newMemorySnapshots()}
	day, err := svc.Day(context.Background(), testDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(day.ScheduledTasks) != 2 {
		t.Fatalf("expected 2 scheduled entries, got %d", len(day.ScheduledTasks))
	}
	for _, entry := range day.ScheduledTasks {
		if entry.MaxColumns != 2 {
			t.Fatalf("expected overlapping entries to pack into 2 columns, got %+v", entry)
		}
	}
}

func TestMovePersistsThroughSource(t *testing.T) {
	src := newMemorySource(timedTask("a", 4, "09:00", 30))
	svc := &Service{Source: src}

	if err := svc.Move(context.Background(), "a", testDate, "14:15"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(src.moves) != 1 || src.moves[0] != "a@14:15" {
		t.Fatalf("expected move recorded, got %v", src.moves)
	}

	if err := svc.Move(context.Background(), "a", testDate, "99:00"); err == nil {
		t.Fatalf("expected error for invalid slot time")
	}
}

func TestDraggerRoundTrip(t *testing.T) {
	src := newMemorySource(timedTask("a", 4, "09:00", 30))
	svc := &Service{Source: src}

	src.match("due: 2025-05-05", "a")
	day, err := svc.Day(context.Background(), testDate)
	if err != nil || len(day.ScheduledTasks) != 1 {
		t.Fatalf("expected one scheduled entry, err=%v", err)
	}

	dragger := svc.Dragger(testDate)
	subject := day.ScheduledTasks[0]
	dragger.BeginDrag(subject)
	if err := dragger.CompleteDrop(context.Background(), subject, "11:45"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(src.moves) != 1 || src.moves[0] != "a@11:45" {
		t.Fatalf("expected drop persisted, got %v", src.moves)
	}
}

func TestFocusPolicyUsesStoredRankingAndFilter(t *testing.T) {
	t1 := &task.Task{ID: "t1", Priority: 4}
	t2 := &task.Task{ID: "t2", Priority: 2}
	t3 := &task.Task{ID: "t3", Priority: 1}
	src := newMemorySource(t1, t2, t3)
	src.match("hoje", "t2")

	snaps := newMemorySnapshots()
	if err := snaps.Save(store.KeyRanking, []*task.Task{t3}); err != nil {
		t.Fatalf("seed ranking: %v", err)
	}
	if err := snaps.Save(store.KeyFocusFilter, "hoje"); err != nil {
		t.Fatalf("seed filter: %v", err)
	}

	svc := &Service{Source: src, Snapshots: snaps}
	policy, err := svc.FocusPolicy("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	queue := policy.BuildQueue(context.Background())
	if len(queue) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(queue))
	}
	if queue[0].ID != "t2" || queue[1].ID != "t3" || queue[2].ID != "t1" {
		t.Fatalf("unexpected precedence: %s %s %s", queue[0].ID, queue[1].ID, queue[2].ID)
	}
}

func TestBuildMatrixSavesRanking(t *testing.T) {
	src := newMemorySource(
		&task.Task{ID: "hot", Priority: 4},
		&task.Task{ID: "cold", Priority: 1},
	)
	snaps := newMemorySnapshots()
	svc := &Service{Source: src, Snapshots: snaps}

	result, err := svc.BuildMatrix(context.Background(), testDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Quadrants) == 0 {
		t.Fatalf("expected populated matrix")
	}

	var ranking []*task.Task
	found, err := snaps.Load(store.KeyRanking, &ranking)
	if err != nil || !found {
		t.Fatalf("expected persisted ranking, found=%v err=%v", found, err)
	}
	if ranking[0].ID != "hot" {
		t.Fatalf("expected hot first in ranking, got %s", ranking[0].ID)
	}
}

func TestSetTimeBlocksValidates(t *testing.T) {
	svc := &Service{Snapshots: newMemorySnapshots()}
	err := svc.SetTimeBlocks([]schedule.TimeBlock{
		{Start: "09:00", End: "12:00", Type: schedule.BlockWork},
		{Start: "11:00", End: "13:00", Type: schedule.BlockBreak},
	})
	if err == nil {
		t.Fatalf("expected overlap rejection")
	}

	good := []schedule.TimeBlock{{Start: "09:00", End: "12:00", Type: schedule.BlockWork}}
	if err := svc.SetTimeBlocks(good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blocks, err := svc.TimeBlocks()
	if err != nil || len(blocks) != 1 {
		t.Fatalf("expected stored blocks back, err=%v", err)
	}
}

func TestServiceRequiresSource(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Day(context.Background(), testDate); err == nil {
		t.Fatalf("expected error without task source")
	}
	if _, err := svc.FocusPolicy(""); err == nil {
		t.Fatalf("expected error without task source")
	}
}
