package task

import (
	"encoding/json"
	"testing"
	"time"
)

func dueAt(t time.Time) *Due {
	return &Due{Date: Timestamp{Time: t}, HasTime: true}
}

func TestCategoryFromLabels(t *testing.T) {
	personal := &Task{Labels: []string{"casa", "Pessoal"}}
	if got := personal.Category(); got != CategoryPersonal {
		t.Fatalf("expected pessoal, got %s", got)
	}
	work := &Task{Labels: []string{"cliente"}}
	if got := work.Category(); got != CategoryProfessional {
		t.Fatalf("expected profissional, got %s", got)
	}
	none := &Task{}
	if got := none.Category(); got != CategoryProfessional {
		t.Fatalf("expected profissional default, got %s", got)
	}
}

func TestNormalizedPriorityClamps(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 1},
		{1, 1},
		{4, 4},
		{9, 4},
		{-3, 1},
	}
	for _, tc := range cases {
		task := &Task{Priority: tc.in}
		if got := task.NormalizedPriority(); got != tc.want {
			t.Fatalf("priority %d: expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestSortStablePriorityThenDue(t *testing.T) {
	day := time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)
	tasks := []*Task{
		{ID: "later", Priority: 4, Due: dueAt(day.Add(14 * time.Hour))},
		{ID: "nodue", Priority: 4},
		{ID: "soon", Priority: 4, Due: dueAt(day.Add(9 * time.Hour))},
		{ID: "low", Priority: 1, Due: dueAt(day.Add(8 * time.Hour))},
	}
	SortStable(tasks)

	want := []string{"soon", "later", "nodue", "low"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, tasks[i].ID)
		}
	}
}

func TestSortStableKeepsInputOrderOnTies(t *testing.T) {
	tasks := []*Task{
		{ID: "a", Priority: 2},
		{ID: "b", Priority: 2},
		{ID: "c", Priority: 2},
	}
	SortStable(tasks)
	for i, id := range []string{"a", "b", "c"} {
		if tasks[i].ID != id {
			t.Fatalf("expected stable order, got %s at %d", tasks[i].ID, i)
		}
	}
}

func TestStartClock(t *testing.T) {
	noon := time.Date(2025, time.May, 5, 12, 30, 0, 0, time.Local)
	withTime := &Task{Due: dueAt(noon)}
	clock, ok := withTime.StartClock()
	if !ok || clock != "12:30" {
		t.Fatalf("expected 12:30, got %q ok=%v", clock, ok)
	}

	dateOnly := &Task{Due: &Due{Date: Timestamp{Time: noon}}}
	if _, ok := dateOnly.StartClock(); ok {
		t.Fatalf("expected no clock for date-only due")
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := Timestamp{Time: time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC)}
	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(ts.Time) {
		t.Fatalf("expected %v, got %v", ts, back)
	}
}

func TestTimestampZeroMarshalsEmpty(t *testing.T) {
	var ts Timestamp
	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `""` {
		t.Fatalf("expected empty string, got %s", data)
	}
	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.IsZero() {
		t.Fatalf("expected zero timestamp")
	}
}

func TestParseTimeShapes(t *testing.T) {
	for _, v := range []string{"2025-05-05", "2025-05-05T09:00:00", "2025-05-05T09:00:00Z"} {
		if _, err := ParseTime(v); err != nil {
			t.Fatalf("ParseTime(%q): %v", v, err)
		}
	}
	if _, err := ParseTime("yesterday"); err == nil {
		t.Fatalf("expected error for invalid timestamp")
	}
}
