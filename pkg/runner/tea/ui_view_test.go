package teaui

import (
	"strings"
	"testing"
	"time"

	"github.com/muesli/reflow/ansi"

	"tableflip.dev/agenda/pkg/schedule"
)

func testDate() time.Time {
	return time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
}

func newTestEntry(id, content, start string, minutes int) *schedule.ScheduledTask {
	return &schedule.ScheduledTask{
		ID:                       id + "@" + start,
		TaskID:                   id,
		Content:                  content,
		Start:                    start,
		EstimatedDurationMinutes: minutes,
		Priority:                 2,
	}
}

func testDay(t *testing.T, entries ...*schedule.ScheduledTask) *schedule.DaySchedule {
	t.Helper()
	laid := schedule.Layout(testDate(), entries, schedule.DefaultGeometry())
	return &schedule.DaySchedule{Date: testDate(), ScheduledTasks: laid}
}

func TestViewRendersTrackWithTaskNames(t *testing.T) {
	m := New(nil, testDate())
	m.day = testDay(t,
		newTestEntry("a", "Write report", "09:00", 60),
		newTestEntry("b", "Standup", "09:30", 30),
	)

	view := stripANSI(m.View())
	if !strings.Contains(view, "Monday, March 3, 2025") {
		t.Fatalf("expected date header; view=%q", view)
	}
	for _, want := range []string{"09:00", "09:30", "Write report", "Standup"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view; view=%q", want, view)
		}
	}
	// One granule of padding before the first task.
	if !strings.Contains(view, "08:45") {
		t.Fatalf("expected padding granule before first task; view=%q", view)
	}
	if strings.Contains(view, "08:15") {
		t.Fatalf("expected empty morning to collapse; view=%q", view)
	}
}

func TestViewListsInvalidEntriesSeparately(t *testing.T) {
	m := New(nil, testDate())
	bad := newTestEntry("x", "No clock", "", 30)
	laid := schedule.Layout(testDate(), []*schedule.ScheduledTask{
		newTestEntry("a", "Write report", "09:00", 60),
		bad,
	}, schedule.DefaultGeometry())
	m.day = &schedule.DaySchedule{Date: testDate(), ScheduledTasks: laid}

	view := stripANSI(m.View())
	if !strings.Contains(view, "No clock") {
		t.Fatalf("invalid entry should still be listed; view=%q", view)
	}
}

func TestViewEmptyDay(t *testing.T) {
	m := New(nil, testDate())
	m.day = &schedule.DaySchedule{Date: testDate()}

	view := stripANSI(m.View())
	if !strings.Contains(view, "nothing scheduled") {
		t.Fatalf("expected empty day message; view=%q", view)
	}
}

func TestViewShowsDragMarker(t *testing.T) {
	m := New(nil, testDate())
	m.day = testDay(t, newTestEntry("a", "Write report", "09:00", 60))
	m.drag = &schedule.DragController{}

	entry := m.ordered()[0]
	m.drag.BeginDrag(entry)
	m.grabbed = entry
	m.grabStart = 10 * 60 // 10:00
	m.mode = modeDrag

	view := stripANSI(m.View())
	if !strings.Contains(view, "↕ Write report") {
		t.Fatalf("expected drag marker on grabbed entry; view=%q", view)
	}
	// The bar follows the pending slot, not the persisted start.
	lines := strings.Split(view, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "10:00") && !strings.Contains(line, "Write report") {
			t.Fatalf("expected grabbed entry to render at pending slot; line=%q", line)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
