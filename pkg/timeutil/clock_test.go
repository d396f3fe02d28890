package timeutil

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 570},
		{in: "23:45", want: 1425},
		{in: " 08:05 ", want: 485},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "9h30", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseClock(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClock(%q): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestFormatClockWraps(t *testing.T) {
	if got := FormatClock(1500); got != "01:00" {
		t.Fatalf("expected 01:00, got %s", got)
	}
	if got := FormatClock(-30); got != "23:30" {
		t.Fatalf("expected 23:30, got %s", got)
	}
}

func TestParseClockOn(t *testing.T) {
	date := time.Date(2025, time.June, 10, 15, 4, 5, 0, time.UTC)
	got, err := ParseClockOn(date, "09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, time.June, 10, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSnapToGranule(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 0},
		{7, 0},
		{15, 15},
		{22, 15},
		{1439, 1425},
		{-10, 0},
		{2000, 1425},
	}
	for _, tc := range cases {
		if got := SnapToGranule(tc.in); got != tc.want {
			t.Fatalf("SnapToGranule(%d): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestParseEstimateHoursMinutes(t *testing.T) {
	minutes, label, err := ParseEstimate("1h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 90 {
		t.Fatalf("expected 90, got %d", minutes)
	}
	if label != "1h30m" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseEstimateBareMinutes(t *testing.T) {
	minutes, _, err := ParseEstimate("45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 45 {
		t.Fatalf("expected 45, got %d", minutes)
	}
}

func TestParseEstimateDefault(t *testing.T) {
	minutes, label, err := ParseEstimate("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != DefaultEstimateMinutes {
		t.Fatalf("expected default estimate, got %d", minutes)
	}
	if label != "15m" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseEstimateInvalid(t *testing.T) {
	if _, _, err := ParseEstimate("soon"); err == nil {
		t.Fatalf("expected error for invalid estimate")
	}
}
