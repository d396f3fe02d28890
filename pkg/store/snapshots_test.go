package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/schedule"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string          { return t.path }
func (t testConfig) TaskSourceToken() string   { return "" }
func (t testConfig) TaskSourceBaseURL() string { return "" }
func (t testConfig) ChatEndpoint() string      { return "" }
func (t testConfig) ChatAPIKey() string        { return "" }
func (t testConfig) ChatModel() string         { return "" }
func (t testConfig) PixelsPerMinute() float64  { return 1 }

func newTestStore(t *testing.T) Snapshots {
	t.Helper()
	s, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load snapshots: %v", err)
	}
	return s
}

func TestSnapshotsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	blocks := []schedule.TimeBlock{
		{Start: "09:00", End: "12:00", Type: schedule.BlockWork, Label: "deep work"},
		{Start: "12:00", End: "13:00", Type: schedule.BlockBreak},
	}
	if err := s.Save(KeyTimeBlocks, blocks); err != nil {
		t.Fatalf("save: %v", err)
	}

	var back []schedule.TimeBlock
	found, err := s.Load(KeyTimeBlocks, &back)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatalf("expected snapshot to be found")
	}
	if len(back) != 2 || back[0].Label != "deep work" {
		t.Fatalf("unexpected round trip: %+v", back)
	}
}

func TestSnapshotsMissingKey(t *testing.T) {
	s := newTestStore(t)
	var out []string
	found, err := s.Load(KeyRanking, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected missing snapshot")
	}
}

func TestSnapshotsMalformedLoadsAsAbsent(t *testing.T) {
	base := t.TempDir()
	s, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load snapshots: %v", err)
	}

	if err := os.WriteFile(filepath.Join(base, KeyRanking), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed malformed snapshot: %v", err)
	}

	var out []string
	found, err := s.Load(KeyRanking, &out)
	if found {
		t.Fatalf("malformed snapshot must load as absent")
	}
	if err == nil {
		t.Fatalf("expected a descriptive error for the recoverable condition")
	}
}

func TestSnapshotsSchemaMismatchLoadsAsAbsent(t *testing.T) {
	base := t.TempDir()
	s, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load snapshots: %v", err)
	}

	legacy, _ := json.Marshal(map[string]any{"schema": "v0", "data": []string{"x"}})
	if err := os.WriteFile(filepath.Join(base, KeyFocusFilter), legacy, 0o644); err != nil {
		t.Fatalf("seed legacy snapshot: %v", err)
	}

	var out []string
	found, err := s.Load(KeyFocusFilter, &out)
	if found || err == nil {
		t.Fatalf("expected schema mismatch to load as absent with error, found=%v err=%v", found, err)
	}
}

func TestSnapshotsDeleteAndKeys(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(KeyFocusFilter, "hoje | atrasadas"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(KeyRanking, []string{"t1"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	keys := s.Keys(context.Background())
	if len(keys) != 2 || keys[0] != KeyFocusFilter || keys[1] != KeyRanking {
		t.Fatalf("unexpected keys: %v", keys)
	}

	if err := s.Delete(KeyRanking); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(KeyRanking); err != nil {
		t.Fatalf("delete of missing key should be a no-op: %v", err)
	}
	if keys := s.Keys(context.Background()); len(keys) != 1 {
		t.Fatalf("expected one key left, got %v", keys)
	}
}

func TestSnapshotsWatchEmitsChanges(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := s.Save(KeyRanking, []string{"t1"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Key == KeyRanking {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot change event")
		}
	}
}
