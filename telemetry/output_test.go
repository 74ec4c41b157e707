package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/emergence/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Methods on a nil manager are no-ops
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager error: %v", err)
	}

	for i := int32(1); i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: i * 100, PlantCount: int(i)}); err != nil {
			t.Fatalf("WriteTelemetry error: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{}, 100); err != nil {
		t.Fatalf("WritePerf error: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig error: %v", err)
	}
	info := NewRunInfo(42)
	if err := om.WriteRunInfo(info); err != nil {
		t.Fatalf("WriteRunInfo error: %v", err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkEquilibrium, Tick: 300, Description: "steady"}); err != nil {
		t.Fatalf("WriteBookmark error: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	bm, err := os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "type,tick,description\nequilibrium,300,steady\n"; string(bm) != want {
		t.Errorf("bookmarks.csv = %q, want %q", bm, want)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "window_end") != 1 {
		t.Error("header written more than once")
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "run.json"))
	if err != nil {
		t.Fatal(err)
	}
	var got RunInfo
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("run.json: %v", err)
	}
	if got.ID != info.ID || got.Seed != 42 {
		t.Errorf("run info = %+v, want id %v seed 42", got, info.ID)
	}
}
