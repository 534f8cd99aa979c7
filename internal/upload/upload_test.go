package upload

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const sampleJSONExport = `{
  "data": {
    "sessions": [
      {
        "id": "0c79c1fe-4ab3-4e2a-a4e6-91d2bb9f1a01",
        "name": "Push Day",
        "date": "2026-02-19 18:30:00 +0100",
        "duration_sec": 3600,
        "exercises": [
          {
            "name": "Bench Press",
            "equipment": "Barbell",
            "sets": [
              {"number": 1, "weight_kg": 80, "reps": 8, "rir": 2, "warmup": false}
            ]
          }
        ]
      }
    ],
    "station_results": [
      {"date": "2026-02-20", "station": "SkiErg", "seconds": 250, "source": "race_sim"}
    ],
    "run_benchmarks": [
      {"date": "2026-02-21", "seconds": 1250, "source": "track"}
    ]
  }
}`

const sampleCSVExport = `date;session;duration;exercise;equipment;set;weight_kg;reps;distance_m;rir;warmup
2026-03-01 17:00;Leg Day;1:05;Back Squat;Barbell;1;100;5;;2;false
`

func testUploader(t *testing.T, dir string) *Uploader {
	t.Helper()
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = state.Close() })
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return New(nil, state, dir, true, log)
}

// TestRunDryRun verifies a dry run parses JSON and CSV exports and counts
// their contents without a server.
func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "export1.json"), []byte(sampleJSONExport), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sets.csv"), []byte(sampleCSVExport), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatal(err)
	}

	u := testUploader(t, dir)
	stats, err := u.Run()
	if err != nil {
		t.Fatal(err)
	}

	if stats.FilesTotal != 2 {
		t.Errorf("files_total=%d, want 2 (txt file should be ignored)", stats.FilesTotal)
	}
	if stats.FilesUploaded != 2 {
		t.Errorf("files_uploaded=%d, want 2", stats.FilesUploaded)
	}
	if stats.SessionsSent != 2 {
		t.Errorf("sessions_sent=%d, want 2", stats.SessionsSent)
	}
	if stats.StationsSent != 1 || stats.BenchmarksSent != 1 {
		t.Errorf("stations=%d benchmarks=%d, want 1 and 1", stats.StationsSent, stats.BenchmarksSent)
	}
}

// TestRunMalformedFile verifies a broken export is counted as errored and
// does not abort the run.
func TestRunMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"data":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "good.json"), []byte(sampleJSONExport), 0o644); err != nil {
		t.Fatal(err)
	}

	u := testUploader(t, dir)
	stats, err := u.Run()
	if err != nil {
		t.Fatal(err)
	}

	if stats.FilesErrored != 1 {
		t.Errorf("files_errored=%d, want 1", stats.FilesErrored)
	}
	if stats.FilesUploaded != 1 {
		t.Errorf("files_uploaded=%d, want 1", stats.FilesUploaded)
	}
}

// TestStateDBSkipsSent verifies the state database round trip: a recorded
// file is skipped, a changed file is not.
func TestStateDBSkipsSent(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	if err := state.MarkSent("a/export.json", 100, "deadbeef", "roxfit"); err != nil {
		t.Fatal(err)
	}

	sent, err := state.IsSent("a/export.json", 100, "deadbeef")
	if err != nil {
		t.Fatal(err)
	}
	if !sent {
		t.Error("expected file to be marked as sent")
	}

	// Same path, different content
	sent, err = state.IsSent("a/export.json", 120, "cafebabe")
	if err != nil {
		t.Fatal(err)
	}
	if sent {
		t.Error("changed file should not count as sent")
	}
}

// TestResolveExportDir verifies Exports subdirectory resolution.
func TestResolveExportDir(t *testing.T) {
	dir := t.TempDir()
	exports := filepath.Join(dir, "Exports")
	if err := os.Mkdir(exports, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := ResolveExportDir(dir); got != exports {
		t.Errorf("ResolveExportDir(%q) = %q, want %q", dir, got, exports)
	}
	if got := ResolveExportDir(exports); got != exports {
		t.Errorf("ResolveExportDir(%q) = %q, want %q", exports, got, exports)
	}
	plain := filepath.Join(dir, "other")
	if got := ResolveExportDir(plain); got != plain {
		t.Errorf("ResolveExportDir(%q) = %q, want %q", plain, got, plain)
	}
}
