package setcsv

import (
	"strings"
	"testing"
)

const sampleCSV = `date;session;duration;exercise;equipment;set;weight_kg;reps;distance_m;rir;warmup
2026-02-19 06:45;Push Day;1:02;Bench Press;Barbell;1;37,5;9;0;;1
2026-02-19 06:45;Push Day;1:02;Bench Press;Barbell;1;80;8;0;2;0
2026-02-19 06:45;Push Day;1:02;Bench Press;Barbell;2;80;7;0;1,5;0
2026-02-19 06:45;Push Day;1:02;Dips;Bodyweight;1;+10;12;0;;0
2026-02-21 17:10;Engine;0:45;Ski Erg;Machine;1;0;0;1000;;0
`

// TestParseSampleExport verifies the full parse of a representative export.
func TestParseSampleExport(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	push := sessions[0]
	if push.Name != "Push Day" || push.Duration != "1:02" {
		t.Errorf("session 0 = %+v", push)
	}
	if push.Date.Hour() != 6 || push.Date.Minute() != 45 {
		t.Errorf("session 0 date = %v", push.Date)
	}
	if len(push.Sets) != 4 {
		t.Fatalf("session 0 sets = %d, want 4", len(push.Sets))
	}

	warmup := push.Sets[0]
	if !warmup.IsWarmup || warmup.WeightKg != 37.5 || warmup.Reps != 9 {
		t.Errorf("warmup set = %+v", warmup)
	}
	if warmup.RIR != -1 {
		t.Errorf("warmup RIR = %v, want -1 (untracked)", warmup.RIR)
	}

	work := push.Sets[2]
	if work.RIR != 1.5 || work.Reps != 7 {
		t.Errorf("working set = %+v", work)
	}

	dips := push.Sets[3]
	if !dips.IsBodyweightPlus || dips.WeightKg != 10 {
		t.Errorf("bodyweight set = %+v", dips)
	}

	engine := sessions[1]
	if engine.Name != "Engine" || len(engine.Sets) != 1 {
		t.Fatalf("session 1 = %+v", engine)
	}
	if engine.Sets[0].DistanceM != 1000 {
		t.Errorf("distance = %v, want 1000", engine.Sets[0].DistanceM)
	}
}

// TestParseRejectsBadHeader ensures a wrong column layout fails fast.
func TestParseRejectsBadHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("date;workout;exercise\n"))
	if err == nil {
		t.Fatal("Parse succeeded with bad header, want error")
	}
}

// TestParseRejectsShortRow ensures rows with missing fields fail with a line number.
func TestParseRejectsShortRow(t *testing.T) {
	csv := "date;session;duration;exercise;equipment;set;weight_kg;reps;distance_m;rir;warmup\n2026-02-19;Push;1:00;Bench;Barbell;1;80\n"
	_, err := Parse(strings.NewReader(csv))
	if err == nil {
		t.Fatal("Parse succeeded with short row, want error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want line number", err)
	}
}

// TestParseDurationSec covers the hours:minutes conversion.
func TestParseDurationSec(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1:02", 3720},
		{"0:45", 2700},
		{"junk", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseDurationSec(tt.in); got != tt.want {
			t.Errorf("parseDurationSec(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
