package roxfit

import (
	"encoding/json"
	"testing"
)

// TestTimeParse verifies the accepted timestamp formats.
func TestTimeParse(t *testing.T) {
	tests := []struct {
		input    string
		wantYear int
		wantHour int
	}{
		{"2026-02-19 06:45:00 +0100", 2026, 6},
		{"2026-02-19T06:45:00Z", 2026, 6},
		{"2026-02-19", 2026, 0},
	}
	for _, tt := range tests {
		var ts Time
		if err := ts.Parse(tt.input); err != nil {
			t.Errorf("Parse(%q) error: %v", tt.input, err)
			continue
		}
		if ts.Year() != tt.wantYear || ts.Hour() != tt.wantHour {
			t.Errorf("Parse(%q) = %v, want year %d hour %d", tt.input, ts.Time, tt.wantYear, tt.wantHour)
		}
	}

	var ts Time
	if err := ts.Parse("19.02.2026"); err == nil {
		t.Error("Parse(19.02.2026) succeeded, want error")
	}
}

// TestPayloadUnmarshal verifies parsing a complete RoxFit export payload.
// Ensures the nested data structure with all three record kinds deserializes.
func TestPayloadUnmarshal(t *testing.T) {
	raw := `{
		"data": {
			"sessions": [
				{
					"id": "7c9e6679-7425-40de-944b-e07fc1f90ae7",
					"name": "Push Day",
					"date": "2026-02-19 06:45:00 +0100",
					"duration_sec": 3720,
					"exercises": [
						{
							"name": "Bench Press",
							"equipment": "Barbell",
							"sets": [
								{"number": 1, "weight_kg": 80, "reps": 8, "rir": 2},
								{"number": 2, "weight_kg": 80, "reps": 7}
							]
						}
					]
				}
			],
			"station_results": [
				{"date": "2026-02-15", "station": "SkiErg", "seconds": 252.5, "source": "race"}
			],
			"run_benchmarks": [
				{"date": "2026-02-10", "seconds": 1320, "source": "watch"}
			]
		}
	}`

	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if len(p.Data.Sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(p.Data.Sessions))
	}
	s := p.Data.Sessions[0]
	if s.Name != "Push Day" || s.DurationSec != 3720 {
		t.Errorf("session = %+v", s)
	}
	if len(s.Exercises) != 1 || len(s.Exercises[0].Sets) != 2 {
		t.Fatalf("exercises/sets shape wrong: %+v", s.Exercises)
	}
	if s.Exercises[0].Sets[0].RIR == nil || *s.Exercises[0].Sets[0].RIR != 2 {
		t.Errorf("set 1 RIR = %v, want 2", s.Exercises[0].Sets[0].RIR)
	}
	if s.Exercises[0].Sets[1].RIR != nil {
		t.Errorf("set 2 RIR = %v, want nil", s.Exercises[0].Sets[1].RIR)
	}

	if len(p.Data.StationResults) != 1 || p.Data.StationResults[0].Seconds != 252.5 {
		t.Errorf("station results = %+v", p.Data.StationResults)
	}
	if len(p.Data.RunBenchmarks) != 1 || p.Data.RunBenchmarks[0].Seconds != 1320 {
		t.Errorf("run benchmarks = %+v", p.Data.RunBenchmarks)
	}
}
