package models

import "testing"

// TestNormalizeStationCanonical verifies canonical identifiers pass through
// unchanged, confirming the map covers all 8 stations.
func TestNormalizeStationCanonical(t *testing.T) {
	canonical := []string{
		StationSkiErg, StationSledPush, StationSledPull, StationBurpees,
		StationRow, StationFarmers, StationLunges, StationWallBalls,
	}
	for _, name := range canonical {
		got, known := NormalizeStation(name)
		if !known {
			t.Errorf("NormalizeStation(%q): expected known=true", name)
		}
		if got != name {
			t.Errorf("NormalizeStation(%q) = %q, want unchanged", name, got)
		}
	}
}

// TestNormalizeStationAliases verifies common gym shorthand and exporter
// spellings map to canonical identifiers, case-insensitively.
func TestNormalizeStationAliases(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"SkiErg", StationSkiErg},
		{"Sled Push", StationSledPush},
		{"sled pull", StationSledPull},
		{"BBJ", StationBurpees},
		{"Row Erg", StationRow},
		{"Farmer's Carry", StationFarmers},
		{"Sandbag Lunges", StationLunges},
		{"Wall Balls", StationWallBalls},
		{"  wallballs  ", StationWallBalls},
	}
	for _, tc := range cases {
		got, known := NormalizeStation(tc.input)
		if !known {
			t.Errorf("NormalizeStation(%q): expected known=true", tc.input)
		}
		if got != tc.want {
			t.Errorf("NormalizeStation(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// TestNormalizeStationUnknown verifies unrecognized names come back as-is
// with known=false, so ingest can log and skip them.
func TestNormalizeStationUnknown(t *testing.T) {
	got, known := NormalizeStation("handstand walk")
	if known {
		t.Error("expected known=false for unknown station")
	}
	if got != "handstand walk" {
		t.Errorf("expected original string returned, got %q", got)
	}
}

// TestExerciseClassification verifies the compound/distance keyword matching
// used to tune progression increments.
func TestExerciseClassification(t *testing.T) {
	compound := []string{"Back Squat", "Bench Press", "Barbell Row", "Romanian Deadlift"}
	for _, name := range compound {
		if !IsCompoundExercise(name) {
			t.Errorf("IsCompoundExercise(%q) = false, want true", name)
		}
	}

	isolation := []string{"Bicep Curl", "Lateral Raise", "Leg Extension"}
	for _, name := range isolation {
		if IsCompoundExercise(name) {
			t.Errorf("IsCompoundExercise(%q) = true, want false", name)
		}
	}

	distance := []string{"Ski Erg", "Row Erg", "Sled Push", "Farmers Carry"}
	for _, name := range distance {
		if !IsDistanceExercise(name) {
			t.Errorf("IsDistanceExercise(%q) = false, want true", name)
		}
	}
	if IsDistanceExercise("Bench Press") {
		t.Error("IsDistanceExercise(Bench Press) = true, want false")
	}
}
