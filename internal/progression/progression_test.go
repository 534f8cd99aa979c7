package progression

import (
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func session(n int, weight float64, reps int) Session {
	return Session{Date: day(n), Sets: []Set{
		{WeightKg: weight * 0.5, Reps: 10, IsWarmup: true},
		{WeightKg: weight, Reps: reps},
	}}
}

// TestEstimate1RM verifies Epley's formula, the single-rep identity, and the
// 12-rep cap.
func TestEstimate1RM(t *testing.T) {
	tests := []struct {
		weight float64
		reps   int
		want   float64
	}{
		{100, 1, 100},
		{100, 5, 100 * (1 + 5.0/30)},
		{100, 12, 140},
		{100, 20, 140}, // capped at 12
		{0, 5, 0},
		{100, 0, 0},
	}
	for _, tt := range tests {
		got := Estimate1RM(tt.weight, tt.reps)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Estimate1RM(%v, %d) = %v, want %v", tt.weight, tt.reps, got, tt.want)
		}
	}
}

// TestIncrement verifies percentage rounding to 2.5kg steps, the minimum
// floor, and the isolation halving.
func TestIncrement(t *testing.T) {
	cfg := Default()
	tests := []struct {
		weight   float64
		compound bool
		want     float64
	}{
		{100, true, 2.5},  // 2.5% of 100 = 2.5
		{200, true, 5},    // 2.5% of 200 = 5
		{40, true, 2.5},   // 1kg rounds to 0, floor kicks in
		{200, false, 2.5}, // halved for isolation
		{100, false, 1.25},
	}
	for _, tt := range tests {
		got := Increment(tt.weight, tt.compound, cfg)
		if got != tt.want {
			t.Errorf("Increment(%v, compound=%v) = %v, want %v", tt.weight, tt.compound, got, tt.want)
		}
	}
}

// TestSuggestNilWithoutHistory verifies that missing data is a normal
// outcome: no sessions means no suggestion, not an error.
func TestSuggestNilWithoutHistory(t *testing.T) {
	h := ExerciseHistory{Exercise: "Bench Press", IsCompound: true}
	if got := Suggest(h, Default()); got != nil {
		t.Errorf("Suggest with empty history = %+v, want nil", got)
	}
}

// TestSuggestProgressing verifies the rep-range logic: below the range max,
// both weight and reps step up; at the max, weight jumps and reps reset to
// the range minimum.
func TestSuggestProgressing(t *testing.T) {
	cfg := Default()
	h := ExerciseHistory{
		Exercise:   "Bench Press",
		IsCompound: true,
		Sessions:   []Session{session(0, 95, 8), session(3, 100, 9)},
	}

	s := Suggest(h, cfg)
	if s == nil {
		t.Fatal("expected a suggestion")
	}
	if s.TopSetWeightKg != 100 || s.TopSetReps != 9 {
		t.Fatalf("top set = %vx%d, want 100x9", s.TopSetWeightKg, s.TopSetReps)
	}
	if s.NextWeightKg != 102.5 || s.NextReps != 10 {
		t.Errorf("next = %vx%d, want 102.5x10", s.NextWeightKg, s.NextReps)
	}
	if s.Recommendation != RecommendProgress {
		t.Errorf("recommendation = %q, want %q", s.Recommendation, RecommendProgress)
	}

	// At the top of the rep range: weight up, reps reset.
	h.Sessions = append(h.Sessions, session(6, 100, 12))
	s = Suggest(h, cfg)
	if s.NextWeightKg != 102.5 || s.NextReps != cfg.RepRangeMin {
		t.Errorf("next = %vx%d, want 102.5x%d", s.NextWeightKg, s.NextReps, cfg.RepRangeMin)
	}
}

// TestSuggestWarmupsIgnored verifies the top set prefers working sets even
// when a warmup is heavier on paper (e.g. a logged-in-error heavy single).
func TestSuggestWarmupsIgnored(t *testing.T) {
	h := ExerciseHistory{
		Exercise:   "Squat",
		IsCompound: true,
		Sessions: []Session{{
			Date: day(0),
			Sets: []Set{
				{WeightKg: 180, Reps: 1, IsWarmup: true},
				{WeightKg: 140, Reps: 5},
			},
		}},
	}
	s := Suggest(h, Default())
	if s == nil {
		t.Fatal("expected a suggestion")
	}
	if s.TopSetWeightKg != 140 {
		t.Errorf("top set weight = %v, want 140 (working set)", s.TopSetWeightKg)
	}
}

// TestPlateauScenario verifies the fixed-point look-back rule: identical
// weight and reps across consecutive sessions flags a plateau at the default
// threshold, escalates to a deload by the 4th identical session, and to an
// exercise change by the 6th.
func TestPlateauScenario(t *testing.T) {
	cfg := Default()
	h := ExerciseHistory{Exercise: "Overhead Press", IsCompound: true}

	for n := 1; n <= 6; n++ {
		h.Sessions = append(h.Sessions, session(n*3, 60, 8))
		s := Suggest(h, cfg)
		if s == nil {
			t.Fatalf("session %d: expected a suggestion", n)
		}
		if s.SessionsSinceProgress != n {
			t.Errorf("session %d: sessionsSinceProgress = %d, want %d", n, s.SessionsSinceProgress, n)
		}
		switch {
		case n >= 6:
			if s.Recommendation != RecommendChangeExercise {
				t.Errorf("session %d: recommendation = %q, want %q", n, s.Recommendation, RecommendChangeExercise)
			}
		case n >= 4:
			if s.Recommendation != RecommendDeload {
				t.Errorf("session %d: recommendation = %q, want %q", n, s.Recommendation, RecommendDeload)
			}
		case n >= 3:
			if !s.IsPlateaued {
				t.Errorf("session %d: expected plateau flag", n)
			}
			if s.Recommendation != RecommendAddVolume {
				t.Errorf("session %d: recommendation = %q, want %q", n, s.Recommendation, RecommendAddVolume)
			}
		default:
			if s.IsPlateaued {
				t.Errorf("session %d: premature plateau flag", n)
			}
		}
	}
}

// TestStagnationResetOnProgress verifies that any qualifying improvement
// (more weight, more reps at the same weight, or >1% 1RM) resets the count.
func TestStagnationResetOnProgress(t *testing.T) {
	h := ExerciseHistory{
		Exercise:   "Deadlift",
		IsCompound: true,
		Sessions: []Session{
			session(0, 180, 5),
			session(3, 180, 5),
			session(6, 182.5, 5), // improvement
			session(9, 182.5, 5),
		},
	}
	s := Suggest(h, Default())
	if s.SessionsSinceProgress != 1 {
		t.Errorf("sessionsSinceProgress = %d, want 1", s.SessionsSinceProgress)
	}
	if s.IsPlateaued {
		t.Error("unexpected plateau flag after recent progress")
	}
}

// TestDistanceExerciseProgress verifies that distance-based exercises compare
// distance, not weight: a longer row counts as progress.
func TestDistanceExerciseProgress(t *testing.T) {
	h := ExerciseHistory{
		Exercise:   "Row Erg",
		IsDistance: true,
		Sessions: []Session{
			{Date: day(0), Sets: []Set{{DistanceM: 5000}}},
			{Date: day(3), Sets: []Set{{DistanceM: 5000}}},
			{Date: day(6), Sets: []Set{{DistanceM: 6000}}},
		},
	}
	s := Suggest(h, Default())
	if s == nil {
		t.Fatal("expected a suggestion")
	}
	if s.SessionsSinceProgress != 0 {
		t.Errorf("sessionsSinceProgress = %d, want 0", s.SessionsSinceProgress)
	}
	if s.TopSetDistanceM != 6000 {
		t.Errorf("top set distance = %v, want 6000", s.TopSetDistanceM)
	}
}

// TestTrendClassification verifies the half-vs-half 1RM comparison over the
// last 10 sessions.
func TestTrendClassification(t *testing.T) {
	improving := ExerciseHistory{Exercise: "Bench Press", IsCompound: true}
	for n := 0; n < 10; n++ {
		improving.Sessions = append(improving.Sessions, session(n*3, 100+float64(n)*2.5, 8))
	}
	if s := Suggest(improving, Default()); s.Trend != "improving" {
		t.Errorf("trend = %q, want improving", s.Trend)
	}

	declining := ExerciseHistory{Exercise: "Bench Press", IsCompound: true}
	for n := 0; n < 10; n++ {
		declining.Sessions = append(declining.Sessions, session(n*3, 120-float64(n)*2.5, 8))
	}
	if s := Suggest(declining, Default()); s.Trend != "declining" {
		t.Errorf("trend = %q, want declining", s.Trend)
	}

	flat := ExerciseHistory{Exercise: "Bench Press", IsCompound: true}
	for n := 0; n < 10; n++ {
		flat.Sessions = append(flat.Sessions, session(n*3, 100, 8))
	}
	if s := Suggest(flat, Default()); s.Trend != "stable" {
		t.Errorf("trend = %q, want stable", s.Trend)
	}
}

// TestWarnings verifies the cross-exercise scan: short histories are skipped,
// stalled exercises are reported with tiered severity.
func TestWarnings(t *testing.T) {
	cfg := Default()
	histories := []ExerciseHistory{
		{Exercise: "Fresh Lift", IsCompound: true, Sessions: []Session{session(0, 50, 8), session(3, 50, 8)}},
		{
			Exercise:   "Stalled Press",
			IsCompound: true,
			Sessions: []Session{
				session(0, 60, 8), session(3, 60, 8), session(6, 60, 8), session(9, 60, 8),
			},
		},
		{
			Exercise:   "Progressing Squat",
			IsCompound: true,
			Sessions: []Session{
				session(0, 100, 5), session(3, 102.5, 5), session(6, 105, 5),
			},
		},
	}

	warnings := Warnings(histories, 3, cfg)
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %+v", len(warnings), warnings)
	}
	w := warnings[0]
	if w.Exercise != "Stalled Press" {
		t.Errorf("warning exercise = %q, want Stalled Press", w.Exercise)
	}
	if w.SessionsSinceProgress != 4 {
		t.Errorf("sessionsSinceProgress = %d, want 4", w.SessionsSinceProgress)
	}
	if w.Severity != "moderate" || w.Recommendation != RecommendDeload {
		t.Errorf("severity/recommendation = %s/%s, want moderate/%s", w.Severity, w.Recommendation, RecommendDeload)
	}
}
