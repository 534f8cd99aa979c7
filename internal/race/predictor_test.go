package race

import (
	"errors"
	"math"
	"testing"
)

// TestPredictBaseline verifies the full prediction pipeline for a 20:00 5k in
// men's open with no personal data: pace 240 s/km, hyrox pace 276 s/km, run
// total 2208s, plus 300s roxzone and 1890s of baseline stations = 4398s.
func TestPredictBaseline(t *testing.T) {
	p := NewPredictor(DefaultModel())

	pred, err := p.Predict("20:00", nil, ClassMenOpen, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(pred.RunTotal-2208) > 1e-6 {
		t.Errorf("run total = %.2f, want 2208", pred.RunTotal)
	}
	if pred.Roxzone != 300 {
		t.Errorf("roxzone = %.2f, want 300", pred.Roxzone)
	}
	if math.Abs(pred.TotalSeconds-4398) > 1e-6 {
		t.Errorf("total = %.2f, want 4398", pred.TotalSeconds)
	}
	if pred.TotalFormatted != "1:13:18" {
		t.Errorf("formatted = %q, want %q", pred.TotalFormatted, "1:13:18")
	}
	if pred.Percentile != 90 {
		t.Errorf("percentile = %d, want 90", pred.Percentile)
	}
}

// TestPredictSumConsistency verifies that the total always equals run total +
// roxzone + the sum of station splits, including under adjustments.
func TestPredictSumConsistency(t *testing.T) {
	p := NewPredictor(DefaultModel())

	adjustments := []*Adjustment{
		nil,
		{},
		{RunPct: 10},
		{StationPct: 25},
		{RoxzonePct: 50},
		{RunPct: 5, StationPct: 15, RoxzonePct: 30},
		{RunPct: 100, StationPct: 100, RoxzonePct: 100},
	}
	for _, adj := range adjustments {
		pred, err := p.Predict("22:30", map[Station]float64{StationWallBalls: 412}, ClassWomenOpen, adj)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var sum float64
		for _, v := range pred.Splits {
			sum += v
		}
		want := pred.RunTotal + pred.Roxzone + sum
		if math.Abs(pred.TotalSeconds-want) > 1e-6 {
			t.Errorf("adj %+v: total = %.4f, want %.4f", adj, pred.TotalSeconds, want)
		}
	}
}

// TestPredictKnownOverridesBaseline verifies that a supplied personal station
// time replaces the class-scaled baseline verbatim (before modifiers).
func TestPredictKnownOverridesBaseline(t *testing.T) {
	p := NewPredictor(DefaultModel())

	known := map[Station]float64{StationSledPush: 145}
	pred, err := p.Predict("20:00", known, ClassMenOpen, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.Splits[StationSledPush] != 145 {
		t.Errorf("sled push split = %.2f, want 145", pred.Splits[StationSledPush])
	}
	// Unknown stations keep the scaled baseline.
	if pred.Splits[StationSkiErg] != 240 {
		t.Errorf("ski erg split = %.2f, want 240", pred.Splits[StationSkiErg])
	}
}

// TestPredictStationMonotonicity verifies that increasing the station
// improvement percentage never increases any split or the total.
func TestPredictStationMonotonicity(t *testing.T) {
	p := NewPredictor(DefaultModel())
	known := map[Station]float64{StationRow: 260}

	var prev *RacePrediction
	for pct := 0.0; pct <= 100; pct += 5 {
		pred, err := p.Predict("21:15", known, ClassMenOpen, &Adjustment{StationPct: pct})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if prev != nil {
			for _, st := range StationOrder {
				if pred.Splits[st] > prev.Splits[st]+1e-9 {
					t.Errorf("pct %.0f: split %s increased from %.4f to %.4f", pct, st, prev.Splits[st], pred.Splits[st])
				}
			}
			if pred.TotalSeconds > prev.TotalSeconds+1e-9 {
				t.Errorf("pct %.0f: total increased from %.4f to %.4f", pct, prev.TotalSeconds, pred.TotalSeconds)
			}
		}
		prev = pred
	}
}

// TestPredictWeakestByRatio verifies that weakest/strongest ranking compares
// each split against its own class-scaled baseline, not raw time. Farmers
// carry is the shortest station; a modest absolute overshoot there should
// still mark it weakest.
func TestPredictWeakestByRatio(t *testing.T) {
	p := NewPredictor(DefaultModel())

	known := map[Station]float64{
		StationFarmers:   180, // 1.5x its 120s baseline
		StationWallBalls: 330, // 1.1x its 300s baseline
	}
	pred, err := p.Predict("20:00", known, ClassMenOpen, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.Weakest != StationFarmers {
		t.Errorf("weakest = %s, want %s", pred.Weakest, StationFarmers)
	}
}

// TestPredictMalformedBenchmark verifies that a bad 5k string returns a typed
// ParseError instead of propagating NaN.
func TestPredictMalformedBenchmark(t *testing.T) {
	p := NewPredictor(DefaultModel())

	for _, input := range []string{"", "2000", "20:xx", "-5:00", "20:75"} {
		_, err := p.Predict(input, nil, ClassMenOpen, nil)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Predict(%q): error = %v, want ParseError", input, err)
		}
	}
}

// TestPredictNegativeKnownTime verifies that negative personal times are
// rejected at the boundary.
func TestPredictNegativeKnownTime(t *testing.T) {
	p := NewPredictor(DefaultModel())
	_, err := p.Predict("20:00", map[Station]float64{StationRow: -10}, ClassMenOpen, nil)
	if err == nil {
		t.Error("expected error for negative known time")
	}
}

// TestPredictUnknownClassPanics verifies fail-fast behavior for a class
// missing from the standards table.
func TestPredictUnknownClassPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown class")
		}
	}()
	p := NewPredictor(DefaultModel())
	p.Predict("20:00", nil, Class("MEN_ULTRA"), nil)
}

// TestPercentileClassShifts verifies the elite threshold moves up by 600s for
// pro classes and down by 600s for doubles.
func TestPercentileClassShifts(t *testing.T) {
	p := NewPredictor(DefaultModel())

	tests := []struct {
		class Class
		total float64
		want  int
	}{
		{ClassMenOpen, 3599, 99},
		{ClassMenOpen, 3601, 90},
		{ClassMenPro, 4199, 99},
		{ClassDoublesMixed, 2999, 99},
		{ClassDoublesMixed, 3001, 90},
		{ClassMenOpen, 5399, 50},
		{ClassMenOpen, 6299, 30},
		{ClassMenOpen, 9000, 10},
	}
	for _, tt := range tests {
		if got := p.percentile(tt.total, tt.class); got != tt.want {
			t.Errorf("percentile(%.0f, %s) = %d, want %d", tt.total, tt.class, got, tt.want)
		}
	}
}
