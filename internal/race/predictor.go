package race

import "fmt"

// Running in a Hyrox is slower than a fresh 5k: stations tax the legs between
// intervals. The multiplier models that degradation.
const runFatigueFactor = 1.15

// Roxzone is the aggregate transition/walking time between stations.
const roxzoneSeconds = 300

// Percentile thresholds, relative to the class elite threshold.
const (
	eliteThresholdOpen = 3600
	proThresholdShift  = 600
	doublesThresholdShift = 600
)

// Adjustment models "what if" sliders: each percentage is a fractional speed
// improvement applied as effective = baseline * (1 - pct/100). Values are
// clamped to [0,100].
type Adjustment struct {
	RunPct     float64 `json:"run_pct"`
	StationPct float64 `json:"station_pct"`
	RoxzonePct float64 `json:"roxzone_pct"`
}

// RacePrediction is a full race-time estimate decomposed into splits.
// TotalSeconds always equals RunTotal + Roxzone + the sum of Splits.
type RacePrediction struct {
	Class          Class               `json:"class"`
	TotalSeconds   float64             `json:"total_seconds"`
	TotalFormatted string              `json:"total_formatted"`
	Splits         map[Station]float64 `json:"splits"`
	RunTotal       float64             `json:"run_total"`
	Roxzone        float64             `json:"roxzone"`
	Weakest        Station             `json:"weakest"`
	Strongest      Station             `json:"strongest"`
	Percentile     int                 `json:"percentile"`
}

// Predictor combines a runner's 5k benchmark, known per-station personal
// times, and a race class into a full race-time estimate.
type Predictor struct {
	model *StationTimeModel
}

// NewPredictor creates a predictor over the given station time model.
func NewPredictor(model *StationTimeModel) *Predictor {
	return &Predictor{model: model}
}

// Predict estimates a full race time.
//
// known holds station times the athlete has actually recorded; known data
// always overrides the scaled baseline for that station. adj may be nil.
// A malformed benchmark returns a ParseError; a negative known time is
// rejected outright.
func (p *Predictor) Predict(benchmark5k string, known map[Station]float64, class Class, adj *Adjustment) (*RacePrediction, error) {
	sec5k, err := ParseMMSS(benchmark5k)
	if err != nil {
		return nil, err
	}
	for st, t := range known {
		if t < 0 {
			return nil, fmt.Errorf("known time for %s is negative: %v", st, t)
		}
	}

	var a Adjustment
	if adj != nil {
		a = *adj
	}
	a.RunPct = clamp(a.RunPct, 0, 100)
	a.StationPct = clamp(a.StationPct, 0, 100)
	a.RoxzonePct = clamp(a.RoxzonePct, 0, 100)

	std := p.model.Standard(class)

	// 8 x 1km of running at a fatigue-degraded 5k pace.
	pacePerKm := sec5k / 5
	hyroxPace := pacePerKm * runFatigueFactor * (1 - a.RunPct/100)
	runTotal := hyroxPace * 8

	splits := make(map[Station]float64, len(StationOrder))
	for _, st := range StationOrder {
		base := p.model.Baseline(st) * std.BaseTimeFactor
		if personal, ok := known[st]; ok {
			base = personal
		}
		splits[st] = nonNegative(base * (1 - a.StationPct/100))
	}

	roxzone := nonNegative(roxzoneSeconds * (1 - a.RoxzonePct/100))

	var stationSum float64
	for _, t := range splits {
		stationSum += t
	}
	total := runTotal + roxzone + stationSum

	weakest, strongest := p.rankStations(splits, std.BaseTimeFactor)

	return &RacePrediction{
		Class:          class,
		TotalSeconds:   total,
		TotalFormatted: FormatSeconds(total),
		Splits:         splits,
		RunTotal:       runTotal,
		Roxzone:        roxzone,
		Weakest:        weakest,
		Strongest:      strongest,
		Percentile:     p.percentile(total, class),
	}, nil
}

// rankStations finds the weakest and strongest station by each split's ratio
// to its own class-scaled baseline. Ratios normalize for stations that are
// inherently long or short.
func (p *Predictor) rankStations(splits map[Station]float64, factor float64) (weakest, strongest Station) {
	worst, best := -1.0, -1.0
	for _, st := range StationOrder {
		ratio := splits[st] / (p.model.Baseline(st) * factor)
		if worst < 0 || ratio > worst {
			worst = ratio
			weakest = st
		}
		if best < 0 || ratio < best {
			best = ratio
			strongest = st
		}
	}
	return weakest, strongest
}

// percentile is a coarse step function of total time against a class-specific
// elite threshold.
func (p *Predictor) percentile(total float64, class Class) int {
	threshold := float64(eliteThresholdOpen)
	if class.IsPro() {
		threshold += proThresholdShift
	}
	if class.IsDoubles() {
		threshold -= doublesThresholdShift
	}

	switch {
	case total < threshold:
		return 99
	case total < threshold+900:
		return 90
	case total < threshold+1800:
		return 50
	case total < threshold+2700:
		return 30
	default:
		return 10
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
