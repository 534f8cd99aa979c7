package race

import "fmt"

// ClassStandard holds the weight standards and the baseline time factor for
// one race class. BaseTimeFactor scales the open-class baseline station times
// up or down for the class.
type ClassStandard struct {
	SledPushKg     float64 `json:"sled_push_kg"`
	SledPullKg     float64 `json:"sled_pull_kg"`
	LungeKg        float64 `json:"lunge_kg"`
	WallBallKg     float64 `json:"wall_ball_kg"`
	BaseTimeFactor float64 `json:"base_time_factor"`
}

// StationTimeModel holds baseline per-station times for a reference athlete
// (a solid men's-open finisher) and the per-class standards used to scale
// them. The model is injected into the predictor rather than read from
// package globals so tests can substitute their own tables.
type StationTimeModel struct {
	Baselines map[Station]float64
	Standards map[Class]ClassStandard
}

// DefaultModel returns the built-in station time model.
func DefaultModel() *StationTimeModel {
	return &StationTimeModel{
		Baselines: map[Station]float64{
			StationSkiErg:    240,
			StationSledPush:  210,
			StationSledPull:  240,
			StationBurpees:   270,
			StationRow:       240,
			StationFarmers:   120,
			StationLunges:    270,
			StationWallBalls: 300,
		},
		Standards: map[Class]ClassStandard{
			ClassMenOpen:      {SledPushKg: 152, SledPullKg: 103, LungeKg: 20, WallBallKg: 6, BaseTimeFactor: 1.0},
			ClassWomenOpen:    {SledPushKg: 102, SledPullKg: 78, LungeKg: 10, WallBallKg: 4, BaseTimeFactor: 1.05},
			ClassMenPro:       {SledPushKg: 202, SledPullKg: 153, LungeKg: 30, WallBallKg: 9, BaseTimeFactor: 0.92},
			ClassWomenPro:     {SledPushKg: 152, SledPullKg: 103, LungeKg: 20, WallBallKg: 6, BaseTimeFactor: 0.95},
			ClassDoublesMen:   {SledPushKg: 152, SledPullKg: 103, LungeKg: 20, WallBallKg: 6, BaseTimeFactor: 0.62},
			ClassDoublesWomen: {SledPushKg: 102, SledPullKg: 78, LungeKg: 10, WallBallKg: 4, BaseTimeFactor: 0.66},
			ClassDoublesMixed: {SledPushKg: 127, SledPullKg: 90, LungeKg: 15, WallBallKg: 5, BaseTimeFactor: 0.64},
			ClassRelay:        {SledPushKg: 102, SledPullKg: 78, LungeKg: 10, WallBallKg: 4, BaseTimeFactor: 0.55},
		},
	}
}

// Standard returns the weight standards and time factor for a class.
// Panics on an unknown class: every class must be present in the table, so a
// miss is a programming error, not a recoverable condition.
func (m *StationTimeModel) Standard(c Class) ClassStandard {
	std, ok := m.Standards[c]
	if !ok {
		panic(fmt.Sprintf("race: unknown class %q", c))
	}
	return std
}

// Baseline returns the reference time in seconds for a station, before any
// class scaling. Panics on an unknown station.
func (m *StationTimeModel) Baseline(s Station) float64 {
	base, ok := m.Baselines[s]
	if !ok {
		panic(fmt.Sprintf("race: no baseline for station %q", s))
	}
	return base
}
