// Package progression analyzes strength-workout history per exercise:
// estimated 1RM trends, stagnation detection, and next-session suggestions.
package progression

import (
	"math"
	"time"
)

// Set is one recorded set within a session.
type Set struct {
	WeightKg  float64 `json:"weight_kg"`
	Reps      int     `json:"reps"`
	DistanceM float64 `json:"distance_m,omitempty"`
	IsWarmup  bool    `json:"is_warmup"`
}

// Session is one dated training session's sets for a single exercise.
type Session struct {
	Date time.Time `json:"date"`
	Sets []Set     `json:"sets"`
}

// ExerciseHistory is the full per-exercise training record, sessions ordered
// oldest first. The analyzer never mutates it.
type ExerciseHistory struct {
	Exercise   string    `json:"exercise"`
	IsCompound bool      `json:"is_compound"`
	IsDistance bool      `json:"is_distance"`
	Sessions   []Session `json:"sessions"`
}

// Config tunes the analyzer. Zero values fall back to defaults via Default.
type Config struct {
	RepRangeMin      int     // target rep range lower bound
	RepRangeMax      int     // target rep range upper bound
	IncrementPct     float64 // weight increment as % of current weight
	MinIncrementKg   float64 // smallest practical jump
	PlateauSessions  int     // stagnant sessions before flagging a plateau
	DeloadSessions   int     // stagnant sessions before recommending a deload
	ChangeSessions   int     // stagnant sessions before recommending a new exercise
}

// Default returns the standard analyzer configuration.
func Default() Config {
	return Config{
		RepRangeMin:     8,
		RepRangeMax:     12,
		IncrementPct:    2.5,
		MinIncrementKg:  2.5,
		PlateauSessions: 3,
		DeloadSessions:  4,
		ChangeSessions:  6,
	}
}

// Recommended actions, ordered by escalating stagnation.
const (
	RecommendProgress       = "progress"
	RecommendAddVolume      = "add_volume"
	RecommendDeload         = "deload"
	RecommendChangeExercise = "change_exercise"
)

// Suggestion is the analyzer's output for one exercise.
type Suggestion struct {
	Exercise              string    `json:"exercise"`
	LastSession           time.Time `json:"last_session"`
	TopSetWeightKg        float64   `json:"top_set_weight_kg"`
	TopSetReps            int       `json:"top_set_reps"`
	TopSetDistanceM       float64   `json:"top_set_distance_m,omitempty"`
	Estimated1RM          float64   `json:"estimated_1rm,omitempty"`
	NextWeightKg          float64   `json:"next_weight_kg"`
	NextReps              int       `json:"next_reps"`
	IncrementKg           float64   `json:"increment_kg"`
	Trend                 string    `json:"trend"` // improving | stable | declining
	SessionsSinceProgress int       `json:"sessions_since_progress"`
	IsPlateaued           bool      `json:"is_plateaued"`
	Recommendation        string    `json:"recommendation"`
}

// PlateauWarning summarizes a stalled exercise.
type PlateauWarning struct {
	Exercise              string  `json:"exercise"`
	SessionsSinceProgress int     `json:"sessions_since_progress"`
	Severity              string  `json:"severity"` // low | moderate | high
	Recommendation        string  `json:"recommendation"`
	LastTopWeightKg       float64 `json:"last_top_weight_kg"`
	Estimated1RM          float64 `json:"estimated_1rm,omitempty"`
}

// Estimate1RM applies Epley's formula with reps capped at 12; past that the
// extrapolation stops being meaningful.
func Estimate1RM(weightKg float64, reps int) float64 {
	if weightKg <= 0 || reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weightKg
	}
	if reps > 12 {
		reps = 12
	}
	return weightKg * (1 + float64(reps)/30)
}

// topSet picks the session's heaviest working set: non-warmup sets are
// preferred, heaviest weight wins, reps break ties. For distance exercises
// the longest distance wins instead.
func topSet(s Session, distance bool) (Set, bool) {
	var best Set
	found := false
	pick := func(candidate Set) {
		if !found {
			best = candidate
			found = true
			return
		}
		if distance {
			if candidate.DistanceM > best.DistanceM {
				best = candidate
			}
			return
		}
		if candidate.WeightKg > best.WeightKg ||
			(candidate.WeightKg == best.WeightKg && candidate.Reps > best.Reps) {
			best = candidate
		}
	}

	for _, set := range s.Sets {
		if !set.IsWarmup {
			pick(set)
		}
	}
	if !found {
		for _, set := range s.Sets {
			pick(set)
		}
	}
	return best, found
}

// Increment computes the practical weight jump: the configured percentage of
// the current weight rounded to 2.5kg steps, never below the minimum, and
// halved for isolation lifts.
func Increment(weightKg float64, compound bool, cfg Config) float64 {
	inc := math.Max(cfg.MinIncrementKg, roundToStep(weightKg*cfg.IncrementPct/100, 2.5))
	if !compound {
		inc /= 2
	}
	return inc
}

func roundToStep(v, step float64) float64 {
	return math.Round(v/step) * step
}

// Suggest produces a progression suggestion for one exercise, or nil when it
// has no recorded sessions: missing data is an expected outcome, not an error.
func Suggest(h ExerciseHistory, cfg Config) *Suggestion {
	if len(h.Sessions) == 0 {
		return nil
	}

	last := h.Sessions[len(h.Sessions)-1]
	top, ok := topSet(last, h.IsDistance)
	if !ok {
		return nil
	}

	s := &Suggestion{
		Exercise:        h.Exercise,
		LastSession:     last.Date,
		TopSetWeightKg:  top.WeightKg,
		TopSetReps:      top.Reps,
		TopSetDistanceM: top.DistanceM,
	}
	if !h.IsDistance {
		s.Estimated1RM = Estimate1RM(top.WeightKg, top.Reps)
	}

	inc := Increment(top.WeightKg, h.IsCompound, cfg)
	s.IncrementKg = inc
	if top.Reps >= cfg.RepRangeMax {
		s.NextWeightKg = top.WeightKg + inc
		s.NextReps = cfg.RepRangeMin
	} else {
		s.NextWeightKg = top.WeightKg + inc
		s.NextReps = top.Reps + 1
	}

	s.SessionsSinceProgress = sessionsSinceProgress(h)
	s.IsPlateaued = s.SessionsSinceProgress >= cfg.PlateauSessions
	s.Recommendation = recommendation(s.SessionsSinceProgress, cfg)
	s.Trend = trend(h)
	return s
}

// sessionsSinceProgress walks the history newest to oldest, counting sessions
// that show no improvement over their predecessor: neither more weight, nor
// more reps at the same weight, nor a >1% estimated-1RM gain, nor (for
// distance exercises) a longer distance. The walk stops at the first session
// that did improve; if none ever did, every session counts as stagnant.
func sessionsSinceProgress(h ExerciseHistory) int {
	count := 0
	for i := len(h.Sessions) - 1; i >= 0; i-- {
		if i == 0 {
			// Oldest session: no predecessor to have improved over.
			count++
			break
		}
		cur, okCur := topSet(h.Sessions[i], h.IsDistance)
		prev, okPrev := topSet(h.Sessions[i-1], h.IsDistance)
		if !okCur || !okPrev {
			count++
			continue
		}
		if improved(cur, prev, h.IsDistance) {
			break
		}
		count++
	}
	return count
}

func improved(cur, prev Set, distance bool) bool {
	if distance {
		return cur.DistanceM > prev.DistanceM
	}
	if cur.WeightKg > prev.WeightKg {
		return true
	}
	if cur.WeightKg == prev.WeightKg && cur.Reps > prev.Reps {
		return true
	}
	return Estimate1RM(cur.WeightKg, cur.Reps) > Estimate1RM(prev.WeightKg, prev.Reps)*1.01
}

func recommendation(stagnant int, cfg Config) string {
	switch {
	case stagnant >= cfg.ChangeSessions:
		return RecommendChangeExercise
	case stagnant >= cfg.DeloadSessions:
		return RecommendDeload
	case stagnant >= cfg.PlateauSessions:
		return RecommendAddVolume
	default:
		return RecommendProgress
	}
}

// trend compares the average estimated 1RM of the newer half of the last 10
// sessions against the older half: >2% up is improving, >2% down is declining.
func trend(h ExerciseHistory) string {
	sessions := h.Sessions
	if len(sessions) > 10 {
		sessions = sessions[len(sessions)-10:]
	}
	if len(sessions) < 2 {
		return "stable"
	}

	mid := len(sessions) / 2
	older := avg1RM(sessions[:mid], h.IsDistance)
	newer := avg1RM(sessions[mid:], h.IsDistance)
	if older <= 0 {
		return "stable"
	}

	switch {
	case newer > older*1.02:
		return "improving"
	case newer < older*0.98:
		return "declining"
	default:
		return "stable"
	}
}

// avg1RM averages session top-set 1RMs; for distance exercises the distance
// itself serves as the comparable magnitude.
func avg1RM(sessions []Session, distance bool) float64 {
	var sum float64
	var n int
	for _, s := range sessions {
		top, ok := topSet(s, distance)
		if !ok {
			continue
		}
		if distance {
			sum += top.DistanceM
		} else {
			sum += Estimate1RM(top.WeightKg, top.Reps)
		}
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Warnings scans all exercise histories and reports those that have stalled.
// Exercises with fewer than minSessions sessions are skipped: too little data
// to call a plateau.
func Warnings(histories []ExerciseHistory, minSessions int, cfg Config) []PlateauWarning {
	if minSessions <= 0 {
		minSessions = 3
	}

	var warnings []PlateauWarning
	for _, h := range histories {
		if len(h.Sessions) < minSessions {
			continue
		}
		stagnant := sessionsSinceProgress(h)
		if stagnant < cfg.PlateauSessions {
			continue
		}

		w := PlateauWarning{
			Exercise:              h.Exercise,
			SessionsSinceProgress: stagnant,
			Recommendation:        recommendation(stagnant, cfg),
		}
		switch {
		case stagnant >= cfg.ChangeSessions:
			w.Severity = "high"
		case stagnant >= cfg.DeloadSessions:
			w.Severity = "moderate"
		default:
			w.Severity = "low"
		}

		last := h.Sessions[len(h.Sessions)-1]
		if top, ok := topSet(last, h.IsDistance); ok {
			w.LastTopWeightKg = top.WeightKg
			if !h.IsDistance {
				w.Estimated1RM = Estimate1RM(top.WeightKg, top.Reps)
			}
		}
		warnings = append(warnings, w)
	}
	return warnings
}
