package race

// Gender of an athlete, as it affects open-category weight standards.
type Gender string

const (
	Male   Gender = "MALE"
	Female Gender = "FEMALE"
)

// AthleteProfile describes one athlete's self-assessed or derived ability
// levels on a 0-100 scale, plus optional real-world benchmarks. Profiles are
// ephemeral UI state; the server never persists them.
type AthleteProfile struct {
	Name          string  `json:"name"`
	Gender        Gender  `json:"gender"`
	RunLevel      float64 `json:"run_level"`
	StrengthLevel float64 `json:"strength_level"`
	EngineLevel   float64 `json:"engine_level"`

	// Optional real-world metrics.
	Best5K             string  `json:"best_5k,omitempty"`
	WallBallsUnbroken  int     `json:"wall_balls_unbroken,omitempty"`
	BurpeePace         float64 `json:"burpee_pace,omitempty"` // 0-10 scale
}

// Clamp forces all ability levels into [0,100]. Call after any mutation from
// external input.
func (p *AthleteProfile) Clamp() {
	p.RunLevel = clamp(p.RunLevel, 0, 100)
	p.StrengthLevel = clamp(p.StrengthLevel, 0, 100)
	p.EngineLevel = clamp(p.EngineLevel, 0, 100)
}

// ability returns the profile's score for a station kind.
func (p *AthleteProfile) ability(kind StationKind) float64 {
	if kind == KindStrength {
		return p.StrengthLevel
	}
	return p.EngineLevel
}

// LevelsFromRealStats derives ability levels from real-world benchmarks:
// a 5k time ("MM:SS"), max unbroken wall balls, and a 0-10 burpee pace
// rating. All outputs are clamped to [0,100] regardless of how extreme the
// inputs are. A malformed 5k string yields a ParseError.
func LevelsFromRealStats(best5k string, wallBallsUnbroken int, burpeePace float64) (run, strength, engine float64, err error) {
	sec, err := ParseMMSS(best5k)
	if err != nil {
		return 0, 0, 0, err
	}

	// 45:00 maps to 0, 15:00 and under to 100.
	run = clamp((2700-sec)/18, 0, 100)
	strength = clamp(float64(wallBallsUnbroken), 0, 100)
	engine = clamp(burpeePace*10, 0, 100)
	return run, strength, engine, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
