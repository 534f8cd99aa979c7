package race

// Assignee identifies who works a leg or station.
type Assignee string

const (
	AssignMe      Assignee = "ME"
	AssignPartner Assignee = "PARTNER"
	AssignBoth    Assignee = "BOTH"
	AssignSplit   Assignee = "SPLIT"
)

// StationSplit is one station's allocation in a duo race plan.
type StationSplit struct {
	Station       Station  `json:"station"`
	AssignedTo    Assignee `json:"assigned_to"`
	Advantage     float64  `json:"advantage"`
	FatigueImpact float64  `json:"fatigue_impact"`
}

// AllocateConfig carries allocation parameters. TransitionPenaltySeconds does
// not influence the assignment itself; it is echoed to the caller for display.
type AllocateConfig struct {
	TransitionPenaltySeconds float64 `json:"transition_penalty_seconds"`
}

// Fatigue model constants for the greedy allocator.
const (
	fatigueCost     = 10 // added to the assigned athlete
	fatigueRecovery = 5  // removed from the resting athlete, floored at 0
	maleBonus       = 5  // open-category weight standards favor heavier athletes
)

// Allocate assigns each of the 8 stations to whichever partner has the higher
// fatigue-adjusted ability at that point in the race.
//
// The pass is greedy and never reconsiders earlier assignments; that is
// deliberate, and downstream presentation depends on exactly this heuristic.
// Ties go to the first athlete. Output is fully determined by the inputs.
func Allocate(me, partner *AthleteProfile, cfg AllocateConfig) []StationSplit {
	var fatigueMe, fatiguePartner float64

	splits := make([]StationSplit, 0, len(StationOrder))
	for _, st := range StationOrder {
		kind := st.Kind()
		effMe := effectiveScore(me, kind, fatigueMe)
		effPartner := effectiveScore(partner, kind, fatiguePartner)

		split := StationSplit{Station: st}
		if effMe >= effPartner {
			split.AssignedTo = AssignMe
			fatigueMe += fatigueCost
			fatiguePartner = nonNegative(fatiguePartner - fatigueRecovery)
			split.FatigueImpact = fatigueMe
		} else {
			split.AssignedTo = AssignPartner
			fatiguePartner += fatigueCost
			fatigueMe = nonNegative(fatigueMe - fatigueRecovery)
			split.FatigueImpact = fatiguePartner
		}
		split.Advantage = abs(effMe - effPartner)
		splits = append(splits, split)
	}
	return splits
}

func effectiveScore(p *AthleteProfile, kind StationKind, fatigue float64) float64 {
	score := p.ability(kind)
	if p.Gender == Male {
		score += maleBonus
	}
	return score - fatigue
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
