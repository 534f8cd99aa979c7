package race

import (
	"fmt"
	"math"
)

// SimulationStep is one of 16 ordered legs of a simulated duo race.
// Consecutive legs are contiguous: step[i].EndTime == step[i+1].StartTime.
type SimulationStep struct {
	Leg         int      `json:"leg"`
	Label       string   `json:"label"`
	StartTime   float64  `json:"start_time"`
	EndTime     float64  `json:"end_time"`
	AssignedTo  Assignee `json:"assigned_to"`
	EnergyLevel float64  `json:"energy_level"` // team average, 0-100
}

// SimulationResult is the full race trace plus the total time.
type SimulationResult struct {
	TotalTime float64          `json:"total_time"`
	Trace     []SimulationStep `json:"trace"`
}

// Simulation tuning constants.
const (
	runBasePace      = 420 // sec/km at ability 0
	runPacePerLevel  = 2.1 // sec/km shaved per ability point
	runTeamDrag      = 5   // the slower partner sets the pace, plus handoff slack
	stationBaseTime  = 300
	stationTimeSlope = 0.6

	runEnergyDrain      = 3
	runEnergyFloor      = 10
	strengthEnergyDrain = 8
	engineEnergyDrain   = 12
	stationEnergyFloor  = 5
	restRecovery        = 5

	soloShareHigh   = 0.55
	soloShareLow    = 0.45
	bothActiveBand  = 0.05
	specialistBonus = 0.9  // THUNDER_AND_LIGHTNING with a wide ability gap
	towTruckBonus   = 0.95 // TOW_TRUCK with one standout partner
)

// Simulate runs a time-stepped duo race: 16 legs alternating a 1km run with a
// station, tracking a running clock and per-partner energy. The archetype is
// computed by the caller (DetectArchetype) so the UI can display it alongside
// the trace without recomputation.
func Simulate(me, partner *AthleteProfile, archetype Archetype) *SimulationResult {
	energyMe, energyPartner := 100.0, 100.0
	clock := 0.0

	trace := make([]SimulationStep, 0, 2*len(StationOrder))
	for i, st := range StationOrder {
		// Run leg: both partners run together.
		paceMe := runBasePace - me.RunLevel*runPacePerLevel
		pacePartner := runBasePace - partner.RunLevel*runPacePerLevel
		runDur := math.Max(paceMe, pacePartner) + runTeamDrag

		energyMe = math.Max(runEnergyFloor, energyMe-runEnergyDrain)
		energyPartner = math.Max(runEnergyFloor, energyPartner-runEnergyDrain)

		trace = append(trace, SimulationStep{
			Leg:         2*i + 1,
			Label:       fmt.Sprintf("Run %d", i+1),
			StartTime:   clock,
			EndTime:     clock + runDur,
			AssignedTo:  AssignBoth,
			EnergyLevel: (energyMe + energyPartner) / 2,
		})
		clock += runDur

		// Station leg.
		kind := st.Kind()
		abilityMe := me.ability(kind)
		abilityPartner := partner.ability(kind)
		total := abilityMe + abilityPartner

		assigned := AssignBoth
		if total > 0 {
			share := abilityMe / total
			switch {
			case math.Abs(share-0.5) < bothActiveBand:
				assigned = AssignBoth
			case share > soloShareHigh:
				assigned = AssignMe
			default:
				assigned = AssignPartner
			}
		}

		dur := nonNegative(stationBaseTime - total*stationTimeSlope)
		gap := math.Abs(abilityMe - abilityPartner)
		if archetype == ThunderAndLightning && gap > 30 {
			dur *= specialistBonus
		} else if archetype == TheTowTruck && (abilityMe > 80 || abilityPartner > 80) {
			dur *= towTruckBonus
		}

		drain := float64(strengthEnergyDrain)
		if kind == KindEngine {
			drain = engineEnergyDrain
		}
		switch assigned {
		case AssignMe:
			energyMe = math.Max(stationEnergyFloor, energyMe-drain)
			energyPartner = math.Min(100, energyPartner+restRecovery)
		case AssignPartner:
			energyPartner = math.Max(stationEnergyFloor, energyPartner-drain)
			energyMe = math.Min(100, energyMe+restRecovery)
		default: // both work, nobody rests
			energyMe = math.Max(stationEnergyFloor, energyMe-drain)
			energyPartner = math.Max(stationEnergyFloor, energyPartner-drain)
		}

		trace = append(trace, SimulationStep{
			Leg:         2*i + 2,
			Label:       stationLabels[st],
			StartTime:   clock,
			EndTime:     clock + dur,
			AssignedTo:  assigned,
			EnergyLevel: (energyMe + energyPartner) / 2,
		})
		clock += dur
	}

	return &SimulationResult{TotalTime: clock, Trace: trace}
}

var stationLabels = map[Station]string{
	StationSkiErg:    "Ski Erg",
	StationSledPush:  "Sled Push",
	StationSledPull:  "Sled Pull",
	StationBurpees:   "Burpee Broad Jumps",
	StationRow:       "Rowing",
	StationFarmers:   "Farmers Carry",
	StationLunges:    "Sandbag Lunges",
	StationWallBalls: "Wall Balls",
}
