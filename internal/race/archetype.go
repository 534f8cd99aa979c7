package race

import "math"

// Archetype is a qualitative pairing classification for a duo team, derived
// purely from the two athletes' current ability levels.
type Archetype string

const (
	TheTwinTurbos       Archetype = "THE_TWIN_TURBOS"
	TheTowTruck         Archetype = "THE_TOW_TRUCK"
	ThunderAndLightning Archetype = "THUNDER_AND_LIGHTNING"
	TheGrinders         Archetype = "THE_GRINDERS"
	BalancedAssault     Archetype = "BALANCED_ASSAULT"
	ChaosCrew           Archetype = "CHAOS_CREW"
)

// ParseArchetype validates an archetype string from external input.
func ParseArchetype(s string) (Archetype, bool) {
	switch Archetype(s) {
	case TheTwinTurbos, TheTowTruck, ThunderAndLightning,
		TheGrinders, BalancedAssault, ChaosCrew:
		return Archetype(s), true
	}
	return "", false
}

// DetectArchetype classifies a pair of athletes. The rules form an ordered
// decision list; the first matching rule wins, so the order here is load
// bearing and must not be rearranged.
func DetectArchetype(a, b *AthleteProfile) Archetype {
	// 1. Two genuinely fast runners.
	if a.RunLevel > 80 && b.RunLevel > 80 {
		return TheTwinTurbos
	}

	// 2. One athlete dominates across the board.
	sumA := a.RunLevel + a.StrengthLevel + a.EngineLevel
	sumB := b.RunLevel + b.StrengthLevel + b.EngineLevel
	if math.Abs(sumA-sumB) > 60 {
		return TheTowTruck
	}

	// 3. Complementary specialists: one runner, one mover.
	if (a.RunLevel-b.RunLevel > 15 && b.StrengthLevel-a.StrengthLevel > 15) ||
		(b.RunLevel-a.RunLevel > 15 && a.StrengthLevel-b.StrengthLevel > 15) {
		return ThunderAndLightning
	}

	// 4. Strong but slow.
	avgStrength := (a.StrengthLevel + b.StrengthLevel) / 2
	avgRun := (a.RunLevel + b.RunLevel) / 2
	if avgStrength > 75 && avgRun < 60 {
		return TheGrinders
	}

	// 5. Evenly matched and quick enough.
	if math.Abs(a.RunLevel-b.RunLevel) < 15 &&
		math.Abs(a.StrengthLevel-b.StrengthLevel) < 15 &&
		math.Abs(a.EngineLevel-b.EngineLevel) < 15 &&
		avgRun > 60 {
		return BalancedAssault
	}

	return ChaosCrew
}
