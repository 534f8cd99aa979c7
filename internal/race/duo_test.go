package race

import (
	"reflect"
	"testing"
)

func profile(run, strength, engine float64, g Gender) *AthleteProfile {
	return &AthleteProfile{RunLevel: run, StrengthLevel: strength, EngineLevel: engine, Gender: g}
}

// TestAllocateDeterminism verifies that two calls with identical inputs
// produce identical output: the allocator carries no hidden state.
func TestAllocateDeterminism(t *testing.T) {
	me := profile(70, 85, 60, Male)
	partner := profile(80, 55, 75, Female)
	cfg := AllocateConfig{TransitionPenaltySeconds: 12}

	first := Allocate(me, partner, cfg)
	second := Allocate(me, partner, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("allocations differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if len(first) != 8 {
		t.Fatalf("got %d splits, want 8", len(first))
	}
}

// TestAllocateFatigueNonNegative verifies that the recovery step never drives
// either fatigue accumulator below zero, which would inflate effective scores.
func TestAllocateFatigueNonNegative(t *testing.T) {
	// A dominant first athlete takes everything; the partner's fatigue would
	// go negative without the floor.
	me := profile(90, 95, 95, Male)
	partner := profile(20, 20, 20, Female)

	splits := Allocate(me, partner, AllocateConfig{})
	for _, sp := range splits {
		if sp.FatigueImpact < 0 {
			t.Errorf("station %s: fatigue impact %.2f < 0", sp.Station, sp.FatigueImpact)
		}
	}
}

// TestAllocateTieBreaksToMe verifies that equal effective scores assign the
// station to the first athlete.
func TestAllocateTieBreaksToMe(t *testing.T) {
	me := profile(50, 50, 50, Female)
	partner := profile(50, 50, 50, Female)

	splits := Allocate(me, partner, AllocateConfig{})
	if splits[0].AssignedTo != AssignMe {
		t.Errorf("first station assigned to %s, want ME", splits[0].AssignedTo)
	}
	if splits[0].Advantage != 0 {
		t.Errorf("advantage = %.2f, want 0 for identical athletes", splits[0].Advantage)
	}
}

// TestAllocateFatigueForcesHandover verifies the fatigue model actually
// redistributes work: after the stronger athlete accumulates fatigue, a
// moderately weaker partner wins later stations.
func TestAllocateFatigueForcesHandover(t *testing.T) {
	me := profile(60, 70, 70, Female)
	partner := profile(60, 62, 62, Female)

	splits := Allocate(me, partner, AllocateConfig{})
	var partnerStations int
	for _, sp := range splits {
		if sp.AssignedTo == AssignPartner {
			partnerStations++
		}
	}
	if partnerStations == 0 {
		t.Error("expected fatigue to hand at least one station to the partner")
	}
}

// TestAllocateMaleBonus verifies the flat +5 open-category bonus: a male
// athlete two points behind on raw ability still wins the first station.
func TestAllocateMaleBonus(t *testing.T) {
	me := profile(50, 60, 60, Male)
	partner := profile(50, 62, 62, Female)

	splits := Allocate(me, partner, AllocateConfig{})
	// Ski erg is engine: 60+5 vs 62.
	if splits[0].AssignedTo != AssignMe {
		t.Errorf("ski erg assigned to %s, want ME (male bonus)", splits[0].AssignedTo)
	}
}

// TestDetectArchetypeRulePriority verifies that rule 1 fires before any later
// rule could match: two 85-run athletes are TWIN_TURBOS even though they also
// satisfy the balanced-assault conditions.
func TestDetectArchetypeRulePriority(t *testing.T) {
	a := profile(85, 50, 50, Male)
	b := profile(85, 50, 50, Male)
	if got := DetectArchetype(a, b); got != TheTwinTurbos {
		t.Errorf("archetype = %s, want %s", got, TheTwinTurbos)
	}
}

// TestDetectArchetypeTable walks each rule of the decision list.
func TestDetectArchetypeTable(t *testing.T) {
	tests := []struct {
		name string
		a, b *AthleteProfile
		want Archetype
	}{
		{"twin turbos", profile(90, 40, 40, Male), profile(82, 45, 45, Male), TheTwinTurbos},
		{"tow truck", profile(90, 90, 90, Male), profile(40, 40, 40, Male), TheTowTruck},
		{"thunder and lightning", profile(80, 50, 60, Male), profile(60, 70, 60, Male), ThunderAndLightning},
		{"grinders", profile(50, 80, 60, Male), profile(55, 85, 60, Male), TheGrinders},
		{"balanced assault", profile(70, 60, 60, Male), profile(72, 62, 62, Male), BalancedAssault},
		{"chaos crew", profile(40, 50, 30, Male), profile(50, 40, 60, Male), ChaosCrew},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectArchetype(tt.a, tt.b); got != tt.want {
				t.Errorf("DetectArchetype = %s, want %s", got, tt.want)
			}
		})
	}
}
