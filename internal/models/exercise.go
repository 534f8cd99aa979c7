package models

import "strings"

// compoundKeywords marks multi-joint barbell/machine lifts. Anything else is
// treated as an isolation exercise and gets half the progression increment.
var compoundKeywords = []string{
	"squat",
	"deadlift",
	"bench press",
	"overhead press",
	"shoulder press",
	"military press",
	"row",
	"pull-up",
	"pull up",
	"chin-up",
	"chin up",
	"dip",
	"lunge",
	"hip thrust",
	"clean",
	"snatch",
	"push press",
	"rdl",
	"romanian",
}

// distanceKeywords marks exercises measured in meters rather than
// weight x reps.
var distanceKeywords = []string{
	"ski erg",
	"skierg",
	"row erg",
	"rowerg",
	"run",
	"sled push",
	"sled pull",
	"carry",
	"assault bike",
	"bike erg",
}

// IsCompoundExercise reports whether an exercise name looks like a
// multi-joint lift.
func IsCompoundExercise(name string) bool {
	return matchesAny(name, compoundKeywords)
}

// IsDistanceExercise reports whether an exercise is measured by distance.
func IsDistanceExercise(name string) bool {
	return matchesAny(name, distanceKeywords)
}

func matchesAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
