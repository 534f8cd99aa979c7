package models

import "strings"

// Canonical station identifiers, matching internal/race.
const (
	StationSkiErg    = "ski_erg"
	StationSledPush  = "sled_push"
	StationSledPull  = "sled_pull"
	StationBurpees   = "burpee_broad_jumps"
	StationRow       = "rowing"
	StationFarmers   = "farmers_carry"
	StationLunges    = "sandbag_lunges"
	StationWallBalls = "wall_balls"
)

// stationNameMap maps lowercased station spellings seen in training-log
// exports to their canonical identifiers. Covers the official names, common
// gym shorthand, and the hyphen/space variants that exporters produce.
var stationNameMap = map[string]string{
	// Ski erg
	"ski_erg": StationSkiErg,
	"ski erg": StationSkiErg,
	"skierg":  StationSkiErg,
	"ski":     StationSkiErg,

	// Sleds
	"sled_push": StationSledPush,
	"sled push": StationSledPush,
	"push sled": StationSledPush,
	"sled_pull": StationSledPull,
	"sled pull": StationSledPull,
	"pull sled": StationSledPull,

	// Burpee broad jumps
	"burpee_broad_jumps": StationBurpees,
	"burpee broad jumps": StationBurpees,
	"burpee broad jump":  StationBurpees,
	"burpees":            StationBurpees,
	"bbj":                StationBurpees,

	// Rowing
	"rowing":  StationRow,
	"row":     StationRow,
	"row erg": StationRow,
	"rowerg":  StationRow,

	// Farmers carry
	"farmers_carry": StationFarmers,
	"farmers carry": StationFarmers,
	"farmer's carry": StationFarmers,
	"farmers":       StationFarmers,

	// Sandbag lunges
	"sandbag_lunges": StationLunges,
	"sandbag lunges": StationLunges,
	"sandbag lunge":  StationLunges,
	"lunges":         StationLunges,

	// Wall balls
	"wall_balls": StationWallBalls,
	"wall balls": StationWallBalls,
	"wallballs":  StationWallBalls,
	"wall ball":  StationWallBalls,
	"wb":         StationWallBalls,
}

// NormalizeStation maps a station spelling from an export to its canonical
// identifier. Returns the canonical name and true if recognized, or the
// original string and false if unknown.
func NormalizeStation(raw string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := stationNameMap[lower]; ok {
		return canonical, true
	}
	return raw, false
}
