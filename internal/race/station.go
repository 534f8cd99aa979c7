package race

import "fmt"

// Station is one of the 8 fixed non-running stages of a Hyrox race.
type Station string

const (
	StationSkiErg    Station = "ski_erg"
	StationSledPush  Station = "sled_push"
	StationSledPull  Station = "sled_pull"
	StationBurpees   Station = "burpee_broad_jumps"
	StationRow       Station = "rowing"
	StationFarmers   Station = "farmers_carry"
	StationLunges    Station = "sandbag_lunges"
	StationWallBalls Station = "wall_balls"
)

// StationOrder is the fixed race sequence of the 8 stations.
var StationOrder = []Station{
	StationSkiErg,
	StationSledPush,
	StationSledPull,
	StationBurpees,
	StationRow,
	StationFarmers,
	StationLunges,
	StationWallBalls,
}

// StationKind classifies a station by the dominant quality it taxes.
type StationKind int

const (
	KindStrength StationKind = iota
	KindEngine
)

var stationKinds = map[Station]StationKind{
	StationSkiErg:    KindEngine,
	StationSledPush:  KindStrength,
	StationSledPull:  KindStrength,
	StationBurpees:   KindEngine,
	StationRow:       KindEngine,
	StationFarmers:   KindStrength,
	StationLunges:    KindStrength,
	StationWallBalls: KindStrength,
}

// Kind returns the station's dominant quality. Panics on an unknown station,
// since that is a programming error rather than bad user input.
func (s Station) Kind() StationKind {
	kind, ok := stationKinds[s]
	if !ok {
		panic(fmt.Sprintf("race: unknown station %q", s))
	}
	return kind
}

// Class identifies a race category. Categories differ in weight standards
// and in the time factor applied to baseline station times.
type Class string

const (
	ClassMenOpen      Class = "MEN_OPEN"
	ClassWomenOpen    Class = "WOMEN_OPEN"
	ClassMenPro       Class = "MEN_PRO"
	ClassWomenPro     Class = "WOMEN_PRO"
	ClassDoublesMen   Class = "DOUBLES_MEN"
	ClassDoublesWomen Class = "DOUBLES_WOMEN"
	ClassDoublesMixed Class = "DOUBLES_MIXED"
	ClassRelay        Class = "RELAY"
)

// Classes lists every race category.
var Classes = []Class{
	ClassMenOpen, ClassWomenOpen, ClassMenPro, ClassWomenPro,
	ClassDoublesMen, ClassDoublesWomen, ClassDoublesMixed, ClassRelay,
}

// ParseClass validates a class string from external input.
func ParseClass(s string) (Class, bool) {
	for _, c := range Classes {
		if Class(s) == c {
			return c, true
		}
	}
	return "", false
}

// IsDoubles reports whether the class is raced by a team sharing station work.
func (c Class) IsDoubles() bool {
	switch c {
	case ClassDoublesMen, ClassDoublesWomen, ClassDoublesMixed, ClassRelay:
		return true
	}
	return false
}

// IsPro reports whether the class uses pro weight standards.
func (c Class) IsPro() bool {
	return c == ClassMenPro || c == ClassWomenPro
}
