package roxfit

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	timeLayout     = "2006-01-02 15:04:05 -0700"
	dateOnlyLayout = "2006-01-02"
)

// Time wraps time.Time with the RoxFit export's timestamp formats.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.Parse(s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(timeLayout))
}

// Parse parses a RoxFit timestamp, trying full datetime first, then RFC 3339, then date-only.
func (t *Time) Parse(s string) error {
	for _, layout := range []string{timeLayout, time.RFC3339, dateOnlyLayout} {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("cannot parse time %q", s)
}

// Payload is the top-level RoxFit REST API export payload.
type Payload struct {
	Data struct {
		Sessions       []Session       `json:"sessions"`
		StationResults []StationResult `json:"station_results"`
		RunBenchmarks  []RunBenchmark  `json:"run_benchmarks"`
	} `json:"data"`
}

// Session is one logged strength session with its exercises.
type Session struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Date        Time       `json:"date"`
	DurationSec float64    `json:"duration_sec"`
	Notes       string     `json:"notes"`
	Exercises   []Exercise `json:"exercises"`
}

// Exercise is one exercise within a session.
type Exercise struct {
	Name      string `json:"name"`
	Equipment string `json:"equipment"`
	Sets      []Set  `json:"sets"`
}

// Set is one logged set. RIR is nil when the athlete did not track it.
type Set struct {
	Number    int      `json:"number"`
	WeightKg  float64  `json:"weight_kg"`
	Reps      int      `json:"reps"`
	DistanceM float64  `json:"distance_m"`
	RIR       *float64 `json:"rir"`
	Warmup    bool     `json:"warmup"`
}

// StationResult is a dated time for one race station.
type StationResult struct {
	Date    Time    `json:"date"`
	Station string  `json:"station"`
	Seconds float64 `json:"seconds"`
	Source  string  `json:"source"`
}

// RunBenchmark is a dated 5k time trial result.
type RunBenchmark struct {
	Date    Time    `json:"date"`
	Seconds float64 `json:"seconds"`
	Source  string  `json:"source"`
}
