package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionRow is a row ready for insertion into the strength_sessions table.
type SessionRow struct {
	ID          uuid.UUID `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	DurationSec float64   `json:"duration_sec"`
	Notes       string    `json:"notes,omitempty"`
}

// WorkoutSetRow is a row ready for insertion into the workout_sets table.
// RIR of -1 means untracked.
type WorkoutSetRow struct {
	UserID       int       `json:"user_id"`
	SessionID    uuid.UUID `json:"session_id"`
	SessionDate  time.Time `json:"session_date"`
	ExerciseName string    `json:"exercise_name"`
	Equipment    string    `json:"equipment,omitempty"`
	SetNumber    int       `json:"set_number"`
	IsWarmup     bool      `json:"is_warmup"`
	WeightKg     float64   `json:"weight_kg"`
	Reps         int       `json:"reps"`
	DistanceM    float64   `json:"distance_m,omitempty"`
	RIR          float64   `json:"rir"`
}

// StationResultRow is a dated personal time for one race station.
type StationResultRow struct {
	UserID  int       `json:"user_id"`
	Date    time.Time `json:"date"`
	Station string    `json:"station"`
	Seconds float64   `json:"seconds"`
	Source  string    `json:"source,omitempty"`
}

// RunBenchmarkRow is a dated 5k benchmark time.
type RunBenchmarkRow struct {
	UserID  int       `json:"user_id"`
	Date    time.Time `json:"date"`
	Seconds float64   `json:"seconds"`
	Source  string    `json:"source,omitempty"`
}
