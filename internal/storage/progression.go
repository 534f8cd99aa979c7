package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/meltforce/hyroxlab/internal/models"
	"github.com/meltforce/hyroxlab/internal/progression"
)

// ExerciseHistories assembles per-exercise session histories from the
// workout_sets table, ready for the progression analyzer. Sessions come back
// oldest first, optionally filtered by a partial exercise name match.
func (db *DB) ExerciseHistories(ctx context.Context, start, end time.Time, userID int, exerciseFilter string) ([]progression.ExerciseHistory, error) {
	query := `SELECT exercise_name, session_date, is_warmup, weight_kg, reps, distance_m
		 FROM workout_sets
		 WHERE session_date >= $1 AND session_date < $2 AND user_id = $3`
	args := []any{start, end, userID}

	if exerciseFilter != "" {
		query += ` AND exercise_name ILIKE '%' || $4 || '%'`
		args = append(args, exerciseFilter)
	}
	query += ` ORDER BY exercise_name ASC, session_date ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercise histories: %w", err)
	}
	defer rows.Close()

	type sessionKey struct {
		exercise string
		date     time.Time
	}
	sessions := make(map[sessionKey][]progression.Set)
	exerciseDates := make(map[string][]time.Time)

	for rows.Next() {
		var exercise string
		var date time.Time
		var set progression.Set
		if err := rows.Scan(&exercise, &date, &set.IsWarmup, &set.WeightKg, &set.Reps, &set.DistanceM); err != nil {
			return nil, fmt.Errorf("scanning exercise set: %w", err)
		}
		key := sessionKey{exercise, date}
		if _, seen := sessions[key]; !seen {
			exerciseDates[exercise] = append(exerciseDates[exercise], date)
		}
		sessions[key] = append(sessions[key], set)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exercises := make([]string, 0, len(exerciseDates))
	for name := range exerciseDates {
		exercises = append(exercises, name)
	}
	sort.Strings(exercises)

	histories := make([]progression.ExerciseHistory, 0, len(exercises))
	for _, name := range exercises {
		h := progression.ExerciseHistory{
			Exercise:   name,
			IsCompound: models.IsCompoundExercise(name),
			IsDistance: models.IsDistanceExercise(name),
		}
		dates := exerciseDates[name]
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		for _, d := range dates {
			h.Sessions = append(h.Sessions, progression.Session{
				Date: d,
				Sets: sessions[sessionKey{name, d}],
			})
		}
		histories = append(histories, h)
	}
	return histories, nil
}
