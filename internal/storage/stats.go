package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about all stored data.
type DataStats struct {
	TotalSessions       int64          `json:"total_sessions"`
	TotalSets           int64          `json:"total_sets"`
	TotalStationResults int64          `json:"total_station_results"`
	TotalRunBenchmarks  int64          `json:"total_run_benchmarks"`
	EarliestData        *time.Time     `json:"earliest_data"`
	LatestData          *time.Time     `json:"latest_data"`
	TopExercises        []ExerciseStat `json:"top_exercises"`
}

// ExerciseStat holds summary stats for a single exercise.
type ExerciseStat struct {
	Name      string  `json:"name"`
	Sets      int64   `json:"sets"`
	TonnageKg float64 `json:"tonnage_kg"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM strength_sessions WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSessions)
	if err != nil {
		return nil, fmt.Errorf("counting sessions: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workout_sets WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM station_results WHERE user_id = $1`, userID,
	).Scan(&stats.TotalStationResults)
	if err != nil {
		return nil, fmt.Errorf("counting station results: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM run_benchmarks WHERE user_id = $1`, userID,
	).Scan(&stats.TotalRunBenchmarks)
	if err != nil {
		return nil, fmt.Errorf("counting run benchmarks: %w", err)
	}

	// Date range across sessions and station results.
	err = db.Pool.QueryRow(ctx,
		`SELECT MIN(t), MAX(t) FROM (
			SELECT MIN(session_date) AS t FROM strength_sessions WHERE user_id = $1
			UNION ALL
			SELECT MIN(result_date) FROM station_results WHERE user_id = $1
			UNION ALL
			SELECT MAX(session_date) FROM strength_sessions WHERE user_id = $1
			UNION ALL
			SELECT MAX(result_date) FROM station_results WHERE user_id = $1
		) sub`, userID,
	).Scan(&stats.EarliestData, &stats.LatestData)
	if err != nil {
		return nil, fmt.Errorf("querying date range: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT exercise_name, COUNT(*), COALESCE(SUM(weight_kg * reps), 0)
		 FROM workout_sets
		 WHERE user_id = $1 AND NOT is_warmup
		 GROUP BY exercise_name
		 ORDER BY SUM(weight_kg * reps) DESC
		 LIMIT 10`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying top exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ExerciseStat
		if err := rows.Scan(&s.Name, &s.Sets, &s.TonnageKg); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.TopExercises = append(stats.TopExercises, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
