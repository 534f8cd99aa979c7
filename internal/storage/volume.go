package storage

import (
	"context"
	"fmt"
	"time"
)

// StrengthVolumeSummary holds aggregated strength training stats for a period.
type StrengthVolumeSummary struct {
	WorkingSets       int     `json:"working_sets"`
	TotalReps         int     `json:"total_reps"`
	TonnageKg         float64 `json:"tonnage_kg"`
	Sessions          int     `json:"sessions"`
	AvgSetsPerSession float64 `json:"avg_sets_per_session"`
}

// StationVolumeSummary holds aggregated station work for a period.
type StationVolumeSummary struct {
	Results     int     `json:"results"`
	AvgSeconds  float64 `json:"avg_seconds"`
	BestSeconds float64 `json:"best_seconds"`
}

// TrainingVolumePeriod holds combined strength + station data for one period.
type TrainingVolumePeriod struct {
	Period   string                 `json:"period"`
	Strength *StrengthVolumeSummary `json:"strength,omitempty"`
	Stations *StationVolumeSummary  `json:"stations,omitempty"`
}

// GetTrainingVolume returns aggregated strength and station volume per period.
func (db *DB) GetTrainingVolume(ctx context.Context, start, end time.Time, bucket string, userID int) ([]TrainingVolumePeriod, error) {
	periodMap := make(map[string]*TrainingVolumePeriod)
	var periodOrder []string

	// Query 1: Strength set volume grouped by period.
	strengthRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, session_date)::date AS period,
		        COUNT(*) FILTER (WHERE NOT is_warmup)::int AS working_sets,
		        COALESCE(SUM(reps) FILTER (WHERE NOT is_warmup), 0)::int AS total_reps,
		        COALESCE(SUM(weight_kg * reps) FILTER (WHERE NOT is_warmup), 0) AS tonnage,
		        COUNT(DISTINCT session_date)::int AS sessions
		 FROM workout_sets
		 WHERE session_date >= $2 AND session_date < $3 AND user_id = $4
		 GROUP BY period
		 ORDER BY period DESC`,
		truncInterval(bucket), start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying strength volume: %w", err)
	}
	defer strengthRows.Close()

	for strengthRows.Next() {
		var periodTime time.Time
		var sv StrengthVolumeSummary
		if err := strengthRows.Scan(&periodTime, &sv.WorkingSets, &sv.TotalReps, &sv.TonnageKg, &sv.Sessions); err != nil {
			return nil, fmt.Errorf("scanning strength volume: %w", err)
		}
		if sv.Sessions > 0 {
			sv.AvgSetsPerSession = float64(sv.WorkingSets) / float64(sv.Sessions)
		}
		key := periodTime.Format("2006-01-02")
		if _, ok := periodMap[key]; !ok {
			periodMap[key] = &TrainingVolumePeriod{Period: key}
			periodOrder = append(periodOrder, key)
		}
		periodMap[key].Strength = &sv
	}
	if err := strengthRows.Err(); err != nil {
		return nil, err
	}

	// Query 2: Station work grouped by period.
	stationRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, result_date)::date AS period,
		        COUNT(*)::int,
		        COALESCE(AVG(seconds), 0),
		        COALESCE(MIN(seconds), 0)
		 FROM station_results
		 WHERE result_date >= $2 AND result_date < $3 AND user_id = $4
		 GROUP BY period
		 ORDER BY period DESC`,
		truncInterval(bucket), start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying station volume: %w", err)
	}
	defer stationRows.Close()

	for stationRows.Next() {
		var periodTime time.Time
		var sv StationVolumeSummary
		if err := stationRows.Scan(&periodTime, &sv.Results, &sv.AvgSeconds, &sv.BestSeconds); err != nil {
			return nil, fmt.Errorf("scanning station volume: %w", err)
		}
		key := periodTime.Format("2006-01-02")
		if _, ok := periodMap[key]; !ok {
			periodMap[key] = &TrainingVolumePeriod{Period: key}
			periodOrder = append(periodOrder, key)
		}
		periodMap[key].Stations = &sv
	}
	if err := stationRows.Err(); err != nil {
		return nil, err
	}

	result := make([]TrainingVolumePeriod, 0, len(periodOrder))
	for _, key := range periodOrder {
		result = append(result, *periodMap[key])
	}
	return result, nil
}

// truncInterval converts bucket strings like "1 month" to the interval name
// that date_trunc expects.
func truncInterval(bucket string) string {
	switch bucket {
	case "1 day", "day":
		return "day"
	case "1 week", "week":
		return "week"
	default:
		return "month"
	}
}
