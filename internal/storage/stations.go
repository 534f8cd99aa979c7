package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meltforce/hyroxlab/internal/models"
	"github.com/meltforce/hyroxlab/internal/race"
)

// InsertStationResults batch-inserts dated station times. Returns count inserted.
func (db *DB) InsertStationResults(ctx context.Context, rows []models.StationResultRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO station_results (user_id, result_date, station, seconds, source) VALUES `
	args := make([]any, 0, len(rows)*5)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 5
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5,
		))
		args = append(args, r.UserID, r.Date, r.Station, r.Seconds, r.Source)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting station results: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryStationResults retrieves station times in a date range, newest first,
// optionally filtered to one station.
func (db *DB) QueryStationResults(ctx context.Context, start, end time.Time, userID int, station string) ([]models.StationResultRow, error) {
	query := `SELECT user_id, result_date, station, seconds, COALESCE(source, '')
		 FROM station_results
		 WHERE result_date >= $1 AND result_date < $2 AND user_id = $3`
	args := []any{start, end, userID}

	if station != "" {
		query += ` AND station = $4`
		args = append(args, station)
	}
	query += ` ORDER BY result_date DESC, station ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying station results: %w", err)
	}
	defer rows.Close()

	var result []models.StationResultRow
	for rows.Next() {
		var r models.StationResultRow
		if err := rows.Scan(&r.UserID, &r.Date, &r.Station, &r.Seconds, &r.Source); err != nil {
			return nil, fmt.Errorf("scanning station result: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// BestStationTimes returns the fastest recorded time per station, keyed by
// race.Station, ready to feed the predictor as known personal times.
func (db *DB) BestStationTimes(ctx context.Context, userID int) (map[race.Station]float64, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT station, MIN(seconds)
		 FROM station_results
		 WHERE user_id = $1 AND seconds > 0
		 GROUP BY station`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying best station times: %w", err)
	}
	defer rows.Close()

	best := make(map[race.Station]float64)
	for rows.Next() {
		var station string
		var seconds float64
		if err := rows.Scan(&station, &seconds); err != nil {
			return nil, fmt.Errorf("scanning best station time: %w", err)
		}
		best[race.Station(station)] = seconds
	}
	return best, rows.Err()
}

// InsertRunBenchmarks batch-inserts dated 5k benchmark times.
func (db *DB) InsertRunBenchmarks(ctx context.Context, rows []models.RunBenchmarkRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO run_benchmarks (user_id, result_date, seconds, source) VALUES `
	args := make([]any, 0, len(rows)*4)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 4
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4,
		))
		args = append(args, r.UserID, r.Date, r.Seconds, r.Source)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting run benchmarks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// BestRunBenchmark returns the fastest recorded 5k in seconds, or 0 when no
// benchmark exists yet.
func (db *DB) BestRunBenchmark(ctx context.Context, userID int) (float64, error) {
	var seconds *float64
	err := db.Pool.QueryRow(ctx,
		`SELECT MIN(seconds) FROM run_benchmarks WHERE user_id = $1 AND seconds > 0`,
		userID).Scan(&seconds)
	if err != nil {
		return 0, fmt.Errorf("querying best run benchmark: %w", err)
	}
	if seconds == nil {
		return 0, nil
	}
	return *seconds, nil
}
