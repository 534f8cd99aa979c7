package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meltforce/hyroxlab/internal/models"
	"github.com/google/uuid"
)

// InsertWorkoutSets batch-inserts strength set rows. Returns count inserted.
func (db *DB) InsertWorkoutSets(ctx context.Context, rows []models.WorkoutSetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO workout_sets (user_id, session_id, session_date, exercise_name,
		equipment, set_number, is_warmup, weight_kg, reps, distance_m, rir) VALUES `
	args := make([]any, 0, len(rows)*11)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 11
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11,
		))
		args = append(args, r.UserID, r.SessionID, r.SessionDate, r.ExerciseName,
			r.Equipment, r.SetNumber, r.IsWarmup, r.WeightKg, r.Reps, r.DistanceM, r.RIR)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting workout sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteSessionSets removes all sets for a session, so re-imports always
// reflect the latest export.
func (db *DB) DeleteSessionSets(ctx context.Context, sessionID uuid.UUID, userID int) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_sets WHERE session_id = $1 AND user_id = $2`,
		sessionID, userID)
	if err != nil {
		return fmt.Errorf("deleting session sets: %w", err)
	}
	return nil
}

// QueryWorkoutSets retrieves sets in a date range, optionally filtered by a
// partial exercise name match.
func (db *DB) QueryWorkoutSets(ctx context.Context, start, end time.Time, userID int, exerciseFilter string) ([]models.WorkoutSetRow, error) {
	query := `SELECT user_id, session_id, session_date, exercise_name, COALESCE(equipment, ''),
		 set_number, is_warmup, weight_kg, reps, distance_m, rir
		 FROM workout_sets
		 WHERE session_date >= $1 AND session_date < $2 AND user_id = $3`
	args := []any{start, end, userID}

	if exerciseFilter != "" {
		query += ` AND exercise_name ILIKE '%' || $4 || '%'`
		args = append(args, exerciseFilter)
	}
	query += ` ORDER BY session_date DESC, exercise_name ASC, is_warmup DESC, set_number ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSetRow
	for rows.Next() {
		var r models.WorkoutSetRow
		if err := rows.Scan(&r.UserID, &r.SessionID, &r.SessionDate, &r.ExerciseName,
			&r.Equipment, &r.SetNumber, &r.IsWarmup, &r.WeightKg, &r.Reps,
			&r.DistanceM, &r.RIR); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
