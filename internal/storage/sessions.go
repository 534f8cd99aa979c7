package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/meltforce/hyroxlab/internal/models"
	"github.com/google/uuid"
)

// InsertSession inserts a strength session row. Returns true if inserted,
// false if duplicate.
func (db *DB) InsertSession(ctx context.Context, row models.SessionRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO strength_sessions (id, user_id, name, session_date, duration_sec, notes)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT DO NOTHING`,
		row.ID, row.UserID, row.Name, row.Date, row.DurationSec, row.Notes)
	if err != nil {
		return false, fmt.Errorf("inserting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QuerySessions retrieves strength sessions in a time range.
func (db *DB) QuerySessions(ctx context.Context, start, end time.Time, userID int) ([]models.SessionRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, session_date, duration_sec, COALESCE(notes, '')
		 FROM strength_sessions
		 WHERE session_date >= $1 AND session_date < $2 AND user_id = $3
		 ORDER BY session_date DESC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.SessionRow
	for rows.Next() {
		var s models.SessionRow
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Date, &s.DurationSec, &s.Notes); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetSession retrieves a single session with its sets.
func (db *DB) GetSession(ctx context.Context, sessionID uuid.UUID, userID int) (*SessionDetail, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, session_date, duration_sec, COALESCE(notes, '')
		 FROM strength_sessions
		 WHERE id = $1 AND user_id = $2`,
		sessionID, userID)

	var s models.SessionRow
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Date, &s.DurationSec, &s.Notes); err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	detail := &SessionDetail{SessionRow: s}

	setRows, err := db.Pool.Query(ctx,
		`SELECT user_id, session_id, session_date, exercise_name, COALESCE(equipment, ''),
		 set_number, is_warmup, weight_kg, reps, distance_m, rir
		 FROM workout_sets
		 WHERE session_id = $1 AND user_id = $2
		 ORDER BY exercise_name ASC, set_number ASC`,
		sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("querying session sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var set models.WorkoutSetRow
		if err := setRows.Scan(&set.UserID, &set.SessionID, &set.SessionDate, &set.ExerciseName,
			&set.Equipment, &set.SetNumber, &set.IsWarmup, &set.WeightKg, &set.Reps,
			&set.DistanceM, &set.RIR); err != nil {
			return nil, fmt.Errorf("scanning session set: %w", err)
		}
		detail.Sets = append(detail.Sets, set)
	}
	return detail, setRows.Err()
}

// SessionDetail is a session with its sets.
type SessionDetail struct {
	models.SessionRow
	Sets []models.WorkoutSetRow `json:"sets"`
}
