package setcsv

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/meltforce/hyroxlab/internal/ingest"
	"github.com/meltforce/hyroxlab/internal/models"
	"github.com/meltforce/hyroxlab/internal/storage"
)

// sessionNamespace keys deterministic session IDs so re-imports of the
// same CSV land on the same session rows.
var sessionNamespace = uuid.MustParse("b9f1d3a0-54c7-4b8e-9f2a-3d6e8c100452")

// Provider processes flat set-log CSV exports.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new CSV ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest parses a CSV export and stores the session and set data.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, userID int) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	result := &ingest.Result{}

	for _, s := range sessions {
		result.SessionsReceived++

		key := fmt.Sprintf("%d/%s/%s", userID, s.Date.Format("2006-01-02 15:04"), s.Name)
		sessionID := uuid.NewSHA1(sessionNamespace, []byte(key))

		inserted, err := p.db.InsertSession(ctx, models.SessionRow{
			ID:          sessionID,
			UserID:      userID,
			Name:        s.Name,
			Date:        s.Date,
			DurationSec: parseDurationSec(s.Duration),
		})
		if err != nil {
			return nil, fmt.Errorf("inserting session %s: %w", s.Name, err)
		}
		if inserted {
			result.SessionsInserted++
		}

		// Replace the session's sets so re-imports always reflect the latest export.
		if err := p.db.DeleteSessionSets(ctx, sessionID, userID); err != nil {
			return nil, fmt.Errorf("deleting sets for session %s: %w", s.Name, err)
		}

		rows := make([]models.WorkoutSetRow, 0, len(s.Sets))
		for _, set := range s.Sets {
			result.SetsReceived++
			rows = append(rows, models.WorkoutSetRow{
				UserID:       userID,
				SessionID:    sessionID,
				SessionDate:  s.Date,
				ExerciseName: set.ExerciseName,
				Equipment:    set.Equipment,
				SetNumber:    set.Number,
				IsWarmup:     set.IsWarmup,
				WeightKg:     set.WeightKg,
				Reps:         set.Reps,
				DistanceM:    set.DistanceM,
				RIR:          set.RIR,
			})
		}
		if len(rows) > 0 {
			n, err := p.db.InsertWorkoutSets(ctx, rows)
			if err != nil {
				return nil, fmt.Errorf("inserting sets for session %s: %w", s.Name, err)
			}
			result.SetsInserted += n
		}
	}

	return result, nil
}

// parseDurationSec converts a "1:02" hours:minutes duration to seconds.
// Unparseable durations yield zero.
func parseDurationSec(s string) float64 {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0
	}
	return float64(h*3600 + m*60)
}
