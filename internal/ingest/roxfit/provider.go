package roxfit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/meltforce/hyroxlab/internal/ingest"
	"github.com/meltforce/hyroxlab/internal/models"
	"github.com/meltforce/hyroxlab/internal/storage"
)

// Provider processes RoxFit REST API payloads.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new RoxFit ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest processes a RoxFit JSON payload and stores accepted data.
func (p *Provider) Ingest(ctx context.Context, payload *Payload, userID int) (*ingest.Result, error) {
	result := &ingest.Result{}

	if len(payload.Data.Sessions) > 0 {
		if err := p.processSessions(ctx, payload.Data.Sessions, userID, result); err != nil {
			return result, fmt.Errorf("processing sessions: %w", err)
		}
	}

	if len(payload.Data.StationResults) > 0 {
		if err := p.processStations(ctx, payload.Data.StationResults, userID, result); err != nil {
			return result, fmt.Errorf("processing station results: %w", err)
		}
	}

	if len(payload.Data.RunBenchmarks) > 0 {
		if err := p.processBenchmarks(ctx, payload.Data.RunBenchmarks, userID, result); err != nil {
			return result, fmt.Errorf("processing run benchmarks: %w", err)
		}
	}

	if len(result.RejectedStations) > 0 {
		result.Message = fmt.Sprintf(
			"Some station results were rejected because the station name was not recognized: %v. "+
				"Accepted results are stored. Check GET /api/v1/stations for known names.",
			result.RejectedStations)
	}

	return result, nil
}

func (p *Provider) processSessions(ctx context.Context, sessions []Session, userID int, result *ingest.Result) error {
	for _, s := range sessions {
		result.SessionsReceived++

		sessionID, err := uuid.Parse(s.ID)
		if err != nil {
			p.log.Warn("skipping session: invalid UUID", "id", s.ID, "error", err)
			continue
		}

		inserted, err := p.db.InsertSession(ctx, models.SessionRow{
			ID:          sessionID,
			UserID:      userID,
			Name:        s.Name,
			Date:        s.Date.Time,
			DurationSec: s.DurationSec,
			Notes:       s.Notes,
		})
		if err != nil {
			return fmt.Errorf("inserting session %s: %w", s.ID, err)
		}
		if inserted {
			result.SessionsInserted++
		}

		// Replace the session's sets so re-imports always reflect the latest export.
		if err := p.db.DeleteSessionSets(ctx, sessionID, userID); err != nil {
			return fmt.Errorf("deleting sets for session %s: %w", s.ID, err)
		}

		var rows []models.WorkoutSetRow
		for _, ex := range s.Exercises {
			for _, set := range ex.Sets {
				result.SetsReceived++
				rir := -1.0
				if set.RIR != nil {
					rir = *set.RIR
				}
				rows = append(rows, models.WorkoutSetRow{
					UserID:       userID,
					SessionID:    sessionID,
					SessionDate:  s.Date.Time,
					ExerciseName: ex.Name,
					Equipment:    ex.Equipment,
					SetNumber:    set.Number,
					IsWarmup:     set.Warmup,
					WeightKg:     set.WeightKg,
					Reps:         set.Reps,
					DistanceM:    set.DistanceM,
					RIR:          rir,
				})
			}
		}
		if len(rows) > 0 {
			n, err := p.db.InsertWorkoutSets(ctx, rows)
			if err != nil {
				return fmt.Errorf("inserting sets for session %s: %w", s.ID, err)
			}
			result.SetsInserted += n
		}
	}
	return nil
}

func (p *Provider) processStations(ctx context.Context, results []StationResult, userID int, result *ingest.Result) error {
	var rows []models.StationResultRow
	rejectedSet := map[string]bool{}

	for _, sr := range results {
		result.StationsReceived++

		name, ok := models.NormalizeStation(sr.Station)
		if !ok {
			if !rejectedSet[sr.Station] {
				result.RejectedStations = append(result.RejectedStations, sr.Station)
				rejectedSet[sr.Station] = true
			}
			result.StationsRejected++
			continue
		}
		if sr.Seconds <= 0 {
			p.log.Warn("skipping station result: non-positive time", "station", name, "seconds", sr.Seconds)
			result.StationsRejected++
			continue
		}
		rows = append(rows, models.StationResultRow{
			UserID:  userID,
			Date:    sr.Date.Time,
			Station: name,
			Seconds: sr.Seconds,
			Source:  sr.Source,
		})
	}

	if len(rows) > 0 {
		n, err := p.db.InsertStationResults(ctx, rows)
		if err != nil {
			return fmt.Errorf("inserting station results: %w", err)
		}
		result.StationsInserted = n
	}
	return nil
}

func (p *Provider) processBenchmarks(ctx context.Context, benchmarks []RunBenchmark, userID int, result *ingest.Result) error {
	var rows []models.RunBenchmarkRow
	for _, b := range benchmarks {
		result.BenchmarksReceived++
		if b.Seconds <= 0 {
			p.log.Warn("skipping run benchmark: non-positive time", "seconds", b.Seconds)
			continue
		}
		rows = append(rows, models.RunBenchmarkRow{
			UserID:  userID,
			Date:    b.Date.Time,
			Seconds: b.Seconds,
			Source:  b.Source,
		})
	}
	if len(rows) > 0 {
		n, err := p.db.InsertRunBenchmarks(ctx, rows)
		if err != nil {
			return fmt.Errorf("inserting run benchmarks: %w", err)
		}
		result.BenchmarksInserted = n
	}
	return nil
}
