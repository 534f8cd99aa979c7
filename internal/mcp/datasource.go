package mcp

import (
	"context"
	"time"

	"github.com/meltforce/hyroxlab/internal/models"
	"github.com/meltforce/hyroxlab/internal/progression"
	"github.com/meltforce/hyroxlab/internal/race"
	"github.com/meltforce/hyroxlab/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	QuerySessions(ctx context.Context, start, end time.Time, userID int) ([]models.SessionRow, error)
	QueryWorkoutSets(ctx context.Context, start, end time.Time, userID int, exerciseFilter string) ([]models.WorkoutSetRow, error)
	QueryStationResults(ctx context.Context, start, end time.Time, userID int, station string) ([]models.StationResultRow, error)
	BestStationTimes(ctx context.Context, userID int) (map[race.Station]float64, error)
	BestRunBenchmark(ctx context.Context, userID int) (float64, error)
	ExerciseHistories(ctx context.Context, start, end time.Time, userID int, exerciseFilter string) ([]progression.ExerciseHistory, error)
	GetTrainingVolume(ctx context.Context, start, end time.Time, bucket string, userID int) ([]storage.TrainingVolumePeriod, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
