package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meltforce/hyroxlab/internal/models"
	"github.com/meltforce/hyroxlab/internal/progression"
	"github.com/meltforce/hyroxlab/internal/race"
	"github.com/meltforce/hyroxlab/internal/storage"
)

// HTTPClient implements DataSource by calling the HyroxLab REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// bucketToAgg maps MCP bucket values to REST API agg parameter values.
func bucketToAgg(bucket string) string {
	switch bucket {
	case "1 day", "day":
		return "daily"
	case "1 week", "week":
		return "weekly"
	case "1 month", "month":
		return "monthly"
	default:
		return "weekly"
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

func (c *HTTPClient) QuerySessions(ctx context.Context, start, end time.Time, _ int) ([]models.SessionRow, error) {
	body, err := c.get(ctx, "/api/v1/sessions", timeParams(start, end))
	if err != nil {
		return nil, err
	}

	var sessions []models.SessionRow
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("httpclient: decode sessions: %w", err)
	}
	return sessions, nil
}

func (c *HTTPClient) QueryWorkoutSets(ctx context.Context, start, end time.Time, _ int, exerciseFilter string) ([]models.WorkoutSetRow, error) {
	params := timeParams(start, end)
	if exerciseFilter != "" {
		params.Set("exercise", exerciseFilter)
	}

	body, err := c.get(ctx, "/api/v1/sets", params)
	if err != nil {
		return nil, err
	}

	var sets []models.WorkoutSetRow
	if err := json.Unmarshal(body, &sets); err != nil {
		return nil, fmt.Errorf("httpclient: decode sets: %w", err)
	}
	return sets, nil
}

func (c *HTTPClient) QueryStationResults(ctx context.Context, start, end time.Time, _ int, station string) ([]models.StationResultRow, error) {
	params := timeParams(start, end)
	if station != "" {
		params.Set("station", station)
	}

	body, err := c.get(ctx, "/api/v1/stations", params)
	if err != nil {
		return nil, err
	}

	var results []models.StationResultRow
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("httpclient: decode station results: %w", err)
	}
	return results, nil
}

func (c *HTTPClient) BestStationTimes(ctx context.Context, _ int) (map[race.Station]float64, error) {
	body, err := c.get(ctx, "/api/v1/stations/best", nil)
	if err != nil {
		return nil, err
	}

	var best map[race.Station]float64
	if err := json.Unmarshal(body, &best); err != nil {
		return nil, fmt.Errorf("httpclient: decode best stations: %w", err)
	}
	return best, nil
}

func (c *HTTPClient) BestRunBenchmark(ctx context.Context, _ int) (float64, error) {
	body, err := c.get(ctx, "/api/v1/benchmarks/best", nil)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Seconds float64 `json:"seconds"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("httpclient: decode best benchmark: %w", err)
	}
	return resp.Seconds, nil
}

func (c *HTTPClient) ExerciseHistories(ctx context.Context, start, end time.Time, _ int, exerciseFilter string) ([]progression.ExerciseHistory, error) {
	params := timeParams(start, end)
	if exerciseFilter != "" {
		params.Set("exercise", exerciseFilter)
	}

	body, err := c.get(ctx, "/api/v1/histories", params)
	if err != nil {
		return nil, err
	}

	var histories []progression.ExerciseHistory
	if err := json.Unmarshal(body, &histories); err != nil {
		return nil, fmt.Errorf("httpclient: decode histories: %w", err)
	}
	return histories, nil
}

func (c *HTTPClient) GetTrainingVolume(ctx context.Context, start, end time.Time, bucket string, _ int) ([]storage.TrainingVolumePeriod, error) {
	params := timeParams(start, end)
	params.Set("agg", bucketToAgg(bucket))

	body, err := c.get(ctx, "/api/v1/volume", params)
	if err != nil {
		return nil, err
	}

	var periods []storage.TrainingVolumePeriod
	if err := json.Unmarshal(body, &periods); err != nil {
		return nil, fmt.Errorf("httpclient: decode volume: %w", err)
	}
	return periods, nil
}

func (c *HTTPClient) GetDataStats(ctx context.Context, _ int) (*storage.DataStats, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}
