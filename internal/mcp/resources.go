package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/hyroxlab/internal/race"
)

// raceReadiness bundles the athlete's best stored data with an open-class
// prediction built from it. Without a stored 5k benchmark the prediction is
// omitted rather than failing the whole resource.
func (h *handlers) raceReadiness(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	benchmark, err := h.ds.BestRunBenchmark(ctx, uid)
	if err != nil {
		return nil, err
	}

	best, err := h.ds.BestStationTimes(ctx, uid)
	if err != nil {
		h.log.Warn("race_readiness: station query failed", "error", err)
		best = map[race.Station]float64{}
	}

	readiness := map[string]any{
		"best_5k_seconds":    benchmark,
		"best_station_times": best,
		"stations_covered":   len(best),
	}

	if benchmark > 0 {
		prediction, err := h.predictor.Predict(race.FormatSeconds(benchmark), best, race.ClassMenOpen, nil)
		if err != nil {
			h.log.Warn("race_readiness: prediction failed", "error", err)
		} else {
			readiness["open_class_prediction"] = prediction
		}
	}

	data, err := json.Marshal(readiness)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) recentSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	end := time.Now()
	start := end.AddDate(0, 0, -14)

	sessions, err := h.ds.QuerySessions(ctx, start, end, uid)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(sessions)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) stationCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	model := race.DefaultModel()

	type stationEntry struct {
		ID       race.Station `json:"id"`
		Order    int          `json:"order"`
		Kind     string       `json:"kind"`
		Baseline float64      `json:"baseline_seconds"`
	}

	catalog := make([]stationEntry, 0, len(race.StationOrder))
	for i, st := range race.StationOrder {
		kind := "strength"
		if st.Kind() == race.KindEngine {
			kind = "engine"
		}
		catalog = append(catalog, stationEntry{
			ID:       st,
			Order:    i + 1,
			Kind:     kind,
			Baseline: model.Baseline(st),
		})
	}

	data, err := json.Marshal(map[string]any{
		"stations": catalog,
		"classes":  race.Classes,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
