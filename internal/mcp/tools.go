package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/hyroxlab/internal/models"
	"github.com/meltforce/hyroxlab/internal/progression"
	"github.com/meltforce/hyroxlab/internal/race"
)

// defaultTimeRange returns start/end defaulting to the last 90 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -90)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// athleteParams appends the flat profile parameters for one athlete. MCP tool
// schemas are flat, so the two duo profiles arrive as prefixed numbers.
func athleteParams(prefix string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString(prefix+"_name", mcp.Description("Display name for "+prefix)),
		mcp.WithString(prefix+"_gender", mcp.Description("MALE or FEMALE"), mcp.Enum("MALE", "FEMALE")),
		mcp.WithNumber(prefix+"_run", mcp.Description("Running ability 0-100")),
		mcp.WithNumber(prefix+"_strength", mcp.Description("Strength ability 0-100")),
		mcp.WithNumber(prefix+"_engine", mcp.Description("Erg/engine ability 0-100")),
	}
}

// profileFromRequest builds a clamped athlete profile from prefixed params.
func profileFromRequest(req mcp.CallToolRequest, prefix string) *race.AthleteProfile {
	p := &race.AthleteProfile{
		Name:          req.GetString(prefix+"_name", prefix),
		Gender:        race.Gender(req.GetString(prefix+"_gender", "")),
		RunLevel:      req.GetFloat(prefix+"_run", 50),
		StrengthLevel: req.GetFloat(prefix+"_strength", 50),
		EngineLevel:   req.GetFloat(prefix+"_engine", 50),
	}
	p.Clamp()
	return p
}

// --- Tool definitions ---

var toolPredictRace = mcp.NewTool("predict_race",
	mcp.WithDescription("Predict a full Hyrox race time from a 5k benchmark and recorded station times. Returns total time, per-station splits, run total, roxzone, weakest/strongest station, and a rough percentile."),
	mcp.WithString("class", mcp.Required(), mcp.Description("Race class"), mcp.Enum("MEN_OPEN", "WOMEN_OPEN", "MEN_PRO", "WOMEN_PRO", "DOUBLES_MEN", "DOUBLES_WOMEN", "DOUBLES_MIXED", "RELAY")),
	mcp.WithString("benchmark_5k", mcp.Description("5k time as MM:SS. Defaults to the athlete's best stored benchmark.")),
	mcp.WithBoolean("use_history", mcp.Description("Fill station splits from the athlete's best stored times. Defaults to true.")),
	mcp.WithNumber("run_pct", mcp.Description("What-if running improvement percentage, 0-100")),
	mcp.WithNumber("station_pct", mcp.Description("What-if station improvement percentage, 0-100")),
	mcp.WithNumber("roxzone_pct", mcp.Description("What-if roxzone improvement percentage, 0-100")),
)

// duoToolOptions prepends a description to the flat me_/partner_ parameters
// shared by all duo tools.
func duoToolOptions(desc string, extra ...mcp.ToolOption) []mcp.ToolOption {
	opts := []mcp.ToolOption{mcp.WithDescription(desc)}
	opts = append(opts, athleteParams("me")...)
	opts = append(opts, athleteParams("partner")...)
	opts = append(opts, extra...)
	return opts
}

var toolAllocateDuo = mcp.NewTool("allocate_duo_stations",
	duoToolOptions("Allocate the 8 Hyrox stations between two doubles partners using a fatigue-aware greedy pass. Returns per-station assignments with advantage and fatigue impact, plus the detected team archetype.")...,
)

var toolDetectArchetype = mcp.NewTool("detect_duo_archetype",
	duoToolOptions("Classify a doubles pairing into a team archetype (e.g. THE_TWIN_TURBOS, THE_TOW_TRUCK) from both athletes' ability levels.")...,
)

var toolSimulateDuoRace = mcp.NewTool("simulate_duo_race",
	duoToolOptions("Simulate a doubles race leg by leg: 8 runs and 8 stations with energy tracking and archetype bonuses. Returns total time and the full 16-leg trace.",
		mcp.WithString("archetype", mcp.Description("Override the detected archetype"), mcp.Enum("THE_TWIN_TURBOS", "THE_TOW_TRUCK", "THUNDER_AND_LIGHTNING", "THE_GRINDERS", "BALANCED_ASSAULT", "CHAOS_CREW")),
	)...,
)

var toolSuggestProgression = mcp.NewTool("suggest_progression",
	mcp.WithDescription("Suggest the next weight and rep target for an exercise using double progression, with estimated 1RM, trend, and plateau detection."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (exact, e.g. 'Bench Press')")),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetPlateauWarnings = mcp.NewTool("get_plateau_warnings",
	mcp.WithDescription("Scan all trained exercises for stalled progress. Returns warnings with severity and a recommendation per stalled exercise."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithNumber("min_sessions", mcp.Description("Minimum sessions before an exercise is considered. Defaults to 3.")),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("List strength training sessions with name, date, and duration."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetWorkoutSets = mcp.NewTool("get_workout_sets",
	mcp.WithDescription("Query strength training set data. Returns exercise, weight, reps, distance, and RIR for each set."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (partial match, e.g. 'bench press')")),
)

var toolGetStationResults = mcp.NewTool("get_station_results",
	mcp.WithDescription("Query dated Hyrox station times. Station names are normalized, so 'SkiErg' and 'ski erg' both work."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("station", mcp.Description("Filter by station name")),
)

var toolGetTrainingVolume = mcp.NewTool("get_training_volume",
	mcp.WithDescription("Aggregated strength and station volume per period: working sets, reps, tonnage, session counts, and station result stats."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 6 months ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("bucket", mcp.Description("Aggregation period. Defaults to '1 month'."), mcp.Enum("1 day", "1 week", "1 month")),
)

var toolGetTrainingStats = mcp.NewTool("get_training_stats",
	mcp.WithDescription("Aggregate statistics for all stored data: session/set/station/benchmark counts, date range, and top exercises by tonnage."),
)

// --- Tool handlers ---

func (h *handlers) predictRace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	classStr, err := req.RequireString("class")
	if err != nil {
		return mcp.NewToolResultError("class parameter is required"), nil
	}
	class, ok := race.ParseClass(classStr)
	if !ok {
		return mcp.NewToolResultError("unknown class: " + classStr), nil
	}

	uid := UserIDFromContext(ctx)

	benchmark := req.GetString("benchmark_5k", "")
	if benchmark == "" {
		sec, err := h.ds.BestRunBenchmark(ctx, uid)
		if err != nil {
			h.log.Error("mcp predict_race benchmark", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		if sec == 0 {
			return mcp.NewToolResultError("no 5k benchmark stored; pass benchmark_5k"), nil
		}
		benchmark = race.FormatSeconds(sec)
	}

	known := map[race.Station]float64{}
	if req.GetBool("use_history", true) {
		best, err := h.ds.BestStationTimes(ctx, uid)
		if err != nil {
			h.log.Error("mcp predict_race stations", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		known = best
	}

	adj := &race.Adjustment{
		RunPct:     req.GetFloat("run_pct", 0),
		StationPct: req.GetFloat("station_pct", 0),
		RoxzonePct: req.GetFloat("roxzone_pct", 0),
	}

	prediction, err := h.predictor.Predict(benchmark, known, class, adj)
	if err != nil {
		return mcp.NewToolResultError("prediction failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(prediction)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) allocateDuo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	me := profileFromRequest(req, "me")
	partner := profileFromRequest(req, "partner")

	splits := race.Allocate(me, partner, race.AllocateConfig{})

	result, err := mcp.NewToolResultJSON(map[string]any{
		"splits":    splits,
		"archetype": race.DetectArchetype(me, partner),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) detectArchetype(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	me := profileFromRequest(req, "me")
	partner := profileFromRequest(req, "partner")

	result, err := mcp.NewToolResultJSON(map[string]any{
		"archetype": race.DetectArchetype(me, partner),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) simulateDuoRace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	me := profileFromRequest(req, "me")
	partner := profileFromRequest(req, "partner")

	archetype := race.DetectArchetype(me, partner)
	if override := req.GetString("archetype", ""); override != "" {
		parsed, ok := race.ParseArchetype(override)
		if !ok {
			return mcp.NewToolResultError("unknown archetype: " + override), nil
		}
		archetype = parsed
	}

	sim := race.Simulate(me, partner, archetype)

	result, err := mcp.NewToolResultJSON(map[string]any{
		"archetype":       archetype,
		"total_time":      sim.TotalTime,
		"total_formatted": race.FormatSeconds(sim.TotalTime),
		"trace":           sim.Trace,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) suggestProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	histories, err := h.ds.ExerciseHistories(ctx, start, end, uid, exercise)
	if err != nil {
		h.log.Error("mcp suggest_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	var suggestion *progression.Suggestion
	for _, hist := range histories {
		if hist.Exercise == exercise {
			suggestion = progression.Suggest(hist, h.progCfg)
			break
		}
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"exercise":   exercise,
		"suggestion": suggestion,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPlateauWarnings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	minSessions := int(req.GetFloat("min_sessions", 3))
	uid := UserIDFromContext(ctx)

	histories, err := h.ds.ExerciseHistories(ctx, start, end, uid, "")
	if err != nil {
		h.log.Error("mcp get_plateau_warnings", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	warnings := progression.Warnings(histories, minSessions, h.progCfg)
	if warnings == nil {
		warnings = []progression.PlateauWarning{}
	}

	result, err := mcp.NewToolResultJSON(warnings)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	sessions, err := h.ds.QuerySessions(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	sets, err := h.ds.QueryWorkoutSets(ctx, start, end, uid, req.GetString("exercise", ""))
	if err != nil {
		h.log.Error("mcp get_workout_sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sets)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStationResults(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	station := ""
	if raw := req.GetString("station", ""); raw != "" {
		canonical, ok := models.NormalizeStation(raw)
		if !ok {
			return mcp.NewToolResultError("unknown station: " + raw), nil
		}
		station = canonical
	}

	uid := UserIDFromContext(ctx)
	results, err := h.ds.QueryStationResults(ctx, start, end, uid, station)
	if err != nil {
		h.log.Error("mcp get_station_results", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(results)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	endStr := req.GetString("end", "")
	startStr := req.GetString("start", "")

	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return mcp.NewToolResultError("invalid end date: " + err.Error()), nil
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
		}
	} else {
		start = end.AddDate(0, -6, 0)
	}

	bucket := req.GetString("bucket", "1 month")
	uid := UserIDFromContext(ctx)

	periods, err := h.ds.GetTrainingVolume(ctx, start, end, bucket, uid)
	if err != nil {
		h.log.Error("mcp get_training_volume", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(periods)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	stats, err := h.ds.GetDataStats(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_training_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
