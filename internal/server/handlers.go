package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/meltforce/hyroxlab/internal/ingest"
	"github.com/meltforce/hyroxlab/internal/ingest/roxfit"
	"github.com/meltforce/hyroxlab/internal/models"
	"github.com/meltforce/hyroxlab/internal/race"
)

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var payload roxfit.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	start := time.Now()
	result, err := s.roxfit.Ingest(r.Context(), &payload, uid)
	s.logImport(uid, "roxfit", result, err, int(time.Since(start).Milliseconds()))
	if err != nil {
		s.log.Error("ingest error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCSVIngest(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := s.setcsv.Ingest(r.Context(), r.Body, uid)
	if result == nil {
		result = &ingest.Result{}
	}
	s.logImport(uid, "csv", result, err, int(time.Since(start).Milliseconds()))
	if err != nil {
		s.log.Error("csv ingest error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// predictRequest is the body for POST /api/v1/predict. With FromHistory set,
// the athlete's best stored benchmark and station times fill in anything the
// request leaves blank.
type predictRequest struct {
	Class        string             `json:"class"`
	Benchmark5K  string             `json:"benchmark_5k"`
	StationTimes map[string]float64 `json:"station_times"`
	Adjustment   *race.Adjustment   `json:"adjustment"`
	FromHistory  bool               `json:"from_history"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	class, ok := race.ParseClass(req.Class)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown class: " + req.Class})
		return
	}

	known := make(map[race.Station]float64, len(req.StationTimes))
	for name, sec := range req.StationTimes {
		canonical, ok := models.NormalizeStation(name)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown station: " + name})
			return
		}
		known[race.Station(canonical)] = sec
	}

	if req.FromHistory {
		uid, ok := mustUserID(w, r)
		if !ok {
			return
		}
		if err := s.fillFromHistory(r, uid, &req, known); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}

	prediction, err := s.predictor.Predict(req.Benchmark5K, known, class, req.Adjustment)
	if err != nil {
		var pe *race.ParseError
		if errors.As(err, &pe) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": pe.Error()})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, prediction)
}

// fillFromHistory backfills the benchmark and station times the request left
// blank with the athlete's stored bests. Explicit request values win.
func (s *Server) fillFromHistory(r *http.Request, uid int, req *predictRequest, known map[race.Station]float64) error {
	if req.Benchmark5K == "" {
		sec, err := s.db.BestRunBenchmark(r.Context(), uid)
		if err != nil {
			return err
		}
		if sec > 0 {
			req.Benchmark5K = race.FormatSeconds(sec)
		}
	}

	best, err := s.db.BestStationTimes(r.Context(), uid)
	if err != nil {
		return err
	}
	for st, sec := range best {
		if _, ok := known[st]; !ok {
			known[st] = sec
		}
	}
	return nil
}

// duoRequest carries the two athlete profiles shared by the duo endpoints.
// With DeriveFromStats set, ability levels are computed from each athlete's
// real-world benchmarks instead of the self-assessed sliders.
type duoRequest struct {
	Me              race.AthleteProfile `json:"me"`
	Partner         race.AthleteProfile `json:"partner"`
	DeriveFromStats bool                `json:"derive_from_stats"`

	// Allocate only.
	TransitionPenaltySeconds float64 `json:"transition_penalty_seconds"`

	// Simulate only. Empty means detect from the profiles.
	Archetype string `json:"archetype"`
}

// profiles validates and normalizes the request's athlete pair.
func (req *duoRequest) profiles() (me, partner *race.AthleteProfile, err error) {
	me, partner = &req.Me, &req.Partner
	if req.DeriveFromStats {
		for _, p := range []*race.AthleteProfile{me, partner} {
			run, strength, engine, derr := race.LevelsFromRealStats(p.Best5K, p.WallBallsUnbroken, p.BurpeePace)
			if derr != nil {
				return nil, nil, derr
			}
			p.RunLevel, p.StrengthLevel, p.EngineLevel = run, strength, engine
		}
	}
	me.Clamp()
	partner.Clamp()
	return me, partner, nil
}

func (s *Server) handleDuoAllocate(w http.ResponseWriter, r *http.Request) {
	var req duoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	me, partner, err := req.profiles()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	splits := race.Allocate(me, partner, race.AllocateConfig{
		TransitionPenaltySeconds: req.TransitionPenaltySeconds,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"splits":    splits,
		"archetype": race.DetectArchetype(me, partner),
	})
}

func (s *Server) handleDuoArchetype(w http.ResponseWriter, r *http.Request) {
	var req duoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	me, partner, err := req.profiles()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"archetype": race.DetectArchetype(me, partner),
		"me":        me,
		"partner":   partner,
	})
}

func (s *Server) handleDuoSimulate(w http.ResponseWriter, r *http.Request) {
	var req duoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	me, partner, err := req.profiles()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	archetype := race.DetectArchetype(me, partner)
	if req.Archetype != "" {
		parsed, ok := race.ParseArchetype(req.Archetype)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown archetype: " + req.Archetype})
			return
		}
		archetype = parsed
	}

	result := race.Simulate(me, partner, archetype)

	writeJSON(w, http.StatusOK, map[string]any{
		"archetype":       archetype,
		"total_time":      result.TotalTime,
		"total_formatted": race.FormatSeconds(result.TotalTime),
		"trace":           result.Trace,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		// Default: last 90 days
		end = time.Now()
		start = end.AddDate(0, 0, -90)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return
}
