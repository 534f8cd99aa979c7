package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meltforce/hyroxlab/internal/race"
)

func testServer() *Server {
	return &Server{predictor: race.NewPredictor(race.DefaultModel())}
}

// TestHandleMeDefault verifies the /api/v1/me endpoint returns the dev user
// identity when no Tailscale middleware is active.
func TestHandleMeDefault(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	ctx := context.WithValue(req.Context(), userInfoKey, UserInfo{Login: "local", DisplayName: "Local Dev User"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "local" {
		t.Errorf("login = %q, want %q", info.Login, "local")
	}
	if info.DisplayName != "Local Dev User" {
		t.Errorf("display_name = %q, want %q", info.DisplayName, "Local Dev User")
	}
}

// TestHandleMeTailscaleUser verifies the /api/v1/me endpoint returns the
// Tailscale user identity when set in context.
func TestHandleMeTailscaleUser(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	ctx := context.WithValue(req.Context(), userInfoKey, UserInfo{Login: "alice@example.com", DisplayName: "Alice"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "alice@example.com" {
		t.Errorf("login = %q, want %q", info.Login, "alice@example.com")
	}
	if info.DisplayName != "Alice" {
		t.Errorf("display_name = %q, want %q", info.DisplayName, "Alice")
	}
}

func postJSON(t *testing.T, s *Server, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// TestHandlePredict verifies a well-formed prediction request round-trips
// through the handler with the expected totals.
func TestHandlePredict(t *testing.T) {
	s := testServer()
	rec := postJSON(t, s, s.handlePredict, `{"class":"MEN_OPEN","benchmark_5k":"20:00"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var pred race.RacePrediction
	if err := json.NewDecoder(rec.Body).Decode(&pred); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if pred.TotalSeconds != 4398 {
		t.Errorf("total_seconds = %v, want 4398", pred.TotalSeconds)
	}
	if pred.TotalFormatted != "1:13:18" {
		t.Errorf("total_formatted = %q, want 1:13:18", pred.TotalFormatted)
	}
}

// TestHandlePredictBadInput covers the rejection paths: unknown class,
// unknown station name, and a malformed benchmark time.
func TestHandlePredictBadInput(t *testing.T) {
	s := testServer()
	tests := []struct {
		name string
		body string
	}{
		{"unknown class", `{"class":"MEN_ULTRA","benchmark_5k":"20:00"}`},
		{"unknown station", `{"class":"MEN_OPEN","benchmark_5k":"20:00","station_times":{"trampoline":60}}`},
		{"malformed benchmark", `{"class":"MEN_OPEN","benchmark_5k":"20-00"}`},
		{"invalid json", `{`},
	}
	for _, tt := range tests {
		rec := postJSON(t, s, s.handlePredict, tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, rec.Code)
		}
	}
}

// TestHandlePredictStationAliases verifies that user-facing station names are
// normalized before reaching the predictor.
func TestHandlePredictStationAliases(t *testing.T) {
	s := testServer()
	rec := postJSON(t, s, s.handlePredict,
		`{"class":"MEN_OPEN","benchmark_5k":"20:00","station_times":{"SkiErg":240,"Wall Balls":300}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var pred race.RacePrediction
	if err := json.NewDecoder(rec.Body).Decode(&pred); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if pred.Splits[race.StationSkiErg] != 240 {
		t.Errorf("ski split = %v, want 240", pred.Splits[race.StationSkiErg])
	}
}

// TestHandleDuoAllocate verifies the allocation endpoint returns 8 splits
// plus the detected archetype.
func TestHandleDuoAllocate(t *testing.T) {
	s := testServer()
	body := `{
		"me": {"name":"A","gender":"MALE","run_level":70,"strength_level":80,"engine_level":60},
		"partner": {"name":"B","gender":"FEMALE","run_level":85,"strength_level":50,"engine_level":75}
	}`
	rec := postJSON(t, s, s.handleDuoAllocate, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Splits    []race.StationSplit `json:"splits"`
		Archetype race.Archetype      `json:"archetype"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(resp.Splits) != 8 {
		t.Errorf("splits = %d, want 8", len(resp.Splits))
	}
	if resp.Archetype == "" {
		t.Error("archetype is empty")
	}
}

// TestHandleDuoArchetypeDerived verifies ability levels can be derived from
// real benchmarks instead of the self-assessed sliders.
func TestHandleDuoArchetypeDerived(t *testing.T) {
	s := testServer()
	body := `{
		"derive_from_stats": true,
		"me": {"name":"A","best_5k":"18:00","wall_balls_unbroken":40,"burpee_pace":7},
		"partner": {"name":"B","best_5k":"18:30","wall_balls_unbroken":35,"burpee_pace":6}
	}`
	rec := postJSON(t, s, s.handleDuoArchetype, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Archetype race.Archetype      `json:"archetype"`
		Me        race.AthleteProfile `json:"me"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	// 18:00 5k -> (2700-1080)/18 = 90
	if resp.Me.RunLevel != 90 {
		t.Errorf("derived run level = %v, want 90", resp.Me.RunLevel)
	}
	// Both run > 80
	if resp.Archetype != race.TheTwinTurbos {
		t.Errorf("archetype = %q, want %q", resp.Archetype, race.TheTwinTurbos)
	}

	// A malformed benchmark must be rejected.
	bad := `{"derive_from_stats": true, "me": {"best_5k":"fast"}, "partner": {"best_5k":"18:30"}}`
	if rec := postJSON(t, s, s.handleDuoArchetype, bad); rec.Code != http.StatusBadRequest {
		t.Errorf("bad benchmark status = %d, want 400", rec.Code)
	}
}

// TestHandleDuoSimulate verifies the simulation endpoint returns a 16-leg
// trace and honors an explicit archetype override.
func TestHandleDuoSimulate(t *testing.T) {
	s := testServer()
	body := `{
		"me": {"name":"A","gender":"MALE","run_level":70,"strength_level":80,"engine_level":60},
		"partner": {"name":"B","gender":"FEMALE","run_level":72,"strength_level":78,"engine_level":62},
		"archetype": "THE_TOW_TRUCK"
	}`
	rec := postJSON(t, s, s.handleDuoSimulate, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Archetype      race.Archetype        `json:"archetype"`
		TotalTime      float64               `json:"total_time"`
		TotalFormatted string                `json:"total_formatted"`
		Trace          []race.SimulationStep `json:"trace"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Archetype != race.TheTowTruck {
		t.Errorf("archetype = %q, want override %q", resp.Archetype, race.TheTowTruck)
	}
	if len(resp.Trace) != 16 {
		t.Errorf("trace legs = %d, want 16", len(resp.Trace))
	}
	if resp.TotalTime <= 0 || resp.TotalFormatted == "" {
		t.Errorf("total = %v (%q), want positive", resp.TotalTime, resp.TotalFormatted)
	}

	// Unknown archetype override is rejected.
	bad := strings.Replace(body, "THE_TOW_TRUCK", "THE_UNKNOWN", 1)
	if rec := postJSON(t, s, s.handleDuoSimulate, bad); rec.Code != http.StatusBadRequest {
		t.Errorf("bad archetype status = %d, want 400", rec.Code)
	}
}
