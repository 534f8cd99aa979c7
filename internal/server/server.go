package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/hyroxlab/internal/ingest/roxfit"
	"github.com/meltforce/hyroxlab/internal/ingest/setcsv"
	"github.com/meltforce/hyroxlab/internal/progression"
	"github.com/meltforce/hyroxlab/internal/race"
	"github.com/meltforce/hyroxlab/internal/storage"
	"tailscale.com/client/local"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db        *storage.DB
	roxfit    *roxfit.Provider
	setcsv    *setcsv.Provider
	predictor *race.Predictor
	progCfg   progression.Config
	log       *slog.Logger
	apiKey    string
	router    chi.Router
	lc        *local.Client
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, roxfitProvider *roxfit.Provider, csvProvider *setcsv.Provider, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:        db,
		roxfit:    roxfitProvider,
		setcsv:    csvProvider,
		predictor: race.NewPredictor(race.DefaultModel()),
		progCfg:   progression.Default(),
		log:       log,
		apiKey:    apiKey,
		router:    chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale attaches a tsnet local client so requests are attributed to
// tailnet users instead of the dev user.
func (s *Server) SetTailscale(lc *local.Client) {
	s.lc = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Ingest endpoints (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Use(s.identity)
		r.Post("/", s.handleIngest)
		r.Post("/csv", s.handleCSVIngest)
	})

	// Dashboard API endpoints (no API key, tsnet handles access)
	s.router.Group(func(r chi.Router) {
		r.Use(s.identity)

		// Race tools
		r.Post("/api/v1/predict", s.handlePredict)
		r.Post("/api/v1/duo/allocate", s.handleDuoAllocate)
		r.Post("/api/v1/duo/archetype", s.handleDuoArchetype)
		r.Post("/api/v1/duo/simulate", s.handleDuoSimulate)

		// Training data
		r.Get("/api/v1/progression/{exercise}", s.handleProgression)
		r.Get("/api/v1/plateaus", s.handlePlateaus)
		r.Get("/api/v1/sessions", s.handleQuerySessions)
		r.Get("/api/v1/sessions/{id}", s.handleGetSession)
		r.Get("/api/v1/sets", s.handleQuerySets)
		r.Get("/api/v1/stations", s.handleQueryStations)
		r.Get("/api/v1/stations/best", s.handleBestStations)
		r.Get("/api/v1/benchmarks/best", s.handleBestBenchmark)
		r.Get("/api/v1/histories", s.handleHistories)
		r.Get("/api/v1/volume", s.handleVolume)
		r.Get("/api/v1/stats", s.handleStats)
		r.Get("/api/v1/import-logs", s.handleImportLogs)
		r.Get("/api/v1/me", s.handleMe)
	})
}

// SetFrontend mounts the embedded SPA filesystem.
// Unmatched routes serve index.html for client-side routing.
func (s *Server) SetFrontend(webFS fs.FS) {
	fileServer := http.FileServerFS(webFS)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		// Try to serve the exact file first
		f, err := webFS.Open(r.URL.Path[1:]) // strip leading /
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		// Fallback to index.html for SPA routing
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
