package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/hyroxlab/internal/progression"
	"github.com/meltforce/hyroxlab/internal/race"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("HyroxLab", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("HyroxLab race and training server. Predict Hyrox race times, plan duo station splits, simulate duo races, and analyze strength progression. All data is scoped to the authenticated user."),
	)

	h := &handlers{
		ds:        ds,
		predictor: race.NewPredictor(race.DefaultModel()),
		progCfg:   progression.Default(),
		log:       log,
	}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolPredictRace, Handler: h.predictRace},
		server.ServerTool{Tool: toolAllocateDuo, Handler: h.allocateDuo},
		server.ServerTool{Tool: toolDetectArchetype, Handler: h.detectArchetype},
		server.ServerTool{Tool: toolSimulateDuoRace, Handler: h.simulateDuoRace},
		server.ServerTool{Tool: toolSuggestProgression, Handler: h.suggestProgression},
		server.ServerTool{Tool: toolGetPlateauWarnings, Handler: h.getPlateauWarnings},
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolGetWorkoutSets, Handler: h.getWorkoutSets},
		server.ServerTool{Tool: toolGetStationResults, Handler: h.getStationResults},
		server.ServerTool{Tool: toolGetTrainingVolume, Handler: h.getTrainingVolume},
		server.ServerTool{Tool: toolGetTrainingStats, Handler: h.getTrainingStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRaceReadiness, Handler: h.raceReadiness},
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
		server.ServerResource{Resource: resStationCatalog, Handler: h.stationCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds        DataSource
	predictor *race.Predictor
	progCfg   progression.Config
	log       *slog.Logger
}

// --- Resource definitions ---

var resRaceReadiness = mcp.NewResource(
	"hyroxlab://race_readiness",
	"Race Readiness",
	mcp.WithResourceDescription("The athlete's best recorded 5k benchmark and station times, plus a current race prediction for the open class"),
	mcp.WithMIMEType("application/json"),
)

var resRecentSessions = mcp.NewResource(
	"hyroxlab://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("Strength sessions from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resStationCatalog = mcp.NewResource(
	"hyroxlab://station_catalog",
	"Station Catalog",
	mcp.WithResourceDescription("The 8 Hyrox stations in race order with their dominant quality (strength or engine)"),
	mcp.WithMIMEType("application/json"),
)
