// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it builds the model, opens the catalog
// and injects them into the tools, prompts and resources. No business
// logic lives here, only wiring.
package server

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/HendryAvila/cadence/internal/catalog"
	"github.com/HendryAvila/cadence/internal/config"
	"github.com/HendryAvila/cadence/internal/fuzzy"
	"github.com/HendryAvila/cadence/internal/prompts"
	"github.com/HendryAvila/cadence/internal/recommend"
	"github.com/HendryAvila/cadence/internal/resources"
	"github.com/HendryAvila/cadence/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Runtime holds the dependencies shared by the MCP server and the CLI.
type Runtime struct {
	Model   *fuzzy.Model
	Genres  *recommend.GenreMap
	Catalog *catalog.Store // nil when the catalog could not be opened
	Service *recommend.Service
	Logger  *slog.Logger

	cleanup func()
}

// Open builds a Runtime from cfg. The model and thresholds must be
// valid. The catalog is optional: if it fails to open, a warning is
// logged and scoring keeps working without songs or history.
func Open(cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	model, err := recommend.BuildModel(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("building model: %w", err)
	}
	genres, err := recommend.NewGenreMap(cfg.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("building genre map: %w", err)
	}

	rt := &Runtime{Model: model, Genres: genres, Logger: logger, cleanup: noop}

	var cat recommend.Catalog
	store, err := catalog.New(catalog.Config{DataDir: cfg.DataDir})
	if err != nil {
		logger.Warn("catalog disabled", "data_dir", cfg.DataDir, "error", err)
	} else {
		rt.Catalog = store
		cat = store
		rt.cleanup = func() {
			if err := store.Close(); err != nil {
				logger.Warn("catalog close", "error", err)
			}
		}
	}

	svc, err := recommend.NewService(model, genres, cat, recommend.Options{
		SampleSize:   cfg.SampleSize,
		CacheSize:    cfg.CacheSize,
		BatchWorkers: cfg.BatchWorkers,
		Logger:       logger,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Service = svc

	logger.Debug("runtime ready",
		"rules", len(model.Rules()),
		"catalog", rt.Catalog != nil,
		"cache_size", cfg.CacheSize,
	)
	return rt, nil
}

// Close releases the catalog. It is safe to call more than once.
func (rt *Runtime) Close() {
	rt.cleanup()
	rt.cleanup = noop
}

// New creates the MCP server with all tools, prompts and resources
// registered. Catalog-backed tools are only registered when the
// runtime has a catalog.
func New(rt *Runtime) *server.MCPServer {
	s := server.NewMCPServer(
		"cadence",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register scoring tools ---

	categorizeTool := tools.NewCategorizeTool(rt.Service)
	s.AddTool(categorizeTool.Definition(), categorizeTool.Handle)

	explainTool := tools.NewExplainTool(rt.Service)
	s.AddTool(explainTool.Definition(), explainTool.Handle)

	// --- Register catalog tools ---

	var stats resources.StatsSource
	if rt.Catalog == nil {
		rt.Logger.Warn("catalog tools disabled: recommend, history and song tools are not registered")
	} else {
		stats = rt.Catalog

		recommendTool := tools.NewRecommendTool(rt.Service)
		s.AddTool(recommendTool.Definition(), recommendTool.Handle)

		historyTool := tools.NewHistoryTool(rt.Service)
		s.AddTool(historyTool.Definition(), historyTool.Handle)

		songsTool := tools.NewSongsTool(rt.Catalog)
		s.AddTool(songsTool.Definition(), songsTool.Handle)

		addSongTool := tools.NewAddSongTool(rt.Catalog)
		s.AddTool(addSongTool.Definition(), addSongTool.Handle)
	}

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	historyPrompt := prompts.NewHistoryPrompt()
	s.AddPrompt(historyPrompt.Definition(), historyPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(rt.Model, rt.Genres, stats)
	s.AddResource(resourceHandler.VariablesResource(), resourceHandler.HandleVariables)
	s.AddResource(resourceHandler.RulesResource(), resourceHandler.HandleRules)
	s.AddResource(resourceHandler.StatsResource(), resourceHandler.HandleStats)

	return s
}

// noop is a no-op cleanup function used when the catalog is disabled.
func noop() {}

func serverInstructions() string {
	return `You have access to cadence, a music recommendation MCP server.

## WHEN TO USE cadence

Use cadence when the user asks what music to listen to, wants song
suggestions for their mood or the time of day, or asks why a genre fits them.

## HOW IT WORKS

cadence scores four answers with a fuzzy inference model:
- age (10-60)
- mood, 0 (sad) to 10 (happy)
- listening_time, the hour of day (0-24)
- tempo, preferred BPM (0-200)

The score (0-100) maps to a genre: up to 20 Classical, up to 50 Ballad,
up to 75 Hip-hop, up to 90 EDM, above that Pop.

## TOOLS

- cadence_recommend: score, genre and songs. Use this by default.
- cadence_categorize: describe the answers in words without scoring.
- cadence_explain: show membership degrees and the rules that fired.
- cadence_history: past recommendations.
- cadence_songs / cadence_add_song: browse or extend the catalog.

Ask for any missing answer instead of guessing it. If a tool reports
"no active rule", the listening hour sits exactly between two
time-of-day terms (18 or 21); suggest a nearby hour.`
}
