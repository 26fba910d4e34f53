// Package resources implements MCP resource handlers for cadence.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (cadence://...) following MCP conventions.
package resources

import (
	"context"
	"fmt"

	"github.com/HendryAvila/cadence/internal/catalog"
	"github.com/HendryAvila/cadence/internal/fuzzy"
	"github.com/HendryAvila/cadence/internal/recommend"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatsSource provides catalog statistics.
type StatsSource interface {
	Stats(ctx context.Context) (*catalog.Stats, error)
}

// Handler manages cadence resource endpoints.
type Handler struct {
	model  *fuzzy.Model
	genres *recommend.GenreMap
	stats  StatsSource // nil when the catalog is unavailable
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(model *fuzzy.Model, genres *recommend.GenreMap, stats StatsSource) *Handler {
	return &Handler{model: model, genres: genres, stats: stats}
}

type termDoc struct {
	Name  string `json:"name"`
	Shape string `json:"shape"`
}

type variableDoc struct {
	Name     string         `json:"name"`
	Universe fuzzy.Universe `json:"universe"`
	Terms    []termDoc      `json:"terms"`
}

func describe(v *fuzzy.Variable) variableDoc {
	doc := variableDoc{Name: v.Name(), Universe: v.Universe()}
	for _, t := range v.Terms() {
		doc.Terms = append(doc.Terms, termDoc{Name: t.Name, Shape: fmt.Sprint(t.MF)})
	}
	return doc
}

// VariablesResource returns the MCP resource definition for the model
// variables.
func (h *Handler) VariablesResource() mcp.Resource {
	return mcp.NewResource(
		"cadence://model/variables",
		"Model Variables",
		mcp.WithResourceDescription("Input and output linguistic variables with their membership shapes"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleVariables returns the model's variables as JSON.
func (h *Handler) HandleVariables(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc := struct {
		Inputs []variableDoc `json:"inputs"`
		Output variableDoc   `json:"output"`
	}{Output: describe(h.model.Output())}
	for _, v := range h.model.Inputs() {
		doc.Inputs = append(doc.Inputs, describe(v))
	}
	return jsonResource(req.Params.URI, doc)
}

// RulesResource returns the MCP resource definition for the rule base.
func (h *Handler) RulesResource() mcp.Resource {
	return mcp.NewResource(
		"cadence://model/rules",
		"Rule Base",
		mcp.WithResourceDescription("Every inference rule and the score bands that map scores to genres"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleRules returns the rule base and genre bands as JSON.
func (h *Handler) HandleRules(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rules := h.model.Rules()
	return jsonResource(req.Params.URI, struct {
		Count  int          `json:"count"`
		Rules  []fuzzy.Rule `json:"rules"`
		Genres []string     `json:"genres"`
	}{len(rules), rules, h.genres.Genres()})
}

// StatsResource returns the MCP resource definition for catalog stats.
func (h *Handler) StatsResource() mcp.Resource {
	return mcp.NewResource(
		"cadence://catalog/stats",
		"Catalog Statistics",
		mcp.WithResourceDescription("Song and recommendation counts"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStats returns catalog statistics as JSON.
func (h *Handler) HandleStats(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.stats == nil {
		return errorResource(req.Params.URI, "song catalog unavailable"), nil
	}
	st, err := h.stats.Stats(ctx)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return jsonResource(req.Params.URI, st)
}
