package resources

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/HendryAvila/cadence/internal/catalog"
	"github.com/HendryAvila/cadence/internal/config"
	"github.com/HendryAvila/cadence/internal/recommend"
	"github.com/mark3labs/mcp-go/mcp"
)

func newTestHandler(t *testing.T, stats StatsSource) *Handler {
	t.Helper()
	model, err := recommend.BuildModel(config.DefaultModel())
	if err != nil {
		t.Fatalf("building model: %v", err)
	}
	genres, err := recommend.NewGenreMap(config.DefaultThresholds())
	if err != nil {
		t.Fatalf("building genres: %v", err)
	}
	return NewHandler(model, genres, stats)
}

func read(t *testing.T, uri string, fn func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error)) mcp.TextResourceContents {
	t.Helper()
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	contents, err := fn(context.Background(), req)
	if err != nil {
		t.Fatalf("read %s: %v", uri, err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("content is %T", contents[0])
	}
	return tc
}

func TestHandleVariables(t *testing.T) {
	h := newTestHandler(t, nil)
	tc := read(t, h.VariablesResource().URI, h.HandleVariables)

	var doc struct {
		Inputs []variableDoc `json:"inputs"`
		Output variableDoc   `json:"output"`
	}
	if err := json.Unmarshal([]byte(tc.Text), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Inputs) != 4 || doc.Inputs[2].Name != "listening_time" || len(doc.Inputs[2].Terms) != 4 {
		t.Errorf("inputs = %+v", doc.Inputs)
	}
	if doc.Output.Universe.Max != 100 || doc.Output.Terms[4].Shape != "tri(85, 100, 100)" {
		t.Errorf("output = %+v", doc.Output)
	}
}

func TestHandleRules(t *testing.T) {
	h := newTestHandler(t, nil)
	tc := read(t, h.RulesResource().URI, h.HandleRules)

	var doc struct {
		Count  int      `json:"count"`
		Genres []string `json:"genres"`
	}
	if err := json.Unmarshal([]byte(tc.Text), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Count != 108 {
		t.Errorf("count = %d, want 108", doc.Count)
	}
	if len(doc.Genres) != 5 || doc.Genres[4] != "Pop" {
		t.Errorf("genres = %v", doc.Genres)
	}
}

func TestHandleStats(t *testing.T) {
	store, err := catalog.New(catalog.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	h := newTestHandler(t, store)
	tc := read(t, h.StatsResource().URI, h.HandleStats)
	if !strings.Contains(tc.Text, `"total_songs": 45`) {
		t.Errorf("stats = %s", tc.Text)
	}
}

func TestHandleStats_NoCatalog(t *testing.T) {
	h := newTestHandler(t, nil)
	tc := read(t, "cadence://catalog/stats", h.HandleStats)
	if tc.MIMEType != "text/plain" || !strings.Contains(tc.Text, "unavailable") {
		t.Errorf("content = %+v", tc)
	}
}
