package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/cadence/internal/recommend"
	"github.com/mark3labs/mcp-go/mcp"
)

// RecommendTool handles the cadence_recommend MCP tool.
type RecommendTool struct {
	svc *recommend.Service
}

// NewRecommendTool creates a RecommendTool backed by svc.
func NewRecommendTool(svc *recommend.Service) *RecommendTool {
	return &RecommendTool{svc: svc}
}

// Definition returns the MCP tool definition for cadence_recommend.
func (t *RecommendTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Recommend a music genre and songs for a listener. Scores age, mood, listening time " +
				"and preferred tempo with the fuzzy model, maps the score to a genre and picks songs " +
				"from that genre. Every recommendation is kept in the history.",
		),
	}
	opts = append(opts, inputOptions(t.svc.Model())...)
	opts = append(opts, mcp.WithNumber("count",
		mcp.Description("Number of songs to return (default 3)"),
		mcp.Min(1),
		mcp.Max(20),
	))
	return mcp.NewTool("cadence_recommend", opts...)
}

// Handle processes the cadence_recommend tool call.
func (t *RecommendTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, msg, ok := inputArg(req)
	if !ok {
		return mcp.NewToolResultError(msg), nil
	}

	rec, err := t.svc.Recommend(ctx, in, intArg(req, "count", 0))
	if err != nil {
		return failure("recommending", err)
	}

	var sb strings.Builder
	sb.WriteString("## Recommendation\n\n")
	sb.WriteString("### Your inputs\n\n")
	writeCategories(&sb, rec.Categories)
	fmt.Fprintf(&sb, "\n**Score**: %.2f\n", rec.Score)
	fmt.Fprintf(&sb, "**Genre**: %s\n\n", rec.Genre)
	sb.WriteString("### Songs\n\n")
	for i, song := range rec.Songs {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, song)
	}
	fmt.Fprintf(&sb, "\nID: %s\n", rec.ID)

	return mcp.NewToolResultText(sb.String()), nil
}
