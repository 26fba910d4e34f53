package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/cadence/internal/recommend"
	"github.com/mark3labs/mcp-go/mcp"
)

// HistoryTool handles the cadence_history MCP tool.
type HistoryTool struct {
	svc *recommend.Service
}

// NewHistoryTool creates a HistoryTool backed by svc.
func NewHistoryTool(svc *recommend.Service) *HistoryTool {
	return &HistoryTool{svc: svc}
}

// Definition returns the MCP tool definition for cadence_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("cadence_history",
		mcp.WithDescription("List recent recommendations, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries (default 10)"),
			mcp.Min(1),
		),
	)
}

// Handle processes the cadence_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := t.svc.History(ctx, intArg(req, "limit", 10))
	if err != nil {
		return failure("loading history", err)
	}
	if len(records) == 0 {
		return mcp.NewToolResultText("No recommendations yet. Use cadence_recommend to get one."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Recent Recommendations (%d)\n\n", len(records))
	for _, r := range records {
		fmt.Fprintf(&sb, "### %s — %s (%.2f)\n", r.CreatedAt, r.Genre, r.Score)
		fmt.Fprintf(&sb, "age %g, mood %g, listening time %g, tempo %g\n", r.Age, r.Mood, r.ListeningTime, r.Tempo)
		for _, song := range r.Songs {
			fmt.Fprintf(&sb, "- %s\n", song)
		}
		fmt.Fprintf(&sb, "ID: %s\n\n", r.ID)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
