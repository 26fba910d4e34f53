package tools

import (
	"context"
	"strings"

	"github.com/HendryAvila/cadence/internal/recommend"
	"github.com/mark3labs/mcp-go/mcp"
)

// CategorizeTool handles the cadence_categorize MCP tool.
type CategorizeTool struct {
	svc *recommend.Service
}

// NewCategorizeTool creates a CategorizeTool backed by svc.
func NewCategorizeTool(svc *recommend.Service) *CategorizeTool {
	return &CategorizeTool{svc: svc}
}

// Definition returns the MCP tool definition for cadence_categorize.
func (t *CategorizeTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Describe a listener in words: the strongest term of each input " +
				"(e.g. age 15 is 'young', tempo 180 is 'fast'). Does not score or recommend.",
		),
	}
	return mcp.NewTool("cadence_categorize", append(opts, inputOptions(t.svc.Model())...)...)
}

// Handle processes the cadence_categorize tool call.
func (t *CategorizeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, msg, ok := inputArg(req)
	if !ok {
		return mcp.NewToolResultError(msg), nil
	}

	cats, err := t.svc.Categorize(in)
	if err != nil {
		return failure("categorizing", err)
	}

	var sb strings.Builder
	sb.WriteString("## Categorized Inputs\n\n")
	writeCategories(&sb, cats)
	return mcp.NewToolResultText(sb.String()), nil
}
