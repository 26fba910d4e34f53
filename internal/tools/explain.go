package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/cadence/internal/recommend"
	"github.com/mark3labs/mcp-go/mcp"
)

// ExplainTool handles the cadence_explain MCP tool.
type ExplainTool struct {
	svc *recommend.Service
}

// NewExplainTool creates an ExplainTool backed by svc.
func NewExplainTool(svc *recommend.Service) *ExplainTool {
	return &ExplainTool{svc: svc}
}

// Definition returns the MCP tool definition for cadence_explain.
func (t *ExplainTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Explain how a score was reached: membership degrees of every input term and " +
				"the strongest rules that fired. Use it when the user asks why a genre was chosen.",
		),
	}
	opts = append(opts, inputOptions(t.svc.Model())...)
	opts = append(opts, mcp.WithNumber("top",
		mcp.Description("How many fired rules to list, strongest first (default 5, 0 for all)"),
		mcp.Min(0),
	))
	return mcp.NewTool("cadence_explain", opts...)
}

// Handle processes the cadence_explain tool call.
func (t *ExplainTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, msg, ok := inputArg(req)
	if !ok {
		return mcp.NewToolResultError(msg), nil
	}

	exp, err := t.svc.Explain(in, intArg(req, "top", 5))
	if err != nil {
		return failure("explaining", err)
	}

	var sb strings.Builder
	sb.WriteString("## Explanation\n\n")
	fmt.Fprintf(&sb, "**Score**: %.2f → **%s**\n\n", exp.Score, exp.Genre)

	sb.WriteString("### Membership degrees\n\n")
	for _, v := range t.svc.Model().Inputs() {
		degrees := exp.Degrees[v.Name()]
		parts := make([]string, 0, len(degrees))
		for _, term := range v.TermNames() {
			parts = append(parts, fmt.Sprintf("%s %.2f", term, degrees[term]))
		}
		fmt.Fprintf(&sb, "- **%s**: %s\n", v.Name(), strings.Join(parts, ", "))
	}

	fmt.Fprintf(&sb, "\n### Fired rules (%d of %d)\n\n", len(exp.Fired), exp.TotalFired)
	for _, f := range exp.Fired {
		fmt.Fprintf(&sb, "- %.2f  %s\n", f.Strength, f.Rule)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
