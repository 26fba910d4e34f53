package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// HistoryPrompt handles the cadence-history MCP prompt.
// It instructs the AI to read and summarize past recommendations.
type HistoryPrompt struct{}

// NewHistoryPrompt creates a HistoryPrompt.
func NewHistoryPrompt() *HistoryPrompt {
	return &HistoryPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *HistoryPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("cadence-history",
		mcp.WithPromptDescription(
			"Review your past recommendations. "+
				"Shows recent genres and songs and points out patterns.",
		),
	)
}

// Handle processes the cadence-history prompt request.
func (p *HistoryPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Recommendation history",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `cadence_history` to load my recent recommendations.\n\n" +
						"Then:\n" +
						"1. List them in a short table: when, genre, score\n" +
						"2. Tell me which genre I get most often\n" +
						"3. Point out how my inputs changed between recommendations\n" +
						"4. Offer to run `cadence_recommend` again with new answers",
				),
			},
		},
	}, nil
}
