// Package prompts implements MCP prompt handlers for cadence.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the cadence-start MCP prompt.
// It guides the AI through collecting the listener's answers and
// asking for a recommendation.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("cadence-start",
		mcp.WithPromptDescription(
			"Get a music recommendation. "+
				"The assistant asks for your age, mood, listening time and preferred tempo, "+
				"then recommends a genre and songs.",
		),
		mcp.WithArgument("count",
			mcp.ArgumentDescription("How many songs to recommend. Default: 3"),
		),
	)
}

// Handle processes the cadence-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	count := "3"
	if args := req.Params.Arguments; args != nil {
		if c, ok := args["count"]; ok && strings.TrimSpace(c) != "" {
			count = strings.TrimSpace(c)
		}
	}

	return &mcp.GetPromptResult{
		Description: "Music recommendation",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I'd like a music recommendation.\n\n"+
						"Please:\n"+
						"1. Ask me, one at a time, for my age (10-60), my mood from 0 (sad) to 10 (happy), "+
						"the hour I'm listening at (0-24) and my preferred tempo in BPM (0-200)\n"+
						"2. If an answer is outside its range, tell me the range and ask again\n"+
						"3. Run `cadence_recommend` with my four answers and count=%s\n"+
						"4. Show me how my answers were categorized, the score, the genre and the songs\n"+
						"5. If no rule fires, suggest a nearby listening hour and try again",
					count,
				)),
			},
		},
	}, nil
}
