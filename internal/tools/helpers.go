// Package tools implements the MCP tool handlers for cadence.
//
// Each tool is a struct that receives its dependencies through a
// constructor, describes itself with Definition() and answers calls
// with Handle(). Problems the caller can fix (bad input, no rule fired,
// duplicate song) come back as tool result errors; only infrastructure
// failures are returned as Go errors.
package tools

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/HendryAvila/cadence/internal/catalog"
	"github.com/HendryAvila/cadence/internal/fuzzy"
	"github.com/HendryAvila/cadence/internal/recommend"
	"github.com/mark3labs/mcp-go/mcp"
)

// inputOptions returns the four listener parameters shared by the
// scoring tools, bounded by the model's universes.
func inputOptions(m *fuzzy.Model) []mcp.ToolOption {
	desc := map[string]string{
		recommend.VarAge:           "Listener age in years",
		recommend.VarMood:          "Mood from 0 (sad) to 10 (happy)",
		recommend.VarListeningTime: "Hour of day the listener is listening (0-24)",
		recommend.VarTempo:         "Preferred tempo in BPM",
	}
	var opts []mcp.ToolOption
	for _, v := range m.Inputs() {
		u := v.Universe()
		opts = append(opts, mcp.WithNumber(v.Name(),
			mcp.Required(),
			mcp.Description(fmt.Sprintf("%s (%g-%g)", desc[v.Name()], u.Min, u.Max)),
			mcp.Min(u.Min),
			mcp.Max(u.Max),
		))
	}
	return opts
}

// inputArg reads the four listener parameters. The message is meant for
// the caller when ok is false.
func inputArg(req mcp.CallToolRequest) (recommend.Input, string, bool) {
	var in recommend.Input
	fields := []struct {
		name string
		dst  *float64
	}{
		{recommend.VarAge, &in.Age},
		{recommend.VarMood, &in.Mood},
		{recommend.VarListeningTime, &in.ListeningTime},
		{recommend.VarTempo, &in.Tempo},
	}
	for _, f := range fields {
		v, ok := floatArg(req, f.name)
		if !ok {
			return in, fmt.Sprintf("'%s' is required and must be a number", f.name), false
		}
		*f.dst = v
	}
	return in, "", true
}

// floatArg extracts a numeric argument (JSON numbers decode as float64).
func floatArg(req mcp.CallToolRequest, key string) (float64, bool) {
	switch v := req.GetArguments()[key].(type) {
	case float64:
		return v, !math.IsNaN(v)
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := floatArg(req, key)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// userFacing reports whether err is something the caller can fix.
func userFacing(err error) bool {
	for _, target := range []error{
		recommend.ErrOutOfRange,
		recommend.ErrNoSongs,
		recommend.ErrNoCatalog,
		fuzzy.ErrNoActiveRule,
		catalog.ErrDuplicateSong,
		catalog.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// failure turns err into a tool result error when the caller can act
// on it, and into a Go error otherwise.
func failure(action string, err error) (*mcp.CallToolResult, error) {
	if userFacing(err) {
		msg := err.Error()
		if errors.Is(err, fuzzy.ErrNoActiveRule) {
			msg += " (the listening time falls between two time-of-day terms; try a nearby hour)"
		}
		return mcp.NewToolResultError(msg), nil
	}
	return nil, fmt.Errorf("%s: %w", action, err)
}

// writeCategories renders dominant terms as a markdown list.
func writeCategories(sb *strings.Builder, cats []fuzzy.Classification) {
	for _, c := range cats {
		if c.Found {
			fmt.Fprintf(sb, "- **%s** = %g → %s (%.2f)\n", c.Variable, c.Value, c.Term, c.Degree)
		} else {
			fmt.Fprintf(sb, "- **%s** = %g → no matching term\n", c.Variable, c.Value)
		}
	}
}
