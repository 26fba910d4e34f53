// cadence: fuzzy-logic music recommendations.
//
// Scores a listener's age, mood, listening hour and preferred tempo with
// a Mamdani fuzzy model, maps the score to a genre and suggests songs.
// Runs as an MCP server or straight from the terminal.
//
// Usage:
//
//	cadence serve       # Start MCP server (stdio transport)
//	cadence ask         # Answer four questions, get songs
//	cadence recommend   # Same, from flags
//	cadence batch FILE  # Recommend for every listener in a YAML file
//	cadence history     # Past recommendations
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
