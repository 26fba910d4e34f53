package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/cadence/internal/recommend"
)

func newRecommendCmd(g *globals) *cobra.Command {
	var (
		in     recommend.Input
		count  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend a genre and songs from flags",
		Example: `  cadence recommend --age 15 --mood 10 --time 8 --tempo 180
  cadence recommend --age 55 --mood 0 --time 20 --tempo 70 --count 5 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.runtime()
			if err != nil {
				return err
			}
			defer rt.Close()

			rec, err := rt.Service.Recommend(cmd.Context(), in, count)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			printRecommendation(cmd.OutOrStdout(), rec)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.Age, "age", 0, "age in years (10-60)")
	f.Float64Var(&in.Mood, "mood", 0, "mood, 0 (sad) to 10 (happy)")
	f.Float64Var(&in.ListeningTime, "time", 0, "hour of day you listen (0-24)")
	f.Float64Var(&in.Tempo, "tempo", 0, "preferred tempo in BPM (0-200)")
	f.IntVar(&count, "count", 0, "number of songs (default from config)")
	f.BoolVar(&asJSON, "json", false, "print JSON")
	for _, name := range []string{"age", "mood", "time", "tempo"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// printRecommendation renders a recommendation the way the console
// flow always has: categorized inputs, score, genre, songs.
func printRecommendation(w io.Writer, rec *recommend.Recommendation) {
	st := newStyles(w)
	fmt.Fprintf(w, "Inputs: age=%g, mood=%g, listening_time=%g, tempo=%g\n",
		rec.Input.Age, rec.Input.Mood, rec.Input.ListeningTime, rec.Input.Tempo)

	fmt.Fprintln(w, "\n"+st.Title.Render("Categorized Inputs:"))
	for _, c := range rec.Categories {
		term := c.Term
		if !c.Found {
			term = "-"
		}
		fmt.Fprintf(w, "  %s: %s\n", labels[c.Variable], term)
	}

	fmt.Fprintf(w, "\nYour recommendation score is: %.2f\n", rec.Score)
	fmt.Fprintln(w, st.Genre.Render("Recommended genre: "+rec.Genre))
	fmt.Fprintf(w, "Here are %d song suggestions:\n", len(rec.Songs))
	for _, song := range rec.Songs {
		fmt.Fprintf(w, "- %s\n", song)
	}
}

var labels = map[string]string{
	recommend.VarAge:           "Age",
	recommend.VarMood:          "Mood",
	recommend.VarListeningTime: "Listening Time",
	recommend.VarTempo:         "Tempo",
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
