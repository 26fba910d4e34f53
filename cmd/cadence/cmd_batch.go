package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/cadence/internal/recommend"
)

func newBatchCmd(g *globals) *cobra.Command {
	var (
		count  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Recommend for every listener in a YAML file",
		Long: `FILE is a YAML list of listeners:

  - {age: 15, mood: 10, listening_time: 8, tempo: 180}
  - {age: 55, mood: 0, listening_time: 20, tempo: 70}

Listeners are scored concurrently (batch_workers in the config).
A listener that fails does not stop the others.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var inputs []recommend.Input
			if err := yaml.Unmarshal(data, &inputs); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			rt, err := g.runtime()
			if err != nil {
				return err
			}
			defer rt.Close()

			results, err := rt.Service.RecommendBatch(cmd.Context(), inputs, count)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tAGE\tMOOD\tTIME\tTEMPO\tSCORE\tGENRE\tSONGS")
			for i, r := range results {
				in := inputs[i]
				if r.Err != "" {
					fmt.Fprintf(tw, "%d\t%g\t%g\t%g\t%g\t-\t-\t%s\n", i+1, in.Age, in.Mood, in.ListeningTime, in.Tempo, r.Err)
					continue
				}
				rec := r.Recommendation
				fmt.Fprintf(tw, "%d\t%g\t%g\t%g\t%g\t%.2f\t%s\t%d\n", i+1, in.Age, in.Mood, in.ListeningTime, in.Tempo, rec.Score, rec.Genre, len(rec.Songs))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "songs per listener (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
