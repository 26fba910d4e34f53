package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newHistoryCmd(g *globals) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.runtime()
			if err != nil {
				return err
			}
			defer rt.Close()

			records, err := rt.Service.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), records)
			}

			w := cmd.OutOrStdout()
			st := newStyles(w)
			if len(records) == 0 {
				fmt.Fprintln(w, st.Muted.Render("No recommendations yet."))
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(w, "%s  %-9s %6.2f  age=%g mood=%g time=%g tempo=%g\n",
					r.CreatedAt, r.Genre, r.Score, r.Age, r.Mood, r.ListeningTime, r.Tempo)
				if len(r.Songs) > 0 {
					fmt.Fprintln(w, "    "+st.Muted.Render(strings.Join(r.Songs, "; ")))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
