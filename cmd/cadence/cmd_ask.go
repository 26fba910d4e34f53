package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/cadence/internal/fuzzy"
	"github.com/HendryAvila/cadence/internal/recommend"
)

func newAskCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "ask",
		Short: "Answer four questions and get song suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.runtime()
			if err != nil {
				return err
			}
			defer rt.Close()

			in, err := askInput(cmd.InOrStdin(), cmd.OutOrStdout(), rt.Model)
			if err != nil {
				return err
			}

			rec, err := rt.Service.Recommend(cmd.Context(), in, 0)
			if err != nil {
				if errors.Is(err, fuzzy.ErrNoActiveRule) {
					st := newStyles(cmd.OutOrStdout())
					fmt.Fprintln(cmd.OutOrStdout(), st.Warning.Render("Input or computation error: "+err.Error()))
					return nil
				}
				return err
			}
			printRecommendation(cmd.OutOrStdout(), rec)
			return nil
		},
	}
}

type question struct {
	variable string
	prompt   string
	dst      *float64
}

// askInput asks for each input until the answer is a whole number
// inside the variable's universe.
func askInput(r io.Reader, w io.Writer, m *fuzzy.Model) (recommend.Input, error) {
	var in recommend.Input
	questions := []question{
		{recommend.VarAge, "Enter your age", &in.Age},
		{recommend.VarMood, "Enter your mood (0=sad, 10=happy)", &in.Mood},
		{recommend.VarListeningTime, "Enter the hour of the day you listen to music", &in.ListeningTime},
		{recommend.VarTempo, "Enter your preferred tempo (BPM)", &in.Tempo},
	}

	st := newStyles(w)
	sc := bufio.NewScanner(r)
	for _, q := range questions {
		v, ok := m.Input(q.variable)
		if !ok {
			return in, fmt.Errorf("model has no input %q", q.variable)
		}
		u := v.Universe()
		for {
			fmt.Fprintf(w, "%s (%g-%g): ", q.prompt, u.Min, u.Max)
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return in, err
				}
				return in, io.ErrUnexpectedEOF
			}
			n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
			if err != nil {
				fmt.Fprintln(w, st.Warning.Render("Invalid input. Please enter a valid value."))
				continue
			}
			x := float64(n)
			if !u.Contains(x) {
				fmt.Fprintln(w, st.Warning.Render(fmt.Sprintf("Input must be between %g and %g. Please try again.", u.Min, u.Max)))
				continue
			}
			*q.dst = x
			break
		}
	}
	return in, nil
}
