package recommend

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/cadence/internal/config"
	"github.com/HendryAvila/cadence/internal/fuzzy"
)

func defaultModel(t *testing.T) *fuzzy.Model {
	t.Helper()
	m, err := BuildModel(config.DefaultModel())
	require.NoError(t, err)
	return m
}

func TestBuildModel_RuleBase(t *testing.T) {
	m := defaultModel(t)
	rules := m.Rules()
	require.Len(t, rules, 108)

	seen := make(map[string]bool, len(rules))
	counts := map[string]int{}
	for _, r := range rules {
		require.Len(t, r.Antecedent, 4)
		key := fmt.Sprint(r.Antecedent)
		assert.False(t, seen[key], "duplicate antecedent %s", key)
		seen[key] = true
		counts[r.Consequent]++
	}

	assert.Equal(t, map[string]int{
		GenrePop:       4,
		GenreEDM:       8,
		GenreClassical: 12,
		GenreBallad:    28,
		GenreHipHop:    56,
	}, counts)
}

func TestBuildModel_AntecedentOrder(t *testing.T) {
	first := defaultModel(t).Rules()[0]
	assert.Equal(t, "IF age is young AND mood is sad AND listening_time is morning AND tempo is slow THEN Hip-hop", first.String())
}

func TestMusicPolicy(t *testing.T) {
	tests := []struct {
		age, mood, tempo string
		want             string
	}{
		{"young", "happy", "fast", GenrePop},
		{"young", "happy", "slow", GenreEDM},
		{"young", "happy", "moderate", GenreEDM},
		{"senior", "sad", "moderate", GenreClassical},
		{"senior", "sad", "fast", GenreClassical},
		{"adult", "neutral", "moderate", GenreBallad},
		{"senior", "happy", "moderate", GenreBallad},
		{"young", "sad", "fast", GenreHipHop},
		{"adult", "happy", "slow", GenreHipHop},
	}
	for _, tt := range tests {
		t.Run(tt.age+"-"+tt.mood+"-"+tt.tempo, func(t *testing.T) {
			for _, lt := range []string{"morning", "afternoon", "evening", "night"} {
				c, err := MusicPolicy().Decide(fuzzy.Combination{
					VarAge: tt.age, VarMood: tt.mood, VarListeningTime: lt, VarTempo: tt.tempo,
				})
				require.NoError(t, err)
				assert.Equal(t, tt.want, c.Then, "listening time %s", lt)
			}
		})
	}
}

func TestBuildModel_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.ModelDef)
		want   error
	}{
		{"missing input", func(d *config.ModelDef) { d.Inputs = d.Inputs[:3] }, ErrInvalidModel},
		{"extra input", func(d *config.ModelDef) {
			extra := d.Inputs[0]
			extra.Name = "volume"
			d.Inputs = append(d.Inputs, extra)
		}, ErrInvalidModel},
		{"duplicate input", func(d *config.ModelDef) { d.Inputs[3] = d.Inputs[0] }, ErrInvalidModel},
		{"renamed policy term", func(d *config.ModelDef) { d.Inputs[0].Terms[0].Name = "youth" }, ErrInvalidModel},
		{"genre missing from output", func(d *config.ModelDef) { d.Output.Terms = d.Output.Terms[:4] }, fuzzy.ErrUnknownTerm},
		{"bad universe", func(d *config.ModelDef) { d.Inputs[1].Step = 0 }, fuzzy.ErrInvalidUniverse},
		{"wrong knot count", func(d *config.ModelDef) { d.Inputs[1].Terms[0].Params = []float64{0, 5} }, fuzzy.ErrInvalidShape},
		{"unordered knots", func(d *config.ModelDef) { d.Inputs[1].Terms[0].Params = []float64{5, 0, 10} }, fuzzy.ErrInvalidShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := config.DefaultModel()
			tt.mutate(&def)
			_, err := BuildModel(def)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestBuildModel_InputsInAnyOrder(t *testing.T) {
	def := config.DefaultModel()
	def.Inputs[0], def.Inputs[3] = def.Inputs[3], def.Inputs[0]
	m, err := BuildModel(def)
	require.NoError(t, err)
	assert.Equal(t, VarAge, m.Inputs()[0].Name())

	score, err := m.Infer(Input{Age: 15, Mood: 10, ListeningTime: 8, Tempo: 180}.Vector())
	require.NoError(t, err)
	assert.InDelta(t, 95.33, score, 0.01)
}

func TestInfer_ReferenceScores(t *testing.T) {
	m := defaultModel(t)
	tests := []struct {
		name  string
		in    Input
		score float64
	}{
		{"young happy fast", Input{15, 10, 8, 180}, 95.33},
		{"young happy slow", Input{15, 10, 8, 20}, 81.67},
		{"senior sad", Input{55, 0, 8, 100}, 7.52},
		{"adult neutral moderate", Input{37, 5, 8, 120}, 33.33},
		{"lower corner", Input{10, 5, 0, 0}, 60},
		{"upper corner", Input{60, 10, 24, 200}, 60},
		{"midday", Input{30, 5, 12, 100}, 32.79},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Infer(tt.in.Vector())
			require.NoError(t, err)
			assert.InDelta(t, tt.score, got, 0.01)
		})
	}
}

func TestInfer_NoActiveRuleBetweenTimeTerms(t *testing.T) {
	m := defaultModel(t)
	for _, lt := range []float64{18, 21} {
		_, err := m.Infer(Input{Age: 30, Mood: 5, ListeningTime: lt, Tempo: 100}.Vector())
		assert.ErrorIs(t, err, fuzzy.ErrNoActiveRule, "listening_time=%g", lt)
	}
}

func TestInfer_ScoresStayInOutputUniverse(t *testing.T) {
	m := defaultModel(t)
	for age := 10.0; age <= 60; age += 5 {
		for mood := 0.0; mood <= 10; mood += 2.5 {
			for lt := 0.0; lt <= 24; lt += 3 {
				for tempo := 0.0; tempo <= 200; tempo += 25 {
					in := Input{age, mood, lt, tempo}
					score, err := m.Infer(in.Vector())
					if errors.Is(err, fuzzy.ErrNoActiveRule) {
						continue
					}
					require.NoError(t, err, "%+v", in)
					require.False(t, math.IsNaN(score))
					require.GreaterOrEqual(t, score, 0.0, "%+v", in)
					require.LessOrEqual(t, score, 100.0, "%+v", in)
				}
			}
		}
	}
}
