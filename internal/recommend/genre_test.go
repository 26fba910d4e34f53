package recommend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/cadence/internal/config"
)

func TestGenreMap_DefaultBands(t *testing.T) {
	g, err := NewGenreMap(config.DefaultThresholds())
	require.NoError(t, err)

	tests := []struct {
		score float64
		want  string
	}{
		{0, GenreClassical},
		{20, GenreClassical},
		{20.01, GenreBallad},
		{50, GenreBallad},
		{50.5, GenreHipHop},
		{75, GenreHipHop},
		{75.01, GenreEDM},
		{90, GenreEDM},
		{90.01, GenrePop},
		{100, GenrePop},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.Genre(tt.score), "score %g", tt.score)
	}
	assert.Equal(t, []string{GenreClassical, GenreBallad, GenreHipHop, GenreEDM, GenrePop}, g.Genres())
}

func TestGenreMap_SingleBand(t *testing.T) {
	g, err := NewGenreMap([]config.Threshold{{Genre: "Any"}})
	require.NoError(t, err)
	assert.Equal(t, "Any", g.Genre(-5))
	assert.Equal(t, "Any", g.Genre(500))
}

func TestNewGenreMap_Rejects(t *testing.T) {
	ten, five := 10.0, 5.0
	tests := []struct {
		name string
		in   []config.Threshold
	}{
		{"empty", nil},
		{"no genre", []config.Threshold{{Max: &ten}, {Genre: "B"}}},
		{"last with max", []config.Threshold{{Genre: "A", Max: &ten}}},
		{"middle without max", []config.Threshold{{Genre: "A"}, {Genre: "B"}}},
		{"not increasing", []config.Threshold{{Genre: "A", Max: &ten}, {Genre: "B", Max: &five}, {Genre: "C"}}},
		{"equal bounds", []config.Threshold{{Genre: "A", Max: &ten}, {Genre: "B", Max: &ten}, {Genre: "C"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenreMap(tt.in)
			assert.True(t, errors.Is(err, ErrInvalidThresholds), "got %v", err)
		})
	}
}
