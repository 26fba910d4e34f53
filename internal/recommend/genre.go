package recommend

import (
	"errors"
	"fmt"
	"math"

	"github.com/HendryAvila/cadence/internal/config"
)

// ErrInvalidThresholds is returned by NewGenreMap for unusable bands.
var ErrInvalidThresholds = errors.New("invalid genre thresholds")

type band struct {
	genre string
	max   float64
}

// GenreMap maps a crisp score to a genre name through ascending bands.
// A score equal to a band's upper bound belongs to that band.
type GenreMap struct {
	bands []band
}

// NewGenreMap builds a GenreMap. Every threshold except the last needs a
// strictly increasing Max; the last one catches everything above.
func NewGenreMap(thresholds []config.Threshold) (*GenreMap, error) {
	if len(thresholds) == 0 {
		return nil, fmt.Errorf("%w: none given", ErrInvalidThresholds)
	}
	g := &GenreMap{bands: make([]band, 0, len(thresholds))}
	last := len(thresholds) - 1
	for i, t := range thresholds {
		if t.Genre == "" {
			return nil, fmt.Errorf("%w: threshold %d has no genre", ErrInvalidThresholds, i)
		}
		b := band{genre: t.Genre, max: math.Inf(1)}
		switch {
		case i == last && t.Max != nil:
			return nil, fmt.Errorf("%w: last threshold %q must not set max", ErrInvalidThresholds, t.Genre)
		case i < last && t.Max == nil:
			return nil, fmt.Errorf("%w: threshold %q needs a max", ErrInvalidThresholds, t.Genre)
		case i < last:
			b.max = *t.Max
			if i > 0 && b.max <= g.bands[i-1].max {
				return nil, fmt.Errorf("%w: %q max %g not above %g", ErrInvalidThresholds, t.Genre, b.max, g.bands[i-1].max)
			}
		}
		g.bands = append(g.bands, b)
	}
	return g, nil
}

// Genre returns the genre of score.
func (g *GenreMap) Genre(score float64) string {
	for _, b := range g.bands {
		if score <= b.max {
			return b.genre
		}
	}
	return g.bands[len(g.bands)-1].genre
}

// Genres lists the genres in band order.
func (g *GenreMap) Genres() []string {
	out := make([]string, len(g.bands))
	for i, b := range g.bands {
		out[i] = b.genre
	}
	return out
}
