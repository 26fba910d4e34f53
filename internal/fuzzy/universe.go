package fuzzy

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidUniverse is returned for an empty or non-finite range.
var ErrInvalidUniverse = errors.New("invalid universe")

// Universe is an evenly discretized, inclusive numeric range.
type Universe struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

// NewUniverse returns the range [min, max] sampled every step units.
func NewUniverse(min, max, step float64) (Universe, error) {
	u := Universe{Min: min, Max: max, Step: step}
	if err := u.Validate(); err != nil {
		return Universe{}, err
	}
	return u, nil
}

// Validate checks that the range is finite, non-empty and has a
// positive step.
func (u Universe) Validate() error {
	for _, v := range []float64{u.Min, u.Max, u.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bound", ErrInvalidUniverse)
		}
	}
	if u.Min >= u.Max {
		return fmt.Errorf("%w: min %g must be below max %g", ErrInvalidUniverse, u.Min, u.Max)
	}
	if u.Step <= 0 {
		return fmt.Errorf("%w: step %g must be positive", ErrInvalidUniverse, u.Step)
	}
	return nil
}

// Len is the number of discrete points, both endpoints included.
func (u Universe) Len() int {
	return int(math.Floor((u.Max-u.Min)/u.Step+1e-9)) + 1
}

// Points returns the discretized range. The last point may fall short of
// Max when the span is not a multiple of Step.
func (u Universe) Points() []float64 {
	n := u.Len()
	if n == 1 {
		return []float64{u.Min}
	}
	last := u.Min + float64(n-1)*u.Step
	return floats.Span(make([]float64, n), u.Min, last)
}

// Contains reports whether x lies inside [Min, Max].
func (u Universe) Contains(x float64) bool {
	return !math.IsNaN(x) && x >= u.Min && x <= u.Max
}
