package recommend

import (
	"errors"
	"fmt"
	"math"

	"github.com/HendryAvila/cadence/internal/fuzzy"
)

// ErrOutOfRange is returned when an input lies outside its variable's
// universe or is not a finite number.
var ErrOutOfRange = errors.New("input out of range")

// Input is one listener's crisp answers.
type Input struct {
	Age           float64 `json:"age" yaml:"age"`
	Mood          float64 `json:"mood" yaml:"mood"`
	ListeningTime float64 `json:"listening_time" yaml:"listening_time"`
	Tempo         float64 `json:"tempo" yaml:"tempo"`
}

// Vector returns the input keyed by variable name.
func (in Input) Vector() map[string]float64 {
	return map[string]float64{
		VarAge:           in.Age,
		VarMood:          in.Mood,
		VarListeningTime: in.ListeningTime,
		VarTempo:         in.Tempo,
	}
}

// Validate checks every value against the universe of its variable in m.
func (in Input) Validate(m *fuzzy.Model) error {
	vec := in.Vector()
	for _, name := range inputOrder {
		x := vec[name]
		v, ok := m.Input(name)
		if !ok {
			return fmt.Errorf("%w: model has no input %q", ErrInvalidModel, name)
		}
		u := v.Universe()
		if math.IsNaN(x) || math.IsInf(x, 0) || !u.Contains(x) {
			return &RangeError{Variable: name, Value: x, Min: u.Min, Max: u.Max}
		}
	}
	return nil
}

// RangeError reports the bounds a rejected value had to respect.
type RangeError struct {
	Variable string
	Value    float64
	Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s=%g: input must be between %g and %g", e.Variable, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }
