// Package fuzzy implements a small Mamdani inference engine.
//
// The pieces are, leaves first: membership functions, linguistic
// variables over a discretized universe, a rule base built from a
// first-match-wins policy, and a Model that evaluates the rules against
// a crisp input vector and defuzzifies with the centroid method.
//
// Everything in this package is pure. A Model is immutable once built
// and can be shared between goroutines without locking.
package fuzzy

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidShape is returned when a membership function's knots are not
// finite or not in non-decreasing order.
var ErrInvalidShape = errors.New("invalid membership shape")

// MembershipFunc maps a crisp value to a degree in [0,1].
type MembershipFunc interface {
	Degree(x float64) float64
}

// Triangular rises linearly from A to B and falls linearly from B to C.
type Triangular struct {
	A, B, C float64
}

// NewTriangular validates the knots and returns the shape.
func NewTriangular(a, b, c float64) (Triangular, error) {
	if err := checkKnots(a, b, c); err != nil {
		return Triangular{}, err
	}
	return Triangular{A: a, B: b, C: c}, nil
}

// Degree evaluates the triangle at x. A zero-width ramp (A == B or
// B == C) evaluates to 1 at the shared knot instead of dividing by zero.
func (t Triangular) Degree(x float64) float64 {
	switch {
	case math.IsNaN(x), x < t.A, x > t.C:
		return 0
	case x == t.B:
		return 1
	case x < t.B:
		// A <= x < B, so B > A here.
		return clamp((x - t.A) / (t.B - t.A))
	default:
		// B < x <= C, so C > B here.
		return clamp((t.C - x) / (t.C - t.B))
	}
}

func (t Triangular) String() string {
	return fmt.Sprintf("tri(%g, %g, %g)", t.A, t.B, t.C)
}

// Trapezoidal is 1 on [B,C] with linear ramps on [A,B] and [C,D].
type Trapezoidal struct {
	A, B, C, D float64
}

// NewTrapezoidal validates the knots and returns the shape.
func NewTrapezoidal(a, b, c, d float64) (Trapezoidal, error) {
	if err := checkKnots(a, b, c, d); err != nil {
		return Trapezoidal{}, err
	}
	return Trapezoidal{A: a, B: b, C: c, D: d}, nil
}

// Degree evaluates the trapezoid at x. Zero-width ramps are handled the
// same way as in Triangular.
func (t Trapezoidal) Degree(x float64) float64 {
	switch {
	case math.IsNaN(x), x < t.A, x > t.D:
		return 0
	case x >= t.B && x <= t.C:
		return 1
	case x < t.B:
		return clamp((x - t.A) / (t.B - t.A))
	default:
		return clamp((t.D - x) / (t.D - t.C))
	}
}

func (t Trapezoidal) String() string {
	return fmt.Sprintf("trap(%g, %g, %g, %g)", t.A, t.B, t.C, t.D)
}

func checkKnots(knots ...float64) error {
	for i, k := range knots {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return fmt.Errorf("%w: knot %d is not finite", ErrInvalidShape, i)
		}
		if i > 0 && k < knots[i-1] {
			return fmt.Errorf("%w: knots %v are not non-decreasing", ErrInvalidShape, knots)
		}
	}
	return nil
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
