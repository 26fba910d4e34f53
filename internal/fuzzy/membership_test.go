package fuzzy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangular_Degree(t *testing.T) {
	tri := Triangular{A: 3, B: 5, C: 7}

	tests := []struct {
		x    float64
		want float64
	}{
		{x: 0, want: 0},
		{x: 3, want: 0},
		{x: 4, want: 0.5},
		{x: 5, want: 1},
		{x: 6.5, want: 0.25},
		{x: 7, want: 0},
		{x: 9, want: 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tri.Degree(tt.x), 1e-12, "tri(3,5,7) at %g", tt.x)
	}
}

func TestTriangular_DegenerateRamps(t *testing.T) {
	left := Triangular{A: 0, B: 0, C: 5}
	assert.Equal(t, 1.0, left.Degree(0), "zero-width left ramp is 1 on the knot")
	assert.InDelta(t, 0.6, left.Degree(2), 1e-12)
	assert.Equal(t, 0.0, left.Degree(5))

	right := Triangular{A: 21, B: 24, C: 24}
	assert.Equal(t, 1.0, right.Degree(24))
	assert.InDelta(t, 1.0/3, right.Degree(22), 1e-12)
	assert.Equal(t, 0.0, right.Degree(21))

	spike := Triangular{A: 2, B: 2, C: 2}
	assert.Equal(t, 1.0, spike.Degree(2))
	assert.Equal(t, 0.0, spike.Degree(2.0001))
}

func TestTrapezoidal_Degree(t *testing.T) {
	trap := Trapezoidal{A: 20, B: 35, C: 40, D: 50}

	tests := []struct {
		x    float64
		want float64
	}{
		{x: 10, want: 0},
		{x: 20, want: 0},
		{x: 27.5, want: 0.5},
		{x: 35, want: 1},
		{x: 37, want: 1},
		{x: 40, want: 1},
		{x: 45, want: 0.5},
		{x: 50, want: 0},
		{x: 60, want: 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, trap.Degree(tt.x), 1e-12, "trap(20,35,40,50) at %g", tt.x)
	}
}

func TestTrapezoidal_ShoulderEndpoints(t *testing.T) {
	young := Trapezoidal{A: 10, B: 10, C: 20, D: 30}
	senior := Trapezoidal{A: 40, B: 50, C: 60, D: 60}

	assert.Equal(t, 1.0, young.Degree(10), "left shoulder includes the universe start")
	assert.Equal(t, 1.0, senior.Degree(60), "right shoulder includes the universe end")
	assert.Equal(t, 0.0, young.Degree(9.99))
	assert.Equal(t, 0.0, senior.Degree(60.01))
}

func TestMembership_NaN(t *testing.T) {
	assert.Equal(t, 0.0, Triangular{A: 0, B: 1, C: 2}.Degree(math.NaN()))
	assert.Equal(t, 0.0, Trapezoidal{A: 0, B: 1, C: 2, D: 3}.Degree(math.NaN()))
}

// Sweeps each shape and checks range, unimodality and continuity.
func TestMembership_ShapeProperties(t *testing.T) {
	shapes := map[string]struct {
		mf     MembershipFunc
		lo, hi float64
		peakLo float64
		peakHi float64
	}{
		"tri":           {Triangular{A: 80, B: 120, C: 140}, 80, 140, 120, 120},
		"tri-left":      {Triangular{A: 0, B: 0, C: 20}, 0, 20, 0, 0},
		"trap":          {Trapezoidal{A: 130, B: 160, C: 200, D: 200}, 130, 200, 160, 200},
		"trap-interior": {Trapezoidal{A: 0, B: 0, C: 9, D: 12}, 0, 12, 0, 9},
	}

	for name, s := range shapes {
		t.Run(name, func(t *testing.T) {
			const step = 0.01
			prev := s.mf.Degree(s.lo - 1)
			assert.Equal(t, 0.0, prev)
			rising := true
			for x := s.lo - 1; x <= s.hi+1; x += step {
				d := s.mf.Degree(x)
				require.GreaterOrEqual(t, d, 0.0)
				require.LessOrEqual(t, d, 1.0)
				if x >= s.peakLo && x <= s.peakHi {
					assert.InDelta(t, 1.0, d, 1e-9, "x=%g inside the core", x)
				}
				if d < prev {
					rising = false
				}
				if !rising {
					assert.LessOrEqual(t, d, prev+1e-12, "degree rose again at x=%g", x)
				}
				// Degenerate ramps jump on the knot; every other step is small.
				if x > s.lo+step && x < s.hi-step {
					assert.InDelta(t, prev, d, 0.05, "discontinuity at x=%g", x)
				}
				prev = d
			}
			assert.Equal(t, 0.0, s.mf.Degree(s.hi+1))
		})
	}
}

func TestNewTriangular_RejectsBadKnots(t *testing.T) {
	_, err := NewTriangular(5, 3, 7)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = NewTriangular(0, math.Inf(1), 7)
	assert.ErrorIs(t, err, ErrInvalidShape)

	tri, err := NewTriangular(0, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, Triangular{A: 0, B: 0, C: 5}, tri)
}

func TestNewTrapezoidal_RejectsBadKnots(t *testing.T) {
	_, err := NewTrapezoidal(0, 10, 9, 12)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = NewTrapezoidal(math.NaN(), 0, 9, 12)
	assert.ErrorIs(t, err, ErrInvalidShape)

	trap, err := NewTrapezoidal(40, 50, 60, 60)
	require.NoError(t, err)
	assert.Equal(t, "trap(40, 50, 60, 60)", trap.String())
}

func TestUniverse_Points(t *testing.T) {
	u, err := NewUniverse(0, 100, 1)
	require.NoError(t, err)

	pts := u.Points()
	require.Len(t, pts, 101)
	assert.Equal(t, 0.0, pts[0])
	assert.Equal(t, 100.0, pts[100])
	assert.InDelta(t, 37.0, pts[37], 1e-9)

	age, err := NewUniverse(10, 60, 1)
	require.NoError(t, err)
	assert.Equal(t, 51, age.Len())
	assert.True(t, age.Contains(10))
	assert.True(t, age.Contains(60))
	assert.False(t, age.Contains(60.5))
	assert.False(t, age.Contains(math.NaN()))
}

func TestUniverse_Invalid(t *testing.T) {
	_, err := NewUniverse(10, 10, 1)
	assert.ErrorIs(t, err, ErrInvalidUniverse)

	_, err = NewUniverse(0, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidUniverse)

	_, err = NewUniverse(0, math.Inf(1), 1)
	assert.ErrorIs(t, err, ErrInvalidUniverse)
}
