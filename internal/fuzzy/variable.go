package fuzzy

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDominantTerm is returned when no term has a positive degree.
	ErrNoDominantTerm = errors.New("no dominant term")
	// ErrInvalidVariable is returned for malformed variable definitions.
	ErrInvalidVariable = errors.New("invalid linguistic variable")
)

// Term is a named fuzzy category of a variable.
type Term struct {
	Name string
	MF   MembershipFunc
}

// Degrees maps term names to membership degrees for one crisp value.
type Degrees map[string]float64

// Variable is a linguistic variable: a named universe plus an ordered
// set of terms. Inputs (antecedents) and the output (consequent) share
// this type.
type Variable struct {
	name     string
	universe Universe
	terms    []Term
	index    map[string]int
}

// NewVariable builds a variable. Terms keep their declaration order,
// which is also the tie-break order of DominantTerm.
func NewVariable(name string, universe Universe, terms ...Term) (*Variable, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidVariable)
	}
	if err := universe.Validate(); err != nil {
		return nil, fmt.Errorf("variable %q: %w", name, err)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: %q has no terms", ErrInvalidVariable, name)
	}

	v := &Variable{
		name:     name,
		universe: universe,
		terms:    make([]Term, len(terms)),
		index:    make(map[string]int, len(terms)),
	}
	for i, t := range terms {
		if t.Name == "" || t.MF == nil {
			return nil, fmt.Errorf("%w: %q term %d is incomplete", ErrInvalidVariable, name, i)
		}
		if _, dup := v.index[t.Name]; dup {
			return nil, fmt.Errorf("%w: %q declares term %q twice", ErrInvalidVariable, name, t.Name)
		}
		v.terms[i] = t
		v.index[t.Name] = i
	}
	return v, nil
}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// Universe returns the variable's discretized domain.
func (v *Variable) Universe() Universe { return v.universe }

// Terms returns a copy of the terms in declaration order.
func (v *Variable) Terms() []Term {
	out := make([]Term, len(v.terms))
	copy(out, v.terms)
	return out
}

// TermNames returns the term names in declaration order.
func (v *Variable) TermNames() []string {
	names := make([]string, len(v.terms))
	for i, t := range v.terms {
		names[i] = t.Name
	}
	return names
}

// Term looks up a term by name.
func (v *Variable) Term(name string) (Term, bool) {
	i, ok := v.index[name]
	if !ok {
		return Term{}, false
	}
	return v.terms[i], true
}

// HasTerm reports whether the variable declares the named term.
func (v *Variable) HasTerm(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Fuzzify evaluates every term at x. Values outside the universe get
// degree 0 in every term rather than an extrapolated degree.
func (v *Variable) Fuzzify(x float64) Degrees {
	d := make(Degrees, len(v.terms))
	inside := v.universe.Contains(x)
	for _, t := range v.terms {
		if inside {
			d[t.Name] = t.MF.Degree(x)
		} else {
			d[t.Name] = 0
		}
	}
	return d
}

// DominantTerm returns the term with the highest degree at x and that
// degree. Ties go to the term declared first. ErrNoDominantTerm is
// returned when every degree is zero.
func (v *Variable) DominantTerm(x float64) (string, float64, error) {
	degrees := v.Fuzzify(x)
	best, bestDegree := "", 0.0
	for _, t := range v.terms {
		if d := degrees[t.Name]; d > bestDegree {
			best, bestDegree = t.Name, d
		}
	}
	if best == "" {
		return "", 0, fmt.Errorf("%w: %s=%g", ErrNoDominantTerm, v.name, x)
	}
	return best, bestDegree, nil
}
