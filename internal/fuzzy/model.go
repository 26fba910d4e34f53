package fuzzy

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrNoActiveRule is returned when every rule fires with strength 0,
	// leaving the centroid undefined.
	ErrNoActiveRule = errors.New("no active rule")
	// ErrMissingInput is returned when an input variable has no value.
	ErrMissingInput = errors.New("missing input")
)

// Model is an immutable inference model: input variables, one output
// variable and the rule base connecting them. Build it once with
// NewModel and share it freely.
type Model struct {
	inputs []*Variable
	output *Variable
	rules  []Rule

	points     []float64
	consequent map[string][]float64 // output term -> degree at each point
	ruleTerms  [][]string           // rule -> term per input, in input order
}

// NewModel builds the rule base from policy and precomputes the output
// membership tables.
func NewModel(inputs []*Variable, output *Variable, policy Policy) (*Model, error) {
	seen := make(map[string]bool, len(inputs)+1)
	for _, in := range inputs {
		if in == nil {
			return nil, fmt.Errorf("%w: nil input variable", ErrInvalidVariable)
		}
		if seen[in.name] {
			return nil, fmt.Errorf("%w: duplicate input %q", ErrInvalidVariable, in.name)
		}
		seen[in.name] = true
	}

	rules, err := BuildRules(inputs, output, policy)
	if err != nil {
		return nil, fmt.Errorf("building rules: %w", err)
	}

	m := &Model{
		inputs:     append([]*Variable(nil), inputs...),
		output:     output,
		rules:      rules,
		points:     output.universe.Points(),
		consequent: make(map[string][]float64, len(output.terms)),
		ruleTerms:  make([][]string, len(rules)),
	}
	for _, t := range output.terms {
		col := make([]float64, len(m.points))
		for i, x := range m.points {
			col[i] = t.MF.Degree(x)
		}
		m.consequent[t.Name] = col
	}
	for i, r := range rules {
		terms := make([]string, len(r.Antecedent))
		for j, c := range r.Antecedent {
			terms[j] = c.Term
		}
		m.ruleTerms[i] = terms
	}
	return m, nil
}

// Inputs returns the input variables in declaration order.
func (m *Model) Inputs() []*Variable {
	return append([]*Variable(nil), m.inputs...)
}

// Input looks up an input variable by name.
func (m *Model) Input(name string) (*Variable, bool) {
	for _, in := range m.inputs {
		if in.name == name {
			return in, true
		}
	}
	return nil, false
}

// Output returns the consequent variable.
func (m *Model) Output() *Variable { return m.output }

// Rules returns a copy of the rule base.
func (m *Model) Rules() []Rule {
	return append([]Rule(nil), m.rules...)
}

// RuleStrength pairs a rule with its firing strength for one input vector.
type RuleStrength struct {
	Rule     Rule    `json:"rule"`
	Strength float64 `json:"strength"`
}

// Result is the transient outcome of one evaluation.
type Result struct {
	Score      float64            `json:"score"`
	Degrees    map[string]Degrees `json:"degrees"`
	Strengths  []RuleStrength     `json:"strengths"`
	Points     []float64          `json:"-"`
	Aggregated []float64          `json:"-"`
}

// Fired returns the rules with positive strength, strongest first.
// Equal strengths keep rule base order.
func (r *Result) Fired() []RuleStrength {
	var fired []RuleStrength
	for _, s := range r.Strengths {
		if s.Strength > 0 {
			fired = append(fired, s)
		}
	}
	sort.SliceStable(fired, func(i, j int) bool {
		return fired[i].Strength > fired[j].Strength
	})
	return fired
}

// Infer returns the crisp output score for the given input vector.
func (m *Model) Infer(inputs map[string]float64) (float64, error) {
	res, err := m.Evaluate(inputs)
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// Evaluate runs the full Mamdani pipeline: fuzzify each input, fire
// every rule with min, clip each consequent to its strength, union the
// clipped sets with max and take the centroid.
func (m *Model) Evaluate(inputs map[string]float64) (*Result, error) {
	degrees := make(map[string]Degrees, len(m.inputs))
	for _, in := range m.inputs {
		x, ok := inputs[in.name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, in.name)
		}
		degrees[in.name] = in.Fuzzify(x)
	}

	strengths := make([]RuleStrength, len(m.rules))
	// Clipping every rule and taking the pointwise max equals clipping
	// each consequent once at the max strength of the rules naming it.
	level := make(map[string]float64, len(m.consequent))
	for i, r := range m.rules {
		s := 1.0
		for j, term := range m.ruleTerms[i] {
			if d := degrees[m.inputs[j].name][term]; d < s {
				s = d
			}
			if s == 0 {
				break
			}
		}
		strengths[i] = RuleStrength{Rule: r, Strength: s}
		if s > level[r.Consequent] {
			level[r.Consequent] = s
		}
	}

	agg := make([]float64, len(m.points))
	for term, lv := range level {
		if lv == 0 {
			continue
		}
		for i, mu := range m.consequent[term] {
			clipped := mu
			if lv < clipped {
				clipped = lv
			}
			if clipped > agg[i] {
				agg[i] = clipped
			}
		}
	}

	res := &Result{
		Degrees:    degrees,
		Strengths:  strengths,
		Points:     m.points,
		Aggregated: agg,
	}

	area := floats.Sum(agg)
	if area == 0 {
		return res, fmt.Errorf("%w: %s", ErrNoActiveRule, formatInputs(m.inputs, inputs))
	}
	res.Score = floats.Dot(m.points, agg) / area
	return res, nil
}

// Classification is the dominant term of one input variable.
type Classification struct {
	Variable string  `json:"variable"`
	Value    float64 `json:"value"`
	Term     string  `json:"term,omitempty"`
	Degree   float64 `json:"degree"`
	Found    bool    `json:"found"`
}

// Classify reports the dominant term of every input variable. A
// variable whose value sits outside every term's support is returned
// with Found false; that is not an error.
func (m *Model) Classify(inputs map[string]float64) ([]Classification, error) {
	out := make([]Classification, 0, len(m.inputs))
	for _, in := range m.inputs {
		x, ok := inputs[in.name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, in.name)
		}
		c := Classification{Variable: in.name, Value: x}
		term, degree, err := in.DominantTerm(x)
		switch {
		case err == nil:
			c.Term, c.Degree, c.Found = term, degree, true
		case !errors.Is(err, ErrNoDominantTerm):
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func formatInputs(vars []*Variable, inputs map[string]float64) string {
	s := ""
	for i, v := range vars {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%g", v.name, inputs[v.name])
	}
	return s
}
