// Package recommend turns listener inputs into a music recommendation.
//
// It builds the fuzzy model from configuration, maps crisp scores to
// genres, samples songs from the catalog and records what was handed
// out.
package recommend

import (
	"errors"
	"fmt"

	"github.com/HendryAvila/cadence/internal/config"
	"github.com/HendryAvila/cadence/internal/fuzzy"
)

// Input variable names.
const (
	VarAge           = "age"
	VarMood          = "mood"
	VarListeningTime = "listening_time"
	VarTempo         = "tempo"
)

// Output genres produced by MusicPolicy.
const (
	GenreClassical = "Classical"
	GenreBallad    = "Ballad"
	GenreHipHop    = "Hip-hop"
	GenreEDM       = "EDM"
	GenrePop       = "Pop"
)

// ErrInvalidModel is returned when a model definition cannot carry the
// music policy.
var ErrInvalidModel = errors.New("invalid model definition")

// inputOrder is the order of the rule antecedents.
var inputOrder = []string{VarAge, VarMood, VarListeningTime, VarTempo}

// requiredTerms lists the input terms MusicPolicy refers to.
var requiredTerms = map[string][]string{
	VarAge:   {"young", "senior"},
	VarMood:  {"happy", "sad"},
	VarTempo: {"fast", "moderate"},
}

// MusicPolicy assigns a genre to every combination of input terms.
// Cases are checked top to bottom and the first match wins. Listening
// time is never consulted: it only changes how strongly a rule fires.
func MusicPolicy() fuzzy.Policy {
	youngHappy := fuzzy.All(fuzzy.Is(VarAge, "young"), fuzzy.Is(VarMood, "happy"))
	return fuzzy.Policy{
		{Name: "young-happy-fast", When: fuzzy.All(youngHappy, fuzzy.Is(VarTempo, "fast")), Then: GenrePop},
		{Name: "young-happy", When: youngHappy, Then: GenreEDM},
		{Name: "senior-sad", When: fuzzy.All(fuzzy.Is(VarAge, "senior"), fuzzy.Is(VarMood, "sad")), Then: GenreClassical},
		{Name: "moderate-tempo", When: fuzzy.Is(VarTempo, "moderate"), Then: GenreBallad},
		{Name: "fallback", When: fuzzy.Always, Then: GenreHipHop},
	}
}

// BuildModel compiles a model definition into an inference model. The
// definition must declare exactly the four listener inputs.
func BuildModel(def config.ModelDef) (*fuzzy.Model, error) {
	byName := make(map[string]config.VariableDef, len(def.Inputs))
	for _, in := range def.Inputs {
		byName[in.Name] = in
	}
	if len(def.Inputs) != len(inputOrder) || len(byName) != len(inputOrder) {
		return nil, fmt.Errorf("%w: want inputs %v", ErrInvalidModel, inputOrder)
	}

	inputs := make([]*fuzzy.Variable, 0, len(inputOrder))
	for _, name := range inputOrder {
		vd, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing input %q", ErrInvalidModel, name)
		}
		v, err := buildVariable(vd)
		if err != nil {
			return nil, err
		}
		for _, term := range requiredTerms[name] {
			if !v.HasTerm(term) {
				return nil, fmt.Errorf("%w: input %q has no term %q", ErrInvalidModel, name, term)
			}
		}
		inputs = append(inputs, v)
	}

	output, err := buildVariable(def.Output)
	if err != nil {
		return nil, err
	}

	m, err := fuzzy.NewModel(inputs, output, MusicPolicy())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	return m, nil
}

func buildVariable(vd config.VariableDef) (*fuzzy.Variable, error) {
	u, err := fuzzy.NewUniverse(vd.Min, vd.Max, vd.Step)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", vd.Name, err)
	}
	terms := make([]fuzzy.Term, 0, len(vd.Terms))
	for _, td := range vd.Terms {
		mf, err := buildShape(td)
		if err != nil {
			return nil, fmt.Errorf("variable %q term %q: %w", vd.Name, td.Name, err)
		}
		terms = append(terms, fuzzy.Term{Name: td.Name, MF: mf})
	}
	return fuzzy.NewVariable(vd.Name, u, terms...)
}

func buildShape(td config.TermDef) (fuzzy.MembershipFunc, error) {
	p := td.Params
	switch {
	case td.Shape == config.ShapeTriangular && len(p) == 3:
		return fuzzy.NewTriangular(p[0], p[1], p[2])
	case td.Shape == config.ShapeTrapezoidal && len(p) == 4:
		return fuzzy.NewTrapezoidal(p[0], p[1], p[2], p[3])
	default:
		return nil, fmt.Errorf("%w: %s with %d params", fuzzy.ErrInvalidShape, td.Shape, len(p))
	}
}
