package fuzzy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoMatchingCase is returned when a policy is not total over the
	// term combinations it is asked to classify.
	ErrNoMatchingCase = errors.New("no policy case matches")
	// ErrUnknownTerm is returned when a rule names a term its variable
	// does not declare.
	ErrUnknownTerm = errors.New("unknown term")
)

// Clause is one "variable IS term" condition of a rule antecedent.
type Clause struct {
	Variable string `json:"variable"`
	Term     string `json:"term"`
}

// Rule is an immutable Mamdani rule: the AND of its clauses implies the
// consequent output term.
type Rule struct {
	Antecedent []Clause `json:"antecedent"`
	Consequent string   `json:"consequent"`
}

// Term returns the antecedent term for the named variable.
func (r Rule) Term(variable string) (string, bool) {
	for _, c := range r.Antecedent {
		if c.Variable == variable {
			return c.Term, true
		}
	}
	return "", false
}

func (r Rule) String() string {
	parts := make([]string, len(r.Antecedent))
	for i, c := range r.Antecedent {
		parts[i] = c.Variable + " is " + c.Term
	}
	return "IF " + strings.Join(parts, " AND ") + " THEN " + r.Consequent
}

// Combination holds one categorical label per input variable.
type Combination map[string]string

// Predicate tests a combination of labels.
type Predicate func(Combination) bool

// Is matches combinations where variable carries the given term.
func Is(variable, term string) Predicate {
	return func(c Combination) bool { return c[variable] == term }
}

// All matches when every predicate matches.
func All(preds ...Predicate) Predicate {
	return func(c Combination) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

// Always matches every combination. Use it for the final fallback case.
func Always(Combination) bool { return true }

// Case is one guarded row of a Policy.
type Case struct {
	Name string
	When Predicate
	Then string
}

// Policy is an ordered decision table evaluated top to bottom; the
// first matching case wins.
type Policy []Case

// Decide returns the consequent of the first case matching c.
func (p Policy) Decide(c Combination) (Case, error) {
	for _, cs := range p {
		if cs.When != nil && cs.When(c) {
			return cs, nil
		}
	}
	return Case{}, fmt.Errorf("%w: %v", ErrNoMatchingCase, c)
}

// BuildRules enumerates the Cartesian product of the inputs' term lists
// and assigns each combination exactly one consequent from policy.
// The result has one rule per distinct tuple of input terms.
func BuildRules(inputs []*Variable, output *Variable, policy Policy) ([]Rule, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no input variables", ErrInvalidVariable)
	}
	if output == nil {
		return nil, fmt.Errorf("%w: no output variable", ErrInvalidVariable)
	}

	total := 1
	for _, in := range inputs {
		total *= len(in.terms)
	}
	rules := make([]Rule, 0, total)

	// Odometer over term indexes; the last input varies fastest.
	idx := make([]int, len(inputs))
	for {
		combo := make(Combination, len(inputs))
		clauses := make([]Clause, len(inputs))
		for i, in := range inputs {
			term := in.terms[idx[i]].Name
			combo[in.name] = term
			clauses[i] = Clause{Variable: in.name, Term: term}
		}

		cs, err := policy.Decide(combo)
		if err != nil {
			return nil, err
		}
		if !output.HasTerm(cs.Then) {
			return nil, fmt.Errorf("%w: case %q yields %q, not a term of %q",
				ErrUnknownTerm, cs.Name, cs.Then, output.name)
		}
		rules = append(rules, Rule{Antecedent: clauses, Consequent: cs.Then})

		pos := len(idx) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(inputs[pos].terms) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return rules, nil
		}
	}
}
