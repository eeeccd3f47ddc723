package ordering

import (
	"math/rand"
	"time"

	"github.com/deepthink-ai/csp/pkg/csp"
)

type firstUnassigned struct{}

func (firstUnassigned) Name() VariableStrategy {
	return VariableDefault
}

func (firstUnassigned) Select(problem *csp.Problem, assignment csp.Assignment) *csp.Variable {
	unassigned := problem.UnassignedVariables(assignment)
	if len(unassigned) == 0 {
		return nil
	}
	return unassigned[0]
}

// FirstUnassigned returns the default selector: unassigned variables in
// insertion order.
func FirstUnassigned() VariableSelector {
	return firstUnassigned{}
}

type lexicographic struct{}

func (lexicographic) Name() VariableStrategy {
	return VariableLexicographic
}

func (lexicographic) Select(problem *csp.Problem, assignment csp.Assignment) *csp.Variable {
	var best *csp.Variable
	for _, candidate := range problem.UnassignedVariables(assignment) {
		if best == nil || candidate.Name < best.Name {
			best = candidate
		}
	}
	return best
}

// Lexicographic returns a selector taking the unassigned variable whose
// display name sorts first; name ties keep the earlier insertion.
func Lexicographic() VariableSelector {
	return lexicographic{}
}

type minRemainingValues struct{}

func (minRemainingValues) Name() VariableStrategy {
	return VariableMinRemainingValues
}

func (minRemainingValues) Select(problem *csp.Problem, assignment csp.Assignment) *csp.Variable {
	var best *csp.Variable
	for _, candidate := range problem.UnassignedVariables(assignment) {
		if best == nil || len(candidate.Domain) < len(best.Domain) {
			best = candidate
		}
	}
	return best
}

// MinRemainingValues returns the fail-first selector: the unassigned
// variable with the smallest current domain, first encountered on ties.
func MinRemainingValues() VariableSelector {
	return minRemainingValues{}
}

type degree struct{}

func (degree) Name() VariableStrategy {
	return VariableDegree
}

func (degree) Select(problem *csp.Problem, assignment csp.Assignment) *csp.Variable {
	var best *csp.Variable
	for _, candidate := range problem.UnassignedVariables(assignment) {
		if best == nil || len(candidate.Constraints) > len(best.Constraints) {
			best = candidate
		}
	}
	return best
}

// Degree returns a selector taking the unassigned variable referenced
// by the most constraints, first encountered on ties.
func Degree() VariableSelector {
	return degree{}
}

type randomVariable struct {
	rng *rand.Rand
}

func (randomVariable) Name() VariableStrategy {
	return VariableRandom
}

func (selector randomVariable) Select(problem *csp.Problem, assignment csp.Assignment) *csp.Variable {
	unassigned := problem.UnassignedVariables(assignment)
	if len(unassigned) == 0 {
		return nil
	}
	return unassigned[selector.rng.Intn(len(unassigned))]
}

// RandomVariable returns a selector drawing uniformly from the
// unassigned variables. A nil rng falls back to a time-seeded source;
// inject a seeded one for reproducible runs.
func RandomVariable(rng *rand.Rand) VariableSelector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return randomVariable{rng: rng}
}
