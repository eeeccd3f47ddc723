// Package ordering provides the variable-selection and value-ordering
// strategies the backtracking search branches with. Selectors only ever
// return unassigned variables; sorters only ever return values from the
// variable's current domain. Ties everywhere resolve to the first
// candidate encountered, so runs with deterministic strategies are
// reproducible.
package ordering

import (
	"fmt"
	"math/rand"

	"github.com/deepthink-ai/csp/pkg/csp"
)

// VariableStrategy names a variable-selection policy.
type VariableStrategy string

const (
	// VariableDefault takes unassigned variables in insertion order.
	VariableDefault VariableStrategy = "default"
	// VariableLexicographic takes the unassigned variable whose display
	// name sorts first.
	VariableLexicographic VariableStrategy = "lexicographic"
	// VariableMinRemainingValues takes the unassigned variable with the
	// smallest current domain.
	VariableMinRemainingValues VariableStrategy = "min_remaining_values"
	// VariableDegree takes the unassigned variable referenced by the
	// most constraints.
	VariableDegree VariableStrategy = "degree_heuristic"
	// VariableRandom takes an unassigned variable uniformly at random.
	VariableRandom VariableStrategy = "random"
)

// ValueStrategy names a value-ordering policy.
type ValueStrategy string

const (
	// ValueNatural keeps the domain's insertion order.
	ValueNatural ValueStrategy = "natural"
	// ValueLeastConstraining prefers values that rule out the fewest
	// options in neighboring domains.
	ValueLeastConstraining ValueStrategy = "least_constraining"
	// ValueMinConflicts prefers values that violate the fewest
	// constraints when tried.
	ValueMinConflicts ValueStrategy = "min_conflicts"
	// ValueRandom shuffles the domain.
	ValueRandom ValueStrategy = "random"
)

// VariableSelector picks the next variable to branch on, or nil when
// every variable is assigned.
type VariableSelector interface {
	Name() VariableStrategy
	Select(problem *csp.Problem, assignment csp.Assignment) *csp.Variable
}

// ValueSorter orders the candidate values of a variable's current
// domain for branching.
type ValueSorter interface {
	Name() ValueStrategy
	Order(problem *csp.Problem, assignment csp.Assignment, variable *csp.Variable) ([]csp.Value, error)
}

// NewVariableSelector resolves a strategy name. Random selection draws
// from rng; pass a seeded source for reproducible runs.
func NewVariableSelector(strategy VariableStrategy, rng *rand.Rand) (VariableSelector, error) {
	switch strategy {
	case VariableDefault, "":
		return FirstUnassigned(), nil
	case VariableLexicographic:
		return Lexicographic(), nil
	case VariableMinRemainingValues:
		return MinRemainingValues(), nil
	case VariableDegree:
		return Degree(), nil
	case VariableRandom:
		return RandomVariable(rng), nil
	}
	return nil, fmt.Errorf("unknown variable ordering %q", strategy)
}

// NewValueSorter resolves a strategy name. Random ordering draws from
// rng; pass a seeded source for reproducible runs.
func NewValueSorter(strategy ValueStrategy, rng *rand.Rand) (ValueSorter, error) {
	switch strategy {
	case ValueNatural, "":
		return Natural(), nil
	case ValueLeastConstraining:
		return LeastConstraining(), nil
	case ValueMinConflicts:
		return MinConflicts(), nil
	case ValueRandom:
		return RandomValues(rng), nil
	}
	return nil, fmt.Errorf("unknown value ordering %q", strategy)
}
