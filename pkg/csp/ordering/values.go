package ordering

import (
	"math/rand"
	"sort"
	"time"

	"github.com/deepthink-ai/csp/pkg/csp"
)

type natural struct{}

func (natural) Name() ValueStrategy {
	return ValueNatural
}

func (natural) Order(problem *csp.Problem, assignment csp.Assignment, variable *csp.Variable) ([]csp.Value, error) {
	values := make([]csp.Value, len(variable.Domain))
	copy(values, variable.Domain)
	return values, nil
}

// Natural returns the default sorter: the domain in its declared order.
func Natural() ValueSorter {
	return natural{}
}

type leastConstraining struct{}

func (leastConstraining) Name() ValueStrategy {
	return ValueLeastConstraining
}

func (leastConstraining) Order(problem *csp.Problem, assignment csp.Assignment, variable *csp.Variable) ([]csp.Value, error) {
	type scored struct {
		value  csp.Value
		pruned int
	}
	scores := make([]scored, 0, len(variable.Domain))
	for _, candidate := range variable.Domain {
		pruned, err := prunedNeighborOptions(problem, assignment, variable, candidate)
		if err != nil {
			return nil, err
		}
		scores = append(scores, scored{value: candidate, pruned: pruned})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].pruned < scores[j].pruned
	})
	values := make([]csp.Value, len(scores))
	for i, s := range scores {
		values[i] = s.value
	}
	return values, nil
}

// prunedNeighborOptions counts, across the constraints touching the
// variable, the neighbor values that stop being usable once candidate is
// tried. Each (constraint, neighbor, value) combination counts once.
func prunedNeighborOptions(problem *csp.Problem, assignment csp.Assignment, variable *csp.Variable, candidate csp.Value) (int, error) {
	tentative := assignment.Extend(variable.ID, candidate)
	pruned := 0
	for _, constraint := range problem.ConstraintsOn(variable.ID) {
		for _, neighborID := range constraint.Variables {
			if neighborID == variable.ID || assignment.Bound(neighborID) {
				continue
			}
			neighbor, ok := problem.Variable(neighborID)
			if !ok {
				continue
			}
			for _, neighborValue := range neighbor.Domain {
				satisfied, err := csp.SatisfiesConstraint(constraint, tentative.Extend(neighborID, neighborValue))
				if err != nil {
					return 0, err
				}
				if !satisfied {
					pruned++
				}
			}
		}
	}
	return pruned, nil
}

// LeastConstraining returns a sorter preferring values that prune the
// fewest options from neighboring domains. Score ties keep the natural
// domain order.
func LeastConstraining() ValueSorter {
	return leastConstraining{}
}

type minConflicts struct{}

func (minConflicts) Name() ValueStrategy {
	return ValueMinConflicts
}

func (minConflicts) Order(problem *csp.Problem, assignment csp.Assignment, variable *csp.Variable) ([]csp.Value, error) {
	type scored struct {
		value     csp.Value
		conflicts int
	}
	scores := make([]scored, 0, len(variable.Domain))
	for _, candidate := range variable.Domain {
		violated, err := csp.ViolatedConstraints(problem, assignment.Extend(variable.ID, candidate))
		if err != nil {
			return nil, err
		}
		scores = append(scores, scored{value: candidate, conflicts: len(violated)})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].conflicts < scores[j].conflicts
	})
	values := make([]csp.Value, len(scores))
	for i, s := range scores {
		values[i] = s.value
	}
	return values, nil
}

// MinConflicts returns a sorter preferring values that violate the
// fewest constraints when tried. Score ties keep the natural domain
// order.
func MinConflicts() ValueSorter {
	return minConflicts{}
}

type randomValues struct {
	rng *rand.Rand
}

func (randomValues) Name() ValueStrategy {
	return ValueRandom
}

func (sorter randomValues) Order(problem *csp.Problem, assignment csp.Assignment, variable *csp.Variable) ([]csp.Value, error) {
	values := make([]csp.Value, len(variable.Domain))
	copy(values, variable.Domain)
	sorter.rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	return values, nil
}

// RandomValues returns a sorter shuffling the domain. A nil rng falls
// back to a time-seeded source; inject a seeded one for reproducible
// runs.
func RandomValues(rng *rand.Rand) ValueSorter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return randomValues{rng: rng}
}
