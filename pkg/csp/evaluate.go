package csp

// SatisfiesConstraint evaluates one constraint against a possibly
// partial assignment. A constraint with any unbound participant is
// trivially satisfied: violations involving unbound variables go
// unreported until every participant is bound. Callers that need a
// definitive verdict must evaluate complete assignments. Relation errors
// abort the evaluation and are returned unchanged.
func SatisfiesConstraint(constraint *Constraint, assignment Assignment) (bool, error) {
	values := make([]Value, len(constraint.Variables))
	for i, id := range constraint.Variables {
		value, ok := assignment[id]
		if !ok {
			return true, nil
		}
		values[i] = value
	}
	return constraint.Relation.Holds(values)
}

// IsConsistent reports whether the assignment violates no hard
// constraint of the problem. Soft constraints never affect consistency;
// use ViolatedConstraints to observe them.
func IsConsistent(problem *Problem, assignment Assignment) (bool, error) {
	for _, constraint := range problem.constraints {
		if !constraint.Hard() {
			continue
		}
		satisfied, err := SatisfiesConstraint(constraint, assignment)
		if err != nil {
			return false, err
		}
		if !satisfied {
			return false, nil
		}
	}
	return true, nil
}

// ViolatedConstraints returns, in insertion order, the ids of every
// constraint (hard and soft) the assignment violates under the partial
// evaluation rule of SatisfiesConstraint.
func ViolatedConstraints(problem *Problem, assignment Assignment) ([]Identifier, error) {
	var violated []Identifier
	for _, constraint := range problem.constraints {
		satisfied, err := SatisfiesConstraint(constraint, assignment)
		if err != nil {
			return nil, err
		}
		if !satisfied {
			violated = append(violated, constraint.ID)
		}
	}
	return violated, nil
}

// SatisfiedConstraints returns, in insertion order, the ids of every
// constraint the assignment satisfies under the partial evaluation rule
// of SatisfiesConstraint.
func SatisfiedConstraints(problem *Problem, assignment Assignment) ([]Identifier, error) {
	var satisfied []Identifier
	for _, constraint := range problem.constraints {
		ok, err := SatisfiesConstraint(constraint, assignment)
		if err != nil {
			return nil, err
		}
		if ok {
			satisfied = append(satisfied, constraint.ID)
		}
	}
	return satisfied, nil
}
