package csp

import (
	"errors"
	"fmt"
)

// DuplicateIdentifier is an error indicating that a variable or
// constraint id was added to a Problem more than once.
type DuplicateIdentifier Identifier

func (e DuplicateIdentifier) Error() string {
	return fmt.Sprintf("duplicate identifier %q in problem", Identifier(e))
}

// UnknownVariable is an error indicating that a constraint references a
// variable absent from the Problem.
type UnknownVariable Identifier

func (e UnknownVariable) Error() string {
	return fmt.Sprintf("reference to unknown variable %q", Identifier(e))
}

var (
	// ErrEmptyScope rejects constraints that reference no variables.
	ErrEmptyScope = errors.New("constraint references no variables")
	// ErrNilRelation rejects constraints without a relation.
	ErrNilRelation = errors.New("constraint has no relation")
	// ErrWeightRange rejects constraint weights outside [0, 1].
	ErrWeightRange = errors.New("constraint weight outside [0, 1]")
	// ErrDomainType rejects domain values whose kind differs from the
	// variable's declared type.
	ErrDomainType = errors.New("domain value does not match declared variable type")
)

// Objective is a reserved optimization target. The engine records it
// and reports it; no search strategy consumes it yet.
type Objective struct {
	Sense      ObjectiveSense
	Expression string
}

// ObjectiveSense is the direction of a reserved optimization target.
type ObjectiveSense string

const (
	Minimize ObjectiveSense = "minimize"
	Maximize ObjectiveSense = "maximize"
)

// Problem is a constraint satisfaction problem: an insertion-ordered
// collection of variables and the constraints over them. A Problem is
// not safe for concurrent mutation; Clone it per goroutine when solving
// concurrently.
type Problem struct {
	Name      string
	Objective *Objective

	variables     map[Identifier]*Variable
	order         []Identifier
	constraints   []*Constraint
	constraintSet map[Identifier]*Constraint
}

// NewProblem returns an empty Problem.
func NewProblem(name string) *Problem {
	return &Problem{
		Name:          name,
		variables:     map[Identifier]*Variable{},
		constraintSet: map[Identifier]*Constraint{},
	}
}

// AddVariable registers a variable. The variable's id must be unique
// within the problem and every domain value must match its declared
// type.
func (problem *Problem) AddVariable(variable *Variable) error {
	if variable == nil {
		return errors.New("nil variable")
	}
	if _, ok := problem.variables[variable.ID]; ok {
		return DuplicateIdentifier(variable.ID)
	}
	if _, ok := problem.constraintSet[variable.ID]; ok {
		return DuplicateIdentifier(variable.ID)
	}
	for _, value := range variable.Domain {
		if value.Type() != variable.Type {
			return fmt.Errorf("variable %q: value %s is %s: %w", variable.ID, value, value.Type(), ErrDomainType)
		}
	}
	problem.variables[variable.ID] = variable
	problem.order = append(problem.order, variable.ID)
	return nil
}

// AddConstraint registers a constraint. Constraints are validated
// eagerly: a dangling variable reference, duplicate id, empty scope,
// missing relation or out-of-range weight is rejected here rather than
// surfacing later as an inconsistent search.
func (problem *Problem) AddConstraint(constraint *Constraint) error {
	if constraint == nil {
		return errors.New("nil constraint")
	}
	if constraint.Relation == nil {
		return fmt.Errorf("constraint %q: %w", constraint.ID, ErrNilRelation)
	}
	if len(constraint.Variables) == 0 {
		return fmt.Errorf("constraint %q: %w", constraint.ID, ErrEmptyScope)
	}
	if constraint.Weight < 0 || constraint.Weight > HardWeight {
		return fmt.Errorf("constraint %q: weight %v: %w", constraint.ID, constraint.Weight, ErrWeightRange)
	}
	if _, ok := problem.constraintSet[constraint.ID]; ok {
		return DuplicateIdentifier(constraint.ID)
	}
	if _, ok := problem.variables[constraint.ID]; ok {
		return DuplicateIdentifier(constraint.ID)
	}
	for _, id := range constraint.Variables {
		if _, ok := problem.variables[id]; !ok {
			return fmt.Errorf("constraint %q: %w", constraint.ID, UnknownVariable(id))
		}
	}
	problem.constraints = append(problem.constraints, constraint)
	problem.constraintSet[constraint.ID] = constraint

	seen := make(map[Identifier]struct{}, len(constraint.Variables))
	for _, id := range constraint.Variables {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		variable := problem.variables[id]
		variable.Constraints = append(variable.Constraints, constraint.ID)
	}
	return nil
}

// Variable returns the variable with the given id.
func (problem *Problem) Variable(id Identifier) (*Variable, bool) {
	variable, ok := problem.variables[id]
	return variable, ok
}

// Constraint returns the constraint with the given id.
func (problem *Problem) Constraint(id Identifier) (*Constraint, bool) {
	constraint, ok := problem.constraintSet[id]
	return constraint, ok
}

// Variables returns the problem's variables in insertion order. The
// pointers are live: callers see domain prunes made by propagation.
func (problem *Problem) Variables() []*Variable {
	variables := make([]*Variable, 0, len(problem.order))
	for _, id := range problem.order {
		variables = append(variables, problem.variables[id])
	}
	return variables
}

// Constraints returns the problem's constraints in insertion order.
func (problem *Problem) Constraints() []*Constraint {
	constraints := make([]*Constraint, len(problem.constraints))
	copy(constraints, problem.constraints)
	return constraints
}

// ConstraintsOn returns the constraints whose scope includes the given
// variable, in insertion order.
func (problem *Problem) ConstraintsOn(id Identifier) []*Constraint {
	variable, ok := problem.variables[id]
	if !ok {
		return nil
	}
	constraints := make([]*Constraint, 0, len(variable.Constraints))
	for _, constraintID := range variable.Constraints {
		if constraint, ok := problem.constraintSet[constraintID]; ok {
			constraints = append(constraints, constraint)
		}
	}
	return constraints
}

// VariableCount returns the number of variables in the problem.
func (problem *Problem) VariableCount() int {
	return len(problem.order)
}

// ConstraintCount returns the number of constraints in the problem.
func (problem *Problem) ConstraintCount() int {
	return len(problem.constraints)
}

// UnassignedVariables returns, in insertion order, the variables the
// given assignment does not bind.
func (problem *Problem) UnassignedVariables(assignment Assignment) []*Variable {
	unassigned := make([]*Variable, 0, len(problem.order))
	for _, id := range problem.order {
		if _, ok := assignment[id]; !ok {
			unassigned = append(unassigned, problem.variables[id])
		}
	}
	return unassigned
}

// Clone returns a deep copy of the problem's variables and a fresh
// constraint table. Constraints themselves are immutable and shared
// between clones; domains are copied, so propagation against the clone
// leaves the original untouched.
func (problem *Problem) Clone() *Problem {
	clone := NewProblem(problem.Name)
	if problem.Objective != nil {
		objective := *problem.Objective
		clone.Objective = &objective
	}
	for _, id := range problem.order {
		clone.variables[id] = problem.variables[id].clone()
		clone.order = append(clone.order, id)
	}
	clone.constraints = make([]*Constraint, len(problem.constraints))
	copy(clone.constraints, problem.constraints)
	for id, constraint := range problem.constraintSet {
		clone.constraintSet[id] = constraint
	}
	return clone
}

// Validate re-checks the structural invariants AddVariable and
// AddConstraint enforce, for problems assembled by hand or mutated after
// construction. All findings are reported, joined into one error.
func (problem *Problem) Validate() error {
	var errs []error
	for _, id := range problem.order {
		variable := problem.variables[id]
		for _, value := range variable.Domain {
			if value.Type() != variable.Type {
				errs = append(errs, fmt.Errorf("variable %q: value %s is %s: %w", id, value, value.Type(), ErrDomainType))
			}
		}
		for _, constraintID := range variable.Constraints {
			if _, ok := problem.constraintSet[constraintID]; !ok {
				errs = append(errs, fmt.Errorf("variable %q references unknown constraint %q", id, constraintID))
			}
		}
	}
	for _, constraint := range problem.constraints {
		if constraint.Relation == nil {
			errs = append(errs, fmt.Errorf("constraint %q: %w", constraint.ID, ErrNilRelation))
		}
		if len(constraint.Variables) == 0 {
			errs = append(errs, fmt.Errorf("constraint %q: %w", constraint.ID, ErrEmptyScope))
		}
		if constraint.Weight < 0 || constraint.Weight > HardWeight {
			errs = append(errs, fmt.Errorf("constraint %q: weight %v: %w", constraint.ID, constraint.Weight, ErrWeightRange))
		}
		for _, id := range constraint.Variables {
			if _, ok := problem.variables[id]; !ok {
				errs = append(errs, fmt.Errorf("constraint %q: %w", constraint.ID, UnknownVariable(id)))
			}
		}
	}
	return errors.Join(errs...)
}
