package csp

import "fmt"

// ConstraintKind names the semantic family of a constraint's relation.
type ConstraintKind string

const (
	KindEquality     ConstraintKind = "equality"
	KindInequality   ConstraintKind = "inequality"
	KindOrdering     ConstraintKind = "ordering"
	KindMembership   ConstraintKind = "membership"
	KindAllDifferent ConstraintKind = "all_different"
	KindLinearSum    ConstraintKind = "linear_sum"
	KindCustom       ConstraintKind = "custom"
)

// HardWeight is the weight of a constraint that must hold. Anything
// below it is a soft preference: recorded when violated, never blocking.
const HardWeight = 1.0

// Relation is the satisfaction predicate of a constraint.
type Relation interface {
	// Kind names the relation's semantic family.
	Kind() ConstraintKind
	// Holds reports whether the relation is satisfied by the given
	// values, ordered like the constraint's variable list. An error
	// aborts the evaluation in progress and is surfaced to the caller
	// unchanged.
	Holds(values []Value) (bool, error)
	// String renders a human-readable form of the relation over the
	// given variable ids.
	String(variables []Identifier) string
}

// Constraint applies a relation to an ordered list of variables.
// Constraints are immutable once added to a Problem and may be shared
// between Problem clones.
type Constraint struct {
	ID        Identifier
	Kind      ConstraintKind
	Variables []Identifier
	Relation  Relation

	// Weight in [0, 1]. HardWeight makes the constraint mandatory;
	// anything lower makes it a soft preference.
	Weight float64

	// Priority orders constraints for presentation. The engine itself
	// evaluates constraints in insertion order regardless of priority.
	Priority int
}

// ConstraintOption configures a Constraint under construction.
type ConstraintOption func(*Constraint)

// WithWeight sets the constraint's weight. Values outside [0, 1] are
// rejected when the constraint is added to a Problem.
func WithWeight(weight float64) ConstraintOption {
	return func(constraint *Constraint) {
		constraint.Weight = weight
	}
}

// WithPriority sets the constraint's presentation priority.
func WithPriority(priority int) ConstraintOption {
	return func(constraint *Constraint) {
		constraint.Priority = priority
	}
}

// NewConstraint applies relation to the given variables. An empty id is
// replaced with a fresh one; the weight defaults to HardWeight.
func NewConstraint(id Identifier, variables []Identifier, relation Relation, options ...ConstraintOption) *Constraint {
	if id == "" {
		id = newIdentifier()
	}
	scope := make([]Identifier, len(variables))
	copy(scope, variables)
	constraint := &Constraint{
		ID:        id,
		Variables: scope,
		Relation:  relation,
		Weight:    HardWeight,
	}
	if relation != nil {
		constraint.Kind = relation.Kind()
	}
	for _, option := range options {
		option(constraint)
	}
	return constraint
}

// Hard reports whether the constraint must hold in every solution.
func (constraint *Constraint) Hard() bool {
	return constraint.Weight >= HardWeight
}

// Binary reports whether the constraint's scope is exactly two distinct
// variables, the fragment arc-consistency propagates over.
func (constraint *Constraint) Binary() bool {
	return len(constraint.Variables) == 2 && constraint.Variables[0] != constraint.Variables[1]
}

// String implements fmt.Stringer and returns a human-readable message
// representing the receiver.
func (constraint *Constraint) String() string {
	if constraint.Relation == nil {
		return fmt.Sprintf("constraint %s", constraint.ID)
	}
	return constraint.Relation.String(constraint.Variables)
}
