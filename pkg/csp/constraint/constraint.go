// Package constraint provides the relation vocabulary applied by
// Constraints: equality, inequality, ordering chains, membership,
// all-different, linear sums and opaque predicates.
package constraint

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/deepthink-ai/csp/pkg/csp"
)

// linearSumEpsilon absorbs floating-point drift when a linear sum mixes
// real values.
const linearSumEpsilon = 1e-9

type EqualRelation struct{}

func (relation *EqualRelation) Kind() csp.ConstraintKind {
	return csp.KindEquality
}

func (relation *EqualRelation) Holds(values []csp.Value) (bool, error) {
	for i := 1; i < len(values); i++ {
		if !values[0].Equal(values[i]) {
			return false, nil
		}
	}
	return true, nil
}

func (relation *EqualRelation) String(variables []csp.Identifier) string {
	return join(variables, " = ")
}

// Equal returns a Relation satisfied when every value in scope is equal.
func Equal() csp.Relation {
	return &EqualRelation{}
}

type NotEqualRelation struct{}

func (relation *NotEqualRelation) Kind() csp.ConstraintKind {
	return csp.KindInequality
}

func (relation *NotEqualRelation) Holds(values []csp.Value) (bool, error) {
	return pairwiseDistinct(values), nil
}

func (relation *NotEqualRelation) String(variables []csp.Identifier) string {
	return join(variables, " != ")
}

// NotEqual returns a Relation satisfied when no two values in scope are
// equal.
func NotEqual() csp.Relation {
	return &NotEqualRelation{}
}

// OrderingOp selects the comparison an OrderingRelation chains across
// its scope.
type OrderingOp string

const (
	OpLessThan       OrderingOp = "<"
	OpLessOrEqual    OrderingOp = "<="
	OpGreaterThan    OrderingOp = ">"
	OpGreaterOrEqual OrderingOp = ">="
)

type OrderingRelation struct {
	op OrderingOp
}

func (relation *OrderingRelation) Kind() csp.ConstraintKind {
	return csp.KindOrdering
}

func (relation *OrderingRelation) Holds(values []csp.Value) (bool, error) {
	for i := 1; i < len(values); i++ {
		ordering, err := csp.Compare(values[i-1], values[i])
		if err != nil {
			return false, err
		}
		satisfied := false
		switch relation.op {
		case OpLessThan:
			satisfied = ordering < 0
		case OpLessOrEqual:
			satisfied = ordering <= 0
		case OpGreaterThan:
			satisfied = ordering > 0
		case OpGreaterOrEqual:
			satisfied = ordering >= 0
		default:
			return false, fmt.Errorf("unknown ordering op %q", relation.op)
		}
		if !satisfied {
			return false, nil
		}
	}
	return true, nil
}

func (relation *OrderingRelation) String(variables []csp.Identifier) string {
	return join(variables, " "+string(relation.op)+" ")
}

// Ordering returns a Relation satisfied when the values in scope form a
// chain under op, evaluated pairwise left to right. Ordering values
// without an ordering (booleans, sets, mixed kinds beyond the numeric
// pair) is an evaluation error.
func Ordering(op OrderingOp) csp.Relation {
	return &OrderingRelation{op: op}
}

// LessThan returns a strictly-increasing Ordering.
func LessThan() csp.Relation {
	return Ordering(OpLessThan)
}

// LessOrEqual returns a non-decreasing Ordering.
func LessOrEqual() csp.Relation {
	return Ordering(OpLessOrEqual)
}

// GreaterThan returns a strictly-decreasing Ordering.
func GreaterThan() csp.Relation {
	return Ordering(OpGreaterThan)
}

// GreaterOrEqual returns a non-increasing Ordering.
func GreaterOrEqual() csp.Relation {
	return Ordering(OpGreaterOrEqual)
}

type MembershipRelation struct {
	allowed []csp.Value
}

func (relation *MembershipRelation) Kind() csp.ConstraintKind {
	return csp.KindMembership
}

func (relation *MembershipRelation) Holds(values []csp.Value) (bool, error) {
	for _, value := range values {
		member := false
		for _, allowed := range relation.allowed {
			if value.Equal(allowed) {
				member = true
				break
			}
		}
		if !member {
			return false, nil
		}
	}
	return true, nil
}

func (relation *MembershipRelation) String(variables []csp.Identifier) string {
	members := make([]string, len(relation.allowed))
	for i, value := range relation.allowed {
		members[i] = value.String()
	}
	return fmt.Sprintf("%s in {%s}", join(variables, ", "), strings.Join(members, ", "))
}

// MemberOf returns a Relation satisfied when every value in scope is a
// member of the allowed collection.
func MemberOf(allowed ...csp.Value) csp.Relation {
	owned := make([]csp.Value, len(allowed))
	copy(owned, allowed)
	return &MembershipRelation{allowed: owned}
}

type AllDifferentRelation struct{}

func (relation *AllDifferentRelation) Kind() csp.ConstraintKind {
	return csp.KindAllDifferent
}

func (relation *AllDifferentRelation) Holds(values []csp.Value) (bool, error) {
	return pairwiseDistinct(values), nil
}

func (relation *AllDifferentRelation) String(variables []csp.Identifier) string {
	return fmt.Sprintf("all_different(%s)", join(variables, ", "))
}

// AllDifferent returns a Relation satisfied when the values in scope are
// pairwise distinct.
func AllDifferent() csp.Relation {
	return &AllDifferentRelation{}
}

type LinearSumRelation struct {
	coefficients []float64
	target       float64
}

func (relation *LinearSumRelation) Kind() csp.ConstraintKind {
	return csp.KindLinearSum
}

func (relation *LinearSumRelation) Holds(values []csp.Value) (bool, error) {
	if relation.coefficients != nil && len(relation.coefficients) != len(values) {
		return false, fmt.Errorf("linear sum has %d coefficients for %d values", len(relation.coefficients), len(values))
	}
	sum := 0.0
	for i, value := range values {
		term, err := numericValue(value)
		if err != nil {
			return false, err
		}
		if relation.coefficients != nil {
			term *= relation.coefficients[i]
		}
		sum += term
	}
	return math.Abs(sum-relation.target) <= linearSumEpsilon, nil
}

func (relation *LinearSumRelation) String(variables []csp.Identifier) string {
	if relation.coefficients == nil {
		return fmt.Sprintf("%s = %g", join(variables, " + "), relation.target)
	}
	terms := make([]string, len(variables))
	for i, variable := range variables {
		coefficient := 1.0
		if i < len(relation.coefficients) {
			coefficient = relation.coefficients[i]
		}
		terms[i] = fmt.Sprintf("%g*%s", coefficient, variable)
	}
	return fmt.Sprintf("%s = %g", strings.Join(terms, " + "), relation.target)
}

// LinearSum returns a Relation satisfied when the values in scope,
// scaled by the given coefficients, sum to target. A nil coefficient
// slice weights every value by one; a non-nil slice must match the
// constraint's scope length. Non-numeric values are an evaluation error.
func LinearSum(coefficients []float64, target float64) csp.Relation {
	var owned []float64
	if coefficients != nil {
		owned = make([]float64, len(coefficients))
		copy(owned, coefficients)
	}
	return &LinearSumRelation{coefficients: owned, target: target}
}

// Sum returns a LinearSum with all coefficients one.
func Sum(target float64) csp.Relation {
	return LinearSum(nil, target)
}

type PredicateRelation struct {
	description string
	holds       func(values []csp.Value) (bool, error)
}

func (relation *PredicateRelation) Kind() csp.ConstraintKind {
	return csp.KindCustom
}

func (relation *PredicateRelation) Holds(values []csp.Value) (bool, error) {
	if relation.holds == nil {
		return false, errors.New("predicate constraint has no callback")
	}
	return relation.holds(values)
}

func (relation *PredicateRelation) String(variables []csp.Identifier) string {
	if relation.description != "" {
		return relation.description
	}
	return fmt.Sprintf("predicate(%s)", join(variables, ", "))
}

// Predicate returns a Relation backed by an opaque callback, for
// constraints outside the primitive vocabulary. Errors returned by the
// callback abort the evaluation that triggered them.
func Predicate(description string, holds func(values []csp.Value) (bool, error)) csp.Relation {
	return &PredicateRelation{description: description, holds: holds}
}

func pairwiseDistinct(values []csp.Value) bool {
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			if values[i].Equal(values[j]) {
				return false
			}
		}
	}
	return true
}

func numericValue(value csp.Value) (float64, error) {
	switch v := value.(type) {
	case csp.Integer:
		return float64(v), nil
	case csp.Real:
		return float64(v), nil
	}
	return 0, fmt.Errorf("linear sum over non-numeric %s value", value.Type())
}

func join(variables []csp.Identifier, separator string) string {
	s := make([]string, len(variables))
	for i, variable := range variables {
		s[i] = string(variable)
	}
	return strings.Join(s, separator)
}
