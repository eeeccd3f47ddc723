package csp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notEqualPair() Relation {
	return &fakeRelation{
		kind: KindInequality,
		holds: func(values []Value) (bool, error) {
			return !values[0].Equal(values[1]), nil
		},
	}
}

func TestSatisfiesConstraintPartial(t *testing.T) {
	problem := NewProblem("p")
	require.NoError(t, problem.AddVariable(NewVariable("x1", "x1", TypeInteger, Ints(1, 2))))
	require.NoError(t, problem.AddVariable(NewVariable("x2", "x2", TypeInteger, Ints(1, 2))))
	constraint := NewConstraint("c1", []Identifier{"x1", "x2"}, notEqualPair())
	require.NoError(t, problem.AddConstraint(constraint))

	// Any unbound participant leaves the constraint trivially satisfied,
	// even when every binding that exists already clashes.
	satisfied, err := SatisfiesConstraint(constraint, Assignment{"x1": Integer(1)})
	require.NoError(t, err)
	assert.True(t, satisfied)

	satisfied, err = SatisfiesConstraint(constraint, Assignment{"x1": Integer(1), "x2": Integer(1)})
	require.NoError(t, err)
	assert.False(t, satisfied)
}

func TestIsConsistent(t *testing.T) {
	problem := NewProblem("p")
	require.NoError(t, problem.AddVariable(NewVariable("x1", "x1", TypeInteger, Ints(1, 2))))
	require.NoError(t, problem.AddVariable(NewVariable("x2", "x2", TypeInteger, Ints(1, 2))))
	require.NoError(t, problem.AddConstraint(NewConstraint("hard", []Identifier{"x1", "x2"}, notEqualPair())))

	consistent, err := IsConsistent(problem, Assignment{"x1": Integer(1), "x2": Integer(2)})
	require.NoError(t, err)
	assert.True(t, consistent)

	consistent, err = IsConsistent(problem, Assignment{"x1": Integer(1), "x2": Integer(1)})
	require.NoError(t, err)
	assert.False(t, consistent)
}

func TestSoftConstraintsNeverBlock(t *testing.T) {
	problem := NewProblem("p")
	require.NoError(t, problem.AddVariable(NewVariable("x1", "x1", TypeInteger, Ints(1))))
	require.NoError(t, problem.AddConstraint(NewConstraint("pref", []Identifier{"x1"}, neverHolds(), WithWeight(0.5))))

	assignment := Assignment{"x1": Integer(1)}

	consistent, err := IsConsistent(problem, assignment)
	require.NoError(t, err)
	assert.True(t, consistent, "a violated soft constraint must not break consistency")

	violated, err := ViolatedConstraints(problem, assignment)
	require.NoError(t, err)
	assert.Equal(t, []Identifier{"pref"}, violated)

	satisfied, err := SatisfiedConstraints(problem, assignment)
	require.NoError(t, err)
	assert.Empty(t, satisfied)
}

func TestEvaluationErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	problem := NewProblem("p")
	require.NoError(t, problem.AddVariable(NewVariable("x1", "x1", TypeInteger, Ints(1))))
	require.NoError(t, problem.AddConstraint(NewConstraint("bad", []Identifier{"x1"}, &fakeRelation{
		holds: func([]Value) (bool, error) { return false, boom },
	})))

	_, err := IsConsistent(problem, Assignment{"x1": Integer(1)})
	assert.ErrorIs(t, err, boom)

	_, err = ViolatedConstraints(problem, Assignment{"x1": Integer(1)})
	assert.ErrorIs(t, err, boom)
}

func TestAssignmentExtend(t *testing.T) {
	base := Assignment{"x1": Integer(1)}
	extended := base.Extend("x2", Integer(2))

	assert.Len(t, base, 1)
	assert.Len(t, extended, 2)
	assert.False(t, base.Bound("x2"))
	assert.True(t, extended.Bound("x2"))
	assert.Equal(t, "{x1=1, x2=2}", extended.String())
}
