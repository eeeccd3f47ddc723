package csp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRelation struct {
	kind  ConstraintKind
	holds func(values []Value) (bool, error)
}

func (relation *fakeRelation) Kind() ConstraintKind {
	if relation.kind == "" {
		return KindCustom
	}
	return relation.kind
}

func (relation *fakeRelation) Holds(values []Value) (bool, error) {
	if relation.holds == nil {
		return true, nil
	}
	return relation.holds(values)
}

func (relation *fakeRelation) String(variables []Identifier) string {
	return "fake"
}

func alwaysHolds() Relation {
	return &fakeRelation{}
}

func neverHolds() Relation {
	return &fakeRelation{holds: func([]Value) (bool, error) { return false, nil }}
}

func TestAddVariable(t *testing.T) {
	problem := NewProblem("p")

	require.NoError(t, problem.AddVariable(NewVariable("x1", "x1", TypeInteger, Ints(1, 2))))

	err := problem.AddVariable(NewVariable("x1", "other", TypeInteger, Ints(1)))
	assert.ErrorIs(t, err, DuplicateIdentifier("x1"))

	err = problem.AddVariable(NewVariable("x2", "x2", TypeInteger, Categories("red")))
	assert.ErrorIs(t, err, ErrDomainType)

	assert.Equal(t, 1, problem.VariableCount())
}

func TestAddConstraint(t *testing.T) {
	newProblem := func(t *testing.T) *Problem {
		problem := NewProblem("p")
		require.NoError(t, problem.AddVariable(NewVariable("x1", "x1", TypeInteger, Ints(1, 2))))
		require.NoError(t, problem.AddVariable(NewVariable("x2", "x2", TypeInteger, Ints(1, 2))))
		return problem
	}

	type tc struct {
		Name       string
		Constraint *Constraint
		Err        error
	}

	for _, tt := range []tc{
		{
			Name:       "valid",
			Constraint: NewConstraint("c1", []Identifier{"x1", "x2"}, alwaysHolds()),
		},
		{
			Name:       "unknown variable",
			Constraint: NewConstraint("c1", []Identifier{"x1", "x9"}, alwaysHolds()),
			Err:        UnknownVariable("x9"),
		},
		{
			Name:       "empty scope",
			Constraint: NewConstraint("c1", nil, alwaysHolds()),
			Err:        ErrEmptyScope,
		},
		{
			Name:       "nil relation",
			Constraint: NewConstraint("c1", []Identifier{"x1"}, nil),
			Err:        ErrNilRelation,
		},
		{
			Name:       "weight above one",
			Constraint: NewConstraint("c1", []Identifier{"x1"}, alwaysHolds(), WithWeight(1.5)),
			Err:        ErrWeightRange,
		},
		{
			Name:       "negative weight",
			Constraint: NewConstraint("c1", []Identifier{"x1"}, alwaysHolds(), WithWeight(-0.1)),
			Err:        ErrWeightRange,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			problem := newProblem(t)
			err := problem.AddConstraint(tt.Constraint)
			if tt.Err != nil {
				assert.ErrorIs(t, err, tt.Err)
				assert.Zero(t, problem.ConstraintCount())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, problem.ConstraintCount())
		})
	}

	t.Run("duplicate id", func(t *testing.T) {
		problem := newProblem(t)
		require.NoError(t, problem.AddConstraint(NewConstraint("c1", []Identifier{"x1"}, alwaysHolds())))
		err := problem.AddConstraint(NewConstraint("c1", []Identifier{"x2"}, alwaysHolds()))
		assert.ErrorIs(t, err, DuplicateIdentifier("c1"))
	})

	t.Run("back references", func(t *testing.T) {
		problem := newProblem(t)
		require.NoError(t, problem.AddConstraint(NewConstraint("c1", []Identifier{"x1", "x2"}, alwaysHolds())))
		require.NoError(t, problem.AddConstraint(NewConstraint("c2", []Identifier{"x1", "x1"}, alwaysHolds())))

		x1, ok := problem.Variable("x1")
		require.True(t, ok)
		assert.Equal(t, []Identifier{"c1", "c2"}, x1.Constraints)

		x2, ok := problem.Variable("x2")
		require.True(t, ok)
		assert.Equal(t, []Identifier{"c1"}, x2.Constraints)

		assert.Len(t, problem.ConstraintsOn("x1"), 2)
	})
}

func TestConstraintDefaults(t *testing.T) {
	constraint := NewConstraint("", []Identifier{"x1"}, alwaysHolds())
	assert.NotEmpty(t, constraint.ID)
	assert.Equal(t, HardWeight, constraint.Weight)
	assert.True(t, constraint.Hard())
	assert.Equal(t, KindCustom, constraint.Kind)

	soft := NewConstraint("soft", []Identifier{"x1"}, alwaysHolds(), WithWeight(0.5), WithPriority(3))
	assert.False(t, soft.Hard())
	assert.Equal(t, 3, soft.Priority)
}

func TestBinary(t *testing.T) {
	assert.True(t, NewConstraint("c", []Identifier{"x1", "x2"}, alwaysHolds()).Binary())
	assert.False(t, NewConstraint("c", []Identifier{"x1"}, alwaysHolds()).Binary())
	assert.False(t, NewConstraint("c", []Identifier{"x1", "x2", "x3"}, alwaysHolds()).Binary())
	assert.False(t, NewConstraint("c", []Identifier{"x1", "x1"}, alwaysHolds()).Binary())
}

func TestClone(t *testing.T) {
	problem := NewProblem("p")
	require.NoError(t, problem.AddVariable(NewVariable("x1", "x1", TypeInteger, Ints(1, 2, 3))))
	require.NoError(t, problem.AddConstraint(NewConstraint("c1", []Identifier{"x1"}, alwaysHolds())))

	clone := problem.Clone()
	cloned, ok := clone.Variable("x1")
	require.True(t, ok)
	cloned.Domain = cloned.Domain[:1]

	original, ok := problem.Variable("x1")
	require.True(t, ok)
	assert.Len(t, original.Domain, 3)
	assert.Len(t, cloned.Domain, 1)
	assert.Equal(t, problem.ConstraintCount(), clone.ConstraintCount())
}

func TestValidate(t *testing.T) {
	problem := NewProblem("p")
	require.NoError(t, problem.AddVariable(NewVariable("x1", "x1", TypeInteger, Ints(1, 2))))
	require.NoError(t, problem.AddConstraint(NewConstraint("c1", []Identifier{"x1"}, alwaysHolds())))
	assert.NoError(t, problem.Validate())

	x1, ok := problem.Variable("x1")
	require.True(t, ok)
	x1.Domain = append(x1.Domain, Category("oops"))
	x1.Constraints = append(x1.Constraints, "ghost")

	err := problem.Validate()
	assert.ErrorIs(t, err, ErrDomainType)
	assert.ErrorContains(t, err, "ghost")
}
