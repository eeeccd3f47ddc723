package problemfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepthink-ai/csp/pkg/csp"
)

const coloringYAML = `
name: australia
variables:
  - id: wa
    type: category
    domain: [red, green, blue]
  - id: nt
    type: category
    domain: [red, green, blue]
  - id: sa
    type: category
    domain: [red, green, blue]
constraints:
  - id: wa-nt
    kind: inequality
    variables: [wa, nt]
  - id: wa-sa
    kind: inequality
    variables: [wa, sa]
  - id: nt-sa
    kind: inequality
    variables: [nt, sa]
  - id: prefer-red
    kind: membership
    variables: [wa]
    allowed: [red]
    weight: 0.4
`

func TestParseColoring(t *testing.T) {
	problem, err := Parse([]byte(coloringYAML))
	require.NoError(t, err)

	assert.Equal(t, "australia", problem.Name)
	assert.Equal(t, 3, problem.VariableCount())
	assert.Equal(t, 4, problem.ConstraintCount())

	wa, ok := problem.Variable("wa")
	require.True(t, ok)
	assert.Equal(t, csp.TypeCategory, wa.Type)
	assert.Equal(t, csp.Categories("red", "green", "blue"), wa.Domain)

	soft, ok := problem.Constraint("prefer-red")
	require.True(t, ok)
	assert.False(t, soft.Hard())
	assert.InDelta(t, 0.4, soft.Weight, 1e-9)

	// Membership values take the scoped variable's type.
	holds, err := soft.Relation.Holds([]csp.Value{csp.Category("red")})
	require.NoError(t, err)
	assert.True(t, holds)
}

func TestParseTypedDomains(t *testing.T) {
	problem, err := Parse([]byte(`
name: typed
variables:
  - id: count
    type: integer
    domain: [1, 2, 3]
  - id: ratio
    type: real
    domain: [0.5, 1, 1.5]
  - id: flag
    type: boolean
    domain: [true, false]
  - id: tags
    type: set
    domain: [[a, b], [a]]
constraints:
  - id: total
    kind: linear_sum
    variables: [count, ratio]
    coefficients: [1, 2]
    target: 4
  - id: ord
    kind: ordering
    variables: [count, ratio]
    op: "<="
`))
	require.NoError(t, err)

	count, _ := problem.Variable("count")
	assert.Equal(t, csp.Ints(1, 2, 3), count.Domain)

	ratio, _ := problem.Variable("ratio")
	assert.Equal(t, csp.Reals(0.5, 1, 1.5), ratio.Domain)

	flag, _ := problem.Variable("flag")
	assert.Equal(t, csp.Bools(true, false), flag.Domain)

	tags, _ := problem.Variable("tags")
	require.Len(t, tags.Domain, 2)
	assert.True(t, tags.Domain[0].Equal(csp.NewSet("b", "a")))

	ord, ok := problem.Constraint("ord")
	require.True(t, ok)
	assert.Equal(t, "count <= ratio", ord.String())
}

func TestParseObjective(t *testing.T) {
	problem, err := Parse([]byte(`
name: objective
objective:
  sense: minimize
  expression: count
variables:
  - id: count
    type: integer
    domain: [1, 2]
`))
	require.NoError(t, err)
	require.NotNil(t, problem.Objective)
	assert.Equal(t, csp.Minimize, problem.Objective.Sense)
	assert.Equal(t, "count", problem.Objective.Expression)
}

func TestParseErrors(t *testing.T) {
	type tc struct {
		Name    string
		Input   string
		WantErr string
	}

	for _, tt := range []tc{
		{
			Name:    "not yaml",
			Input:   "{{",
			WantErr: "parse problem yaml",
		},
		{
			Name: "unknown field",
			Input: `
name: strict
variables:
  - id: x
    type: integer
    domain: [1]
    colour: blue
`,
			WantErr: "parse problem yaml",
		},
		{
			Name:    "no variables",
			Input:   "name: hollow",
			WantErr: "invalid problem document",
		},
		{
			Name: "ordering without op",
			Input: `
name: bad
variables:
  - id: x
    type: integer
    domain: [1]
  - id: y
    type: integer
    domain: [1]
constraints:
  - kind: ordering
    variables: [x, y]
`,
			WantErr: "invalid problem document",
		},
		{
			Name: "membership without allowed",
			Input: `
name: bad
variables:
  - id: x
    type: integer
    domain: [1]
constraints:
  - kind: membership
    variables: [x]
`,
			WantErr: "invalid problem document",
		},
		{
			Name: "weight out of range",
			Input: `
name: bad
variables:
  - id: x
    type: integer
    domain: [1]
constraints:
  - kind: equality
    variables: [x]
    weight: 1.5
`,
			WantErr: "invalid problem document",
		},
		{
			Name: "unknown kind",
			Input: `
name: bad
variables:
  - id: x
    type: integer
    domain: [1]
constraints:
  - kind: custom
    variables: [x]
`,
			WantErr: "invalid problem document",
		},
		{
			Name: "domain type mismatch",
			Input: `
name: bad
variables:
  - id: x
    type: integer
    domain: [one]
`,
			WantErr: `variable "x" domain[0]`,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := Parse([]byte(tt.Input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.WantErr)
		})
	}
}

func TestParseScopeErrors(t *testing.T) {
	_, err := Parse([]byte(`
name: scope
variables:
  - id: x
    type: integer
    domain: [1]
constraints:
  - id: dangling
    kind: equality
    variables: [x, ghost]
`))
	var unknown csp.UnknownVariable
	require.ErrorAs(t, err, &unknown)

	_, err = Parse([]byte(`
name: duplicate
variables:
  - id: x
    type: integer
    domain: [1]
  - id: x
    type: integer
    domain: [2]
`))
	var duplicate csp.DuplicateIdentifier
	require.ErrorAs(t, err, &duplicate)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coloring.yaml")
	require.NoError(t, os.WriteFile(path, []byte(coloringYAML), 0o600))

	problem, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "australia", problem.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
