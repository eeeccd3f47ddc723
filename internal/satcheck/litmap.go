package satcheck

import (
	"fmt"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/deepthink-ai/csp/pkg/csp"
)

// UnsupportedConstraint marks a hard constraint the encoder has no CNF
// translation for.
type UnsupportedConstraint csp.Identifier

func (e UnsupportedConstraint) Error() string {
	return fmt.Sprintf("constraint %q has no propositional encoding", csp.Identifier(e))
}

// litMapping performs translation between the variables of a problem
// and the selector literals that appear in the SAT formula. Each
// variable carries one literal per domain value; a true literal binds
// the variable to that value.
type litMapping struct {
	order   []csp.Identifier
	domains map[csp.Identifier][]csp.Value
	lits    map[csp.Identifier][]z.Lit
}

// newLitMapping allocates selector literals for every variable of the
// problem and teaches g that each variable takes exactly one of its
// domain values. A variable with an empty domain contributes an empty
// clause, so the formula is unsatisfiable exactly as the search space
// is.
func newLitMapping(g inter.S, problem *csp.Problem) *litMapping {
	variables := problem.Variables()
	d := &litMapping{
		order:   make([]csp.Identifier, 0, len(variables)),
		domains: make(map[csp.Identifier][]csp.Value, len(variables)),
		lits:    make(map[csp.Identifier][]z.Lit, len(variables)),
	}
	for _, variable := range variables {
		lits := make([]z.Lit, len(variable.Domain))
		for i := range lits {
			lits[i] = g.Lit()
		}
		d.order = append(d.order, variable.ID)
		d.domains[variable.ID] = append([]csp.Value(nil), variable.Domain...)
		d.lits[variable.ID] = lits

		for _, m := range lits {
			g.Add(m)
		}
		g.Add(z.LitNull)

		for i := 0; i < len(lits); i++ {
			for j := i + 1; j < len(lits); j++ {
				g.Add(lits[i].Not())
				g.Add(lits[j].Not())
				g.Add(z.LitNull)
			}
		}
	}
	return d
}

// LitOf returns the selector literal binding the identified variable to
// its domain value at index.
func (d *litMapping) LitOf(id csp.Identifier, index int) z.Lit {
	return d.lits[id][index]
}

// AddConstraint teaches g the clauses forbidding every value
// combination the constraint rejects. Only unary, binary and
// all-different constraints have an encoding here; anything wider
// returns UnsupportedConstraint.
func (d *litMapping) AddConstraint(g inter.Adder, constraint *csp.Constraint) error {
	scope := constraint.Variables
	switch {
	case constraint.Kind == csp.KindAllDifferent:
		d.addAllDifferent(g, scope)
		return nil
	case len(scope) == 1:
		return d.addUnary(g, constraint)
	case len(scope) == 2:
		return d.addBinary(g, constraint)
	default:
		return UnsupportedConstraint(constraint.ID)
	}
}

// addUnary emits a unit clause against every domain value the relation
// rejects.
func (d *litMapping) addUnary(g inter.Adder, constraint *csp.Constraint) error {
	id := constraint.Variables[0]
	for i, value := range d.domains[id] {
		holds, err := constraint.Relation.Holds([]csp.Value{value})
		if err != nil {
			return fmt.Errorf("encoding %q: %w", constraint.ID, err)
		}
		if holds {
			continue
		}
		g.Add(d.LitOf(id, i).Not())
		g.Add(z.LitNull)
	}
	return nil
}

// addBinary forbids every rejected value pair with a two-literal
// clause.
func (d *litMapping) addBinary(g inter.Adder, constraint *csp.Constraint) error {
	first, second := constraint.Variables[0], constraint.Variables[1]
	for i, a := range d.domains[first] {
		for j, b := range d.domains[second] {
			holds, err := constraint.Relation.Holds([]csp.Value{a, b})
			if err != nil {
				return fmt.Errorf("encoding %q: %w", constraint.ID, err)
			}
			if holds {
				continue
			}
			g.Add(d.LitOf(first, i).Not())
			g.Add(d.LitOf(second, j).Not())
			g.Add(z.LitNull)
		}
	}
	return nil
}

// addAllDifferent emits one mutual-exclusion clause per variable pair
// and shared domain value, which scales far better than enumerating
// rejected tuples.
func (d *litMapping) addAllDifferent(g inter.Adder, scope []csp.Identifier) {
	for i := 0; i < len(scope); i++ {
		for j := i + 1; j < len(scope); j++ {
			for a, value := range d.domains[scope[i]] {
				for b, other := range d.domains[scope[j]] {
					if !value.Equal(other) {
						continue
					}
					g.Add(d.LitOf(scope[i], a).Not())
					g.Add(d.LitOf(scope[j], b).Not())
					g.Add(z.LitNull)
				}
			}
		}
	}
}

// Witness decodes the model held by g into an assignment, one bound
// value per variable.
func (d *litMapping) Witness(g inter.Model) csp.Assignment {
	witness := make(csp.Assignment, len(d.order))
	for _, id := range d.order {
		for i, m := range d.lits[id] {
			if g.Value(m) {
				witness[id] = d.domains[id][i]
				break
			}
		}
	}
	return witness
}
