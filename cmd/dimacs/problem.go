package dimacs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deepthink-ai/csp/pkg/csp"
	"github.com/deepthink-ai/csp/pkg/csp/constraint"
)

// GenerateProblem translates a parsed DIMACS instance into a boolean
// constraint problem: one true/false variable per CNF variable and one
// constraint per clause, satisfied when at least one of its literals
// holds.
func GenerateProblem(dimacs *Dimacs) (*csp.Problem, error) {
	problem := csp.NewProblem("dimacs")

	for _, id := range dimacs.Variables() {
		variable := csp.NewVariable(csp.IdentifierFromString(id), id, csp.TypeBoolean, csp.Bools(true, false))
		if err := problem.AddVariable(variable); err != nil {
			return nil, err
		}
	}

	for i, clause := range dimacs.Clauses() {
		id := csp.Identifier(fmt.Sprintf("clause-%d", i+1))
		built := csp.NewConstraint(id, clauseScope(clause), clauseRelation(clause))
		if err := problem.AddConstraint(built); err != nil {
			return nil, err
		}
	}
	return problem, nil
}

// clauseScope lists the distinct variables of a clause in first-use
// order. A clause mentioning a literal both ways ("1 -1") still scopes
// the variable once.
func clauseScope(clause []int) []csp.Identifier {
	seen := make(map[int]struct{}, len(clause))
	scope := make([]csp.Identifier, 0, len(clause))
	for _, lit := range clause {
		v := lit
		if v < 0 {
			v = -v
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		scope = append(scope, csp.Identifier(strconv.Itoa(v)))
	}
	return scope
}

// clauseRelation builds the at-least-one-literal predicate for a
// clause. Values arrive ordered like clauseScope's result.
func clauseRelation(clause []int) csp.Relation {
	positions := make(map[int]int, len(clause))
	for _, lit := range clause {
		v := lit
		if v < 0 {
			v = -v
		}
		if _, ok := positions[v]; !ok {
			positions[v] = len(positions)
		}
	}

	terms := make([]string, len(clause))
	for i, lit := range clause {
		terms[i] = strconv.Itoa(lit)
	}
	description := fmt.Sprintf("clause(%s)", strings.Join(terms, " "))

	return constraint.Predicate(description, func(values []csp.Value) (bool, error) {
		for _, lit := range clause {
			v := lit
			if v < 0 {
				v = -v
			}
			value, ok := values[positions[v]].(csp.Boolean)
			if !ok {
				return false, fmt.Errorf("clause variable %d is not boolean", v)
			}
			if bool(value) == (lit > 0) {
				return true, nil
			}
		}
		return false, nil
	})
}
