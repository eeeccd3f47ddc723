// Package satcheck decides the satisfiability of a problem's hard
// fragment with a SAT core, independently of the backtracking search.
// It exists to cross-check search verdicts: the direct encoding (one
// selector literal per variable and value) covers unary, binary and
// all-different constraints, which is the fragment the command line
// verifier accepts.
package satcheck

import (
	"fmt"

	"github.com/go-air/gini"

	"github.com/deepthink-ai/csp/pkg/csp"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
	unknown       = 0
)

// Result is the verdict of a check. When the hard fragment is
// satisfiable, Witness holds one complete assignment proving it. Soft
// constraints are not encoded, so the witness may violate preferences.
type Result struct {
	Satisfiable bool
	Witness     csp.Assignment
}

// Check encodes the problem's hard constraints into CNF and decides
// them. Soft constraints never block a solution and are skipped.
// Hard constraints outside the supported fragment return
// UnsupportedConstraint.
func Check(problem *csp.Problem) (*Result, error) {
	g := gini.New()
	litMap := newLitMapping(g, problem)

	for _, constraint := range problem.Constraints() {
		if !constraint.Hard() {
			continue
		}
		if err := litMap.AddConstraint(g, constraint); err != nil {
			return nil, err
		}
	}

	switch g.Solve() {
	case satisfiable:
		return &Result{Satisfiable: true, Witness: litMap.Witness(g)}, nil
	case unsatisfiable:
		return &Result{Satisfiable: false}, nil
	}
	return nil, fmt.Errorf("sat core returned no verdict")
}
