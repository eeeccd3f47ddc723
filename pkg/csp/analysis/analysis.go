// Package analysis produces read-only structural summaries of
// Problems. The numbers are descriptive, not predictive: they describe
// the model as declared and make no attempt to estimate how hard the
// instance actually is.
package analysis

import (
	"fmt"

	"github.com/deepthink-ai/csp/pkg/csp"
)

// placeholderTightness stands in until a measured incompatibility
// statistic exists. It is reported as-is for every problem and must not
// be read as a property of the instance.
const placeholderTightness = 0.5

// Analysis summarizes a Problem's structure.
type Analysis struct {
	// Name echoes the problem's name.
	Name string

	// VariableCount and ConstraintCount size the model.
	VariableCount   int
	ConstraintCount int

	// Density is constraints per variable; zero for an empty problem.
	Density float64

	// HardConstraints and SoftConstraints split ConstraintCount by
	// weight.
	HardConstraints int
	SoftConstraints int

	// DomainSizes maps each variable to its current domain size,
	// reflecting any pruning already applied.
	DomainSizes map[csp.Identifier]int

	// MaxDomainSize is the largest current domain.
	MaxDomainSize int

	// Tightness is a fixed placeholder, not a measured constraint
	// incompatibility statistic.
	Tightness float64

	// ComplexityOrder is the brute-force search-space magnitude,
	// O(maxDomainSize ^ variableCount).
	ComplexityOrder string
}

// Analyze summarizes problem. It never mutates the problem and is safe
// to run at any point, including between propagation and search.
func Analyze(problem *csp.Problem) *Analysis {
	analysis := &Analysis{
		Name:            problem.Name,
		VariableCount:   problem.VariableCount(),
		ConstraintCount: problem.ConstraintCount(),
		DomainSizes:     make(map[csp.Identifier]int, problem.VariableCount()),
		Tightness:       placeholderTightness,
	}

	for _, variable := range problem.Variables() {
		size := len(variable.Domain)
		analysis.DomainSizes[variable.ID] = size
		if size > analysis.MaxDomainSize {
			analysis.MaxDomainSize = size
		}
	}
	for _, constraint := range problem.Constraints() {
		if constraint.Hard() {
			analysis.HardConstraints++
		} else {
			analysis.SoftConstraints++
		}
	}
	if analysis.VariableCount > 0 {
		analysis.Density = float64(analysis.ConstraintCount) / float64(analysis.VariableCount)
	}
	analysis.ComplexityOrder = fmt.Sprintf("O(%d^%d)", analysis.MaxDomainSize, analysis.VariableCount)
	return analysis
}
