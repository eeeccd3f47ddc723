// Package search implements chronological backtracking over a
// constraint satisfaction problem: depth-first, trying values in
// strategy order, undoing the most recent binding on dead ends. There
// is no look-ahead; inference belongs to the propagate package and runs
// before a search, not during it.
package search

import (
	"context"
	"errors"

	"github.com/deepthink-ai/csp/pkg/csp"
	"github.com/deepthink-ai/csp/pkg/csp/ordering"
)

// ErrBudgetExhausted aborts a search that entered more nodes than its
// step budget allows.
var ErrBudgetExhausted = errors.New("step budget exhausted")

// Result is the outcome of one search run.
type Result struct {
	// Assignment is a complete satisfying assignment when Found,
	// otherwise the assignment the search started from.
	Assignment csp.Assignment
	// Found reports whether the search reached a complete consistent
	// assignment.
	Found bool
	// Steps counts nodes entered, the root and backtracked branches
	// included.
	Steps int64
}

// Engine runs chronological backtracking with pluggable ordering
// strategies. The zero budget means unbounded; cancellation and budget
// are checked once per node entered.
type Engine struct {
	Selector ordering.VariableSelector
	Sorter   ordering.ValueSorter
	Tracer   csp.Tracer
	MaxSteps int64
}

// Do searches for the first assignment extending root that binds every
// variable and violates no hard constraint. Relation errors abort the
// run and surface unchanged; cancellation and budget exhaustion surface
// as ctx.Err() and ErrBudgetExhausted respectively.
func (engine *Engine) Do(ctx context.Context, problem *csp.Problem, root csp.Assignment) (Result, error) {
	run := &run{engine: engine, problem: problem}
	found, assignment, err := run.search(ctx, root)
	return Result{Assignment: assignment, Found: found, Steps: run.steps}, err
}

type run struct {
	engine  *Engine
	problem *csp.Problem
	steps   int64
}

func (run *run) search(ctx context.Context, assignment csp.Assignment) (bool, csp.Assignment, error) {
	run.steps++
	if run.engine.MaxSteps > 0 && run.steps > run.engine.MaxSteps {
		return false, assignment, ErrBudgetExhausted
	}
	select {
	case <-ctx.Done():
		return false, assignment, ctx.Err()
	default:
	}

	if assignment.Complete(run.problem) {
		return true, assignment, nil
	}

	variable := run.engine.Selector.Select(run.problem, assignment)
	if variable == nil {
		return false, assignment, nil
	}
	if run.engine.Tracer != nil {
		run.engine.Tracer.Trace(position{assignment: assignment, candidate: variable, step: run.steps})
	}

	values, err := run.engine.Sorter.Order(run.problem, assignment, variable)
	if err != nil {
		return false, assignment, err
	}

	for _, value := range values {
		extended := assignment.Extend(variable.ID, value)
		consistent, err := csp.IsConsistent(run.problem, extended)
		if err != nil {
			return false, assignment, err
		}
		if !consistent {
			continue
		}
		found, final, err := run.search(ctx, extended)
		if err != nil {
			return false, final, err
		}
		if found {
			return true, final, nil
		}
	}

	// Every value failed: undo this branch by discarding its copies.
	return false, assignment, nil
}

type position struct {
	assignment csp.Assignment
	candidate  *csp.Variable
	step       int64
}

func (p position) Assignment() csp.Assignment {
	return p.assignment
}

func (p position) Candidate() *csp.Variable {
	return p.candidate
}

func (p position) Step() int64 {
	return p.step
}
