package csp

import "time"

// Solution is the outcome of one search run.
type Solution struct {
	// Assignment holds the bindings the search ended with: a complete
	// satisfying assignment when Found, otherwise whatever was bound at
	// the root when the space was exhausted.
	Assignment Assignment

	// Found reports whether Assignment is complete and violates no hard
	// constraint.
	Found bool

	// Steps counts search nodes entered, including the root and every
	// backtracked branch.
	Steps int64

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration

	// Method names the strategy that produced the solution.
	Method string

	// Violated lists ids of constraints the final assignment violates.
	// Soft violations appear here even when Found is true. Under a
	// partial assignment the permissive evaluation rule can under-report;
	// see SatisfiesConstraint.
	Violated []Identifier
}
