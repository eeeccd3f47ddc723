package csp

// SearchPosition is a snapshot of the search at one decision point.
type SearchPosition interface {
	// Assignment returns the bindings in effect at the position.
	Assignment() Assignment
	// Candidate returns the variable the search is about to branch on.
	Candidate() *Variable
	// Step returns the node count at the position.
	Step() int64
}

// Tracer observes backtracking search progress. Implementations must
// not retain the position past the call.
type Tracer interface {
	Trace(position SearchPosition)
}
