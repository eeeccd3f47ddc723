package csp

// Propagation records one domain revision made by arc-consistency
// propagation: which variable lost values, against which neighbor, and
// through which constraints. The ordered list of records is the audit
// trail of a propagation run.
type Propagation struct {
	// Step numbers the revision within its run, starting at 1.
	Step int

	// Variable is the variable whose domain was pruned.
	Variable Identifier

	// Before and After snapshot the domain around the revision.
	Before []Value
	After  []Value

	// Neighbor is the variable whose domain failed to support the
	// removed values.
	Neighbor Identifier

	// Constraints lists the binary constraints linking Variable and
	// Neighbor that the revision enforced.
	Constraints []Identifier

	// Reason is a human-readable account of the prune.
	Reason string
}

// Removed returns the values the revision deleted from the domain.
func (propagation Propagation) Removed() []Value {
	var removed []Value
	for _, before := range propagation.Before {
		kept := false
		for _, after := range propagation.After {
			if before.Equal(after) {
				kept = true
				break
			}
		}
		if !kept {
			removed = append(removed, before)
		}
	}
	return removed
}
