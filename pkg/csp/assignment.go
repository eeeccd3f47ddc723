package csp

import (
	"sort"
	"strings"
)

// Assignment binds variable ids to chosen domain values. Assignments
// are value-like: search branches never share one, so extending an
// assignment always copies.
type Assignment map[Identifier]Value

// Bound reports whether the assignment binds the given variable.
func (assignment Assignment) Bound(id Identifier) bool {
	_, ok := assignment[id]
	return ok
}

// Clone returns an independent copy of the assignment.
func (assignment Assignment) Clone() Assignment {
	clone := make(Assignment, len(assignment)+1)
	for id, value := range assignment {
		clone[id] = value
	}
	return clone
}

// Extend returns a copy of the assignment with id bound to value. The
// receiver is left untouched.
func (assignment Assignment) Extend(id Identifier, value Value) Assignment {
	extended := assignment.Clone()
	extended[id] = value
	return extended
}

// Complete reports whether the assignment binds every variable of the
// given problem.
func (assignment Assignment) Complete(problem *Problem) bool {
	return len(assignment) == problem.VariableCount()
}

// String implements fmt.Stringer, rendering bindings in id order.
func (assignment Assignment) String() string {
	ids := make([]string, 0, len(assignment))
	for id := range assignment {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id + "=" + assignment[Identifier(id)].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
