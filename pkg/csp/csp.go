// Package csp defines the core model of a constraint satisfaction
// problem: typed variables ranging over finite ordered domains, hard and
// weighted soft constraints over those variables, and assignments binding
// variables to domain values. Search, propagation and analysis live in
// the subpackages; this package owns the vocabulary they share.
package csp

import "github.com/google/uuid"

// Identifier values uniquely identify particular Variables and
// Constraints within a single Problem.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// IdentifierFromString returns an Identifier based on a provided
// string.
func IdentifierFromString(s string) Identifier {
	return Identifier(s)
}

// newIdentifier mints an id for callers that did not choose one.
func newIdentifier() Identifier {
	return Identifier(uuid.NewString())
}
