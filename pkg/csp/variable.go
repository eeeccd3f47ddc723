package csp

// Variable is a named decision point ranging over a finite ordered
// domain. Domain order is meaningful: the natural value ordering tries
// values exactly as they appear here, and arc-consistency prunes the
// slice in place without reordering the survivors.
type Variable struct {
	ID   Identifier
	Name string
	Type VariableType

	// Domain holds the values the variable may still take. Propagation
	// mutates this slice destructively; Clone the owning Problem first
	// when the original domains must survive.
	Domain []Value

	// Value is an optional host-assigned binding carried for display.
	// Search never reads it; assignments are the only binding state the
	// engine consults.
	Value Value

	// Constraints lists the ids of constraints whose scope includes this
	// variable. Maintained by Problem.AddConstraint.
	Constraints []Identifier
}

// NewVariable returns a Variable over a copy of the given domain. An
// empty id is replaced with a fresh one, and an empty name falls back to
// the id.
func NewVariable(id Identifier, name string, variableType VariableType, domain []Value) *Variable {
	if id == "" {
		id = newIdentifier()
	}
	if name == "" {
		name = string(id)
	}
	owned := make([]Value, len(domain))
	copy(owned, domain)
	return &Variable{
		ID:     id,
		Name:   name,
		Type:   variableType,
		Domain: owned,
	}
}

// InDomain reports whether value is currently a member of the
// variable's domain.
func (variable *Variable) InDomain(value Value) bool {
	for _, candidate := range variable.Domain {
		if candidate.Equal(value) {
			return true
		}
	}
	return false
}

func (variable *Variable) clone() *Variable {
	domain := make([]Value, len(variable.Domain))
	copy(domain, variable.Domain)
	constraints := make([]Identifier, len(variable.Constraints))
	copy(constraints, variable.Constraints)
	return &Variable{
		ID:          variable.ID,
		Name:        variable.Name,
		Type:        variable.Type,
		Domain:      domain,
		Value:       variable.Value,
		Constraints: constraints,
	}
}
