package csp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// VariableType declares the kind of values a variable ranges over.
type VariableType string

const (
	TypeInteger  VariableType = "integer"
	TypeReal     VariableType = "real"
	TypeBoolean  VariableType = "boolean"
	TypeCategory VariableType = "category"
	TypeSet      VariableType = "set"
)

// Value is a single element of a variable's domain. The set of
// implementations is closed: Integer, Real, Boolean, Category and Set.
// Equality across incomparable kinds is false rather than an error;
// only ordering comparisons can fail.
type Value interface {
	Type() VariableType
	Equal(other Value) bool
	String() string

	sealed()
}

// Integer is a whole-number domain value.
type Integer int64

func (Integer) Type() VariableType { return TypeInteger }

func (value Integer) Equal(other Value) bool {
	switch o := other.(type) {
	case Integer:
		return value == o
	case Real:
		return float64(value) == float64(o)
	default:
		return false
	}
}

func (value Integer) String() string {
	return strconv.FormatInt(int64(value), 10)
}

func (Integer) sealed() {}

// Real is a floating-point domain value. Integer and Real values
// compare numerically with one another.
type Real float64

func (Real) Type() VariableType { return TypeReal }

func (value Real) Equal(other Value) bool {
	switch o := other.(type) {
	case Real:
		return value == o
	case Integer:
		return float64(value) == float64(o)
	default:
		return false
	}
}

func (value Real) String() string {
	return strconv.FormatFloat(float64(value), 'g', -1, 64)
}

func (Real) sealed() {}

// Boolean is a truth-valued domain value. Booleans have no ordering.
type Boolean bool

func (Boolean) Type() VariableType { return TypeBoolean }

func (value Boolean) Equal(other Value) bool {
	o, ok := other.(Boolean)
	return ok && value == o
}

func (value Boolean) String() string {
	return strconv.FormatBool(bool(value))
}

func (Boolean) sealed() {}

// Category is a symbolic domain value. Categories order lexically.
type Category string

func (Category) Type() VariableType { return TypeCategory }

func (value Category) Equal(other Value) bool {
	o, ok := other.(Category)
	return ok && value == o
}

func (value Category) String() string {
	return string(value)
}

func (Category) sealed() {}

// Set is a domain value holding an unordered collection of members.
// Construct with NewSet so that equality is membership equality
// regardless of the order members were given in.
type Set []string

// NewSet returns a Set with members deduplicated and held in a
// canonical order.
func NewSet(members ...string) Set {
	seen := make(map[string]struct{}, len(members))
	canonical := make([]string, 0, len(members))
	for _, member := range members {
		if _, ok := seen[member]; ok {
			continue
		}
		seen[member] = struct{}{}
		canonical = append(canonical, member)
	}
	sort.Strings(canonical)
	return Set(canonical)
}

func (Set) Type() VariableType { return TypeSet }

func (value Set) Equal(other Value) bool {
	o, ok := other.(Set)
	if !ok || len(value) != len(o) {
		return false
	}
	for i := range value {
		if value[i] != o[i] {
			return false
		}
	}
	return true
}

func (value Set) String() string {
	return "{" + strings.Join(value, ", ") + "}"
}

func (Set) sealed() {}

// Compare orders two values: negative when a sorts before b, zero when
// they are equal, positive when a sorts after b. Integer and Real values
// order numerically with one another and Category values order lexically.
// Boolean and Set values carry no ordering, and no ordering exists across
// kinds beyond the numeric pair; both cases are evaluation errors.
func Compare(a, b Value) (int, error) {
	if ai, ok := a.(Integer); ok {
		if bi, ok := b.(Integer); ok {
			switch {
			case ai < bi:
				return -1, nil
			case ai > bi:
				return 1, nil
			}
			return 0, nil
		}
	}
	if af, ok := numeric(a); ok {
		if bf, ok := numeric(b); ok {
			switch {
			case af < bf:
				return -1, nil
			case af > bf:
				return 1, nil
			}
			return 0, nil
		}
	}
	if ac, ok := a.(Category); ok {
		if bc, ok := b.(Category); ok {
			return strings.Compare(string(ac), string(bc)), nil
		}
	}
	return 0, fmt.Errorf("no ordering between %s and %s values", a.Type(), b.Type())
}

func numeric(value Value) (float64, bool) {
	switch v := value.(type) {
	case Integer:
		return float64(v), true
	case Real:
		return float64(v), true
	}
	return 0, false
}

// Ints builds an integer domain from the given values, preserving order.
func Ints(values ...int64) []Value {
	domain := make([]Value, len(values))
	for i, v := range values {
		domain[i] = Integer(v)
	}
	return domain
}

// Reals builds a real-valued domain from the given values, preserving order.
func Reals(values ...float64) []Value {
	domain := make([]Value, len(values))
	for i, v := range values {
		domain[i] = Real(v)
	}
	return domain
}

// Bools builds a boolean domain from the given values, preserving order.
func Bools(values ...bool) []Value {
	domain := make([]Value, len(values))
	for i, v := range values {
		domain[i] = Boolean(v)
	}
	return domain
}

// Categories builds a symbolic domain from the given values, preserving
// order.
func Categories(values ...string) []Value {
	domain := make([]Value, len(values))
	for i, v := range values {
		domain[i] = Category(v)
	}
	return domain
}
