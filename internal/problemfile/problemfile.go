// Package problemfile loads constraint problems from YAML documents.
package problemfile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/deepthink-ai/csp/pkg/csp"
	"github.com/deepthink-ai/csp/pkg/csp/constraint"
)

// Document is the on-disk shape of a problem definition.
type Document struct {
	Name        string           `yaml:"name"`
	Objective   *ObjectiveSpec   `yaml:"objective,omitempty"`
	Variables   []VariableSpec   `yaml:"variables" validate:"required,min=1,dive"`
	Constraints []ConstraintSpec `yaml:"constraints" validate:"dive"`
}

// ObjectiveSpec is a reserved optimization target, carried through to
// the problem untouched.
type ObjectiveSpec struct {
	Sense      string `yaml:"sense" validate:"required,oneof=minimize maximize"`
	Expression string `yaml:"expression" validate:"required"`
}

// VariableSpec declares one variable and its domain. Domain entries are
// plain YAML scalars for integer, real, boolean and category variables,
// and lists of strings for set variables.
type VariableSpec struct {
	ID     string `yaml:"id" validate:"required"`
	Name   string `yaml:"name"`
	Type   string `yaml:"type" validate:"required,oneof=integer real boolean category set"`
	Domain []any  `yaml:"domain" validate:"required,min=1"`
}

// ConstraintSpec declares one constraint over previously declared
// variables. Op applies to ordering constraints, Allowed to membership
// constraints and Coefficients/Target to linear sums; the other kinds
// take no parameters.
type ConstraintSpec struct {
	ID           string    `yaml:"id"`
	Kind         string    `yaml:"kind" validate:"required,oneof=equality inequality ordering membership all_different linear_sum"`
	Variables    []string  `yaml:"variables" validate:"required,min=1,dive,required"`
	Op           string    `yaml:"op" validate:"required_if=Kind ordering,omitempty,oneof=< <= > >="`
	Allowed      []any     `yaml:"allowed" validate:"required_if=Kind membership"`
	Coefficients []float64 `yaml:"coefficients"`
	Target       float64   `yaml:"target"`
	Weight       *float64  `yaml:"weight" validate:"omitempty,gte=0,lte=1"`
	Priority     int       `yaml:"priority"`
}

var validate = validator.New()

// Load reads and builds the problem definition at path.
func Load(path string) (*csp.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem: %w", err)
	}
	problem, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return problem, nil
}

// Parse decodes a YAML problem definition. Unknown fields are rejected
// to avoid silent divergence between file and engine.
func Parse(data []byte) (*csp.Problem, error) {
	var document Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("parse problem yaml: %w", err)
	}
	if err := validate.Struct(&document); err != nil {
		return nil, fmt.Errorf("invalid problem document: %w", err)
	}
	return document.Problem()
}

// Problem builds the runtime problem the document describes.
func (d *Document) Problem() (*csp.Problem, error) {
	problem := csp.NewProblem(d.Name)
	if d.Objective != nil {
		problem.Objective = &csp.Objective{
			Sense:      csp.ObjectiveSense(d.Objective.Sense),
			Expression: d.Objective.Expression,
		}
	}

	types := make(map[string]csp.VariableType, len(d.Variables))
	for _, spec := range d.Variables {
		variable, err := spec.variable()
		if err != nil {
			return nil, err
		}
		if err := problem.AddVariable(variable); err != nil {
			return nil, fmt.Errorf("variable %q: %w", spec.ID, err)
		}
		types[spec.ID] = variable.Type
	}

	for _, spec := range d.Constraints {
		built, err := spec.constraint(types)
		if err != nil {
			return nil, err
		}
		if err := problem.AddConstraint(built); err != nil {
			return nil, fmt.Errorf("constraint %q: %w", built.ID, err)
		}
	}
	return problem, nil
}

func (spec *VariableSpec) variable() (*csp.Variable, error) {
	variableType := csp.VariableType(spec.Type)
	domain := make([]csp.Value, len(spec.Domain))
	for i, raw := range spec.Domain {
		value, err := decodeValue(variableType, raw)
		if err != nil {
			return nil, fmt.Errorf("variable %q domain[%d]: %w", spec.ID, i, err)
		}
		domain[i] = value
	}
	return csp.NewVariable(csp.Identifier(spec.ID), spec.Name, variableType, domain), nil
}

func (spec *ConstraintSpec) constraint(types map[string]csp.VariableType) (*csp.Constraint, error) {
	scope := make([]csp.Identifier, len(spec.Variables))
	for i, id := range spec.Variables {
		scope[i] = csp.Identifier(id)
	}

	relation, err := spec.relation(types)
	if err != nil {
		return nil, fmt.Errorf("constraint %q: %w", spec.ID, err)
	}

	options := []csp.ConstraintOption{csp.WithPriority(spec.Priority)}
	if spec.Weight != nil {
		options = append(options, csp.WithWeight(*spec.Weight))
	}
	return csp.NewConstraint(csp.Identifier(spec.ID), scope, relation, options...), nil
}

func (spec *ConstraintSpec) relation(types map[string]csp.VariableType) (csp.Relation, error) {
	switch spec.Kind {
	case string(csp.KindEquality):
		return constraint.Equal(), nil
	case string(csp.KindInequality):
		return constraint.NotEqual(), nil
	case string(csp.KindOrdering):
		return constraint.Ordering(constraint.OrderingOp(spec.Op)), nil
	case string(csp.KindAllDifferent):
		return constraint.AllDifferent(), nil
	case string(csp.KindLinearSum):
		return constraint.LinearSum(spec.Coefficients, spec.Target), nil
	case string(csp.KindMembership):
		// Allowed values take the type of the first scoped variable so
		// that "red" means the same Category the domain declares.
		memberType, ok := types[spec.Variables[0]]
		if !ok {
			return nil, fmt.Errorf("unknown variable %q", spec.Variables[0])
		}
		allowed := make([]csp.Value, len(spec.Allowed))
		for i, raw := range spec.Allowed {
			value, err := decodeValue(memberType, raw)
			if err != nil {
				return nil, fmt.Errorf("allowed[%d]: %w", i, err)
			}
			allowed[i] = value
		}
		return constraint.MemberOf(allowed...), nil
	}
	return nil, fmt.Errorf("unknown constraint kind %q", spec.Kind)
}

// decodeValue maps a decoded YAML scalar onto the declared variable
// type. YAML integers arrive as int, floats as float64, booleans as
// bool and everything symbolic as string.
func decodeValue(variableType csp.VariableType, raw any) (csp.Value, error) {
	switch variableType {
	case csp.TypeInteger:
		if v, ok := raw.(int); ok {
			return csp.Integer(v), nil
		}
	case csp.TypeReal:
		switch v := raw.(type) {
		case float64:
			return csp.Real(v), nil
		case int:
			return csp.Real(v), nil
		}
	case csp.TypeBoolean:
		if v, ok := raw.(bool); ok {
			return csp.Boolean(v), nil
		}
	case csp.TypeCategory:
		if v, ok := raw.(string); ok {
			return csp.Category(v), nil
		}
	case csp.TypeSet:
		members, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("set values must be lists, got %T", raw)
		}
		strs := make([]string, len(members))
		for i, member := range members {
			s, ok := member.(string)
			if !ok {
				return nil, fmt.Errorf("set members must be strings, got %T", member)
			}
			strs[i] = s
		}
		return csp.NewSet(strs...), nil
	}
	return nil, fmt.Errorf("cannot use %T as %s", raw, variableType)
}
