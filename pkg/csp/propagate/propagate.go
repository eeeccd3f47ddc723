// Package propagate prunes variable domains to arc consistency with
// the AC-3 algorithm. Propagation is a standalone pass over a Problem,
// run before search rather than during it: it mutates domains in place
// and returns the ordered audit records of every prune it made.
//
// Only hard binary constraints propagate. Constraints of any other
// arity are outside the algorithm, and soft constraints never prune:
// removing a value a soft constraint dislikes would forbid solutions
// the model explicitly permits. Both exclusions are reported through
// the Tracer.
package propagate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deepthink-ai/csp/pkg/csp"
)

// ErrRevisionBudget aborts a run that revised more arcs than its budget
// allows.
var ErrRevisionBudget = errors.New("revision budget exhausted")

// Propagator runs AC-3 over Problems. Construct with New.
type Propagator struct {
	tracer       Tracer
	maxRevisions int
}

// Option configures a Propagator under construction.
type Option func(p *Propagator) error

// WithTracer attaches a tracer observing every revision and every
// constraint excluded from propagation.
func WithTracer(tracer Tracer) Option {
	return func(p *Propagator) error {
		p.tracer = tracer
		return nil
	}
}

// WithMaxRevisions bounds the number of arcs one Apply call may revise.
// Zero means unbounded.
func WithMaxRevisions(revisions int) Option {
	return func(p *Propagator) error {
		if revisions < 0 {
			return fmt.Errorf("revision budget must not be negative, got %d", revisions)
		}
		p.maxRevisions = revisions
		return nil
	}
}

var defaults = []Option{
	func(p *Propagator) error {
		if p.tracer == nil {
			p.tracer = DefaultTracer{}
		}
		return nil
	},
}

// New returns a Propagator with the given options applied over the
// defaults: unbounded revisions, no tracing.
func New(options ...Option) (*Propagator, error) {
	p := &Propagator{}
	for _, option := range append(options, defaults...) {
		if err := option(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

type arc struct {
	x csp.Identifier
	y csp.Identifier
}

// Apply prunes problem's domains to arc consistency, in place, and
// returns one audit record per revision that removed values. A domain
// wiped empty halts the run immediately: the problem is unsatisfiable,
// and callers detect it by inspecting the returned records or
// EmptyDomains. Cancellation and budget exhaustion return the records
// accumulated so far together with ctx.Err() or ErrRevisionBudget.
func (p *Propagator) Apply(ctx context.Context, problem *csp.Problem) ([]csp.Propagation, error) {
	var worklist []arc
	for _, constraint := range problem.Constraints() {
		if !constraint.Binary() {
			p.tracer.TraceIgnored(constraint, "outside the binary fragment")
			continue
		}
		if !constraint.Hard() {
			p.tracer.TraceIgnored(constraint, "soft constraints do not prune domains")
			continue
		}
		worklist = append(worklist,
			arc{x: constraint.Variables[0], y: constraint.Variables[1]},
			arc{x: constraint.Variables[1], y: constraint.Variables[0]},
		)
	}

	var records []csp.Propagation
	revisions := 0
	for len(worklist) > 0 {
		select {
		case <-ctx.Done():
			return records, ctx.Err()
		default:
		}
		if p.maxRevisions > 0 && revisions >= p.maxRevisions {
			return records, ErrRevisionBudget
		}

		next := worklist[0]
		worklist = worklist[1:]
		revisions++

		record, revised, err := p.revise(problem, next)
		if err != nil {
			return records, err
		}
		if !revised {
			continue
		}

		record.Step = len(records) + 1
		records = append(records, record)
		p.tracer.TraceRevision(record)

		if len(record.After) == 0 {
			return records, nil
		}
		for _, neighbor := range binaryNeighbors(problem, next.x) {
			worklist = append(worklist, arc{x: neighbor, y: next.x})
		}
	}
	return records, nil
}

// revise removes from the arc's first domain every value with no
// supporting partner in the second: a partner satisfying all hard
// binary constraints linking the pair at once.
func (p *Propagator) revise(problem *csp.Problem, a arc) (csp.Propagation, bool, error) {
	x, ok := problem.Variable(a.x)
	if !ok {
		return csp.Propagation{}, false, nil
	}
	y, ok := problem.Variable(a.y)
	if !ok {
		return csp.Propagation{}, false, nil
	}
	linking := linkingConstraints(problem, a.x, a.y)
	if len(linking) == 0 {
		return csp.Propagation{}, false, nil
	}

	before := snapshot(x.Domain)
	kept := x.Domain[:0:len(x.Domain)]
	var removed []csp.Value
	for _, candidate := range x.Domain {
		supported, err := hasSupport(linking, a, candidate, y.Domain)
		if err != nil {
			return csp.Propagation{}, false, err
		}
		if supported {
			kept = append(kept, candidate)
		} else {
			removed = append(removed, candidate)
		}
	}
	if len(removed) == 0 {
		return csp.Propagation{}, false, nil
	}

	x.Domain = kept
	record := csp.Propagation{
		Variable:    a.x,
		Before:      before,
		After:       snapshot(kept),
		Neighbor:    a.y,
		Constraints: constraintIDs(linking),
		Reason:      reason(removed, a.y, linking),
	}
	return record, true, nil
}

func hasSupport(linking []*csp.Constraint, a arc, candidate csp.Value, partners []csp.Value) (bool, error) {
	for _, partner := range partners {
		pair := csp.Assignment{a.x: candidate, a.y: partner}
		supports := true
		for _, constraint := range linking {
			satisfied, err := csp.SatisfiesConstraint(constraint, pair)
			if err != nil {
				return false, err
			}
			if !satisfied {
				supports = false
				break
			}
		}
		if supports {
			return true, nil
		}
	}
	return false, nil
}

// binaryNeighbors returns, in constraint insertion order, the variables
// sharing a hard binary constraint with id.
func binaryNeighbors(problem *csp.Problem, id csp.Identifier) []csp.Identifier {
	seen := map[csp.Identifier]struct{}{id: {}}
	var neighbors []csp.Identifier
	for _, constraint := range problem.ConstraintsOn(id) {
		if !constraint.Binary() || !constraint.Hard() {
			continue
		}
		for _, other := range constraint.Variables {
			if _, ok := seen[other]; ok {
				continue
			}
			seen[other] = struct{}{}
			neighbors = append(neighbors, other)
		}
	}
	return neighbors
}

// linkingConstraints returns the hard binary constraints whose scope is
// exactly the pair {x, y}, in insertion order.
func linkingConstraints(problem *csp.Problem, x, y csp.Identifier) []*csp.Constraint {
	var linking []*csp.Constraint
	for _, constraint := range problem.ConstraintsOn(x) {
		if !constraint.Binary() || !constraint.Hard() {
			continue
		}
		a, b := constraint.Variables[0], constraint.Variables[1]
		if (a == x && b == y) || (a == y && b == x) {
			linking = append(linking, constraint)
		}
	}
	return linking
}

func constraintIDs(constraints []*csp.Constraint) []csp.Identifier {
	ids := make([]csp.Identifier, len(constraints))
	for i, constraint := range constraints {
		ids[i] = constraint.ID
	}
	return ids
}

func reason(removed []csp.Value, neighbor csp.Identifier, linking []*csp.Constraint) string {
	values := make([]string, len(removed))
	for i, value := range removed {
		values[i] = value.String()
	}
	descriptions := make([]string, len(linking))
	for i, constraint := range linking {
		descriptions[i] = constraint.String()
	}
	return fmt.Sprintf("removed %s: no value of %s supports them under %s",
		strings.Join(values, ", "), neighbor, strings.Join(descriptions, " and "))
}

func snapshot(domain []csp.Value) []csp.Value {
	copied := make([]csp.Value, len(domain))
	copy(copied, domain)
	return copied
}

// EmptyDomains returns, in insertion order, the ids of variables whose
// domains are empty. A non-empty result after Apply means the problem
// is unsatisfiable.
func EmptyDomains(problem *csp.Problem) []csp.Identifier {
	var empty []csp.Identifier
	for _, variable := range problem.Variables() {
		if len(variable.Domain) == 0 {
			empty = append(empty, variable.ID)
		}
	}
	return empty
}

// Apply is a one-shot convenience over New for propagation with the
// default configuration.
func Apply(ctx context.Context, problem *csp.Problem) ([]csp.Propagation, error) {
	p, err := New()
	if err != nil {
		return nil, err
	}
	return p.Apply(ctx, problem)
}
