// Package solver is the public solving facade: it configures ordering
// strategies, budgets and tracing, runs the backtracking engine, and
// assembles Solutions.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/deepthink-ai/csp/internal/search"
	"github.com/deepthink-ai/csp/pkg/csp"
	"github.com/deepthink-ai/csp/pkg/csp/ordering"
)

// Strategy names a search method.
type Strategy string

const (
	// StrategyBacktracking is chronological depth-first search, the one
	// implemented strategy.
	StrategyBacktracking Strategy = "backtracking"

	// The remaining vocabulary is declared for hosts that speak it, and
	// rejected with ErrUnsupportedStrategy until an implementation
	// exists.
	StrategyForwardChecking Strategy = "forward_checking"
	StrategyArcConsistency  Strategy = "arc_consistency"
	StrategyMinConflicts    Strategy = "min_conflicts"
	StrategyBranchAndBound  Strategy = "branch_and_bound"
)

var (
	// ErrIncomplete reports a search that was cancelled or ran out of
	// step budget before the space was exhausted. It is distinct from an
	// exhausted search, which yields a Solution with Found=false and no
	// error.
	ErrIncomplete = errors.New("cancelled before the search space was exhausted")

	// ErrUnsupportedStrategy rejects a Strategy the solver declares but
	// does not implement.
	ErrUnsupportedStrategy = errors.New("search strategy not implemented")
)

// Solver runs backtracking search over Problems. Construct with New;
// a zero Solver is not usable.
type Solver struct {
	strategy         Strategy
	variableStrategy ordering.VariableStrategy
	valueStrategy    ordering.ValueStrategy
	selector         ordering.VariableSelector
	sorter           ordering.ValueSorter
	tracer           csp.Tracer
	rng              *rand.Rand
	maxSteps         int64
}

// Option configures a Solver under construction.
type Option func(s *Solver) error

// WithStrategy selects the search method. Only StrategyBacktracking is
// accepted; the rest of the vocabulary returns ErrUnsupportedStrategy.
func WithStrategy(strategy Strategy) Option {
	return func(s *Solver) error {
		switch strategy {
		case StrategyBacktracking:
			s.strategy = strategy
			return nil
		case StrategyForwardChecking, StrategyArcConsistency, StrategyMinConflicts, StrategyBranchAndBound:
			return fmt.Errorf("%w: %q", ErrUnsupportedStrategy, strategy)
		}
		return fmt.Errorf("unknown strategy %q", strategy)
	}
}

// WithVariableStrategy selects variable ordering by name.
func WithVariableStrategy(strategy ordering.VariableStrategy) Option {
	return func(s *Solver) error {
		s.variableStrategy = strategy
		return nil
	}
}

// WithValueStrategy selects value ordering by name.
func WithValueStrategy(strategy ordering.ValueStrategy) Option {
	return func(s *Solver) error {
		s.valueStrategy = strategy
		return nil
	}
}

// WithSelector injects a variable selector directly, overriding
// WithVariableStrategy.
func WithSelector(selector ordering.VariableSelector) Option {
	return func(s *Solver) error {
		s.selector = selector
		return nil
	}
}

// WithSorter injects a value sorter directly, overriding
// WithValueStrategy.
func WithSorter(sorter ordering.ValueSorter) Option {
	return func(s *Solver) error {
		s.sorter = sorter
		return nil
	}
}

// WithTracer attaches a tracer to observe every decision point.
func WithTracer(tracer csp.Tracer) Option {
	return func(s *Solver) error {
		s.tracer = tracer
		return nil
	}
}

// WithRandom injects the randomness source used by the random ordering
// strategies.
func WithRandom(rng *rand.Rand) Option {
	return func(s *Solver) error {
		s.rng = rng
		return nil
	}
}

// WithSeed injects a deterministically seeded randomness source, for
// reproducible runs of the random ordering strategies.
func WithSeed(seed int64) Option {
	return func(s *Solver) error {
		s.rng = rand.New(rand.NewSource(seed))
		return nil
	}
}

// WithStepBudget bounds the number of search nodes a run may enter.
// Zero means unbounded.
func WithStepBudget(steps int64) Option {
	return func(s *Solver) error {
		if steps < 0 {
			return fmt.Errorf("step budget must not be negative, got %d", steps)
		}
		s.maxSteps = steps
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.strategy == "" {
			s.strategy = StrategyBacktracking
		}
		return nil
	},
	func(s *Solver) error {
		if s.rng == nil {
			s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return nil
	},
	func(s *Solver) error {
		if s.selector == nil {
			var err error
			s.selector, err = ordering.NewVariableSelector(s.variableStrategy, s.rng)
			return err
		}
		return nil
	},
	func(s *Solver) error {
		if s.sorter == nil {
			var err error
			s.sorter, err = ordering.NewValueSorter(s.valueStrategy, s.rng)
			return err
		}
		return nil
	},
	func(s *Solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
}

// New returns a Solver with the given options applied over the
// defaults: backtracking, insertion-order variable selection, natural
// value order, no budget, no tracing.
func New(options ...Option) (*Solver, error) {
	s := &Solver{}
	for _, option := range append(options, defaults...) {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Solve searches problem for its first satisfying assignment under the
// configured orderings. An exhausted space yields Found=false with the
// assignment the search started from; cancellation or budget exhaustion
// yields ErrIncomplete instead, so an aborted run is never mistaken for
// a proven unsatisfiable one. Relation errors surface unchanged.
func (s *Solver) Solve(ctx context.Context, problem *csp.Problem) (*csp.Solution, error) {
	start := time.Now()
	engine := &search.Engine{
		Selector: s.selector,
		Sorter:   s.sorter,
		Tracer:   s.tracer,
		MaxSteps: s.maxSteps,
	}
	result, err := engine.Do(ctx, problem, csp.Assignment{})
	if err != nil {
		if errors.Is(err, search.ErrBudgetExhausted) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrIncomplete, err)
		}
		return nil, err
	}

	violated, err := csp.ViolatedConstraints(problem, result.Assignment)
	if err != nil {
		return nil, err
	}
	return &csp.Solution{
		Assignment: result.Assignment,
		Found:      result.Found,
		Steps:      result.Steps,
		Elapsed:    time.Since(start),
		Method:     string(s.strategy),
		Violated:   violated,
	}, nil
}

// Solve is a one-shot convenience over New for the common case of
// choosing both orderings by name.
func Solve(ctx context.Context, problem *csp.Problem, variables ordering.VariableStrategy, values ordering.ValueStrategy) (*csp.Solution, error) {
	s, err := New(WithVariableStrategy(variables), WithValueStrategy(values))
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx, problem)
}
