package solve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/deepthink-ai/csp/internal/problemfile"
	"github.com/deepthink-ai/csp/internal/satcheck"
	"github.com/deepthink-ai/csp/pkg/csp"
	"github.com/deepthink-ai/csp/pkg/csp/ordering"
	"github.com/deepthink-ai/csp/pkg/csp/propagate"
	"github.com/deepthink-ai/csp/pkg/csp/solver"
)

type options struct {
	variableOrder string
	valueOrder    string
	seed          int64
	maxSteps      int64
	timeout       time.Duration
	ac3           bool
	trace         bool
	verify        bool
}

func NewSolveCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "solve <path>...",
		Short: "Solves constraint problems defined in yaml files",
		Long: `Solves constraint problems defined in yaml files. For instance:

name: australia
variables:
  - id: wa
    type: category
    domain: [red, green, blue]
  - id: nt
    type: category
    domain: [red, green, blue]
constraints:
  - kind: inequality
    variables: [wa, nt]

Multiple files are solved concurrently and reported in argument order.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("file (%s) not found", path)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.variableOrder, "var-order", string(ordering.VariableDefault),
		"variable selection strategy (default, lexicographic, min_remaining_values, degree_heuristic, random)")
	flags.StringVar(&opts.valueOrder, "val-order", string(ordering.ValueNatural),
		"value ordering strategy (natural, least_constraining, min_conflicts, random)")
	flags.Int64Var(&opts.seed, "seed", 0, "seed for the random ordering strategies (0 seeds from the clock)")
	flags.Int64Var(&opts.maxSteps, "max-steps", 0, "abort after entering this many search nodes (0 means unbounded)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "abort the search after this duration (0 means none)")
	flags.BoolVar(&opts.ac3, "ac3", false, "enforce arc consistency before searching")
	flags.BoolVar(&opts.trace, "trace", false, "print every decision point")
	flags.BoolVar(&opts.verify, "verify", false, "cross-check the verdict with a sat core")
	return cmd
}

func run(ctx context.Context, opts *options, paths []string, out io.Writer) error {
	reports := make([]bytes.Buffer, len(paths))
	group, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		group.Go(func() error {
			return solveFile(ctx, opts, path, &reports[i])
		})
	}
	err := group.Wait()
	for i := range reports {
		_, _ = io.Copy(out, &reports[i])
	}
	return err
}

func solveFile(ctx context.Context, opts *options, path string, out io.Writer) error {
	problem, err := problemfile.Load(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d variables, %d constraints\n", problem.Name, problem.VariableCount(), problem.ConstraintCount())

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	if opts.ac3 {
		if ok, err := propagateFirst(ctx, opts, problem, out); err != nil || !ok {
			return err
		}
	}

	solverOptions := []solver.Option{
		solver.WithVariableStrategy(ordering.VariableStrategy(opts.variableOrder)),
		solver.WithValueStrategy(ordering.ValueStrategy(opts.valueOrder)),
		solver.WithStepBudget(opts.maxSteps),
	}
	if opts.seed != 0 {
		solverOptions = append(solverOptions, solver.WithSeed(opts.seed))
	}
	if opts.trace {
		solverOptions = append(solverOptions, solver.WithTracer(solver.LoggingTracer{Writer: out}))
	}
	s, err := solver.New(solverOptions...)
	if err != nil {
		return err
	}

	solution, err := s.Solve(ctx, problem)
	if err != nil {
		fmt.Fprintf(out, "no verdict: %s\n", err)
		return nil
	}

	if solution.Found {
		fmt.Fprintf(out, "solution found in %d steps (%s): %s\n", solution.Steps, solution.Elapsed, solution.Assignment)
		if len(solution.Violated) > 0 {
			fmt.Fprintf(out, "soft constraints violated: %v\n", solution.Violated)
		}
	} else {
		fmt.Fprintf(out, "no solution exists (%d steps searched)\n", solution.Steps)
	}

	if opts.verify {
		return verifyVerdict(problem, solution.Found, out)
	}
	return nil
}

// propagateFirst runs arc consistency before the search. It reports
// false when propagation alone already proves the problem unsatisfiable.
func propagateFirst(ctx context.Context, opts *options, problem *csp.Problem, out io.Writer) (bool, error) {
	propagateOptions := []propagate.Option{}
	if opts.trace {
		propagateOptions = append(propagateOptions, propagate.WithTracer(propagate.LoggingTracer{Writer: out}))
	}
	p, err := propagate.New(propagateOptions...)
	if err != nil {
		return false, err
	}

	records, err := p.Apply(ctx, problem)
	if err != nil {
		return false, err
	}
	removed := 0
	for _, record := range records {
		removed += len(record.Removed())
	}
	fmt.Fprintf(out, "arc consistency removed %d values in %d revisions\n", removed, len(records))

	if empty := propagate.EmptyDomains(problem); len(empty) > 0 {
		fmt.Fprintf(out, "no solution exists: propagation emptied %v\n", empty)
		return false, nil
	}
	return true, nil
}

func verifyVerdict(problem *csp.Problem, found bool, out io.Writer) error {
	check, err := satcheck.Check(problem)
	if err != nil {
		fmt.Fprintf(out, "verify skipped: %s\n", err)
		return nil
	}
	if check.Satisfiable != found {
		return fmt.Errorf("verify failed: search says satisfiable=%t, sat core says satisfiable=%t", found, check.Satisfiable)
	}
	fmt.Fprintln(out, "verify: sat core agrees")
	return nil
}
